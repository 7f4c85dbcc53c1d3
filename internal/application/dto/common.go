package dto

// ErrorResponse cuerpo de error HTTP: {error, message?, details?}.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// ValidationFailed construye el 400 estándar con los mensajes por campo unidos en details.
func ValidationFailed(err error) ErrorResponse {
	details := "Validation failed"
	if err != nil {
		details = err.Error()
	}
	return ErrorResponse{Error: "Validation failed", Details: details}
}
