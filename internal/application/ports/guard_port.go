package ports

import "context"

// DenyReason clasifica por qué el guard de seguridad negó una petición.
type DenyReason string

const (
	DenyReasonBot       DenyReason = "bot"
	DenyReasonShield    DenyReason = "shield"
	DenyReasonRateLimit DenyReason = "rate_limit"
)

// RequestInfo describe la petición entrante para el guard (sin acoplarlo a Fiber).
type RequestInfo struct {
	IP        string
	Method    string
	Path      string
	Query     string
	UserAgent string
}

// Decision resultado del guard. Se consume una sola vez por petición.
type Decision struct {
	Allowed bool
	Reason  DenyReason // válido solo cuando Allowed es false
}

// SecurityGuard es el puerto del servicio de protección bot/shield/rate-limit.
// limit es el techo de peticiones por minuto para el rol clasificado; el guard
// aplica una ventana deslizante de un minuto. Un error no es una negación:
// señala fallo del adaptador y el middleware responde 500.
type SecurityGuard interface {
	Protect(ctx context.Context, req RequestInfo, role string, limit int) (Decision, error)
}
