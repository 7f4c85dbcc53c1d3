package http

import "github.com/gofiber/fiber/v2"

// localIdentity clave de Locals para la identidad de sesión.
const localIdentity = "identity"

// Identity es la identidad {id, email, role} establecida por el AuthMiddleware
// tras verificar el token. Es la única forma del payload que circula aguas abajo:
// el middleware resuelve cualquier otra forma (payload malformado) con 403 antes
// de que un guard la inspeccione.
type Identity struct {
	ID    int64
	Email string
	Role  string
}

// setIdentity adjunta la identidad al contexto de la petición. Solo el
// AuthMiddleware debe llamarla.
func setIdentity(c *fiber.Ctx, id Identity) {
	c.Locals(localIdentity, id)
}

// GetIdentity devuelve la identidad adjunta a la petición, si existe.
func GetIdentity(c *fiber.Ctx) (Identity, bool) {
	v := c.Locals(localIdentity)
	if v == nil {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
