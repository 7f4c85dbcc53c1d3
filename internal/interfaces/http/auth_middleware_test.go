package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/accounts-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/accounts-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testCookieName = "token"
	testIssuer     = "accounts-api-test"
	testExpMin     = 60
)

// buildProtectedApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para verificar la cookie y cargar la identidad
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildProtectedApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, testCookieName),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			identity, _ := apphttp.GetIdentity(c)
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": identity.Role,
			})
		},
	)
	return app
}

// cookieForRole genera la cookie de sesión con el rol indicado.
func cookieForRole(t *testing.T, id int64, email, role string) *http.Cookie {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, id, email, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token válido")
	return &http.Cookie{Name: testCookieName, Value: tok}
}

// doProtected lanza una petición GET /protected con la cookie dada (o sin cookie).
func doProtected(t *testing.T, app *fiber.App, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Sin cookie → 401, nunca se trata la ausencia como guest.
func TestAuthMiddleware_SinCookie_Retorna401(t *testing.T) {
	app := buildProtectedApp("admin")
	resp := doProtected(t, app, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "No access token provided")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildProtectedApp("admin")
	resp := doProtected(t, app, &http.Cookie{Name: testCookieName, Value: "token.invalido.aqui"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Authentication failed")
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	app := buildProtectedApp("admin")
	tok, err := pkgjwt.Generate(testJWTSecret, 1, "a@x.com", "admin", testIssuer, -1)
	require.NoError(t, err)

	resp := doProtected(t, app, &http.Cookie{Name: testCookieName, Value: tok})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Token firmado con el secret correcto pero con payload sin identidad
// (forma que este servicio nunca emite) → 403, distinto del fallo de verificación.
func TestAuthMiddleware_PayloadMalformado_Retorna403(t *testing.T) {
	claims := jwtlib.RegisteredClaims{
		Issuer:    testIssuer,
		Subject:   "payload-plano",
		IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	app := buildProtectedApp("admin")
	resp := doProtected(t, app, &http.Cookie{Name: testCookieName, Value: tok})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Malformed token payload")
}

func TestAuthMiddleware_ExtraeIdentidad(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, testCookieName), func(c *fiber.Ctx) error {
		identity, ok := apphttp.GetIdentity(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{
			"id":    identity.ID,
			"email": identity.Email,
			"role":  identity.Role,
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookieForRole(t, 7, "ana@x.com", "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(7), body["id"])
	assert.Equal(t, "ana@x.com", body["email"])
	assert.Equal(t, "admin", body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildProtectedApp("admin")
	resp := doProtected(t, app, cookieForRole(t, 1, "root@x.com", "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
}

func TestRequireRole_UserAccedeRutaMultiRol(t *testing.T) {
	app := buildProtectedApp("admin", "user")
	resp := doProtected(t, app, cookieForRole(t, 2, "ana@x.com", "user"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_UserBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildProtectedApp("admin")
	resp := doProtected(t, app, cookieForRole(t, 2, "ana@x.com", "user"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"user no debe poder acceder a ruta restringida a admin")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Insufficient permissions")
}

// Sin AuthMiddleware previo no hay identidad: RequireRole responde 401, no 403.
func TestRequireRole_SinIdentidad_Retorna401(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", apphttp.RequireRole("admin"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "User not authenticated")
}
