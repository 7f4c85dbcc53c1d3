package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/accounts-api/internal/application/auth"
	"github.com/jhoicas/accounts-api/internal/application/ports"
	"github.com/jhoicas/accounts-api/internal/application/usecase"
	"github.com/jhoicas/accounts-api/pkg/config"
	"github.com/jhoicas/accounts-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	Guard     ports.SecurityGuard
	Cfg       *config.Config
	Log       *logger.Logger
	StartedAt time.Time
}

// Router registra las rutas de la API.
//
// Pipeline por petición: guard de seguridad → (rutas protegidas) autenticación →
// validación → guards de autorización → workflow. El guard corre antes de la
// autenticación: clasifica el rol con un peek best-effort de la cookie.
func Router(app *fiber.App, deps RouterDeps) {
	cookies := NewCookieWriter(deps.Cfg.Cookie, deps.Cfg.App.IsProduction())

	healthHandler := NewHealthHandler(deps.StartedAt)
	app.Get("/health", healthHandler.Health)

	api := app.Group("/api", SecurityMiddleware(
		deps.Guard, deps.Cfg.Guard, deps.Cfg.JWT.Secret, cookies.Name(), deps.Log.WithComponent("guard"),
	))
	api.Get("/", healthHandler.Root)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, cookies, deps.Log.WithComponent("auth"))
	authGroup.Post("/sign-up", authHandler.SignUp)
	authGroup.Post("/sign-in", authHandler.SignIn)
	authGroup.Post("/sign-out", authHandler.SignOut)

	// Users (protegido: requiere cookie de sesión válida)
	users := api.Group("/user", AuthMiddleware(deps.Cfg.JWT.Secret, cookies.Name()))
	userHandler := NewUserHandler(deps.UserUC, deps.Log.WithComponent("users"))
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Patch("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
