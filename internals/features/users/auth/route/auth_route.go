package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "praktikly_backend/internals/features/users/auth/controller"
	middlewares "praktikly_backend/internals/middlewares"
	authMiddleware "praktikly_backend/internals/middlewares/auth"
)

// AuthRoutes: base /api/auth
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ac := controller.NewAuthController(db)

	base := app.Group("/api/auth")

	// 🔓 public
	base.Post("/register", middlewares.RegisterRateLimiter(), ac.Register)
	base.Post("/login", middlewares.LoginRateLimiter(), ac.Login)
	base.Post("/login-google", middlewares.LoginRateLimiter(), ac.LoginGoogle)
	base.Post("/refresh-token", ac.RefreshToken)

	// 🔒 protected
	protected := base.Group("", authMiddleware.AuthMiddleware(db))
	protected.Post("/logout", ac.Logout)
	protected.Post("/change-password", ac.ChangePassword)
	protected.Get("/me", ac.Me)
}
