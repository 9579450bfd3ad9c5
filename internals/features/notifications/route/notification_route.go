package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "praktikly_backend/internals/features/notifications/controller"
)

// NotificationRoutes: mounted under any authenticated group; rows are scoped
// to the token's user.
func NotificationRoutes(r fiber.Router, db *gorm.DB) {
	nc := controller.NewNotificationController(db)

	r.Get("/notifications", nc.List)
	r.Post("/notifications/:id/read", nc.MarkRead)
	r.Post("/notifications/read-all", nc.MarkAllRead)
	r.Delete("/notifications/:id", nc.Delete)
}
