package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "praktikly_backend/internals/features/internships/controller"
)

// CompanyInternshipRoutes: mounted under the authenticated company group.
func CompanyInternshipRoutes(r fiber.Router, db *gorm.DB) {
	ic := controller.NewInternshipController(db)

	r.Post("/internships", ic.Create)
	r.Get("/internships", ic.ListMine)
	r.Put("/internships/:id", ic.Update)
	r.Post("/internships/:id/submit", ic.SubmitForReview)
	r.Post("/internships/:id/close", ic.Close)
}

// AdminInternshipRoutes: review gate.
func AdminInternshipRoutes(r fiber.Router, db *gorm.DB) {
	ic := controller.NewInternshipController(db)

	r.Post("/internships/:id/publish", ic.Publish)
}

// PublicInternshipRoutes: mounted under /api/public.
func PublicInternshipRoutes(r fiber.Router, db *gorm.DB) {
	ic := controller.NewInternshipController(db)

	r.Get("/internships", ic.ListPublic)
	r.Get("/internships/:id", ic.GetPublic)
}
