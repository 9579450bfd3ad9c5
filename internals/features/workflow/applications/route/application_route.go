package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "praktikly_backend/internals/features/workflow/applications/controller"
)

// CandidateApplicationRoutes: mounted under the authenticated candidate group.
func CandidateApplicationRoutes(r fiber.Router, db *gorm.DB) {
	ac := controller.NewApplicationController(db)

	r.Post("/applications", ac.Submit)
	r.Get("/applications", ac.ListMine)
	r.Get("/applications/:id", ac.GetByID)
	r.Post("/applications/:id/withdraw", ac.Withdraw)
	r.Post("/applications/:id/respond-offer", ac.RespondToOffer)
	r.Post("/applications/:id/messages", ac.SendMessage)
}

// CompanyApplicationRoutes: mounted under the authenticated company group.
func CompanyApplicationRoutes(r fiber.Router, db *gorm.DB) {
	ac := controller.NewApplicationController(db)

	r.Get("/applications", ac.ListForCompany)
	r.Get("/applications/:id", ac.GetByID)
	r.Post("/applications/:id/transition", ac.Transition)
	r.Post("/applications/:id/messages", ac.SendMessage)
}
