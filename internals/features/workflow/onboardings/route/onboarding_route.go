package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "praktikly_backend/internals/features/workflow/onboardings/controller"
)

// CandidateOnboardingRoutes: mounted under the authenticated candidate group.
func CandidateOnboardingRoutes(r fiber.Router, db *gorm.DB) {
	oc := controller.NewOnboardingController(db)

	r.Get("/onboardings", oc.List)
	r.Get("/onboardings/:id", oc.GetByID)
	r.Post("/onboardings/:id/documents", oc.UploadDocument)
}

// CompanyOnboardingRoutes: mounted under the authenticated company group.
func CompanyOnboardingRoutes(r fiber.Router, db *gorm.DB) {
	oc := controller.NewOnboardingController(db)

	r.Get("/onboardings", oc.List)
	r.Get("/onboardings/:id", oc.GetByID)
	r.Post("/onboardings/:id/documents", oc.UploadDocument)
	r.Post("/onboardings/:id/start", oc.Start)
	r.Post("/onboardings/:id/complete", oc.Complete)
	r.Post("/onboardings/:id/cancel", oc.Cancel)
}
