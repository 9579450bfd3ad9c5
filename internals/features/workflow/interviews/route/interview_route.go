package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "praktikly_backend/internals/features/workflow/interviews/controller"
)

// CandidateInterviewRoutes: mounted under the authenticated candidate group.
func CandidateInterviewRoutes(r fiber.Router, db *gorm.DB) {
	ic := controller.NewInterviewController(db)

	r.Get("/interviews", ic.ListMine)
	r.Get("/interviews/:id", ic.GetByID)
	r.Post("/interviews/:id/respond", ic.RespondToSchedule)
}

// CompanyInterviewRoutes: mounted under the authenticated company group.
func CompanyInterviewRoutes(r fiber.Router, db *gorm.DB) {
	ic := controller.NewInterviewController(db)

	r.Post("/interviews", ic.Create)
	r.Get("/interviews", ic.ListForCompany)
	r.Get("/interviews/:id", ic.GetByID)
	r.Post("/interviews/:id/schedule", ic.Schedule)
	r.Post("/interviews/:id/outcome", ic.RecordOutcome)
	r.Post("/interviews/:id/cancel", ic.Cancel)
}
