package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "praktikly_backend/internals/features/workflow/invitations/controller"
)

// CandidateInvitationRoutes: mounted under the authenticated candidate group.
func CandidateInvitationRoutes(r fiber.Router, db *gorm.DB) {
	ic := controller.NewInvitationController(db)

	r.Get("/invitations", ic.ListMine)
	r.Get("/invitations/:id", ic.GetByID)
	r.Post("/invitations/:id/respond", ic.Respond)
}

// CompanyInvitationRoutes: mounted under the authenticated company group.
func CompanyInvitationRoutes(r fiber.Router, db *gorm.DB) {
	ic := controller.NewInvitationController(db)

	r.Post("/invitations", ic.Invite)
	r.Get("/invitations", ic.ListForCompany)
	r.Get("/invitations/:id", ic.GetByID)
}
