package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "praktikly_backend/internals/features/users/profile/controller"
)

// CandidateProfileRoutes: mounted under the authenticated candidate group.
func CandidateProfileRoutes(r fiber.Router, db *gorm.DB) {
	pc := controller.NewCandidateProfileController(db)

	r.Get("/profile", pc.GetMine)
	r.Put("/profile", pc.UpdateMine)
	r.Post("/profile/photo", pc.UploadPhoto)
	r.Post("/profile/cv", pc.UploadCV)
}

// CompanyProfileRoutes: mounted under the authenticated company group.
func CompanyProfileRoutes(r fiber.Router, db *gorm.DB) {
	pc := controller.NewCompanyProfileController(db)

	r.Get("/profile", pc.GetMine)
	r.Put("/profile", pc.UpdateMine)
	r.Post("/profile/logo", pc.UploadLogo)
}

// PublicProfileRoutes: mounted under /api/public.
func PublicProfileRoutes(r fiber.Router, db *gorm.DB) {
	pc := controller.NewCompanyProfileController(db)

	r.Get("/companies/:id", pc.GetPublic)
}
