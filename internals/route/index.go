package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"praktikly_backend/internals/constants"
	internshipRoute "praktikly_backend/internals/features/internships/route"
	notificationRoute "praktikly_backend/internals/features/notifications/route"
	authRoute "praktikly_backend/internals/features/users/auth/route"
	profileRoute "praktikly_backend/internals/features/users/profile/route"
	applicationRoute "praktikly_backend/internals/features/workflow/applications/route"
	interviewRoute "praktikly_backend/internals/features/workflow/interviews/route"
	invitationRoute "praktikly_backend/internals/features/workflow/invitations/route"
	onboardingRoute "praktikly_backend/internals/features/workflow/onboardings/route"
	authMiddleware "praktikly_backend/internals/middlewares/auth"
)

// SetupRoutes wires the API surface:
//
//	/api/auth    - register/login/refresh (public + protected)
//	/api/public  - unauthenticated browsing (postings, company cards)
//	/api/u       - candidate area
//	/api/c       - company area
//	/api/a       - admin area
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	authRoute.AuthRoutes(app, db)

	// 🔓 public
	public := app.Group("/api/public")
	internshipRoute.PublicInternshipRoutes(public, db)
	profileRoute.PublicProfileRoutes(public, db)

	// 🔒 candidate
	candidate := app.Group("/api/u",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorCandidate("the candidate area"), constants.RoleCandidate))
	profileRoute.CandidateProfileRoutes(candidate, db)
	applicationRoute.CandidateApplicationRoutes(candidate, db)
	invitationRoute.CandidateInvitationRoutes(candidate, db)
	interviewRoute.CandidateInterviewRoutes(candidate, db)
	onboardingRoute.CandidateOnboardingRoutes(candidate, db)
	notificationRoute.NotificationRoutes(candidate, db)

	// 🔒 company
	company := app.Group("/api/c",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorCompany("the company area"), constants.RoleCompany))
	profileRoute.CompanyProfileRoutes(company, db)
	internshipRoute.CompanyInternshipRoutes(company, db)
	applicationRoute.CompanyApplicationRoutes(company, db)
	invitationRoute.CompanyInvitationRoutes(company, db)
	interviewRoute.CompanyInterviewRoutes(company, db)
	onboardingRoute.CompanyOnboardingRoutes(company, db)
	notificationRoute.NotificationRoutes(company, db)

	// 🔒 admin
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("the admin area"), constants.RoleAdmin))
	internshipRoute.AdminInternshipRoutes(admin, db)
}
