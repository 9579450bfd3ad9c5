package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	notifService "praktikly_backend/internals/features/notifications/service"
	"praktikly_backend/internals/features/workflow/applications/dto"
	"praktikly_backend/internals/features/workflow/applications/model"
	"praktikly_backend/internals/features/workflow/applications/service"
	helper "praktikly_backend/internals/helpers"
)

type ApplicationController struct {
	DB      *gorm.DB
	Service *service.Service
}

func NewApplicationController(db *gorm.DB) *ApplicationController {
	return &ApplicationController{
		DB:      db,
		Service: service.New(db, notifService.NewNotifier(db)),
	}
}

/* ===============================
   Candidate side
=================================*/

// POST /api/u/applications
func (ac *ApplicationController) Submit(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.ValidationErrorJSON(c, err)
	}

	app, err := ac.Service.Submit(c.UserContext(), service.SubmitInput{
		InternshipID: req.InternshipID,
		CandidateID:  userID,
		CoverLetter:  req.CoverLetter,
		Attachments:  req.Attachments,
	})
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	return helper.JsonCreated(c, "Application submitted", app)
}

// GET /api/u/applications
func (ac *ApplicationController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ac.DB.Model(&model.ApplicationModel{}).
		Where("application_candidate_id = ?", userID)
	if status := c.Query("status"); status != "" {
		q = q.Where("application_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count applications")
	}

	var apps []model.ApplicationModel
	if err := q.Order("application_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&apps).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list applications")
	}

	return helper.JsonList(c, "OK", apps, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// POST /api/u/applications/:id/withdraw
func (ac *ApplicationController) Withdraw(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid application id")
	}

	app, err := ac.Service.Withdraw(c.UserContext(), appID, userID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Application withdrawn", app)
}

// POST /api/u/applications/:id/respond-offer
func (ac *ApplicationController) RespondToOffer(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid application id")
	}

	var req dto.RespondToOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.ValidationErrorJSON(c, err)
	}

	app, err := ac.Service.RespondToOffer(c.UserContext(), appID, userID, req.Accept, req.Message)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Offer response recorded", app)
}

/* ===============================
   Company side
=================================*/

// GET /api/c/applications
func (ac *ApplicationController) ListForCompany(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ac.DB.Model(&model.ApplicationModel{}).
		Where("application_company_id = ?", userID)
	if internshipID := c.Query("internship_id"); internshipID != "" {
		q = q.Where("application_internship_id = ?", internshipID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("application_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count applications")
	}

	var apps []model.ApplicationModel
	if err := q.Order("application_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&apps).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list applications")
	}

	return helper.JsonList(c, "OK", apps, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// POST /api/c/applications/:id/transition
func (ac *ApplicationController) Transition(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}
	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid application id")
	}

	var req dto.TransitionApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.ValidationErrorJSON(c, err)
	}

	// ownership gate before the state machine runs
	if ferr := ac.ensureCompanyOwns(appID, userID); ferr != nil {
		return helper.JsonError(c, ferr.Code, ferr.Message)
	}

	app, err := ac.Service.Transition(c.UserContext(), appID, role, req.Status, req.Notes)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Application updated", app)
}

/* ===============================
   Shared detail
=================================*/

// POST /api/u/applications/:id/messages and /api/c/applications/:id/messages
func (ac *ApplicationController) SendMessage(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}
	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid application id")
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.ValidationErrorJSON(c, err)
	}

	app, err := ac.Service.AddMessage(c.UserContext(), appID, userID, role, req.Body)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "Message sent", app)
}

// GET /api/u/applications/:id and /api/c/applications/:id
func (ac *ApplicationController) GetByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid application id")
	}

	var app model.ApplicationModel
	if err := ac.DB.Where("application_id = ?", appID).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Application not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load application")
	}
	if app.ApplicationCandidateID != userID && app.ApplicationCompanyID != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "This application is not yours")
	}

	return helper.JsonOK(c, "OK", app)
}

func (ac *ApplicationController) ensureCompanyOwns(appID, companyID uuid.UUID) *fiber.Error {
	var app model.ApplicationModel
	if err := ac.DB.Select("application_company_id").
		Where("application_id = ?", appID).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Application not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load application")
	}
	if app.ApplicationCompanyID != companyID {
		return fiber.NewError(fiber.StatusForbidden, "This application does not belong to your company")
	}
	return nil
}
