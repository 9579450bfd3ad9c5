package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"praktikly_backend/internals/constants"
	notifService "praktikly_backend/internals/features/notifications/service"
	"praktikly_backend/internals/features/workflow/onboardings/dto"
	"praktikly_backend/internals/features/workflow/onboardings/model"
	"praktikly_backend/internals/features/workflow/onboardings/service"
	helper "praktikly_backend/internals/helpers"
	"praktikly_backend/internals/helpers/storage"
)

type OnboardingController struct {
	DB      *gorm.DB
	Service *service.Service
}

func NewOnboardingController(db *gorm.DB) *OnboardingController {
	return &OnboardingController{
		DB:      db,
		Service: service.New(db, notifService.NewNotifier(db)),
	}
}

// onboardingView adds the derived progress percentage and the current signed
// agreement (latest internship_agreement upload) to a row.
type onboardingView struct {
	model.OnboardingModel
	OnboardingProgress  int             `json:"onboarding_progress"`
	OnboardingAgreement *model.Document `json:"onboarding_agreement"`
}

func toView(ob model.OnboardingModel, now time.Time) onboardingView {
	agreement, err := ob.LatestDocument(model.DocTypeInternshipAgreement)
	if err != nil {
		log.Printf("[ERROR] onboarding documents decode ob=%s: %v", ob.OnboardingID, err)
	}
	return onboardingView{
		OnboardingModel:     ob,
		OnboardingProgress:  service.ComputeProgress(ob.OnboardingStartDate, ob.OnboardingEndDate, now),
		OnboardingAgreement: agreement,
	}
}

/* ===============================
   Both sides
=================================*/

// GET /api/u/onboardings and /api/c/onboardings
func (oc *OnboardingController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := oc.DB.Model(&model.OnboardingModel{})
	if role == constants.RoleCompany {
		q = q.Where("onboarding_company_id = ?", userID)
	} else {
		q = q.Where("onboarding_candidate_id = ?", userID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("onboarding_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count onboardings")
	}

	var obs []model.OnboardingModel
	if err := q.Order("onboarding_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&obs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list onboardings")
	}

	now := time.Now()
	views := make([]onboardingView, 0, len(obs))
	for _, ob := range obs {
		views = append(views, toView(ob, now))
	}

	return helper.JsonList(c, "OK", views, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/u/onboardings/:id and /api/c/onboardings/:id
func (oc *OnboardingController) GetByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	obID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid onboarding id")
	}

	var ob model.OnboardingModel
	if err := oc.DB.Where("onboarding_id = ?", obID).First(&ob).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Onboarding not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load onboarding")
	}
	if ob.OnboardingCandidateID != userID && ob.OnboardingCompanyID != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "This onboarding is not yours")
	}

	return helper.JsonOK(c, "OK", toView(ob, time.Now()))
}

// POST /api/u/onboardings/:id/documents and /api/c/onboardings/:id/documents
// Multipart: "file" + "type".
func (oc *OnboardingController) UploadDocument(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}
	obID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid onboarding id")
	}

	var req dto.UploadDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.ValidationErrorJSON(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "file is required")
	}
	url, err := storage.UploadDocument("onboarding-docs", fileHeader)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "Document upload failed")
	}

	ob, serr := oc.Service.UploadDocument(c.UserContext(), obID, userID, role, service.UploadDocumentInput{
		Type:       req.Type,
		UploadedBy: role,
		FileURL:    url,
	})
	if serr != nil {
		return helper.JsonDomainError(c, serr)
	}

	return helper.JsonUpdated(c, "Document uploaded", toView(*ob, time.Now()))
}

/* ===============================
   Company side
=================================*/

// POST /api/c/onboardings/:id/start
func (oc *OnboardingController) Start(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	obID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid onboarding id")
	}

	ob, serr := oc.Service.Start(c.UserContext(), obID, userID)
	if serr != nil {
		return helper.JsonDomainError(c, serr)
	}
	return helper.JsonUpdated(c, "Onboarding started", toView(*ob, time.Now()))
}

// POST /api/c/onboardings/:id/complete
func (oc *OnboardingController) Complete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	obID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid onboarding id")
	}

	var req dto.CompleteOnboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	ob, serr := oc.Service.Complete(c.UserContext(), obID, userID, service.CompleteInput{
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		WorkspaceAccess: req.WorkspaceAccess,
		EmailAccess:     req.EmailAccess,
	})
	if serr != nil {
		return helper.JsonDomainError(c, serr)
	}
	return helper.JsonUpdated(c, "Onboarding completed", toView(*ob, time.Now()))
}

// POST /api/c/onboardings/:id/cancel
func (oc *OnboardingController) Cancel(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	obID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid onboarding id")
	}

	var req dto.CancelOnboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.ValidationErrorJSON(c, err)
	}

	ob, serr := oc.Service.Cancel(c.UserContext(), obID, userID, req.Reason)
	if serr != nil {
		return helper.JsonDomainError(c, serr)
	}
	return helper.JsonUpdated(c, "Onboarding cancelled", toView(*ob, time.Now()))
}
