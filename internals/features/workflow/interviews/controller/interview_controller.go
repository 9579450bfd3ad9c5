package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	notifService "praktikly_backend/internals/features/notifications/service"
	appService "praktikly_backend/internals/features/workflow/applications/service"
	"praktikly_backend/internals/features/workflow/interviews/dto"
	"praktikly_backend/internals/features/workflow/interviews/model"
	"praktikly_backend/internals/features/workflow/interviews/service"
	onboardingService "praktikly_backend/internals/features/workflow/onboardings/service"
	helper "praktikly_backend/internals/helpers"
)

type InterviewController struct {
	DB      *gorm.DB
	Service *service.Service
}

func NewInterviewController(db *gorm.DB) *InterviewController {
	notifier := notifService.NewNotifier(db)
	return &InterviewController{
		DB: db,
		Service: service.New(db, notifier,
			appService.New(db, notifier),
			onboardingService.New(db, notifier)),
	}
}

/* ===============================
   Company side
=================================*/

// POST /api/c/interviews
func (ic *InterviewController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.ValidationErrorJSON(c, err)
	}

	iv, err := ic.Service.CreateForApplication(c.UserContext(), req.ApplicationID, userID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "Interview created", iv)
}

// POST /api/c/interviews/:id/schedule
func (ic *InterviewController) Schedule(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	ivID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid interview id")
	}

	var req dto.ScheduleInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.ValidationErrorJSON(c, err)
	}

	iv, err := ic.Service.Schedule(c.UserContext(), ivID, userID, service.ScheduleInput{
		Date:         req.Date,
		DurationMins: req.DurationMins,
		Mode:         req.Mode,
		Location:     req.Location,
		Interviewers: req.Interviewers,
		Reason:       req.Reason,
	})
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Interview scheduled", iv)
}

// POST /api/c/interviews/:id/outcome
func (ic *InterviewController) RecordOutcome(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	ivID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid interview id")
	}

	var req dto.RecordOutcomeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.ValidationErrorJSON(c, err)
	}

	iv, err := ic.Service.RecordOutcome(c.UserContext(), ivID, userID, service.OutcomeInput{
		Decision: req.Decision,
		Feedback: req.Feedback,
		Rating:   req.Rating,
		Force:    req.Force,
	})
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Outcome recorded", iv)
}

// POST /api/c/interviews/:id/cancel
func (ic *InterviewController) Cancel(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	ivID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid interview id")
	}

	var req dto.CancelInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	iv, err := ic.Service.Cancel(c.UserContext(), ivID, userID, req.NoShow)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Interview cancelled", iv)
}

// GET /api/c/interviews
func (ic *InterviewController) ListForCompany(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	return ic.list(c, "interview_company_id = ?", userID)
}

/* ===============================
   Candidate side
=================================*/

// GET /api/u/interviews
func (ic *InterviewController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	return ic.list(c, "interview_candidate_id = ?", userID)
}

// POST /api/u/interviews/:id/respond
func (ic *InterviewController) RespondToSchedule(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	ivID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid interview id")
	}

	var req dto.RespondToScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.ValidationErrorJSON(c, err)
	}

	iv, err := ic.Service.RespondToSchedule(c.UserContext(), ivID, userID, req.Response)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Response recorded", iv)
}

/* ===============================
   Shared
=================================*/

// GET /api/u/interviews/:id and /api/c/interviews/:id
func (ic *InterviewController) GetByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	ivID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid interview id")
	}

	var iv model.InterviewModel
	if err := ic.DB.Where("interview_id = ?", ivID).First(&iv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Interview not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load interview")
	}
	if iv.InterviewCandidateID != userID && iv.InterviewCompanyID != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "This interview is not yours")
	}

	return helper.JsonOK(c, "OK", iv)
}

func (ic *InterviewController) list(c *fiber.Ctx, where string, userID uuid.UUID) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ic.DB.Model(&model.InterviewModel{}).Where(where, userID)
	if status := c.Query("status"); status != "" {
		q = q.Where("interview_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count interviews")
	}

	var ivs []model.InterviewModel
	if err := q.Order("interview_date ASC NULLS LAST, interview_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&ivs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list interviews")
	}

	return helper.JsonList(c, "OK", ivs, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
