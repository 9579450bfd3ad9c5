package controller

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"praktikly_backend/internals/features/internships/dto"
	"praktikly_backend/internals/features/internships/model"
	helper "praktikly_backend/internals/helpers"
)

type InternshipController struct {
	DB *gorm.DB
}

func NewInternshipController(db *gorm.DB) *InternshipController {
	return &InternshipController{DB: db}
}

/* ===============================
   Company side
=================================*/

// POST /api/c/internships: new posting starts as draft.
func (ic *InternshipController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateInternshipRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.ValidationErrorJSON(c, err)
	}

	posting := model.InternshipModel{
		InternshipCompanyID:    userID,
		InternshipTitle:        strings.TrimSpace(req.Title),
		InternshipDescription:  req.Description,
		InternshipWorkMode:     req.WorkMode,
		InternshipDurationWks:  req.DurationWks,
		InternshipCompensation: req.Compensation,
		InternshipCity:         req.City,
		InternshipStartDate:    req.StartDate,
		InternshipEndDate:      req.EndDate,
		InternshipSkills:       pq.StringArray(req.Skills),
		InternshipRequirements: pq.StringArray(req.Requirements),
		InternshipStatus:       model.InternshipStatusDraft,
	}
	if err := ic.DB.Create(&posting).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create internship")
	}

	return helper.JsonCreated(c, "Internship created", posting)
}

// PUT /api/c/internships/:id - editable while draft or under_review.
func (ic *InternshipController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	posting, ferr := ic.findOwned(c.Params("id"), userID)
	if ferr != nil {
		return helper.JsonError(c, ferr.Code, ferr.Message)
	}
	if posting.InternshipStatus == model.InternshipStatusClosed {
		return helper.JsonError(c, fiber.StatusConflict, "Closed internships cannot be edited")
	}

	var req dto.UpdateInternshipRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.ValidationErrorJSON(c, err)
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["internship_title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["internship_description"] = *req.Description
	}
	if req.WorkMode != nil {
		updates["internship_work_mode"] = *req.WorkMode
	}
	if req.DurationWks != nil {
		updates["internship_duration_weeks"] = *req.DurationWks
	}
	if req.Compensation != nil {
		updates["internship_compensation"] = *req.Compensation
	}
	if req.City != nil {
		updates["internship_city"] = *req.City
	}
	if req.StartDate != nil {
		updates["internship_start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		updates["internship_end_date"] = *req.EndDate
	}
	if req.Skills != nil {
		updates["internship_skills"] = pq.StringArray(req.Skills)
	}
	if req.Requirements != nil {
		updates["internship_requirements"] = pq.StringArray(req.Requirements)
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ic.DB.Model(&model.InternshipModel{}).
		Where("internship_id = ?", posting.InternshipID).
		Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update internship")
	}

	return helper.JsonUpdated(c, "Internship updated", nil)
}

// POST /api/c/internships/:id/submit - draft → under_review.
func (ic *InternshipController) SubmitForReview(c *fiber.Ctx) error {
	return ic.setStatus(c, model.InternshipStatusDraft, model.InternshipStatusUnderReview, "Internship submitted for review")
}

// POST /api/c/internships/:id/close - published → closed. Existing
// applications keep running; the posting just stops accepting new ones.
func (ic *InternshipController) Close(c *fiber.Ctx) error {
	return ic.setStatus(c, model.InternshipStatusPublished, model.InternshipStatusClosed, "Internship closed")
}

func (ic *InternshipController) setStatus(c *fiber.Ctx, from, to, okMsg string) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	posting, ferr := ic.findOwned(c.Params("id"), userID)
	if ferr != nil {
		return helper.JsonError(c, ferr.Code, ferr.Message)
	}
	if posting.InternshipStatus != from {
		return helper.JsonError(c, fiber.StatusConflict,
			fmt.Sprintf("Internship must be %s (currently %s)", from, posting.InternshipStatus))
	}

	if err := ic.DB.Model(&model.InternshipModel{}).
		Where("internship_id = ?", posting.InternshipID).
		Update("internship_status", to).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update status")
	}
	return helper.JsonUpdated(c, okMsg, nil)
}

// GET /api/c/internships: the company's own postings, any status.
func (ic *InternshipController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ic.DB.Model(&model.InternshipModel{}).
		Where("internship_company_id = ?", userID)
	if status := c.Query("status"); status != "" {
		q = q.Where("internship_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count internships")
	}

	var postings []model.InternshipModel
	if err := q.Order("internship_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&postings).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list internships")
	}

	return helper.JsonList(c, "OK", postings, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* ===============================
   Admin side
=================================*/

// POST /api/a/internships/:id/publish - under_review → published (review
// gate, admin only per route setup).
func (ic *InternshipController) Publish(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid internship id")
	}

	var posting model.InternshipModel
	if err := ic.DB.Where("internship_id = ?", id).First(&posting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Internship not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load internship")
	}
	if posting.InternshipStatus != model.InternshipStatusUnderReview {
		return helper.JsonError(c, fiber.StatusConflict,
			fmt.Sprintf("Internship must be under_review (currently %s)", posting.InternshipStatus))
	}

	now := time.Now().UTC()
	if err := ic.DB.Model(&model.InternshipModel{}).
		Where("internship_id = ?", posting.InternshipID).
		Updates(map[string]any{
			"internship_status":       model.InternshipStatusPublished,
			"internship_published_at": now,
		}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to publish internship")
	}

	return helper.JsonUpdated(c, "Internship published", nil)
}

/* ===============================
   Public side
=================================*/

// GET /api/public/internships: published postings with search filters.
func (ic *InternshipController) ListPublic(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ic.DB.Model(&model.InternshipModel{}).
		Where("internship_status = ?", model.InternshipStatusPublished)
	if city := strings.TrimSpace(c.Query("city")); city != "" {
		q = q.Where("internship_city ILIKE ?", city)
	}
	if mode := c.Query("work_mode"); mode != "" {
		q = q.Where("internship_work_mode = ?", mode)
	}
	if skill := strings.TrimSpace(c.Query("skill")); skill != "" {
		q = q.Where("? = ANY(internship_skills)", skill)
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + search + "%"
		q = q.Where("(internship_title ILIKE ? OR internship_description ILIKE ?)", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count internships")
	}

	var postings []model.InternshipModel
	if err := q.Order("internship_published_at DESC NULLS LAST").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&postings).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list internships")
	}

	setPublicCache(c, 60)
	return helper.JsonList(c, "OK", postings, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/public/internships/:id
func (ic *InternshipController) GetPublic(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid internship id")
	}

	var posting model.InternshipModel
	if err := ic.DB.
		Where("internship_id = ? AND internship_status = ?", id, model.InternshipStatusPublished).
		First(&posting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Internship not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load internship")
	}

	setPublicCache(c, 60)
	return helper.JsonOK(c, "OK", posting)
}

/* ===============================
   Internals
=================================*/

func (ic *InternshipController) findOwned(rawID string, userID uuid.UUID) (*model.InternshipModel, *fiber.Error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid internship id")
	}

	var posting model.InternshipModel
	if err := ic.DB.Where("internship_id = ?", id).First(&posting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Internship not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load internship")
	}
	if posting.InternshipCompanyID != userID {
		return nil, fiber.NewError(fiber.StatusForbidden, "This internship does not belong to your company")
	}
	return &posting, nil
}

func setPublicCache(c *fiber.Ctx, seconds int) {
	c.Set("Cache-Control", fmt.Sprintf("public, max-age=%d, stale-while-revalidate=%d", seconds, seconds*2))
}
