package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	notifService "praktikly_backend/internals/features/notifications/service"
	"praktikly_backend/internals/features/workflow/invitations/dto"
	"praktikly_backend/internals/features/workflow/invitations/model"
	"praktikly_backend/internals/features/workflow/invitations/service"
	helper "praktikly_backend/internals/helpers"
)

type InvitationController struct {
	DB      *gorm.DB
	Service *service.Service
}

func NewInvitationController(db *gorm.DB) *InvitationController {
	return &InvitationController{
		DB:      db,
		Service: service.New(db, notifService.NewNotifier(db)),
	}
}

// invitationView decorates a row with its derived status so callers never see
// a stale `pending` past the expiry.
type invitationView struct {
	model.InvitationModel
	InvitationEffectiveStatus string `json:"invitation_effective_status"`
}

func toView(inv model.InvitationModel, now time.Time) invitationView {
	return invitationView{
		InvitationModel:           inv,
		InvitationEffectiveStatus: inv.EffectiveStatus(now),
	}
}

/* ===============================
   Company side
=================================*/

// POST /api/c/invitations
func (ic *InvitationController) Invite(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.InviteRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.ValidationErrorJSON(c, err)
	}

	inv, err := ic.Service.Invite(c.UserContext(), service.InviteInput{
		InternshipID: req.InternshipID,
		CandidateID:  req.CandidateID,
		CompanyID:    userID,
		Message:      req.Message,
		ExpiresAt:    req.ExpiresAt,
	})
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	return helper.JsonCreated(c, "Invitation sent", toView(*inv, time.Now()))
}

// GET /api/c/invitations
func (ic *InvitationController) ListForCompany(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	return ic.list(c, "invitation_company_id = ?", userID)
}

/* ===============================
   Candidate side
=================================*/

// GET /api/u/invitations
func (ic *InvitationController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	return ic.list(c, "invitation_candidate_id = ?", userID)
}

// POST /api/u/invitations/:id/respond
func (ic *InvitationController) Respond(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	invID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid invitation id")
	}

	var req dto.RespondToInvitationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.ValidationErrorJSON(c, err)
	}

	inv, interview, err := ic.Service.Respond(c.UserContext(), invID, userID, req.Accept, req.Response)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	data := fiber.Map{"invitation": toView(*inv, time.Now())}
	if interview != nil {
		data["interview"] = interview
	}
	return helper.JsonUpdated(c, "Invitation response recorded", data)
}

/* ===============================
   Shared
=================================*/

// GET /api/u/invitations/:id and /api/c/invitations/:id
func (ic *InvitationController) GetByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	invID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid invitation id")
	}

	var inv model.InvitationModel
	if err := ic.DB.Where("invitation_id = ?", invID).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Invitation not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load invitation")
	}
	if inv.InvitationCandidateID != userID && inv.InvitationCompanyID != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "This invitation is not yours")
	}

	return helper.JsonOK(c, "OK", toView(inv, time.Now()))
}

func (ic *InvitationController) list(c *fiber.Ctx, where string, userID uuid.UUID) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ic.DB.Model(&model.InvitationModel{}).Where(where, userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count invitations")
	}

	var invs []model.InvitationModel
	if err := q.Order("invitation_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&invs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list invitations")
	}

	now := time.Now()
	views := make([]invitationView, 0, len(invs))
	for _, inv := range invs {
		views = append(views, toView(inv, now))
	}

	return helper.JsonList(c, "OK", views, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
