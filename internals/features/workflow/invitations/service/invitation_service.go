package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"praktikly_backend/internals/constants"
	internshipModel "praktikly_backend/internals/features/internships/model"
	notifModel "praktikly_backend/internals/features/notifications/model"
	notifService "praktikly_backend/internals/features/notifications/service"
	interviewModel "praktikly_backend/internals/features/workflow/interviews/model"
	"praktikly_backend/internals/features/workflow/invitations/model"
	"praktikly_backend/internals/helpers/errs"
)

type Service struct {
	DB       *gorm.DB
	Notifier *notifService.Notifier
}

func New(db *gorm.DB, notifier *notifService.Notifier) *Service {
	return &Service{DB: db, Notifier: notifier}
}

type InviteInput struct {
	InternshipID uuid.UUID
	CandidateID  uuid.UUID
	CompanyID    uuid.UUID
	Message      string
	ExpiresAt    *time.Time // nil → DefaultTTL from now
}

// Invite creates a pending invitation with the 7-day default expiry.
func (s *Service) Invite(ctx context.Context, in InviteInput) (*model.InvitationModel, error) {
	db := s.DB.WithContext(ctx)

	var internship internshipModel.InternshipModel
	if err := db.Where("internship_id = ?", in.InternshipID).First(&internship).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("internship not found")
		}
		return nil, errs.Internal(err)
	}
	if internship.InternshipCompanyID != in.CompanyID {
		return nil, errs.Unauthorized("you can only invite candidates to your own postings")
	}

	// uniqueness invariant: one invitation per (internship, candidate)
	var count int64
	if err := db.Model(&model.InvitationModel{}).
		Where("invitation_internship_id = ? AND invitation_candidate_id = ?", in.InternshipID, in.CandidateID).
		Count(&count).Error; err != nil {
		return nil, errs.Internal(err)
	}
	if count > 0 {
		return nil, errs.DuplicateEntity("this candidate has already been invited to this internship")
	}

	expiresAt := time.Now().Add(model.DefaultTTL)
	if in.ExpiresAt != nil {
		expiresAt = *in.ExpiresAt
	}

	inv := model.InvitationModel{
		InvitationInternshipID: in.InternshipID,
		InvitationCandidateID:  in.CandidateID,
		InvitationCompanyID:    in.CompanyID,
		InvitationMessage:      in.Message,
		InvitationStatus:       model.StatusPending,
		InvitationExpiresAt:    expiresAt,
	}
	if err := db.Create(&inv).Error; err != nil {
		return nil, errs.Internal(err)
	}

	s.Notifier.Notify(ctx, in.CandidateID, constants.RoleCandidate,
		"Internship invitation",
		fmt.Sprintf("You have been invited to apply for %q.", internship.InternshipTitle),
		notifModel.CategoryInvitation,
		"/candidate/invitations/"+inv.InvitationID.String())

	return &inv, nil
}

// Respond records the candidate's answer. Expiry is derived at the read:
// a pending invitation past its expiresAt is rejected here as INVALID_STATE
// even when the stored row still says pending, and a corrective write-back is
// attempted so later readers converge on the same terminal value.
func (s *Service) Respond(ctx context.Context, invitationID, candidateID uuid.UUID, accept bool, response string) (*model.InvitationModel, *interviewModel.InterviewModel, error) {
	db := s.DB.WithContext(ctx)

	var inv model.InvitationModel
	if err := db.Where("invitation_id = ?", invitationID).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errs.NotFound("invitation not found")
		}
		return nil, nil, errs.Internal(err)
	}
	if inv.InvitationCandidateID != candidateID {
		return nil, nil, errs.Unauthorized("this invitation is not addressed to you")
	}

	now := time.Now()
	switch inv.EffectiveStatus(now) {
	case model.StatusPending:
		// fallthrough to the write below
	case model.StatusExpired:
		s.writeBackExpired(ctx, &inv)
		return nil, nil, errs.InvalidState("invitation has expired")
	default:
		return nil, nil, errs.InvalidState("invitation has already been answered")
	}

	newStatus := model.StatusRejected
	if accept {
		newStatus = model.StatusAccepted
	}
	respondedAt := now.UTC()

	if err := db.Model(&model.InvitationModel{}).
		Where("invitation_id = ?", inv.InvitationID).
		Updates(map[string]any{
			"invitation_status":       newStatus,
			"invitation_response":     response,
			"invitation_responded_at": respondedAt,
		}).Error; err != nil {
		return nil, nil, errs.Internal(err)
	}
	inv.InvitationStatus = newStatus
	inv.InvitationResponse = response
	inv.InvitationRespondedAt = &respondedAt

	verdict := "declined"
	if accept {
		verdict = "accepted"
	}
	s.Notifier.Notify(ctx, inv.InvitationCompanyID, constants.RoleCompany,
		"Invitation "+verdict,
		fmt.Sprintf("The candidate has %s your invitation.", verdict),
		notifModel.CategoryInvitation,
		"/company/invitations/"+inv.InvitationID.String())

	if !accept {
		return &inv, nil, nil
	}

	// Cascade: acceptance seeds a pending interview from the triad. This is a
	// best-effort sequential write; the invitation answer above is already
	// durable and is not rolled back if this insert fails.
	interview, err := s.createInterview(ctx, &inv)
	if err != nil {
		log.Printf("[ERROR] interview creation after invitation accept inv=%s: %v", inv.InvitationID, err)
		return &inv, nil, nil
	}
	return &inv, interview, nil
}

func (s *Service) createInterview(ctx context.Context, inv *model.InvitationModel) (*interviewModel.InterviewModel, error) {
	db := s.DB.WithContext(ctx)

	// idempotence guard for replayed accepts
	var existing interviewModel.InterviewModel
	err := db.Where("interview_invitation_id = ?", inv.InvitationID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	invID := inv.InvitationID
	interview := interviewModel.InterviewModel{
		InterviewInvitationID: &invID,
		InterviewInternshipID: inv.InvitationInternshipID,
		InterviewCandidateID:  inv.InvitationCandidateID,
		InterviewCompanyID:    inv.InvitationCompanyID,
		InterviewStatus:       interviewModel.StatusPending,
	}
	if err := db.Create(&interview).Error; err != nil {
		return nil, err
	}
	return &interview, nil
}

// writeBackExpired persists the derived `expired` status. Idempotent: two
// writers racing here both land on the same terminal value.
func (s *Service) writeBackExpired(ctx context.Context, inv *model.InvitationModel) {
	err := s.DB.WithContext(ctx).Model(&model.InvitationModel{}).
		Where("invitation_id = ? AND invitation_status = ?", inv.InvitationID, model.StatusPending).
		Update("invitation_status", model.StatusExpired).Error
	if err != nil {
		log.Printf("[ERROR] invitation expiry write-back inv=%s: %v", inv.InvitationID, err)
	}
}

// MarkExpiredBatch is the scheduler's corrective sweep over stale rows.
func MarkExpiredBatch(db *gorm.DB) (int64, error) {
	res := db.Model(&model.InvitationModel{}).
		Where("invitation_status = ? AND invitation_expires_at < ?", model.StatusPending, time.Now()).
		Update("invitation_status", model.StatusExpired)
	return res.RowsAffected, res.Error
}
