package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"praktikly_backend/internals/constants"
	internshipModel "praktikly_backend/internals/features/internships/model"
	notifModel "praktikly_backend/internals/features/notifications/model"
	notifService "praktikly_backend/internals/features/notifications/service"
	"praktikly_backend/internals/features/workflow/applications/model"
	"praktikly_backend/internals/helpers/errs"
)

// Service owns the application lifecycle: submit, transition, withdraw,
// respond-to-offer. Every legal transition persists the new status + one
// status-history entry first, then fires exactly one notification to the
// counter-party (best-effort, never rolled back).
type Service struct {
	DB       *gorm.DB
	Notifier *notifService.Notifier
}

func New(db *gorm.DB, notifier *notifService.Notifier) *Service {
	return &Service{DB: db, Notifier: notifier}
}

type SubmitInput struct {
	InternshipID uuid.UUID
	CandidateID  uuid.UUID
	CoverLetter  string
	Attachments  []string
}

// Submit creates a new application in `pending` with the first history entry.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*model.ApplicationModel, error) {
	db := s.DB.WithContext(ctx)

	var internship internshipModel.InternshipModel
	if err := db.Where("internship_id = ?", in.InternshipID).First(&internship).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("internship not found")
		}
		return nil, errs.Internal(err)
	}
	if !internship.IsOpenForApplications() {
		return nil, errs.Validation("internship is not open for applications")
	}

	// uniqueness invariant: one application per (internship, candidate)
	var count int64
	if err := db.Model(&model.ApplicationModel{}).
		Where("application_internship_id = ? AND application_candidate_id = ?", in.InternshipID, in.CandidateID).
		Count(&count).Error; err != nil {
		return nil, errs.Internal(err)
	}
	if count > 0 {
		return nil, errs.DuplicateEntity("you have already applied to this internship")
	}

	app := model.ApplicationModel{
		ApplicationInternshipID: in.InternshipID,
		ApplicationCandidateID:  in.CandidateID,
		ApplicationCompanyID:    internship.InternshipCompanyID,
		ApplicationCoverLetter:  in.CoverLetter,
		ApplicationStatus:       model.StatusPending,
	}
	if err := setAttachments(&app, in.Attachments); err != nil {
		return nil, errs.Internal(err)
	}
	if err := app.AppendHistory(model.StatusHistoryEntry{
		Status:    model.StatusPending,
		Actor:     constants.RoleCandidate,
		Notes:     "application submitted",
		Timestamp: time.Now().UTC(),
	}); err != nil {
		return nil, errs.Internal(err)
	}

	if err := db.Create(&app).Error; err != nil {
		return nil, errs.Internal(err)
	}

	// back-reference on the posting (non-owning, best-effort)
	if err := db.Model(&internshipModel.InternshipModel{}).
		Where("internship_id = ?", in.InternshipID).
		Update("internship_application_ids",
			gorm.Expr("array_append(internship_application_ids, ?)", app.ApplicationID.String())).Error; err != nil {
		log.Printf("[ERROR] application back-reference append failed app=%s: %v", app.ApplicationID, err)
	}

	s.Notifier.Notify(ctx, internship.InternshipCompanyID, constants.RoleCompany,
		"New application received",
		fmt.Sprintf("A candidate applied to %q.", internship.InternshipTitle),
		notifModel.CategoryApplication,
		"/company/applications/"+app.ApplicationID.String())

	return &app, nil
}

// Transition moves an application to newStatus on behalf of actorRole,
// enforcing the permitted-successor table. Used by the company for the
// forward path and by the interview engine with the system actor.
func (s *Service) Transition(ctx context.Context, applicationID uuid.UUID, actorRole, newStatus, notes string) (*model.ApplicationModel, error) {
	db := s.DB.WithContext(ctx)

	var app model.ApplicationModel
	if err := db.Where("application_id = ?", applicationID).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("application not found")
		}
		return nil, errs.Internal(err)
	}

	if !CanTransition(actorRole, app.ApplicationStatus, newStatus) {
		return nil, errs.IllegalTransition(fmt.Sprintf(
			"cannot move application from %s to %s as %s", app.ApplicationStatus, newStatus, actorRole))
	}

	app.ApplicationStatus = newStatus
	if err := app.AppendHistory(model.StatusHistoryEntry{
		Status:    newStatus,
		Actor:     actorRole,
		Notes:     notes,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		return nil, errs.Internal(err)
	}

	// reaching `offered` populates offerDetails
	if newStatus == model.StatusOffered {
		now := time.Now().UTC()
		if err := app.SetOffer(&model.OfferDetails{Message: notes, SentAt: &now}); err != nil {
			return nil, errs.Internal(err)
		}
	}

	if err := db.Model(&model.ApplicationModel{}).
		Where("application_id = ?", app.ApplicationID).
		Updates(map[string]any{
			"application_status":         app.ApplicationStatus,
			"application_status_history": app.ApplicationStatusHistory,
			"application_offer_details":  app.ApplicationOfferDetails,
		}).Error; err != nil {
		return nil, errs.Internal(err)
	}

	s.notifyTransition(ctx, &app, actorRole, notes)
	return &app, nil
}

// Withdraw is the candidate-only exit from any non-terminal state. Also
// removes the application id from the posting's back-reference set.
func (s *Service) Withdraw(ctx context.Context, applicationID, candidateID uuid.UUID) (*model.ApplicationModel, error) {
	db := s.DB.WithContext(ctx)

	var app model.ApplicationModel
	if err := db.Where("application_id = ?", applicationID).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("application not found")
		}
		return nil, errs.Internal(err)
	}
	if app.ApplicationCandidateID != candidateID {
		return nil, errs.Unauthorized("only the applying candidate may withdraw")
	}
	if model.IsTerminalStatus(app.ApplicationStatus) {
		return nil, errs.InvalidState("application is already closed")
	}

	app.ApplicationStatus = model.StatusWithdrawn
	if err := app.AppendHistory(model.StatusHistoryEntry{
		Status:    model.StatusWithdrawn,
		Actor:     constants.RoleCandidate,
		Notes:     "withdrawn by candidate",
		Timestamp: time.Now().UTC(),
	}); err != nil {
		return nil, errs.Internal(err)
	}

	if err := db.Model(&model.ApplicationModel{}).
		Where("application_id = ?", app.ApplicationID).
		Updates(map[string]any{
			"application_status":         app.ApplicationStatus,
			"application_status_history": app.ApplicationStatusHistory,
		}).Error; err != nil {
		return nil, errs.Internal(err)
	}

	// referential cleanup on the posting
	if err := db.Model(&internshipModel.InternshipModel{}).
		Where("internship_id = ?", app.ApplicationInternshipID).
		Update("internship_application_ids",
			gorm.Expr("array_remove(internship_application_ids, ?)", app.ApplicationID.String())).Error; err != nil {
		log.Printf("[ERROR] application back-reference remove failed app=%s: %v", app.ApplicationID, err)
	}

	s.Notifier.Notify(ctx, app.ApplicationCompanyID, constants.RoleCompany,
		"Application withdrawn",
		"A candidate withdrew their application.",
		notifModel.CategoryApplication,
		"/company/applications/"+app.ApplicationID.String())

	return &app, nil
}

// RespondToOffer is the candidate's answer to an offer: accepted or rejected,
// both terminal. Stamps offerDetails.respondedAt.
func (s *Service) RespondToOffer(ctx context.Context, applicationID, candidateID uuid.UUID, accept bool, message string) (*model.ApplicationModel, error) {
	db := s.DB.WithContext(ctx)

	var app model.ApplicationModel
	if err := db.Where("application_id = ?", applicationID).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("application not found")
		}
		return nil, errs.Internal(err)
	}
	if app.ApplicationCandidateID != candidateID {
		return nil, errs.Unauthorized("only the applying candidate may respond to the offer")
	}

	newStatus := model.StatusRejected
	if accept {
		newStatus = model.StatusAccepted
	}
	if !CanTransition(constants.RoleCandidate, app.ApplicationStatus, newStatus) {
		return nil, errs.IllegalTransition("there is no open offer on this application")
	}

	offer, err := app.Offer()
	if err != nil {
		return nil, errs.Internal(err)
	}
	if offer == nil {
		offer = &model.OfferDetails{}
	}
	now := time.Now().UTC()
	offer.RespondedAt = &now
	if err := app.SetOffer(offer); err != nil {
		return nil, errs.Internal(err)
	}

	app.ApplicationStatus = newStatus
	if err := app.AppendHistory(model.StatusHistoryEntry{
		Status:    newStatus,
		Actor:     constants.RoleCandidate,
		Notes:     message,
		Timestamp: now,
	}); err != nil {
		return nil, errs.Internal(err)
	}

	if err := db.Model(&model.ApplicationModel{}).
		Where("application_id = ?", app.ApplicationID).
		Updates(map[string]any{
			"application_status":         app.ApplicationStatus,
			"application_status_history": app.ApplicationStatusHistory,
			"application_offer_details":  app.ApplicationOfferDetails,
		}).Error; err != nil {
		return nil, errs.Internal(err)
	}

	verdict := "declined"
	if accept {
		verdict = "accepted"
	}
	s.Notifier.Notify(ctx, app.ApplicationCompanyID, constants.RoleCompany,
		"Offer "+verdict,
		fmt.Sprintf("The candidate has %s your internship offer.", verdict),
		notifModel.CategoryApplication,
		"/company/applications/"+app.ApplicationID.String())

	return &app, nil
}

// AddMessage appends a free-text message to the application's thread and
// notifies the other party. Either side of the record may write, including on
// a closed application (parties can still talk after a decision).
func (s *Service) AddMessage(ctx context.Context, applicationID, actorID uuid.UUID, actorRole, body string) (*model.ApplicationModel, error) {
	db := s.DB.WithContext(ctx)

	if strings.TrimSpace(body) == "" {
		return nil, errs.Validation("message body is required")
	}

	var app model.ApplicationModel
	if err := db.Where("application_id = ?", applicationID).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("application not found")
		}
		return nil, errs.Internal(err)
	}

	switch actorRole {
	case constants.RoleCandidate:
		if app.ApplicationCandidateID != actorID {
			return nil, errs.Unauthorized("this application is not yours")
		}
	case constants.RoleCompany:
		if app.ApplicationCompanyID != actorID {
			return nil, errs.Unauthorized("this application does not belong to your company")
		}
	default:
		return nil, errs.Unauthorized("only the two parties may exchange messages")
	}

	if err := app.AppendMessage(model.Message{
		SenderRole: actorRole,
		Body:       body,
		SentAt:     time.Now().UTC(),
	}); err != nil {
		return nil, errs.Internal(err)
	}

	if err := db.Model(&model.ApplicationModel{}).
		Where("application_id = ?", app.ApplicationID).
		Update("application_messages", app.ApplicationMessages).Error; err != nil {
		return nil, errs.Internal(err)
	}

	if actorRole == constants.RoleCandidate {
		s.Notifier.Notify(ctx, app.ApplicationCompanyID, constants.RoleCompany,
			"New message",
			"The candidate sent you a message on their application.",
			notifModel.CategoryApplication,
			"/company/applications/"+app.ApplicationID.String())
	} else {
		s.Notifier.Notify(ctx, app.ApplicationCandidateID, constants.RoleCandidate,
			"New message",
			"The company sent you a message on your application.",
			notifModel.CategoryApplication,
			"/candidate/applications/"+app.ApplicationID.String())
	}

	return &app, nil
}

// notifyTransition tells the counter-party about the new state. Company- and
// system-driven transitions inform the candidate; candidate-driven ones the
// company. Exactly one call per legal transition.
func (s *Service) notifyTransition(ctx context.Context, app *model.ApplicationModel, actorRole, notes string) {
	title := "Application update"
	message := fmt.Sprintf("Your application is now %s.", statusLabel(app.ApplicationStatus))
	if notes != "" {
		message += " " + notes
	}

	if actorRole == constants.RoleCandidate {
		s.Notifier.Notify(ctx, app.ApplicationCompanyID, constants.RoleCompany,
			title, message, notifModel.CategoryApplication,
			"/company/applications/"+app.ApplicationID.String())
		return
	}
	s.Notifier.Notify(ctx, app.ApplicationCandidateID, constants.RoleCandidate,
		title, message, notifModel.CategoryApplication,
		"/candidate/applications/"+app.ApplicationID.String())
}

func setAttachments(app *model.ApplicationModel, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	raw, err := json.Marshal(urls)
	if err != nil {
		return err
	}
	app.ApplicationAttachments = datatypes.JSON(raw)
	return nil
}

func statusLabel(status string) string {
	switch status {
	case model.StatusInterviewScheduled:
		return "scheduled for interview"
	case model.StatusInterviewed:
		return "marked as interviewed"
	case model.StatusOffered:
		return "an offer, congratulations"
	default:
		return status
	}
}
