package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"praktikly_backend/internals/constants"
	notifModel "praktikly_backend/internals/features/notifications/model"
	notifService "praktikly_backend/internals/features/notifications/service"
	appModel "praktikly_backend/internals/features/workflow/applications/model"
	appService "praktikly_backend/internals/features/workflow/applications/service"
	"praktikly_backend/internals/features/workflow/interviews/model"
	onboardingService "praktikly_backend/internals/features/workflow/onboardings/service"
	"praktikly_backend/internals/helpers/errs"
)

// Service owns interview scheduling and outcomes. Outcomes cascade across
// entities: accepted seeds an onboarding, rejected terminates the linked
// application through the application engine with the system actor. The
// cascades are sequential best-effort writes; the interview row is mutated
// first and never rolled back when a follow-up write fails.
type Service struct {
	DB           *gorm.DB
	Notifier     *notifService.Notifier
	Applications *appService.Service
	Onboardings  *onboardingService.Service
}

func New(db *gorm.DB, notifier *notifService.Notifier, apps *appService.Service, onboardings *onboardingService.Service) *Service {
	return &Service{DB: db, Notifier: notifier, Applications: apps, Onboardings: onboardings}
}

// CreateForApplication seeds a pending interview from an application's triad.
// Idempotent per application.
func (s *Service) CreateForApplication(ctx context.Context, applicationID, companyID uuid.UUID) (*model.InterviewModel, error) {
	db := s.DB.WithContext(ctx)

	var app appModel.ApplicationModel
	if err := db.Where("application_id = ?", applicationID).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("application not found")
		}
		return nil, errs.Internal(err)
	}
	if app.ApplicationCompanyID != companyID {
		return nil, errs.Unauthorized("this application does not belong to your company")
	}
	if appModel.IsTerminalStatus(app.ApplicationStatus) {
		return nil, errs.InvalidState("application is already closed")
	}

	var existing model.InterviewModel
	err := db.Where("interview_application_id = ?", applicationID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Internal(err)
	}

	appID := applicationID
	interview := model.InterviewModel{
		InterviewApplicationID: &appID,
		InterviewInternshipID:  app.ApplicationInternshipID,
		InterviewCandidateID:   app.ApplicationCandidateID,
		InterviewCompanyID:     app.ApplicationCompanyID,
		InterviewStatus:        model.StatusPending,
	}
	if err := db.Create(&interview).Error; err != nil {
		return nil, errs.Internal(err)
	}
	return &interview, nil
}

type ScheduleInput struct {
	Date         time.Time
	DurationMins int
	Mode         string
	Location     string
	Interviewers []string
	Reason       string // reschedule reason, empty on first schedule
}

// Schedule sets or moves the interview slot. Legal from pending or
// rescheduled; moving an already-scheduled slot appends to the reschedule log
// and lands on `rescheduled`.
func (s *Service) Schedule(ctx context.Context, interviewID, companyID uuid.UUID, in ScheduleInput) (*model.InterviewModel, error) {
	db := s.DB.WithContext(ctx)

	var iv model.InterviewModel
	if err := db.Where("interview_id = ?", interviewID).First(&iv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("interview not found")
		}
		return nil, errs.Internal(err)
	}
	if iv.InterviewCompanyID != companyID {
		return nil, errs.Unauthorized("this interview does not belong to your company")
	}

	newStatus := model.StatusScheduled
	switch {
	case iv.CanSchedule():
		// first schedule, or re-confirm after a reschedule request
	case iv.InterviewStatus == model.StatusScheduled:
		// moving an existing slot
		newStatus = model.StatusRescheduled
	default:
		return nil, errs.InvalidState(fmt.Sprintf("interview cannot be scheduled from %s", iv.InterviewStatus))
	}

	if newStatus == model.StatusRescheduled || iv.InterviewDate != nil {
		if err := iv.AppendReschedule(model.RescheduleEntry{
			PreviousDate: iv.InterviewDate,
			NewDate:      in.Date,
			Reason:       in.Reason,
			RequestedBy:  constants.RoleCompany,
			RequestedAt:  time.Now().UTC(),
		}); err != nil {
			return nil, errs.Internal(err)
		}
	}

	date := in.Date
	iv.InterviewDate = &date
	iv.InterviewMode = in.Mode
	iv.InterviewLocation = in.Location
	iv.InterviewInterviewers = pq.StringArray(in.Interviewers)
	if in.DurationMins > 0 {
		iv.InterviewDurationMins = in.DurationMins
	}
	iv.InterviewStatus = newStatus
	iv.InterviewCandidateResponse = model.ResponsePending

	if err := db.Model(&model.InterviewModel{}).
		Where("interview_id = ?", iv.InterviewID).
		Updates(map[string]any{
			"interview_status":             iv.InterviewStatus,
			"interview_date":               iv.InterviewDate,
			"interview_duration_mins":      iv.InterviewDurationMins,
			"interview_mode":               iv.InterviewMode,
			"interview_location":           iv.InterviewLocation,
			"interview_interviewers":       iv.InterviewInterviewers,
			"interview_candidate_response": iv.InterviewCandidateResponse,
			"interview_reschedule_history": iv.InterviewRescheduleHistory,
		}).Error; err != nil {
		return nil, errs.Internal(err)
	}

	// keep the linked application's milestone in sync (system actor,
	// best-effort; an illegal sync is only logged)
	if iv.InterviewApplicationID != nil {
		if _, err := s.Applications.Transition(ctx, *iv.InterviewApplicationID,
			constants.RoleSystem, appModel.StatusInterviewScheduled, "interview scheduled"); err != nil {
			if !errs.Is(err, errs.CodeIllegalTransition) {
				log.Printf("[ERROR] application sync after schedule iv=%s: %v", iv.InterviewID, err)
			}
		}
	}

	s.Notifier.Notify(ctx, iv.InterviewCandidateID, constants.RoleCandidate,
		"Interview scheduled",
		fmt.Sprintf("Your interview is set for %s (%s).", in.Date.Format("2006-01-02 15:04"), in.Mode),
		notifModel.CategoryInterview,
		"/candidate/interviews/"+iv.InterviewID.String())

	return &iv, nil
}

// RespondToSchedule records the candidate's answer to the proposed slot. A
// reschedule request does not change interview_status; it only signals the
// company to call Schedule again.
func (s *Service) RespondToSchedule(ctx context.Context, interviewID, candidateID uuid.UUID, response string) (*model.InterviewModel, error) {
	db := s.DB.WithContext(ctx)

	switch response {
	case model.ResponseAccepted, model.ResponseDeclined, model.ResponseRescheduleRequested:
	default:
		return nil, errs.Validation("invalid schedule response")
	}

	var iv model.InterviewModel
	if err := db.Where("interview_id = ?", interviewID).First(&iv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("interview not found")
		}
		return nil, errs.Internal(err)
	}
	if iv.InterviewCandidateID != candidateID {
		return nil, errs.Unauthorized("this interview is not yours")
	}
	if iv.InterviewStatus != model.StatusScheduled && iv.InterviewStatus != model.StatusRescheduled {
		return nil, errs.InvalidState("there is no proposed slot to respond to")
	}

	if err := db.Model(&model.InterviewModel{}).
		Where("interview_id = ?", iv.InterviewID).
		Update("interview_candidate_response", response).Error; err != nil {
		return nil, errs.Internal(err)
	}
	iv.InterviewCandidateResponse = response

	s.Notifier.Notify(ctx, iv.InterviewCompanyID, constants.RoleCompany,
		"Interview response",
		fmt.Sprintf("The candidate responded to the interview slot: %s.", response),
		notifModel.CategoryInterview,
		"/company/interviews/"+iv.InterviewID.String())

	return &iv, nil
}

type OutcomeInput struct {
	Decision string
	Feedback string
	Rating   *int
	Force    bool // record before the scheduled date has elapsed
}

// RecordOutcome stores the company's decision once the interview date has
// elapsed (or Force is set). accepted → onboarding creation; rejected →
// cascaded rejection of the linked application.
func (s *Service) RecordOutcome(ctx context.Context, interviewID, companyID uuid.UUID, in OutcomeInput) (*model.InterviewModel, error) {
	db := s.DB.WithContext(ctx)

	if in.Decision != model.DecisionAccepted && in.Decision != model.DecisionRejected {
		return nil, errs.Validation("decision must be accepted or rejected")
	}
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		return nil, errs.Validation("rating must be between 1 and 5")
	}

	var iv model.InterviewModel
	if err := db.Where("interview_id = ?", interviewID).First(&iv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("interview not found")
		}
		return nil, errs.Internal(err)
	}
	if iv.InterviewCompanyID != companyID {
		return nil, errs.Unauthorized("this interview does not belong to your company")
	}

	if err := canRecordOutcome(&iv, time.Now(), in.Force); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := iv.SetOutcome(model.Outcome{
		Decision:  in.Decision,
		Feedback:  in.Feedback,
		Rating:    in.Rating,
		DecidedAt: &now,
	}); err != nil {
		return nil, errs.Internal(err)
	}
	iv.InterviewStatus = model.StatusCompleted

	if err := db.Model(&model.InterviewModel{}).
		Where("interview_id = ?", iv.InterviewID).
		Updates(map[string]any{
			"interview_status":  iv.InterviewStatus,
			"interview_outcome": iv.InterviewOutcome,
		}).Error; err != nil {
		return nil, errs.Internal(err)
	}

	// mark the application as interviewed before the decision cascade so the
	// audit log reads in event order
	if iv.InterviewApplicationID != nil {
		if _, err := s.Applications.Transition(ctx, *iv.InterviewApplicationID,
			constants.RoleSystem, appModel.StatusInterviewed, "interview completed"); err != nil {
			if !errs.Is(err, errs.CodeIllegalTransition) {
				log.Printf("[ERROR] application sync after outcome iv=%s: %v", iv.InterviewID, err)
			}
		}
	}

	switch in.Decision {
	case model.DecisionAccepted:
		if iv.InterviewApplicationID != nil {
			if _, err := s.Onboardings.CreateFromApplication(ctx, *iv.InterviewApplicationID); err != nil {
				log.Printf("[ERROR] onboarding creation after accept iv=%s: %v", iv.InterviewID, err)
			}
		} else {
			// invitation-path interviews have no application to hang the
			// onboarding on; the company converts via an offer instead
			log.Printf("[INFO] accepted outcome on invitation-path interview %s, no onboarding created", iv.InterviewID)
		}
		s.Notifier.Notify(ctx, iv.InterviewCandidateID, constants.RoleCandidate,
			"Interview passed",
			"Great news: the company wants to move forward with you.",
			notifModel.CategoryInterview,
			"/candidate/interviews/"+iv.InterviewID.String())

	case model.DecisionRejected:
		if iv.InterviewApplicationID != nil {
			if _, err := s.Applications.Transition(ctx, *iv.InterviewApplicationID,
				constants.RoleSystem, appModel.StatusRejected, "rejected after interview"); err != nil {
				log.Printf("[ERROR] application rejection cascade iv=%s: %v", iv.InterviewID, err)
			}
		}
		s.Notifier.Notify(ctx, iv.InterviewCandidateID, constants.RoleCandidate,
			"Interview outcome",
			"The company has decided not to move forward after the interview.",
			notifModel.CategoryInterview,
			"/candidate/interviews/"+iv.InterviewID.String())
	}

	return &iv, nil
}

// Cancel closes an interview without an outcome. markNoShow distinguishes a
// candidate who never turned up from an ordinary cancellation.
func (s *Service) Cancel(ctx context.Context, interviewID, companyID uuid.UUID, markNoShow bool) (*model.InterviewModel, error) {
	db := s.DB.WithContext(ctx)

	var iv model.InterviewModel
	if err := db.Where("interview_id = ?", interviewID).First(&iv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("interview not found")
		}
		return nil, errs.Internal(err)
	}
	if iv.InterviewCompanyID != companyID {
		return nil, errs.Unauthorized("this interview does not belong to your company")
	}
	if iv.InterviewStatus == model.StatusCompleted || iv.InterviewStatus == model.StatusCancelled || iv.InterviewStatus == model.StatusNoShow {
		return nil, errs.InvalidState("interview is already closed")
	}

	status := model.StatusCancelled
	if markNoShow {
		status = model.StatusNoShow
	}
	if err := db.Model(&model.InterviewModel{}).
		Where("interview_id = ?", iv.InterviewID).
		Update("interview_status", status).Error; err != nil {
		return nil, errs.Internal(err)
	}
	iv.InterviewStatus = status

	s.Notifier.Notify(ctx, iv.InterviewCandidateID, constants.RoleCandidate,
		"Interview cancelled",
		"Your interview has been cancelled by the company.",
		notifModel.CategoryInterview,
		"/candidate/interviews/"+iv.InterviewID.String())

	return &iv, nil
}

// canRecordOutcome: only a scheduled/rescheduled interview whose date has
// elapsed may receive an outcome, unless force-completed. A stored decision is
// final regardless of status.
func canRecordOutcome(iv *model.InterviewModel, now time.Time, force bool) error {
	out, err := iv.GetOutcome()
	if err != nil {
		return errs.Internal(err)
	}
	if out.Decision != model.DecisionPending {
		return errs.InvalidState("interview outcome has already been recorded")
	}
	switch iv.InterviewStatus {
	case model.StatusCompleted:
		return errs.InvalidState("interview outcome has already been recorded")
	case model.StatusCancelled, model.StatusNoShow:
		return errs.InvalidState("interview is closed")
	case model.StatusScheduled, model.StatusRescheduled:
	default:
		if !force {
			return errs.InvalidState("interview has not been scheduled yet")
		}
		return nil
	}
	if force {
		return nil
	}
	if iv.InterviewDate == nil || now.Before(*iv.InterviewDate) {
		return errs.InvalidState("interview date has not elapsed yet")
	}
	return nil
}
