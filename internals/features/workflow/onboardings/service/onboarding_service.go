package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"praktikly_backend/internals/constants"
	internshipModel "praktikly_backend/internals/features/internships/model"
	notifModel "praktikly_backend/internals/features/notifications/model"
	notifService "praktikly_backend/internals/features/notifications/service"
	appModel "praktikly_backend/internals/features/workflow/applications/model"
	"praktikly_backend/internals/features/workflow/onboardings/model"
	"praktikly_backend/internals/helpers/errs"
)

type Service struct {
	DB       *gorm.DB
	Notifier *notifService.Notifier
}

func New(db *gorm.DB, notifier *notifService.Notifier) *Service {
	return &Service{DB: db, Notifier: notifier}
}

// CreateFromApplication seeds an onboarding off an accepted application.
// System-triggered (offer acceptance or a passed interview) and idempotent:
// the unique index on onboarding_application_id plus the lookup guard make a
// repeated cascade a no-op returning the existing row.
func (s *Service) CreateFromApplication(ctx context.Context, applicationID uuid.UUID) (*model.OnboardingModel, error) {
	db := s.DB.WithContext(ctx)

	var existing model.OnboardingModel
	err := db.Where("onboarding_application_id = ?", applicationID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Internal(err)
	}

	var app appModel.ApplicationModel
	if err := db.Where("application_id = ?", applicationID).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("application not found")
		}
		return nil, errs.Internal(err)
	}

	onboarding := model.OnboardingModel{
		OnboardingApplicationID: app.ApplicationID,
		OnboardingInternshipID:  app.ApplicationInternshipID,
		OnboardingCandidateID:   app.ApplicationCandidateID,
		OnboardingCompanyID:     app.ApplicationCompanyID,
		OnboardingStatus:        model.StatusPending,
	}

	// seed the period from the posting when it carries one
	var posting internshipModel.InternshipModel
	if err := db.Where("internship_id = ?", app.ApplicationInternshipID).First(&posting).Error; err == nil {
		onboarding.OnboardingStartDate = posting.InternshipStartDate
		onboarding.OnboardingEndDate = posting.InternshipEndDate
	}

	if err := db.Create(&onboarding).Error; err != nil {
		return nil, errs.Internal(err)
	}

	s.Notifier.Notify(ctx, onboarding.OnboardingCandidateID, constants.RoleCandidate,
		"Onboarding started",
		"Congratulations, your onboarding checklist is ready. Upload your documents to get going.",
		notifModel.CategoryOnboarding,
		"/candidate/onboardings/"+onboarding.OnboardingID.String())

	return &onboarding, nil
}

type UploadDocumentInput struct {
	Type       string
	UploadedBy string // candidate | company
	FileURL    string
	Status     string // defaults to uploaded
}

// UploadDocument appends to the documents collection. Re-uploads of the same
// type are never deduplicated. An internship_agreement upload flips
// agreementSigned; the first upload on a pending onboarding moves it to
// in_progress.
func (s *Service) UploadDocument(ctx context.Context, onboardingID, actorID uuid.UUID, actorRole string, in UploadDocumentInput) (*model.OnboardingModel, error) {
	db := s.DB.WithContext(ctx)

	switch in.Type {
	case model.DocTypeInternshipAgreement, model.DocTypeNDA, model.DocTypeInsurance, model.DocTypeStudyApproval, model.DocTypeOther:
	default:
		return nil, errs.Validation("unknown document type")
	}
	if in.FileURL == "" {
		return nil, errs.Validation("file_url is required")
	}
	if in.Status == "" {
		in.Status = model.DocStatusUploaded
	}

	ob, err := s.loadOwned(db, onboardingID, actorID, actorRole)
	if err != nil {
		return nil, err
	}
	if ob.OnboardingStatus == model.StatusCompleted || ob.OnboardingStatus == model.StatusCancelled {
		return nil, errs.InvalidState("onboarding is closed")
	}

	if err := ob.AppendDocument(model.Document{
		Type:       in.Type,
		UploadedBy: in.UploadedBy,
		FileURL:    in.FileURL,
		Status:     in.Status,
		UploadedAt: time.Now().UTC(),
	}); err != nil {
		return nil, errs.Internal(err)
	}

	updates := map[string]any{
		"onboarding_documents": ob.OnboardingDocuments,
	}
	if in.Type == model.DocTypeInternshipAgreement {
		ob.OnboardingAgreementSigned = true
		updates["onboarding_agreement_signed"] = true
	}
	if ob.OnboardingStatus == model.StatusPending {
		ob.OnboardingStatus = model.StatusInProgress
		updates["onboarding_status"] = model.StatusInProgress
	}

	if err := db.Model(&model.OnboardingModel{}).
		Where("onboarding_id = ?", ob.OnboardingID).
		Updates(updates).Error; err != nil {
		return nil, errs.Internal(err)
	}

	// tell the other side a document landed
	if actorRole == constants.RoleCandidate {
		s.Notifier.Notify(ctx, ob.OnboardingCompanyID, constants.RoleCompany,
			"Document uploaded",
			fmt.Sprintf("The candidate uploaded a %s document.", in.Type),
			notifModel.CategoryOnboarding,
			"/company/onboardings/"+ob.OnboardingID.String())
	} else {
		s.Notifier.Notify(ctx, ob.OnboardingCandidateID, constants.RoleCandidate,
			"Document uploaded",
			fmt.Sprintf("The company uploaded a %s document.", in.Type),
			notifModel.CategoryOnboarding,
			"/candidate/onboardings/"+ob.OnboardingID.String())
	}

	return ob, nil
}

// Start moves a pending onboarding to in_progress explicitly (companies that
// kick off before any document exists).
func (s *Service) Start(ctx context.Context, onboardingID, companyID uuid.UUID) (*model.OnboardingModel, error) {
	db := s.DB.WithContext(ctx)

	ob, err := s.loadOwned(db, onboardingID, companyID, constants.RoleCompany)
	if err != nil {
		return nil, err
	}
	if ob.OnboardingStatus != model.StatusPending {
		return nil, errs.InvalidState(fmt.Sprintf("onboarding cannot start from %s", ob.OnboardingStatus))
	}

	if err := db.Model(&model.OnboardingModel{}).
		Where("onboarding_id = ?", ob.OnboardingID).
		Update("onboarding_status", model.StatusInProgress).Error; err != nil {
		return nil, errs.Internal(err)
	}
	ob.OnboardingStatus = model.StatusInProgress
	return ob, nil
}

type CompleteInput struct {
	StartDate       *time.Time
	EndDate         *time.Time
	WorkspaceAccess bool
	EmailAccess     bool
}

// Complete closes the onboarding. Only legal from in_progress; a repeat call
// returns INVALID_STATE and no second completion email goes out. Not
// reversible.
func (s *Service) Complete(ctx context.Context, onboardingID, companyID uuid.UUID, in CompleteInput) (*model.OnboardingModel, error) {
	db := s.DB.WithContext(ctx)

	ob, err := s.loadOwned(db, onboardingID, companyID, constants.RoleCompany)
	if err != nil {
		return nil, err
	}
	if ob.OnboardingStatus != model.StatusInProgress {
		return nil, errs.InvalidState(fmt.Sprintf("onboarding cannot be completed from %s", ob.OnboardingStatus))
	}

	now := time.Now().UTC()
	if in.StartDate != nil {
		ob.OnboardingStartDate = in.StartDate
	}
	if in.EndDate != nil {
		ob.OnboardingEndDate = in.EndDate
	}
	ob.OnboardingStatus = model.StatusCompleted
	ob.OnboardingCompletedAt = &now
	ob.OnboardingWorkspaceAccess = in.WorkspaceAccess
	ob.OnboardingEmailAccess = in.EmailAccess

	if err := db.Model(&model.OnboardingModel{}).
		Where("onboarding_id = ?", ob.OnboardingID).
		Updates(map[string]any{
			"onboarding_status":           ob.OnboardingStatus,
			"onboarding_completed_at":     ob.OnboardingCompletedAt,
			"onboarding_start_date":       ob.OnboardingStartDate,
			"onboarding_end_date":         ob.OnboardingEndDate,
			"onboarding_workspace_access": ob.OnboardingWorkspaceAccess,
			"onboarding_email_access":     ob.OnboardingEmailAccess,
		}).Error; err != nil {
		return nil, errs.Internal(err)
	}

	msg := "Your onboarding is complete. Welcome aboard!"
	if ob.OnboardingStartDate != nil && ob.OnboardingEndDate != nil {
		msg = fmt.Sprintf("Your onboarding is complete. Your internship runs %s to %s. Welcome aboard!",
			ob.OnboardingStartDate.Format("2006-01-02"), ob.OnboardingEndDate.Format("2006-01-02"))
	}
	s.Notifier.Notify(ctx, ob.OnboardingCandidateID, constants.RoleCandidate,
		"Onboarding complete",
		msg,
		notifModel.CategoryOnboarding,
		"/candidate/onboardings/"+ob.OnboardingID.String())

	return ob, nil
}

// Cancel aborts a not-yet-completed onboarding.
func (s *Service) Cancel(ctx context.Context, onboardingID, companyID uuid.UUID, reason string) (*model.OnboardingModel, error) {
	db := s.DB.WithContext(ctx)

	ob, err := s.loadOwned(db, onboardingID, companyID, constants.RoleCompany)
	if err != nil {
		return nil, err
	}
	if ob.OnboardingStatus == model.StatusCompleted || ob.OnboardingStatus == model.StatusCancelled {
		return nil, errs.InvalidState("onboarding is already closed")
	}

	if err := db.Model(&model.OnboardingModel{}).
		Where("onboarding_id = ?", ob.OnboardingID).
		Update("onboarding_status", model.StatusCancelled).Error; err != nil {
		return nil, errs.Internal(err)
	}
	ob.OnboardingStatus = model.StatusCancelled

	msg := "Your onboarding has been cancelled by the company."
	if reason != "" {
		msg = fmt.Sprintf("Your onboarding has been cancelled by the company. Reason: %s", reason)
	}
	s.Notifier.Notify(ctx, ob.OnboardingCandidateID, constants.RoleCandidate,
		"Onboarding cancelled",
		msg,
		notifModel.CategoryOnboarding,
		"/candidate/onboardings/"+ob.OnboardingID.String())

	return ob, nil
}

// loadOwned fetches the onboarding and checks the actor sits on it. Admins
// pass regardless of ownership.
func (s *Service) loadOwned(db *gorm.DB, onboardingID, actorID uuid.UUID, actorRole string) (*model.OnboardingModel, error) {
	var ob model.OnboardingModel
	if err := db.Where("onboarding_id = ?", onboardingID).First(&ob).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("onboarding not found")
		}
		return nil, errs.Internal(err)
	}
	switch actorRole {
	case constants.RoleCandidate:
		if ob.OnboardingCandidateID != actorID {
			return nil, errs.Unauthorized("this onboarding is not yours")
		}
	case constants.RoleCompany:
		if ob.OnboardingCompanyID != actorID {
			return nil, errs.Unauthorized("this onboarding does not belong to your company")
		}
	case constants.RoleAdmin, constants.RoleSystem:
	default:
		return nil, errs.Unauthorized("unknown role")
	}
	return &ob, nil
}

// ComputeProgress reports how far through the internship period an onboarding
// is, as a whole percentage. Missing dates yield 0; before the start 0, after
// the end 100; in between linear, rounded to nearest.
func ComputeProgress(start, end *time.Time, now time.Time) int {
	if start == nil || end == nil {
		return 0
	}
	if !end.After(*start) {
		return 0
	}
	if now.Before(*start) {
		return 0
	}
	if !now.Before(*end) {
		return 100
	}
	elapsed := now.Sub(*start).Seconds()
	total := end.Sub(*start).Seconds()
	return int(math.Round(elapsed / total * 100))
}
