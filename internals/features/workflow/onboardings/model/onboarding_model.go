package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Onboarding statuses
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Document types
const (
	DocTypeInternshipAgreement = "internship_agreement"
	DocTypeNDA                 = "nda"
	DocTypeInsurance           = "insurance"
	DocTypeStudyApproval       = "study_approval"
	DocTypeOther               = "other"
)

// Per-document statuses
const (
	DocStatusPending  = "pending"
	DocStatusUploaded = "uploaded"
	DocStatusSigned   = "signed"
	DocStatusApproved = "approved"
	DocStatusRejected = "rejected"
)

// Document is one entry of the documents collection. Uploads of the same type
// are never deduplicated; each upload appends; the latest matching entry by
// UploadedAt wins for readers needing "current".
type Document struct {
	Type       string    `json:"type"`
	UploadedBy string    `json:"uploaded_by"` // candidate | company
	FileURL    string    `json:"file_url"`
	Status     string    `json:"status"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type OnboardingModel struct {
	OnboardingID uuid.UUID `gorm:"column:onboarding_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"onboarding_id"`

	OnboardingApplicationID uuid.UUID `gorm:"column:onboarding_application_id;type:uuid;uniqueIndex;not null" json:"onboarding_application_id"`
	OnboardingInternshipID  uuid.UUID `gorm:"column:onboarding_internship_id;type:uuid;not null;index" json:"onboarding_internship_id"`
	OnboardingCandidateID   uuid.UUID `gorm:"column:onboarding_candidate_id;type:uuid;not null;index" json:"onboarding_candidate_id"`
	OnboardingCompanyID     uuid.UUID `gorm:"column:onboarding_company_id;type:uuid;not null;index" json:"onboarding_company_id"`

	OnboardingStatus string `gorm:"column:onboarding_status;type:varchar(20);not null;default:'pending';index" json:"onboarding_status"`

	OnboardingDocuments datatypes.JSON `gorm:"column:onboarding_documents;type:jsonb;not null;default:'[]'" json:"onboarding_documents"`

	OnboardingStartDate *time.Time `gorm:"column:onboarding_start_date" json:"onboarding_start_date"`
	OnboardingEndDate   *time.Time `gorm:"column:onboarding_end_date" json:"onboarding_end_date"`

	OnboardingAgreementSigned bool `gorm:"column:onboarding_agreement_signed;not null;default:false" json:"onboarding_agreement_signed"`

	// Access grants flipped when onboarding completes
	OnboardingWorkspaceAccess bool `gorm:"column:onboarding_workspace_access;not null;default:false" json:"onboarding_workspace_access"`
	OnboardingEmailAccess     bool `gorm:"column:onboarding_email_access;not null;default:false" json:"onboarding_email_access"`

	OnboardingCompletedAt *time.Time `gorm:"column:onboarding_completed_at" json:"onboarding_completed_at"`

	OnboardingCreatedAt time.Time      `gorm:"column:onboarding_created_at;autoCreateTime" json:"onboarding_created_at"`
	OnboardingUpdatedAt time.Time      `gorm:"column:onboarding_updated_at;autoUpdateTime" json:"onboarding_updated_at"`
	OnboardingDeletedAt gorm.DeletedAt `gorm:"column:onboarding_deleted_at;index" json:"-"`
}

func (OnboardingModel) TableName() string {
	return "onboardings"
}

func (m *OnboardingModel) GetDocuments() ([]Document, error) {
	var docs []Document
	if len(m.OnboardingDocuments) == 0 {
		return docs, nil
	}
	if err := json.Unmarshal(m.OnboardingDocuments, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// AppendDocument appends to the documents collection (append-only).
func (m *OnboardingModel) AppendDocument(doc Document) error {
	docs, err := m.GetDocuments()
	if err != nil {
		return err
	}
	docs = append(docs, doc)
	raw, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	m.OnboardingDocuments = datatypes.JSON(raw)
	return nil
}

// LatestDocument returns the newest entry of the given type, nil when absent.
func (m *OnboardingModel) LatestDocument(docType string) (*Document, error) {
	docs, err := m.GetDocuments()
	if err != nil {
		return nil, err
	}
	var latest *Document
	for i := range docs {
		if docs[i].Type != docType {
			continue
		}
		if latest == nil || docs[i].UploadedAt.After(latest.UploadedAt) {
			latest = &docs[i]
		}
	}
	return latest, nil
}
