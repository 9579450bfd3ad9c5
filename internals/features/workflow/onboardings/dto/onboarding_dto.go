package dto

import "time"

// UploadDocumentRequest carries document metadata; the file itself arrives as
// the multipart "file" field and is stored before the service call.
type UploadDocumentRequest struct {
	Type string `json:"type" form:"type" validate:"required,oneof=internship_agreement nda insurance study_approval other"`
}

type CompleteOnboardingRequest struct {
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	WorkspaceAccess bool       `json:"workspace_access"`
	EmailAccess     bool       `json:"email_access"`
}

type CancelOnboardingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}
