package dto

import "github.com/google/uuid"

type SubmitApplicationRequest struct {
	InternshipID uuid.UUID `json:"internship_id" validate:"required"`
	CoverLetter  string    `json:"cover_letter" validate:"omitempty,max=5000"`
	Attachments  []string  `json:"attachments" validate:"omitempty,dive,url"`
}

type TransitionApplicationRequest struct {
	Status string `json:"status" validate:"required,oneof=reviewed shortlisted interview_scheduled interviewed offered rejected"`
	Notes  string `json:"notes" validate:"omitempty,max=2000"`
}

type RespondToOfferRequest struct {
	Accept  bool   `json:"accept"`
	Message string `json:"message" validate:"omitempty,max=2000"`
}

type SendMessageRequest struct {
	Body string `json:"body" validate:"required,max=5000"`
}
