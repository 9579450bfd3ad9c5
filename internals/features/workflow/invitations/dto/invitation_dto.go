package dto

import (
	"time"

	"github.com/google/uuid"
)

type InviteRequest struct {
	InternshipID uuid.UUID  `json:"internship_id" validate:"required"`
	CandidateID  uuid.UUID  `json:"candidate_id" validate:"required"`
	Message      string     `json:"message" validate:"omitempty,max=2000"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

type RespondToInvitationRequest struct {
	Accept   bool   `json:"accept"`
	Response string `json:"response" validate:"omitempty,max=2000"`
}
