package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateInterviewRequest struct {
	ApplicationID uuid.UUID `json:"application_id" validate:"required"`
}

type ScheduleInterviewRequest struct {
	Date         time.Time `json:"date" validate:"required"`
	DurationMins int       `json:"duration_mins" validate:"omitempty,min=10,max=480"`
	Mode         string    `json:"mode" validate:"required,oneof=onsite video phone"`
	Location     string    `json:"location" validate:"omitempty,max=255"` // address or meeting link
	Interviewers []string  `json:"interviewers" validate:"omitempty,dive,min=1,max=100"`
	Reason       string    `json:"reason" validate:"omitempty,max=500"`
}

type RespondToScheduleRequest struct {
	Response string `json:"response" validate:"required,oneof=accepted declined reschedule_requested"`
}

type RecordOutcomeRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accepted rejected"`
	Feedback string `json:"feedback" validate:"omitempty,max=5000"`
	Rating   *int   `json:"rating" validate:"omitempty,min=1,max=5"`
	Force    bool   `json:"force"`
}

type CancelInterviewRequest struct {
	NoShow bool `json:"no_show"`
}
