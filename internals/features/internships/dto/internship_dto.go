package dto

import "time"

type CreateInternshipRequest struct {
	Title        string     `json:"title" validate:"required,min=5,max=200"`
	Description  string     `json:"description" validate:"required,min=20"`
	WorkMode     string     `json:"work_mode" validate:"required,oneof=onsite remote hybrid"`
	DurationWks  int        `json:"duration_weeks" validate:"required,min=1,max=104"`
	Compensation string     `json:"compensation" validate:"omitempty,max=100"`
	City         string     `json:"city" validate:"omitempty,max=100"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Skills       []string   `json:"skills" validate:"omitempty,dive,min=1,max=50"`
	Requirements []string   `json:"requirements" validate:"omitempty,dive,min=1"`
}

type UpdateInternshipRequest struct {
	Title        *string    `json:"title" validate:"omitempty,min=5,max=200"`
	Description  *string    `json:"description" validate:"omitempty,min=20"`
	WorkMode     *string    `json:"work_mode" validate:"omitempty,oneof=onsite remote hybrid"`
	DurationWks  *int       `json:"duration_weeks" validate:"omitempty,min=1,max=104"`
	Compensation *string    `json:"compensation" validate:"omitempty,max=100"`
	City         *string    `json:"city" validate:"omitempty,max=100"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Skills       []string   `json:"skills" validate:"omitempty,dive,min=1,max=50"`
	Requirements []string   `json:"requirements" validate:"omitempty,dive,min=1"`
}
