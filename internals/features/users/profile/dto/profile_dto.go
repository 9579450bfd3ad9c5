package dto

// UpdateCompanyProfileRequest: all fields optional; only present fields are
// written.
type UpdateCompanyProfileRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=150"`
	OrgNumber   *string `json:"org_number" validate:"omitempty,min=8,max=20"`
	Description *string `json:"description"`
	Website     *string `json:"website" validate:"omitempty,url"`
	City        *string `json:"city" validate:"omitempty,max=100"`
	Country     *string `json:"country" validate:"omitempty,oneof=DK SE"`
	ContactMail *string `json:"contact_mail" validate:"omitempty,email"`
}

type UpdateCandidateProfileRequest struct {
	Headline  *string  `json:"headline" validate:"omitempty,max=150"`
	Bio       *string  `json:"bio"`
	School    *string  `json:"school" validate:"omitempty,max=150"`
	StudyLine *string  `json:"study_line" validate:"omitempty,max=150"`
	Skills    []string `json:"skills" validate:"omitempty,dive,min=1,max=50"`
	Languages []string `json:"languages" validate:"omitempty,dive,min=2,max=30"`
	City      *string  `json:"city" validate:"omitempty,max=100"`
}
