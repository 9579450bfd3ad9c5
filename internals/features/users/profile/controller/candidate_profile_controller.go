package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"praktikly_backend/internals/features/users/profile/dto"
	"praktikly_backend/internals/features/users/profile/model"
	helper "praktikly_backend/internals/helpers"
	"praktikly_backend/internals/helpers/storage"
)

type CandidateProfileController struct {
	DB *gorm.DB
}

func NewCandidateProfileController(db *gorm.DB) *CandidateProfileController {
	return &CandidateProfileController{DB: db}
}

// GET /api/u/profile
func (pc *CandidateProfileController) GetMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var profile model.CandidateProfileModel
	if err := pc.DB.Where("candidate_profile_user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Candidate profile not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load profile")
	}
	return helper.JsonOK(c, "OK", profile)
}

// PUT /api/u/profile
func (pc *CandidateProfileController) UpdateMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UpdateCandidateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.ValidationErrorJSON(c, err)
	}

	updates := map[string]any{}
	if req.Headline != nil {
		updates["candidate_profile_headline"] = *req.Headline
	}
	if req.Bio != nil {
		updates["candidate_profile_bio"] = *req.Bio
	}
	if req.School != nil {
		updates["candidate_profile_school"] = *req.School
	}
	if req.StudyLine != nil {
		updates["candidate_profile_study_line"] = *req.StudyLine
	}
	if req.Skills != nil {
		updates["candidate_profile_skills"] = pq.StringArray(req.Skills)
	}
	if req.Languages != nil {
		updates["candidate_profile_languages"] = pq.StringArray(req.Languages)
	}
	if req.City != nil {
		updates["candidate_profile_city"] = *req.City
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	res := pc.DB.Model(&model.CandidateProfileModel{}).
		Where("candidate_profile_user_id = ?", userID).
		Updates(updates)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Candidate profile not found")
	}

	return helper.JsonUpdated(c, "Profile updated", nil)
}

// POST /api/u/profile/photo (multipart field "photo")
func (pc *CandidateProfileController) UploadPhoto(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "photo file is required")
	}

	url, err := storage.UploadImage("candidate-photos", fileHeader)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "Photo upload failed")
	}

	if err := pc.DB.Model(&model.CandidateProfileModel{}).
		Where("candidate_profile_user_id = ?", userID).
		Update("candidate_profile_photo_url", url).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save photo URL")
	}

	return helper.JsonUpdated(c, "Photo updated", fiber.Map{"photo_url": url})
}

// POST /api/u/profile/cv (multipart field "cv", PDF passthrough)
func (pc *CandidateProfileController) UploadCV(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("cv")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "cv file is required")
	}

	url, err := storage.UploadDocument("cv", fileHeader)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "CV upload failed")
	}

	if err := pc.DB.Model(&model.CandidateProfileModel{}).
		Where("candidate_profile_user_id = ?", userID).
		Update("candidate_profile_cv_url", url).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save CV URL")
	}

	return helper.JsonUpdated(c, "CV updated", fiber.Map{"cv_url": url})
}
