package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"praktikly_backend/internals/features/users/profile/dto"
	"praktikly_backend/internals/features/users/profile/model"
	helper "praktikly_backend/internals/helpers"
	"praktikly_backend/internals/helpers/storage"
)

type CompanyProfileController struct {
	DB *gorm.DB
}

func NewCompanyProfileController(db *gorm.DB) *CompanyProfileController {
	return &CompanyProfileController{DB: db}
}

// GET /api/c/profile
func (pc *CompanyProfileController) GetMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var profile model.CompanyProfileModel
	if err := pc.DB.Where("company_profile_user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Company profile not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load profile")
	}
	return helper.JsonOK(c, "OK", profile)
}

// PUT /api/c/profile
func (pc *CompanyProfileController) UpdateMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UpdateCompanyProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.ValidationErrorJSON(c, err)
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["company_profile_name"] = *req.Name
	}
	if req.OrgNumber != nil {
		updates["company_profile_org_number"] = *req.OrgNumber
	}
	if req.Description != nil {
		updates["company_profile_description"] = *req.Description
	}
	if req.Website != nil {
		updates["company_profile_website"] = *req.Website
	}
	if req.City != nil {
		updates["company_profile_city"] = *req.City
	}
	if req.Country != nil {
		updates["company_profile_country"] = *req.Country
	}
	if req.ContactMail != nil {
		updates["company_profile_contact_mail"] = *req.ContactMail
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	res := pc.DB.Model(&model.CompanyProfileModel{}).
		Where("company_profile_user_id = ?", userID).
		Updates(updates)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Company profile not found")
	}

	return helper.JsonUpdated(c, "Profile updated", nil)
}

// POST /api/c/profile/logo (multipart field "logo")
func (pc *CompanyProfileController) UploadLogo(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "logo file is required")
	}

	url, err := storage.UploadImage("company-logos", fileHeader)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "Logo upload failed")
	}

	if err := pc.DB.Model(&model.CompanyProfileModel{}).
		Where("company_profile_user_id = ?", userID).
		Update("company_profile_logo_url", url).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save logo URL")
	}

	return helper.JsonUpdated(c, "Logo updated", fiber.Map{"logo_url": url})
}

// GET /api/public/companies/:id - public company card.
func (pc *CompanyProfileController) GetPublic(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid company id")
	}

	var profile model.CompanyProfileModel
	if err := pc.DB.Where("company_profile_id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Company not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load company")
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"company_profile_id":          profile.CompanyProfileID,
		"company_profile_name":        profile.CompanyProfileName,
		"company_profile_description": profile.CompanyProfileDescription,
		"company_profile_website":     profile.CompanyProfileWebsite,
		"company_profile_city":        profile.CompanyProfileCity,
		"company_profile_country":     profile.CompanyProfileCountry,
		"company_profile_logo_url":    profile.CompanyProfileLogoURL,
	})
}
