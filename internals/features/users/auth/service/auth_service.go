package service

import (
	"errors"
	"log"
	"strings"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"praktikly_backend/internals/configs"
	"praktikly_backend/internals/constants"
	authModel "praktikly_backend/internals/features/users/auth/model"
	authRepo "praktikly_backend/internals/features/users/auth/repository"
	profileModel "praktikly_backend/internals/features/users/profile/model"
	helper "praktikly_backend/internals/helpers"
)

/* ==========================
   REGISTER
========================== */

type registerInput struct {
	UserName string `json:"user_name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=candidate company"`
	Language string `json:"language" validate:"omitempty,oneof=da sv en"`
}

// POST /api/auth/register: self-service signup as candidate or company.
// Admin accounts are provisioned out of band, never through this endpoint.
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	input.Email = normalizeEmail(input.Email)
	if err := helper.ValidateStruct(input); err != nil {
		return helper.ValidationErrorJSON(c, err)
	}
	if err := ValidatePasswordStrength(input.Password); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if taken, err := authRepo.IsEmailTaken(db, input.Email); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check email")
	} else if taken {
		return helper.JsonError(c, fiber.StatusBadRequest, "Email is already registered")
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	if input.Language == "" {
		input.Language = "en"
	}
	user := authModel.UserModel{
		UserName:     strings.TrimSpace(input.UserName),
		UserEmail:    input.Email,
		UserPassword: hash,
		UserRole:     input.Role,
		UserLanguage: input.Language,
		UserIsActive: true,
	}
	if err := authRepo.CreateUser(db, &user); err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helper.JsonError(c, fiber.StatusBadRequest, "Email is already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	// seed an empty profile so the user lands on a fillable page (best-effort)
	seedEmptyProfile(db, &user)

	return helper.JsonCreated(c, "Registration successful", fiber.Map{
		"user_id": user.UserID,
	})
}

func seedEmptyProfile(db *gorm.DB, user *authModel.UserModel) {
	var err error
	switch user.UserRole {
	case constants.RoleCandidate:
		err = db.Create(&profileModel.CandidateProfileModel{
			CandidateProfileUserID: user.UserID,
		}).Error
	case constants.RoleCompany:
		err = db.Create(&profileModel.CompanyProfileModel{
			CompanyProfileUserID:      user.UserID,
			CompanyProfileName:        user.UserName,
			CompanyProfileContactMail: user.UserEmail,
		}).Error
	}
	if err != nil {
		log.Printf("[ERROR] initial profile seed for %s failed: %v", user.UserID, err)
	}
}

/* ==========================
   LOGIN (email + password)
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	input.Email = normalizeEmail(input.Email)
	if input.Email == "" || input.Password == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Email and password are required")
	}

	user, err := authRepo.FindUserByEmail(db, input.Email)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Wrong email or password")
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}
	if err := CheckPasswordHash(user.UserPassword, input.Password); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Wrong email or password")
	}

	return issueTokens(c, db, *user)
}

/* ==========================
   LOGIN GOOGLE
========================== */

// POST /api/auth/login-google: verifies the Google ID token, links by
// google_id first and by verified email second. Google-only signups default
// to the candidate role.
func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		IDToken string `json:"id_token"`
	}
	if err := c.BodyParser(&input); err != nil || strings.TrimSpace(input.IDToken) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "id_token is required")
	}

	clientID := strings.TrimSpace(configs.GoogleClientID)
	if clientID == "" {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Google login is not configured")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(input.IDToken, []string{clientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google token")
	}
	claims, err := googleAuthIDTokenVerifier.Decode(input.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google token")
	}

	user, err := authRepo.FindUserByGoogleID(db, claims.Sub)
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		// link existing account by verified email, or create a fresh one
		email := normalizeEmail(claims.Email)
		if user, err = authRepo.FindUserByEmail(db, email); err == nil {
			if uerr := db.Model(&authModel.UserModel{}).
				Where("user_id = ?", user.UserID).
				Update("user_google_id", claims.Sub).Error; uerr != nil {
				log.Printf("[ERROR] google_id link failed for %s: %v", user.UserID, uerr)
			}
		} else if errors.Is(err, gorm.ErrRecordNotFound) {
			googleID := claims.Sub
			newUser := authModel.UserModel{
				UserName:     strings.TrimSpace(claims.Name),
				UserEmail:    email,
				UserRole:     constants.RoleCandidate,
				UserGoogleID: &googleID,
				UserLanguage: "en",
				UserIsActive: true,
			}
			if cerr := authRepo.CreateUser(db, &newUser); cerr != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
			}
			seedEmptyProfile(db, &newUser)
			user = &newUser
		} else {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to look up user")
		}
	} else if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to look up user")
	}

	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}

	return issueTokens(c, db, *user)
}

/* ==========================
   CHANGE PASSWORD
========================== */

func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var input struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ValidatePasswordStrength(input.NewPassword); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	if user.UserPassword == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "This account uses Google sign-in")
	}
	if err := CheckPasswordHash(user.UserPassword, input.OldPassword); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Old password is wrong")
	}

	hash, err := HashPassword(input.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}
	if err := authRepo.UpdateUserPassword(db, userID, hash); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	// force re-login everywhere
	if err := authRepo.DeleteRefreshTokensForUser(db, userID); err != nil {
		log.Printf("[ERROR] refresh invalidation after password change failed: %v", err)
	}

	return helper.JsonOK(c, "Password updated", nil)
}
