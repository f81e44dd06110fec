package controllers

import (
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/curalink/curalink-server/db"
	"github.com/curalink/curalink-server/models"
	"github.com/curalink/curalink-server/utils"
)

const tokenLifetime = 72 * time.Hour

const resetCodeLifetime = 15 * time.Minute

// CreateAccessToken mints a signed bearer token carrying the user id,
// user type and an absolute expiry.
func CreateAccessToken(userID uint, userType models.UserType) (string, error) {
	claims := jwt.MapClaims{
		"id":        userID,
		"user_type": string(userType),
		"exp":       time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}

	return token.SignedString([]byte(secret))
}

// Register handles user registration
func Register(c *fiber.Ctx) error {
	user := new(models.User)

	if err := c.BodyParser(user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	// Validate input
	if user.Email == "" || user.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}
	if user.UserType != models.TypePatient && user.UserType != models.TypeResearcher {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_type must be patient or researcher",
		})
	}

	// Check if user already exists
	var existingUser models.User
	if db.DB.Where("email = ?", user.Email).First(&existingUser).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "User with this email already exists",
		})
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}
	user.Password = string(hashedPassword)

	if err := db.DB.Create(&user).Error; err != nil {
		utils.Log.Errorf("Error creating user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user",
		})
	}

	token, err := CreateAccessToken(user.ID, user.UserType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":     token,
		"user_id":   user.ID,
		"user_type": user.UserType,
	})
}

// Login handles user authentication
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	// Find user
	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	// Compare passwords
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := CreateAccessToken(user.ID, user.UserType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token":     token,
		"user_id":   user.ID,
		"user_type": user.UserType,
	})
}

// Me returns the current user's identity
func Me(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if db.DB.First(&user, userID).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"id":              user.ID,
		"email":           user.Email,
		"user_type":       user.UserType,
		"profile_picture": user.ProfilePicture,
	})
}

// Logout doesn't actually invalidate the token as JWTs are stateless
func Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// forgotPasswordMessage is intentionally identical for existing and
// unknown emails so the endpoint cannot be used for enumeration.
const forgotPasswordMessage = "If the email exists, a reset code has been sent"

// ForgotPassword issues a short-lived reset code for existing accounts
func ForgotPassword(c *fiber.Ctx) error {
	type ForgotInput struct {
		Email string `json:"email"`
	}

	input := new(ForgotInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return c.JSON(fiber.Map{"message": forgotPasswordMessage})
	}

	reset := models.PasswordReset{
		Email:     input.Email,
		ResetCode: utils.GenerateResetCode(),
		ExpiresAt: time.Now().Add(resetCodeLifetime),
	}
	if err := db.DB.Create(&reset).Error; err != nil {
		utils.Log.Errorf("Error storing reset code: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create reset code",
		})
	}

	body := fmt.Sprintf(`
		<p>Your CuraLink password reset code is <strong>%s</strong>.</p>
		<p>The code expires in 15 minutes.</p>
	`, reset.ResetCode)
	if err := utils.SendEmail(input.Email, "CuraLink password reset", body); err != nil {
		utils.Log.Warnf("Failed to send reset email to %s: %v", input.Email, err)
	}

	return c.JSON(fiber.Map{"message": forgotPasswordMessage})
}

// ResetPassword consumes a reset code and rewrites the password hash
func ResetPassword(c *fiber.Ctx) error {
	type ResetInput struct {
		Email       string `json:"email"`
		ResetCode   string `json:"reset_code"`
		NewPassword string `json:"new_password"`
	}

	input := new(ResetInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var reset models.PasswordReset
	if db.DB.Where("email = ? AND reset_code = ?", input.Email, input.ResetCode).
		First(&reset).RowsAffected == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid reset code",
		})
	}

	if time.Now().After(reset.ExpiresAt) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Reset code expired",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	if err := db.DB.Model(&models.User{}).Where("email = ?", input.Email).
		Update("password", string(hashedPassword)).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reset password",
		})
	}

	// Reset codes are single use
	db.DB.Unscoped().Delete(&reset)

	return c.JSON(fiber.Map{"message": "Password reset successfully"})
}
