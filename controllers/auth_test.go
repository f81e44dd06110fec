package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/curalink/curalink-server/db"
	"github.com/curalink/curalink-server/models"
	"github.com/curalink/curalink-server/routes"
)

func setupApp(t *testing.T) *fiber.App {
	t.Setenv("JWT_SECRET", "test-secret")

	gdb, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(gdb))
	db.DB = gdb

	app := fiber.New()
	routes.SetupAuthRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	parsed := map[string]interface{}{}
	if len(raw) > 0 {
		json.Unmarshal(raw, &parsed)
	}
	return resp, parsed
}

func register(t *testing.T, app *fiber.App, email, password, userType string) string {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"email":     email,
		"password":  password,
		"user_type": userType,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := setupApp(t)

	register(t, app, "patient@x.com", "pw1", "patient")

	resp, body := doJSON(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"email":     "patient@x.com",
		"password":  "pw2",
		"user_type": "patient",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Contains(t, body["error"], "already exists")
}

func TestRegisterInvalidUserType(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"email":     "someone@x.com",
		"password":  "pw1",
		"user_type": "admin",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	app := setupApp(t)

	register(t, app, "patient@x.com", "pw1", "patient")

	// Wrong password for an existing email
	resp, body := doJSON(t, app, "POST", "/api/auth/login", "", fiber.Map{
		"email":    "patient@x.com",
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", body["error"])

	// Unknown email fails identically
	resp, body = doJSON(t, app, "POST", "/api/auth/login", "", fiber.Map{
		"email":    "nobody@x.com",
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", body["error"])
}

func TestMe(t *testing.T) {
	app := setupApp(t)

	token := register(t, app, "researcher@x.com", "pw1", "researcher")

	resp, body := doJSON(t, app, "GET", "/api/auth/me", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "researcher@x.com", body["email"])
	assert.Equal(t, "researcher", body["user_type"])
}

func TestExpiredTokenRejected(t *testing.T) {
	app := setupApp(t)

	register(t, app, "patient@x.com", "pw1", "patient")

	claims := jwt.MapClaims{
		"id":        float64(1),
		"user_type": "patient",
		"exp":       time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	resp, _ := doJSON(t, app, "GET", "/api/auth/me", expired, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestForgotPasswordEnumerationResistance(t *testing.T) {
	app := setupApp(t)

	register(t, app, "patient@x.com", "pw1", "patient")

	resp, knownBody := doJSON(t, app, "POST", "/api/auth/forgot-password", "", fiber.Map{
		"email": "patient@x.com",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, unknownBody := doJSON(t, app, "POST", "/api/auth/forgot-password", "", fiber.Map{
		"email": "nobody@x.com",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Replies are indistinguishable to an outside observer
	assert.Equal(t, knownBody, unknownBody)

	// But only the existing email gets a persisted code
	var count int64
	db.DB.Model(&models.PasswordReset{}).Where("email = ?", "patient@x.com").Count(&count)
	assert.EqualValues(t, 1, count)
	db.DB.Model(&models.PasswordReset{}).Where("email = ?", "nobody@x.com").Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestResetPasswordSingleUse(t *testing.T) {
	app := setupApp(t)

	register(t, app, "patient@x.com", "pw1", "patient")

	resp, _ := doJSON(t, app, "POST", "/api/auth/forgot-password", "", fiber.Map{
		"email": "patient@x.com",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reset models.PasswordReset
	require.Positive(t, db.DB.Where("email = ?", "patient@x.com").First(&reset).RowsAffected)
	require.Len(t, reset.ResetCode, 6)

	// Wrong code is rejected
	resp, body := doJSON(t, app, "POST", "/api/auth/reset-password", "", fiber.Map{
		"email":        "patient@x.com",
		"reset_code":   "000000x",
		"new_password": "pw2",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid reset code", body["error"])

	// Correct code resets the password
	resp, _ = doJSON(t, app, "POST", "/api/auth/reset-password", "", fiber.Map{
		"email":        "patient@x.com",
		"reset_code":   reset.ResetCode,
		"new_password": "pw2",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/auth/login", "", fiber.Map{
		"email":    "patient@x.com",
		"password": "pw2",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The code is gone after first use
	resp, body = doJSON(t, app, "POST", "/api/auth/reset-password", "", fiber.Map{
		"email":        "patient@x.com",
		"reset_code":   reset.ResetCode,
		"new_password": "pw3",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid reset code", body["error"])
}

func TestResetPasswordExpiredCode(t *testing.T) {
	app := setupApp(t)

	register(t, app, "patient@x.com", "pw1", "patient")

	reset := models.PasswordReset{
		Email:     "patient@x.com",
		ResetCode: "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, db.DB.Create(&reset).Error)

	resp, body := doJSON(t, app, "POST", "/api/auth/reset-password", "", fiber.Map{
		"email":        "patient@x.com",
		"reset_code":   "123456",
		"new_password": "pw2",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Reset code expired", body["error"])
}
