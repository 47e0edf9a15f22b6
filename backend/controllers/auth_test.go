package controllers_test

import (
	"testing"

	"lms/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp := doRequest(t, app, "POST", "/api/auth/register", "", map[string]interface{}{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret123",
		"role":     "student", // legacy spelling, normalized to learner
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeMap(t, resp)
	assert.NotEmpty(t, result["token"])
	assert.Equal(t, "learner", result["user"].(map[string]interface{})["role"])

	// duplicate email is rejected
	resp = doRequest(t, app, "POST", "/api/auth/register", "", map[string]interface{}{
		"name":     "Alice again",
		"email":    "alice@example.com",
		"password": "other",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/api/auth/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result = decodeMap(t, resp)
	assert.NotEmpty(t, result["token"])

	resp = doRequest(t, app, "POST", "/api/auth/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp := doRequest(t, app, "POST", "/api/auth/register", "", map[string]interface{}{
		"name": "No credentials",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	app, db, cfg := setupTestApp(t)

	user, token := createUser(t, db, cfg, "Bob", "bob@example.com", models.RoleLearner)
	require.NoError(t, db.Model(&user).Update("active", false).Error)

	resp := doRequest(t, app, "POST", "/api/auth/login", "", map[string]interface{}{
		"email":    "bob@example.com",
		"password": "password",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// a previously issued token stops working too
	resp = doRequest(t, app, "GET", "/api/user/profile", token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestProfile(t *testing.T) {
	app, db, cfg := setupTestApp(t)

	_, token := createUser(t, db, cfg, "Carol", "carol@example.com", models.RoleTrainer)

	resp := doRequest(t, app, "GET", "/api/user/profile", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := decodeMap(t, resp)
	assert.Equal(t, "carol@example.com", result["email"])
	assert.Equal(t, models.RoleTrainer, result["role"])

	resp = doRequest(t, app, "PUT", "/api/user/profile", token, map[string]interface{}{
		"name": "Carol Renamed",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/api/user/profile", token, nil)
	result = decodeMap(t, resp)
	assert.Equal(t, "Carol Renamed", result["name"])

	// no token
	resp = doRequest(t, app, "GET", "/api/user/profile", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
