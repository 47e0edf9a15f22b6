package controllers_test

import (
	"fmt"
	"testing"

	"lms/backend/models"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationsListAndMarkRead(t *testing.T) {
	app, db, cfg := setupTestApp(t)

	learner, token := createUser(t, db, cfg, "Learner", "learner@example.com", models.RoleLearner)
	_, strangerToken := createUser(t, db, cfg, "Stranger", "stranger@example.com", models.RoleLearner)

	utils.NotifyOne(db, learner.ID, "Welcome", "Welcome to the platform", models.NotificationEnrollment)

	resp := doRequest(t, app, "GET", "/api/notifications/my", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := decodeList(t, resp)
	require.Len(t, result, 1)
	assert.Equal(t, false, result[0]["is_read"])
	notificationID := result[0]["ID"]

	resp = doRequest(t, app, "PATCH", fmt.Sprintf("/api/notifications/%v/read", notificationID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// marking read twice is a no-op
	resp = doRequest(t, app, "PATCH", fmt.Sprintf("/api/notifications/%v/read", notificationID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/api/notifications/my", token, nil)
	result = decodeList(t, resp)
	require.Len(t, result, 1)
	assert.Equal(t, true, result[0]["is_read"])

	// notifications are private to their recipient
	resp = doRequest(t, app, "PATCH", fmt.Sprintf("/api/notifications/%v/read", notificationID), strangerToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestNotifyManyFansOut(t *testing.T) {
	_, db, cfg := setupTestApp(t)

	a, _ := createUser(t, db, cfg, "A", "a@example.com", models.RoleLearner)
	b, _ := createUser(t, db, cfg, "B", "b@example.com", models.RoleLearner)

	utils.NotifyMany(db, []uint{a.ID, b.ID}, "Broadcast", "New course available", models.NotificationCourse)
	utils.NotifyMany(db, nil, "Empty", "No recipients", models.NotificationCourse)

	var count int64
	db.Model(&models.Notification{}).Where("type = ?", models.NotificationCourse).Count(&count)
	assert.Equal(t, int64(2), count)
}
