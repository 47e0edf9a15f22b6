package controllers

import (
	"errors"
	"strconv"

	"lms/backend/config"
	"lms/backend/middleware"
	"lms/backend/models"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type NotificationsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewNotificationsController(db *gorm.DB, cfg *config.Config) *NotificationsController {
	return &NotificationsController{DB: db, Cfg: cfg}
}

func (nc *NotificationsController) GetMyNotifications(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var notifications []models.Notification
	if err := nc.DB.Where("user_id = ?", user.ID).Order("created_at desc").Find(&notifications).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(notifications)
}

// MarkRead flips the read flag. Idempotent: re-reading a read notice is fine.
func (nc *NotificationsController) MarkRead(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	notificationID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid notification ID")
	}

	var notification models.Notification
	if err := nc.DB.Where("id = ? AND user_id = ?", notificationID, user.ID).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Notification not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if !notification.IsRead {
		notification.IsRead = true
		if err := nc.DB.Save(&notification).Error; err != nil {
			return utils.InternalServerError(c, "Could not update notification")
		}
	}

	return c.JSON(fiber.Map{
		"message": "Notification marked as read",
	})
}
