package controllers

import (
	"lms/backend/config"
	"lms/backend/models"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OrganizationController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewOrganizationController(db *gorm.DB, cfg *config.Config) *OrganizationController {
	return &OrganizationController{DB: db, Cfg: cfg}
}

// GetSettings returns the singleton, creating it with defaults on first read.
func (oc *OrganizationController) GetSettings(c *fiber.Ctx) error {
	settings, err := models.GetOrCreateSettings(oc.DB)
	if err != nil {
		return utils.InternalServerError(c, "Could not load organization settings")
	}

	return c.JSON(settings)
}

// UpdateSettings upserts the singleton. Concurrent updates overwrite each
// other; the row is read-mostly.
func (oc *OrganizationController) UpdateSettings(c *fiber.Ctx) error {
	var input struct {
		Name                string `json:"name"`
		LogoURL             string `json:"logo_url"`
		ThemeColor          string `json:"theme_color"`
		PassMark            int    `json:"pass_mark"`
		CompletionThreshold int    `json:"completion_threshold"`
		CertificateMode     string `json:"certificate_mode"`
		Locale              string `json:"locale"`
		Timezone            string `json:"timezone"`
		DateFormat          string `json:"date_format"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.PassMark < 0 || input.PassMark > 100 {
		return utils.BadRequest(c, "pass_mark must be between 0 and 100")
	}

	settings, err := models.GetOrCreateSettings(oc.DB)
	if err != nil {
		return utils.InternalServerError(c, "Could not load organization settings")
	}

	if input.Name != "" {
		settings.Name = input.Name
	}
	if input.LogoURL != "" {
		settings.LogoURL = input.LogoURL
	}
	if input.ThemeColor != "" {
		settings.ThemeColor = input.ThemeColor
	}
	if input.PassMark != 0 {
		settings.PassMark = input.PassMark
	}
	if input.CompletionThreshold != 0 {
		settings.CompletionThreshold = input.CompletionThreshold
	}
	if input.CertificateMode != "" {
		settings.CertificateMode = input.CertificateMode
	}
	if input.Locale != "" {
		settings.Locale = input.Locale
	}
	if input.Timezone != "" {
		settings.Timezone = input.Timezone
	}
	if input.DateFormat != "" {
		settings.DateFormat = input.DateFormat
	}

	if err := oc.DB.Save(&settings).Error; err != nil {
		return utils.InternalServerError(c, "Could not update organization settings")
	}

	return c.JSON(fiber.Map{
		"message":  "Organization settings updated",
		"settings": settings,
	})
}
