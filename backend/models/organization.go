package models

import (
	"errors"

	"gorm.io/gorm"
)

// organizationID is the fixed key of the settings singleton row.
const organizationID = 1

// OrganizationSettings is a singleton: branding, learning-rule policy and
// system settings for the whole installation. Created lazily on first access.
type OrganizationSettings struct {
	gorm.Model
	Name                string `json:"name"`
	LogoURL             string `json:"logo_url"`
	ThemeColor          string `json:"theme_color"`
	PassMark            int    `json:"pass_mark" gorm:"default:60"`
	CompletionThreshold int    `json:"completion_threshold" gorm:"default:100"`
	CertificateMode     string `json:"certificate_mode" gorm:"default:auto"` // auto, manual
	Locale              string `json:"locale"`
	Timezone            string `json:"timezone"`
	DateFormat          string `json:"date_format"`
}

// GetOrCreateSettings returns the singleton row, creating it with defaults on
// first use.
func GetOrCreateSettings(db *gorm.DB) (OrganizationSettings, error) {
	var settings OrganizationSettings
	err := db.First(&settings, organizationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = OrganizationSettings{
			PassMark:            DefaultPassMark,
			CompletionThreshold: 100,
			CertificateMode:     "auto",
		}
		settings.ID = organizationID
		err = db.Create(&settings).Error
	}
	return settings, err
}
