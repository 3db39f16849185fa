package model

import (
	"time"

	"gorm.io/datatypes"
)

// Well-known setting keys. Values are arbitrary JSON documents; callers must
// defensively default missing or malformed values.
const (
	SettingUserProfile        = "user_profile"
	SettingDailyQuota         = "daily_quota"
	SettingBotEnabled         = "bot_enabled"
	SettingFeedURLs           = "feed_urls"
	SettingCompanyWeeklyLimit = "company_weekly_limit"
)

// BotSetting is one row of the key→value configuration store.
type BotSetting struct {
	SettingKey   string         `gorm:"primaryKey;type:varchar(100)" json:"setting_key"`
	SettingValue datatypes.JSON `gorm:"type:jsonb" json:"setting_value"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (BotSetting) TableName() string {
	return "bot_settings"
}
