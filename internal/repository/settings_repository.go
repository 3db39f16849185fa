package repository

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/dhealy/applytrack/internal/apperror"
	"github.com/dhealy/applytrack/internal/model"
	"github.com/tidwall/gjson"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository is the configuration store. Values are free-form JSON
// documents; the typed accessors centralize defaulting and the coercion of
// legacy formats (comma-separated strings where arrays are expected now).
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db}
}

// All returns every setting keyed by setting_key.
func (r *SettingsRepository) All() (map[string]json.RawMessage, error) {
	var rows []model.BotSetting
	if err := r.db.Order("setting_key").Find(&rows).Error; err != nil {
		return nil, &apperror.PersistenceError{Op: "list settings", Cause: err}
	}
	settings := make(map[string]json.RawMessage, len(rows))
	for _, row := range rows {
		settings[row.SettingKey] = json.RawMessage(row.SettingValue)
	}
	return settings, nil
}

// Get returns the raw JSON for key, or "" when the key is absent.
func (r *SettingsRepository) Get(key string) (string, error) {
	var row model.BotSetting
	err := r.db.First(&row, "setting_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", &apperror.PersistenceError{Op: "get setting", Cause: err}
	}
	return string(row.SettingValue), nil
}

// Upsert writes one setting, replacing any existing value for the key.
func (r *SettingsRepository) Upsert(key string, value json.RawMessage) error {
	row := model.BotSetting{
		SettingKey:   key,
		SettingValue: datatypes.JSON(value),
		UpdatedAt:    time.Now(),
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return &apperror.PersistenceError{Op: "upsert setting", Cause: err}
	}
	return nil
}

// GetUserProfile reads and coerces the user_profile document. Missing fields
// come back empty; the prompt builder applies its own fallbacks.
func (r *SettingsRepository) GetUserProfile() (model.CandidateProfile, error) {
	raw, err := r.Get(model.SettingUserProfile)
	if err != nil {
		return model.CandidateProfile{}, err
	}
	return model.CandidateProfile{
		Name:             gjson.Get(raw, "name").String(),
		TargetTitle:      gjson.Get(raw, "target_title").String(),
		YearsExperience:  gjson.Get(raw, "years_experience").String(),
		Location:         gjson.Get(raw, "location").String(),
		RemotePreference: gjson.Get(raw, "remote_preference").String(),
		TargetSalary:     gjson.Get(raw, "target_salary").Int(),
		TargetIndustries: joinList(gjson.Get(raw, "target_industries")),
		Skills:           joinList(gjson.Get(raw, "skills")),
		Background:       gjson.Get(raw, "background").String(),
	}, nil
}

// GetFeedURLs returns the configured RSS feed list. Anything that is not an
// array of strings yields an empty list, which discovery treats as
// unconfigured.
func (r *SettingsRepository) GetFeedURLs() ([]string, error) {
	raw, err := r.Get(model.SettingFeedURLs)
	if err != nil {
		return nil, err
	}
	result := gjson.Parse(raw)
	if !result.IsArray() {
		return nil, nil
	}
	var urls []string
	for _, item := range result.Array() {
		if url := item.String(); url != "" {
			urls = append(urls, url)
		}
	}
	return urls, nil
}

// GetDailyQuota returns the configured daily application ceiling, default 8.
func (r *SettingsRepository) GetDailyQuota() (int, error) {
	raw, err := r.Get(model.SettingDailyQuota)
	if err != nil {
		return 0, err
	}
	if total := gjson.Get(raw, "total"); total.Exists() {
		return int(total.Int()), nil
	}
	return 8, nil
}

// GetBotEnabled reports whether automated applying is switched on, default
// true.
func (r *SettingsRepository) GetBotEnabled() (bool, error) {
	raw, err := r.Get(model.SettingBotEnabled)
	if err != nil {
		return false, err
	}
	if enabled := gjson.Get(raw, "enabled"); enabled.Exists() {
		return enabled.Bool(), nil
	}
	return true, nil
}

// joinList renders a list-valued field for prompting. Arrays join with ", ";
// legacy values stored as a single comma-separated string pass through as-is.
func joinList(result gjson.Result) string {
	if result.IsArray() {
		var parts []string
		for _, item := range result.Array() {
			parts = append(parts, item.String())
		}
		return strings.Join(parts, ", ")
	}
	return result.String()
}
