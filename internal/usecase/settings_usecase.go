package usecase

import (
	"encoding/json"
	"strings"

	"github.com/dhealy/applytrack/internal/apperror"
)

// SettingsUsecase exposes the key/value settings store. Values are opaque
// JSON documents; the coercion of profile, feeds, and quota shapes lives in
// the repository where the usecases that need them read through it.
type SettingsUsecase struct {
	settings SettingsStore
}

func NewSettingsUsecase(settings SettingsStore) *SettingsUsecase {
	return &SettingsUsecase{settings: settings}
}

func (uc *SettingsUsecase) All() (map[string]json.RawMessage, error) {
	return uc.settings.All()
}

func (uc *SettingsUsecase) Upsert(key string, value json.RawMessage) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return &apperror.ValidationError{Message: "a setting key is required"}
	}
	if len(value) == 0 || !json.Valid(value) {
		return &apperror.ValidationError{Message: "the setting value must be valid JSON"}
	}
	return uc.settings.Upsert(key, value)
}
