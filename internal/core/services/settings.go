package services

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driven"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// settingKeys lists the supported keys in display order.
var settingKeys = []string{
	domain.SettingDefaultSort,
	domain.SettingDefaultAscending,
	domain.SettingExpandComments,
	domain.SettingDataDir,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		List: domain.ListSettings{
			DefaultSort: domain.Sort{
				SortBy:        s.getSortField(defaults.List.DefaultSort.SortBy),
				SortAscending: s.getBool(domain.SettingDefaultAscending, defaults.List.DefaultSort.SortAscending),
			},
			ExpandComments: s.getBool(domain.SettingExpandComments, defaults.List.ExpandComments),
		},
		Storage: domain.StorageSettings{
			DataDir: s.getString(domain.SettingDataDir, defaults.Storage.DataDir),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if !settings.List.DefaultSort.SortBy.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidSortField, settings.List.DefaultSort.SortBy)
	}

	err := s.configStore.SetAll(map[string]any{
		domain.SettingDefaultSort:      settings.List.DefaultSort.SortBy.String(),
		domain.SettingDefaultAscending: settings.List.DefaultSort.SortAscending,
		domain.SettingExpandComments:   settings.List.ExpandComments,
		domain.SettingDataDir:          settings.Storage.DataDir,
	})
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Set updates one setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case domain.SettingDefaultSort:
		field, err := domain.ParseSortField(value)
		if err != nil {
			return err
		}
		settings.List.DefaultSort.SortBy = field
	case domain.SettingDefaultAscending:
		v, err := parseBool(key, value)
		if err != nil {
			return err
		}
		settings.List.DefaultSort.SortAscending = v
	case domain.SettingExpandComments:
		v, err := parseBool(key, value)
		if err != nil {
			return err
		}
		settings.List.ExpandComments = v
	case domain.SettingDataDir:
		settings.Storage.DataDir = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys lists the supported setting keys.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func parseBool(key, value string) (bool, error) {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: %s expects true or false, got %q", domain.ErrInvalidInput, key, value)
	}
	return v, nil
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getSortField(defaultVal domain.SortField) domain.SortField {
	val := s.configStore.GetString(domain.SettingDefaultSort)
	if val == "" {
		return defaultVal
	}
	field, err := domain.ParseSortField(val)
	if err != nil {
		return defaultVal
	}
	return field
}
