package models

import (
	"fmt"

	"github.com/strideapp/stride/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingWeekStart:
			settings.WeekStart = value
		case constants.SettingLookbackDays:
			if _, err := fmt.Sscanf(value, "%d", &settings.LookbackDays); err != nil {
				return Settings{}, fmt.Errorf("parsing lookback_days: %w", err)
			}
		case constants.SettingLookbackWeeks:
			if _, err := fmt.Sscanf(value, "%d", &settings.LookbackWeeks); err != nil {
				return Settings{}, fmt.Errorf("parsing lookback_weeks: %w", err)
			}
		case constants.SettingLookbackMonths:
			if _, err := fmt.Sscanf(value, "%d", &settings.LookbackMonths); err != nil {
				return Settings{}, fmt.Errorf("parsing lookback_months: %w", err)
			}
		case constants.SettingLookbackYears:
			if _, err := fmt.Sscanf(value, "%d", &settings.LookbackYears); err != nil {
				return Settings{}, fmt.Errorf("parsing lookback_years: %w", err)
			}
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:       settings.Timezone,
		constants.SettingWeekStart:      settings.WeekStart,
		constants.SettingLookbackDays:   fmt.Sprintf("%d", settings.LookbackDays),
		constants.SettingLookbackWeeks:  fmt.Sprintf("%d", settings.LookbackWeeks),
		constants.SettingLookbackMonths: fmt.Sprintf("%d", settings.LookbackMonths),
		constants.SettingLookbackYears:  fmt.Sprintf("%d", settings.LookbackYears),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.WeekStart == "" {
		settings.WeekStart = constants.DefaultWeekStart
	}
	if settings.LookbackDays == 0 {
		settings.LookbackDays = constants.DefaultLookbackDays
	}
	if settings.LookbackWeeks == 0 {
		settings.LookbackWeeks = constants.DefaultLookbackWeeks
	}
	if settings.LookbackMonths == 0 {
		settings.LookbackMonths = constants.DefaultLookbackMonths
	}
	if settings.LookbackYears == 0 {
		settings.LookbackYears = constants.DefaultLookbackYears
	}
}
