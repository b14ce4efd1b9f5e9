package models

import (
	"testing"

	"github.com/strideapp/stride/internal/constants"
)

func TestApplyDefaultSettings(t *testing.T) {
	var settings Settings
	ApplyDefaultSettings(&settings)

	if settings.Timezone != constants.DefaultTimezone {
		t.Errorf("Timezone = %q, want %q", settings.Timezone, constants.DefaultTimezone)
	}
	if settings.WeekStart != constants.DefaultWeekStart {
		t.Errorf("WeekStart = %q, want %q", settings.WeekStart, constants.DefaultWeekStart)
	}
	if settings.LookbackDays != constants.DefaultLookbackDays {
		t.Errorf("LookbackDays = %d, want %d", settings.LookbackDays, constants.DefaultLookbackDays)
	}
	if settings.LookbackYears != constants.DefaultLookbackYears {
		t.Errorf("LookbackYears = %d, want %d", settings.LookbackYears, constants.DefaultLookbackYears)
	}
}

func TestApplyDefaultSettings_PreservesSetValues(t *testing.T) {
	settings := Settings{Timezone: "America/New_York", LookbackDays: 30}
	ApplyDefaultSettings(&settings)

	if settings.Timezone != "America/New_York" {
		t.Errorf("Timezone = %q, want %q", settings.Timezone, "America/New_York")
	}
	if settings.LookbackDays != 30 {
		t.Errorf("LookbackDays = %d, want 30", settings.LookbackDays)
	}
	if settings.WeekStart != constants.DefaultWeekStart {
		t.Errorf("WeekStart = %q, want default %q", settings.WeekStart, constants.DefaultWeekStart)
	}
}

func TestMapToSettings(t *testing.T) {
	data := map[string]string{
		constants.SettingTimezone:       "UTC",
		constants.SettingWeekStart:      "sunday",
		constants.SettingLookbackDays:   "14",
		constants.SettingLookbackWeeks:  "8",
		constants.SettingLookbackMonths: "6",
		constants.SettingLookbackYears:  "2",
	}

	settings, err := MapToSettings(data)
	if err != nil {
		t.Fatalf("MapToSettings() error = %v", err)
	}
	if settings.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want %q", settings.Timezone, "UTC")
	}
	if settings.WeekStart != "sunday" {
		t.Errorf("WeekStart = %q, want %q", settings.WeekStart, "sunday")
	}
	if settings.LookbackDays != 14 {
		t.Errorf("LookbackDays = %d, want 14", settings.LookbackDays)
	}
	if settings.LookbackYears != 2 {
		t.Errorf("LookbackYears = %d, want 2", settings.LookbackYears)
	}
}

func TestMapToSettings_BadNumber(t *testing.T) {
	data := map[string]string{constants.SettingLookbackDays: "fourteen"}
	if _, err := MapToSettings(data); err == nil {
		t.Error("MapToSettings with a non-numeric lookback should fail")
	}
}

func TestSettingsToMap_RoundTrip(t *testing.T) {
	original := Settings{
		Timezone:       "Europe/Berlin",
		WeekStart:      "monday",
		LookbackDays:   7,
		LookbackWeeks:  4,
		LookbackMonths: 12,
		LookbackYears:  1,
	}

	restored, err := MapToSettings(SettingsToMap(original))
	if err != nil {
		t.Fatalf("MapToSettings() error = %v", err)
	}
	if restored != original {
		t.Errorf("round trip = %+v, want %+v", restored, original)
	}
}
