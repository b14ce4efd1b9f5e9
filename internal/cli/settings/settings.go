// Package settings implements the settings subcommands.
package settings

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/strideapp/stride/internal/cli"
	"github.com/strideapp/stride/internal/constants"
	"github.com/strideapp/stride/internal/models"
	"github.com/strideapp/stride/internal/period"
)

type SettingsCmd struct {
	List SettingsListCmd `cmd:"" help:"List current settings." default:"1"`
	Get  SettingsGetCmd  `cmd:"" help:"Show a single setting."`
	Set  SettingsSetCmd  `cmd:"" help:"Update a setting."`
}

type SettingsListCmd struct{}

func (c *SettingsListCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	fmt.Println("Current Settings:")
	fmt.Printf("  Timezone:         %s\n", settings.Timezone)
	fmt.Printf("  Week Start:       %s\n", settings.WeekStart)
	fmt.Println("\nNavigation Window:")
	fmt.Printf("  Lookback Days:    %d\n", settings.LookbackDays)
	fmt.Printf("  Lookback Weeks:   %d\n", settings.LookbackWeeks)
	fmt.Printf("  Lookback Months:  %d\n", settings.LookbackMonths)
	fmt.Printf("  Lookback Years:   %d\n", settings.LookbackYears)
	return nil
}

type SettingsGetCmd struct {
	Key string `arg:"" help:"Setting key."`
}

func (c *SettingsGetCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	value, ok := models.SettingsToMap(settings)[c.Key]
	if !ok {
		return unknownKeyError(c.Key)
	}
	fmt.Println(value)
	return nil
}

type SettingsSetCmd struct {
	Key   string `arg:"" help:"Setting key."`
	Value string `arg:"" help:"New value."`
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	if err := validateSetting(c.Key, c.Value); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	data := models.SettingsToMap(settings)
	if _, ok := data[c.Key]; !ok {
		return unknownKeyError(c.Key)
	}
	data[c.Key] = c.Value

	updated, err := models.MapToSettings(data)
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(updated); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}

func settingKeys() []string {
	var keys []string
	for key := range models.SettingsToMap(models.Settings{}) {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func unknownKeyError(key string) error {
	return fmt.Errorf("unknown setting %q (valid keys: %s)", key, strings.Join(settingKeys(), ", "))
}

// validateSetting rejects values the calendar layer could not use before
// they reach storage.
func validateSetting(key, value string) error {
	switch key {
	case constants.SettingTimezone:
		if value == "" {
			return fmt.Errorf("timezone cannot be empty")
		}
		if value != "Local" {
			if _, err := time.LoadLocation(value); err != nil {
				return fmt.Errorf("unknown timezone %q", value)
			}
		}
	case constants.SettingWeekStart:
		if _, err := period.ParseWeekday(value); err != nil {
			return fmt.Errorf("unknown weekday %q", value)
		}
	case constants.SettingLookbackDays, constants.SettingLookbackWeeks,
		constants.SettingLookbackMonths, constants.SettingLookbackYears:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%s must be a positive integer", key)
		}
	}
	return nil
}
