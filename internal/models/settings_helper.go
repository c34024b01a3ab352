package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/energyflow/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingDayStartHour:
			h, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing day_start_hour: %w", err)
			}
			settings.DayStartHour = h
		case constants.SettingDayEndHour:
			h, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing day_end_hour: %w", err)
			}
			settings.DayEndHour = h
		case constants.SettingMediumMatch:
			settings.MediumMatch = value
		case constants.SettingTimezone:
			settings.Timezone = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingDayStartHour: strconv.Itoa(settings.DayStartHour),
		constants.SettingDayEndHour:   strconv.Itoa(settings.DayEndHour),
		constants.SettingMediumMatch:  settings.MediumMatch,
		constants.SettingTimezone:     settings.Timezone,
	}
}

// DefaultSettings returns the settings written on init.
func DefaultSettings() Settings {
	return Settings{
		DayStartHour: constants.DefaultDayStartHour,
		DayEndHour:   constants.DefaultDayEndHour,
		MediumMatch:  constants.DefaultMediumMatch,
		Timezone:     constants.DefaultTimezone,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.DayStartHour == 0 && settings.DayEndHour == 0 {
		settings.DayStartHour = constants.DefaultDayStartHour
		settings.DayEndHour = constants.DefaultDayEndHour
	}
	if settings.MediumMatch == "" {
		settings.MediumMatch = constants.DefaultMediumMatch
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
}
