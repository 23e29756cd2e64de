package models

import (
	"fmt"

	"github.com/julianstephens/hearth/internal/constants"
)

// Settings represents the stored work-hours template and generation defaults
type Settings struct {
	WorkStart  string               `json:"work_start"`  // start of the working day, e.g. "08:00"
	WorkEnd    string               `json:"work_end"`    // end of the working day, e.g. "20:00"
	LunchStart string               `json:"lunch_start"` // lunch window start, never scheduled
	LunchEnd   string               `json:"lunch_end"`   // lunch window end
	SlotMin    int                  `json:"slot_min"`    // slot granularity in minutes
	Period     constants.PeriodKind `json:"period"`      // default period for generate
	Timezone   string               `json:"timezone"`    // IANA timezone used by calendar exports
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingWorkStart:
			settings.WorkStart = value
		case constants.SettingWorkEnd:
			settings.WorkEnd = value
		case constants.SettingLunchStart:
			settings.LunchStart = value
		case constants.SettingLunchEnd:
			settings.LunchEnd = value
		case constants.SettingSlotMin:
			if _, err := fmt.Sscanf(value, "%d", &settings.SlotMin); err != nil {
				return Settings{}, fmt.Errorf("parsing slot_min: %w", err)
			}
		case constants.SettingPeriod:
			settings.Period = constants.PeriodKind(value)
		case constants.SettingTimezone:
			settings.Timezone = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingWorkStart:  settings.WorkStart,
		constants.SettingWorkEnd:    settings.WorkEnd,
		constants.SettingLunchStart: settings.LunchStart,
		constants.SettingLunchEnd:   settings.LunchEnd,
		constants.SettingSlotMin:    fmt.Sprintf("%d", settings.SlotMin),
		constants.SettingPeriod:     string(settings.Period),
		constants.SettingTimezone:   settings.Timezone,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.WorkStart == "" {
		settings.WorkStart = constants.DefaultWorkStart
	}
	if settings.WorkEnd == "" {
		settings.WorkEnd = constants.DefaultWorkEnd
	}
	if settings.LunchStart == "" {
		settings.LunchStart = constants.DefaultLunchStart
	}
	if settings.LunchEnd == "" {
		settings.LunchEnd = constants.DefaultLunchEnd
	}
	if settings.SlotMin <= 0 {
		settings.SlotMin = constants.DefaultSlotMin
	}
	if settings.Period == "" {
		settings.Period = constants.DefaultPeriod
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
}

// DefaultSettings returns a Settings value with every default applied.
func DefaultSettings() Settings {
	var s Settings
	ApplyDefaultSettings(&s)
	return s
}

// GenerationConfig builds a generation config for period starting at startDate.
func (s Settings) GenerationConfig(period constants.PeriodKind, startDate string) GenerationConfig {
	if period == "" {
		period = s.Period
	}
	return GenerationConfig{
		Period:     period,
		StartDate:  startDate,
		WorkStart:  s.WorkStart,
		WorkEnd:    s.WorkEnd,
		LunchStart: s.LunchStart,
		LunchEnd:   s.LunchEnd,
		SlotMin:    s.SlotMin,
	}
}
