package constants

const (
	SettingDayStartHour = "day_start_hour"
	SettingDayEndHour   = "day_end_hour"
	SettingMediumMatch  = "medium_match"
	SettingTimezone     = "timezone"

	DefaultDayStartHour = 6
	DefaultDayEndHour   = 22
	DefaultMediumMatch  = "literal"
	DefaultTimezone     = "Local" // Use system local timezone by default
)
