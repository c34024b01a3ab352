package models

// Settings represents user scheduling preferences
type Settings struct {
	DayStartHour int    `json:"day_start_hour"` // default window start, e.g. 6
	DayEndHour   int    `json:"day_end_hour"`   // default window end (exclusive), e.g. 22
	MediumMatch  string `json:"medium_match"`   // "literal" or "distance", see scheduler.MediumMatch
	Timezone     string `json:"timezone"`       // IANA timezone name (e.g. "Europe/London", or "Local" for system timezone)
}
