package models

// Settings represents application-wide settings
type Settings struct {
	Timezone       string `json:"timezone"`        // IANA timezone name (e.g. "America/New_York", or "Local" for system timezone)
	WeekStart      string `json:"week_start"`      // first day of the week, e.g. "monday"
	LookbackDays   int    `json:"lookback_days"`   // how many days back day views may navigate
	LookbackWeeks  int    `json:"lookback_weeks"`  // how many weeks back week views may navigate
	LookbackMonths int    `json:"lookback_months"` // how many months back month views may navigate
	LookbackYears  int    `json:"lookback_years"`  // how many years back year views may navigate
}
