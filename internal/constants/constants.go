package constants

const (
	AppName           = "stride"
	Version           = "v0.3.0"
	DefaultConfigDir  = "~/.config/stride"
	DefaultConfigFile = "config.toml"
	DefaultDBFile     = "stride.db"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "stride-"
	BackupFileSuffix = ".db"
)

// Setting keys for the persisted key/value settings table.
const (
	SettingTimezone       = "timezone"
	SettingWeekStart      = "week_start"
	SettingLookbackDays   = "lookback_days"
	SettingLookbackWeeks  = "lookback_weeks"
	SettingLookbackMonths = "lookback_months"
	SettingLookbackYears  = "lookback_years"
)

// Default settings values.
const (
	DefaultTimezone  = "Local" // use system local timezone by default
	DefaultWeekStart = "monday"

	DefaultLookbackDays   = 7
	DefaultLookbackWeeks  = 4
	DefaultLookbackMonths = 12
	DefaultLookbackYears  = 1
)
