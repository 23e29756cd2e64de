package constants

// RecurrenceType is the placement strategy a task follows.
type RecurrenceType string

// TimePreference is the part of the day a task prefers.
type TimePreference string

// PeriodKind is the span a generation run covers.
type PeriodKind string

// Priority ranks tasks; lower is more urgent.
type Priority int

const (
	AppName            = "hearth"
	Version            = "v0.3.0"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/hearth/hearth.db"
	DefaultConfigFile  = "~/.config/hearth/config.yaml"
	EnvPrefix          = "HEARTH"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "hearth-"
	BackupFileSuffix = ".db"

	// Export constants
	ExportFormatVersion = 1
	ExportProductID     = "-//julianstephens//hearth//EN"

	// ColumnCommon is the key of the shared household column in every day.
	ColumnCommon = "common"
	// AssignShared marks a task that needs every person at once.
	AssignShared = "shared"

	// Recurrence classes, in pass order
	RecurrenceDaily    RecurrenceType = "daily"
	RecurrenceWeekly   RecurrenceType = "weekly"
	RecurrenceOnce     RecurrenceType = "once"
	RecurrenceCustom   RecurrenceType = "custom"
	RecurrenceFlexible RecurrenceType = "flexible"

	// Time preferences
	TimeAny       TimePreference = "any"
	TimeMorning   TimePreference = "morning"
	TimeAfternoon TimePreference = "afternoon"
	TimeEvening   TimePreference = "evening"

	// Periods
	PeriodWeek  PeriodKind = "week"
	PeriodMonth PeriodKind = "month"

	// Priorities
	PriorityUrgent Priority = 1
	PriorityHigh   Priority = 2
	PriorityNormal Priority = 3
	PriorityLow    Priority = 4

	// Time-of-day bands, in hours. These do not follow the work-hours template.
	MorningStartHour   = 6
	MorningEndHour     = 12
	AfternoonStartHour = 12
	EveningStartHour   = 18

	// Failure reasons
	ReasonNoSlot          = "no available slot"
	ReasonNoSlotAnyDay    = "no available slot on any day"
	ReasonFillerShared    = "filler tasks need a person assignment"
	ReasonFillerNoGap     = "no empty slot left to fill"
	ReasonFillerClaimedBy = "gaps already claimed by %s"
	ReasonUnknownAssignee = "assigned to unknown person %q"
)
