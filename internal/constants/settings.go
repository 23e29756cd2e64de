package constants

const (
	// Stored settings
	SettingWorkStart  = "work_start"
	SettingWorkEnd    = "work_end"
	SettingLunchStart = "lunch_start"
	SettingLunchEnd   = "lunch_end"
	SettingSlotMin    = "slot_min"
	SettingPeriod     = "period"
	SettingTimezone   = "timezone"

	// Default Settings Values
	DefaultWorkStart  = "08:00"
	DefaultWorkEnd    = "20:00"
	DefaultLunchStart = "12:00"
	DefaultLunchEnd   = "13:00"
	DefaultSlotMin    = 30
	DefaultPeriod     = PeriodWeek
	DefaultTimezone   = "Local"

	// Task defaults applied by models.NormalizeTask
	DefaultTaskDurationMin = 30
	DefaultTaskPriority    = PriorityNormal
	DefaultTaskRecurrence  = RecurrenceOnce
	DefaultTaskTime        = TimeAny
	DefaultTaskColor       = "#4f46e5"
)

// PersonPalette colors persons that were created without one.
var PersonPalette = []string{
	"#ef4444",
	"#f59e0b",
	"#10b981",
	"#3b82f6",
	"#8b5cf6",
	"#ec4899",
}
