package model

// CalendarSettings holds the calendar display preferences. Recognized options
// only; values are validated on update.
type CalendarSettings struct {
	TimeRangeStart   int  `json:"timeRangeStart"`
	TimeRangeEnd     int  `json:"timeRangeEnd"`
	DayRange         int  `json:"dayRange"`
	TimeSlotInterval int  `json:"timeSlotInterval"`
	ShowWeekends     bool `json:"showWeekends"`
}

// DefaultCalendarSettings returns the settings used when none are stored.
func DefaultCalendarSettings() CalendarSettings {
	return CalendarSettings{
		TimeRangeStart:   9,
		TimeRangeEnd:     20,
		DayRange:         7,
		TimeSlotInterval: 30,
		ShowWeekends:     true,
	}
}

type UpdateCalendarSettingsRequest struct {
	TimeRangeStart   *int  `json:"timeRangeStart"`
	TimeRangeEnd     *int  `json:"timeRangeEnd"`
	DayRange         *int  `json:"dayRange"`
	TimeSlotInterval *int  `json:"timeSlotInterval" binding:"omitempty,slot_interval"`
	ShowWeekends     *bool `json:"showWeekends"`
}
