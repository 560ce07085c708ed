package gcal

import (
	"google.golang.org/api/calendar/v3"
)

// API defines the interface for interacting with Google Calendar. The
// live implementation is Service; tests substitute their own.
type API interface {
	ListCalendars(pageToken string) (*calendar.CalendarList, error)
	InsertCalendar(cal *calendar.Calendar) (*calendar.Calendar, error)
	ListEvents(calendarID, pageToken string) (*calendar.Events, error)
	InsertEvent(calendarID string, event *calendar.Event) (*calendar.Event, error)
	DeleteEvent(calendarID, eventID string) error
}
