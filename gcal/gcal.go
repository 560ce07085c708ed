package gcal

import (
	"context"

	"google.golang.org/api/calendar/v3"

	"github.com/perbu/bdaycal/gapi"
)

// Service interacts with the Google Calendar API.
type Service struct {
	svc      *calendar.Service
	ctx      context.Context
	pageSize int64
}

// NewService wraps a Calendar API service.
func NewService(ctx context.Context, svc *calendar.Service, pageSize int64) *Service {
	return &Service{svc: svc, ctx: ctx, pageSize: pageSize}
}

// ListCalendars fetches one page of the account's calendar list.
func (s *Service) ListCalendars(pageToken string) (*calendar.CalendarList, error) {
	call := s.svc.CalendarList.List().Context(s.ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	list, err := call.Do()
	if err != nil {
		return nil, gapi.Wrap("calendarList.list", err)
	}
	return list, nil
}

// InsertCalendar creates a new secondary calendar.
func (s *Service) InsertCalendar(cal *calendar.Calendar) (*calendar.Calendar, error) {
	created, err := s.svc.Calendars.Insert(cal).Context(s.ctx).Do()
	if err != nil {
		return nil, gapi.Wrap("calendars.insert", err)
	}
	return created, nil
}

// ListEvents fetches one page of events on a calendar.
func (s *Service) ListEvents(calendarID, pageToken string) (*calendar.Events, error) {
	call := s.svc.Events.List(calendarID).
		MaxResults(s.pageSize).
		Context(s.ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	events, err := call.Do()
	if err != nil {
		return nil, gapi.Wrap("events.list", err)
	}
	return events, nil
}

// InsertEvent creates an event on a calendar.
func (s *Service) InsertEvent(calendarID string, event *calendar.Event) (*calendar.Event, error) {
	created, err := s.svc.Events.Insert(calendarID, event).Context(s.ctx).Do()
	if err != nil {
		return nil, gapi.Wrap("events.insert", err)
	}
	return created, nil
}

// DeleteEvent removes an event from a calendar.
func (s *Service) DeleteEvent(calendarID, eventID string) error {
	if err := s.svc.Events.Delete(calendarID, eventID).Context(s.ctx).Do(); err != nil {
		return gapi.Wrap("events.delete", err)
	}
	return nil
}

// GetOrCreateCalendar returns the identifier of the first calendar whose
// display name equals name, creating one (with the given timezone) when
// none matches. The boolean reports whether a calendar was created.
// Concurrent runs could still race and create duplicates; single-operator
// usage is assumed.
func GetOrCreateCalendar(api API, name, timeZone string) (string, bool, error) {
	pageToken := ""
	for {
		list, err := api.ListCalendars(pageToken)
		if err != nil {
			return "", false, err
		}
		if list == nil {
			break
		}
		for _, entry := range list.Items {
			if entry.Summary == name {
				return entry.Id, false, nil
			}
		}
		pageToken = list.NextPageToken
		if pageToken == "" {
			break
		}
	}

	created, err := api.InsertCalendar(&calendar.Calendar{
		Summary:  name,
		TimeZone: timeZone,
	})
	if err != nil {
		return "", false, err
	}
	return created.Id, true, nil
}

// ListAllEvents drains the paginated event listing of a calendar,
// following the continuation token until none remains.
func ListAllEvents(api API, calendarID string) ([]*calendar.Event, error) {
	var all []*calendar.Event
	pageToken := ""
	for {
		events, err := api.ListEvents(calendarID, pageToken)
		if err != nil {
			return nil, err
		}
		if events == nil {
			break
		}
		all = append(all, events.Items...)
		pageToken = events.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return all, nil
}

// Clear deletes every event on the calendar, one at a time. It returns
// the number of events deleted; on failure that count tells the operator
// how far the clearing got before the run aborted.
func Clear(api API, calendarID string) (int, error) {
	events, err := ListAllEvents(api, calendarID)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, event := range events {
		if err := api.DeleteEvent(calendarID, event.Id); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
