package reconcile

import (
	"fmt"

	"github.com/teambition/rrule-go"
	"google.golang.org/api/calendar/v3"

	"github.com/perbu/bdaycal/contacts"
)

// MalformedContactError marks a contact that cannot be turned into an
// event: no display name, or a birthday record naming a date that does
// not exist. These contacts are skipped with a warning; they never abort
// the run.
type MalformedContactError struct {
	Name   string
	Reason string
}

func (e *MalformedContactError) Error() string {
	name := e.Name
	if name == "" {
		name = "(unnamed contact)"
	}
	return fmt.Sprintf("malformed contact %s: %s", name, e.Reason)
}

var yearlyRecurrence = buildYearlyRule()

func buildYearlyRule() string {
	rule, err := rrule.NewRRule(rrule.ROption{Freq: rrule.YEARLY})
	if err != nil {
		// Unreachable for a bare yearly rule.
		return "RRULE:FREQ=YEARLY"
	}
	return "RRULE:" + rule.String()
}

// buildEvent turns a contact's first birthday record into a recurring
// all-day event. The event is transparent (never marks the owner busy)
// and inherits the calendar's default reminder policy.
func (r *Reconciler) buildEvent(c contacts.Contact) (*calendar.Event, error) {
	if c.Name == "" {
		return nil, &MalformedContactError{Reason: "no display name"}
	}

	date, err := r.formatter.Format(c.Birthdays[0])
	if err != nil {
		return nil, &MalformedContactError{Name: c.Name, Reason: err.Error()}
	}

	return &calendar.Event{
		Summary: r.summary(c.Name),
		Start: &calendar.EventDateTime{
			Date:     date,
			TimeZone: r.cfg.TimeZone,
		},
		End: &calendar.EventDateTime{
			Date:     date,
			TimeZone: r.cfg.TimeZone,
		},
		Transparency: "transparent",
		Reminders: &calendar.EventReminders{
			UseDefault: true,
		},
		Recurrence: []string{yearlyRecurrence},
	}, nil
}
