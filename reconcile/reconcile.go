package reconcile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/perbu/bdaycal/config"
	"github.com/perbu/bdaycal/contacts"
	"github.com/perbu/bdaycal/dates"
	"github.com/perbu/bdaycal/gcal"
)

// Summary reports what a run did. On failure the counts cover the work
// completed before the abort, so the operator knows how far the calendar
// got (there is no rollback).
type Summary struct {
	CalendarID      string
	CalendarCreated bool
	Contacts        int
	Cleared         int
	Created         int
	Skipped         int
	Malformed       int
}

// Reconciler rebuilds the birthday calendar from the contact list: every
// prior event in the target calendar is deleted, then one recurring
// all-day event is inserted per contact birthday.
type Reconciler struct {
	cal       gcal.API
	contacts  contacts.Pager
	cfg       *config.Config
	formatter dates.Formatter
	localizer *i18n.Localizer
	out       io.Writer
}

// New creates a Reconciler over the two API surfaces.
func New(cal gcal.API, pager contacts.Pager, cfg *config.Config) (*Reconciler, error) {
	localizer, err := newLocalizer(cfg.SummaryLanguage)
	if err != nil {
		return nil, fmt.Errorf("reconcile.New: %w", err)
	}
	return &Reconciler{
		cal:       cal,
		contacts:  pager,
		cfg:       cfg,
		formatter: dates.New(),
		localizer: localizer,
		out:       os.Stdout,
	}, nil
}

// Run performs one full resync: locate or create the calendar, list all
// contacts, clear the calendar, then insert one event per birthday, in
// contact listing order. All calls are strictly sequential.
func (r *Reconciler) Run() (*Summary, error) {
	headerColor := color.New(color.FgCyan, color.Bold).SprintFunc()
	okColor := color.New(color.FgGreen).SprintFunc()
	warnColor := color.New(color.FgRed, color.Bold).SprintFunc()
	subtle := color.New(color.FgHiBlack).SprintFunc()

	sum := &Summary{}

	calID, created, err := gcal.GetOrCreateCalendar(r.cal, r.cfg.CalendarName, r.cfg.TimeZone)
	if err != nil {
		return sum, fmt.Errorf("locating calendar: %w", err)
	}
	sum.CalendarID = calID
	sum.CalendarCreated = created
	if created {
		fmt.Fprintf(r.out, "Created calendar %s\n", headerColor(r.cfg.CalendarName))
	} else {
		fmt.Fprintf(r.out, "Using calendar %s\n", headerColor(r.cfg.CalendarName))
	}

	all, err := contacts.ListAll(r.contacts)
	if err != nil {
		return sum, fmt.Errorf("listing contacts: %w", err)
	}
	sum.Contacts = len(all)
	fmt.Fprintf(r.out, "Fetched %s contacts\n", headerColor(len(all)))

	cleared, err := gcal.Clear(r.cal, calID)
	sum.Cleared = cleared
	if err != nil {
		// The calendar is now partially cleared; report how far we got.
		return sum, fmt.Errorf("clearing calendar (deleted %d events): %w", cleared, err)
	}
	if cleared > 0 {
		fmt.Fprintf(r.out, "Cleared %s existing events\n", headerColor(cleared))
	}

	for _, c := range all {
		if !c.HasBirthday() {
			sum.Skipped++
			continue
		}

		event, err := r.buildEvent(c)
		if err != nil {
			var malformed *MalformedContactError
			if errors.As(err, &malformed) {
				sum.Malformed++
				fmt.Fprintf(r.out, "%s %v\n", warnColor("Skipping:"), malformed)
				continue
			}
			return sum, err
		}

		if _, err := r.cal.InsertEvent(calID, event); err != nil {
			// Partially rebuilt; report progress before aborting.
			return sum, fmt.Errorf("inserting event (%d created so far): %w", sum.Created, err)
		}
		sum.Created++
		fmt.Fprintf(r.out, " - %s %s\n", okColor(event.Summary), subtle(event.Start.Date))
	}

	fmt.Fprintf(r.out, "Done: %s events created, %d contacts without a birthday skipped\n",
		okColor(sum.Created), sum.Skipped)
	if sum.Malformed > 0 {
		fmt.Fprintf(r.out, "%s %d contacts could not be processed\n", warnColor("Warning:"), sum.Malformed)
	}
	return sum, nil
}
