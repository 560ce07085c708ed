package contacts

import (
	"context"

	"google.golang.org/api/people/v1"

	"github.com/perbu/bdaycal/dates"
	"github.com/perbu/bdaycal/gapi"
)

// Contact is a remote contact reduced to what the sync needs: a display
// name and its birthday records. Contacts are read, never written.
type Contact struct {
	Name      string
	Birthdays []dates.Date
}

// HasBirthday reports whether at least one birthday record carries a
// structured date.
func (c Contact) HasBirthday() bool {
	return len(c.Birthdays) > 0
}

// Pager fetches one page of the connections listing. The live
// implementation is PeoplePager; tests substitute their own.
type Pager interface {
	NextPage(pageToken string) (*people.ListConnectionsResponse, error)
}

// PeoplePager pages through the People API connections listing,
// requesting only name and birthday fields.
type PeoplePager struct {
	svc      *people.Service
	ctx      context.Context
	pageSize int64
}

// NewPeoplePager wraps a People API service.
func NewPeoplePager(ctx context.Context, svc *people.Service, pageSize int64) *PeoplePager {
	return &PeoplePager{svc: svc, ctx: ctx, pageSize: pageSize}
}

// NextPage fetches one page of connections.
func (p *PeoplePager) NextPage(pageToken string) (*people.ListConnectionsResponse, error) {
	call := p.svc.People.Connections.List("people/me").
		PageSize(p.pageSize).
		PersonFields("names,birthdays").
		Context(p.ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	resp, err := call.Do()
	if err != nil {
		return nil, gapi.Wrap("connections.list", err)
	}
	return resp, nil
}

// ListAll drains the paginated connections listing into one slice,
// following the continuation token until the provider reports none
// remaining. Provider order is preserved; no ordering guarantee exists
// across runs.
func ListAll(p Pager) ([]Contact, error) {
	var all []Contact
	pageToken := ""
	for {
		resp, err := p.NextPage(pageToken)
		if err != nil {
			return nil, err
		}
		if resp == nil {
			break
		}
		for _, person := range resp.Connections {
			all = append(all, convertPerson(person))
		}
		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return all, nil
}

// convertPerson reduces a People API person to a Contact. Birthday
// records without a structured date (free-text only) are dropped.
func convertPerson(person *people.Person) Contact {
	var c Contact
	if len(person.Names) > 0 {
		c.Name = person.Names[0].DisplayName
	}
	for _, b := range person.Birthdays {
		if b == nil || b.Date == nil {
			continue
		}
		c.Birthdays = append(c.Birthdays, dates.Date{
			Year:  int(b.Date.Year),
			Month: int(b.Date.Month),
			Day:   int(b.Date.Day),
		})
	}
	return c
}
