package gapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/people/v1"
)

// NewCalendar creates a Calendar API service from an authenticated client.
func NewCalendar(ctx context.Context, client *http.Client) (*calendar.Service, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}
	return svc, nil
}

// NewPeople creates a People API service from an authenticated client.
func NewPeople(ctx context.Context, client *http.Client) (*people.Service, error) {
	svc, err := people.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("creating people service: %w", err)
	}
	return svc, nil
}

// ProviderError marks a failed remote call. No retry is attempted
// anywhere; the orchestrator reports it and aborts, which may leave the
// remote calendar partially modified.
type ProviderError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: provider returned HTTP %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Wrap builds a ProviderError for op, extracting the HTTP status when the
// underlying error is a *googleapi.Error. A nil err stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	perr := &ProviderError{Op: op, Err: err}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		perr.StatusCode = gerr.Code
	}
	return perr
}
