package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/perbu/bdaycal/config"
	"github.com/perbu/bdaycal/contacts"
	"github.com/perbu/bdaycal/gapi"
	"github.com/perbu/bdaycal/gauth"
	"github.com/perbu/bdaycal/gcal"
	"github.com/perbu/bdaycal/reconcile"
)

//go:embed .version
var embeddedVersion string

func run(args []string) error {
	// check for help or version before doing any work:
	if len(args) > 0 {
		switch args[0] {
		case "help", "-h", "--help", "version", "--version":
			fmt.Println("bdaycal - contact birthdays as a Google Calendar, version", embeddedVersion)
			fmt.Println("Usage: bdaycal")
			fmt.Println("Runs one full resync of the birthday calendar, then exits.")
			fmt.Println("Configuration lives in ~/.bdaycal/ (config.json, credentials.json, token.json).")
			return nil
		}
	}

	// Initialize configuration loader
	loader, err := config.NewFileLoader()
	if err != nil {
		return fmt.Errorf("config.NewFileLoader: %w", err)
	}

	// Load configuration
	cfg, err := loader.LoadConfig()
	if err != nil {
		return fmt.Errorf("loader.LoadConfig: %w", err)
	}

	credBytes, err := loader.LoadCredentials()
	if err != nil {
		return fmt.Errorf("loader.LoadCredentials: %w", err)
	}

	conf, err := gauth.ParseClientConfig(credBytes)
	if err != nil {
		return fmt.Errorf("gauth.ParseClientConfig: %w", err)
	}

	flow, err := gauth.NewFlow(cfg.AuthFlow)
	if err != nil {
		return fmt.Errorf("gauth.NewFlow: %w", err)
	}

	ctx := context.Background()

	// Obtain a credential, interactively if none is stored. On failure
	// nothing remote has been touched yet.
	token, err := gauth.Token(ctx, loader, conf, flow)
	if err != nil {
		var authErr *gauth.AuthError
		if errors.As(err, &authErr) {
			return fmt.Errorf("%w (no calendar data was modified)", authErr)
		}
		return err
	}

	client := gauth.Client(ctx, conf, token)

	calSvc, err := gapi.NewCalendar(ctx, client)
	if err != nil {
		return fmt.Errorf("gapi.NewCalendar: %w", err)
	}
	peopleSvc, err := gapi.NewPeople(ctx, client)
	if err != nil {
		return fmt.Errorf("gapi.NewPeople: %w", err)
	}

	rec, err := reconcile.New(
		gcal.NewService(ctx, calSvc, cfg.PageSize),
		contacts.NewPeoplePager(ctx, peopleSvc, cfg.PageSize),
		cfg,
	)
	if err != nil {
		return err
	}

	if _, err := rec.Run(); err != nil {
		return fmt.Errorf("resync failed: %w", err)
	}
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
