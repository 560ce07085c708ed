package reconcile

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// newLocalizer builds a localizer for the configured summary language.
// Unknown languages fall back to English through the bundle's matcher.
func newLocalizer(lang string) (*i18n.Localizer, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("reading embedded locales: %w", err)
	}
	for _, entry := range entries {
		path := "locales/" + entry.Name()
		if _, err := bundle.LoadMessageFileFS(localeFS, path); err != nil {
			return nil, fmt.Errorf("loading locale %s: %w", path, err)
		}
	}

	return i18n.NewLocalizer(bundle, lang), nil
}

// summary renders the localized event summary for a contact name.
func (r *Reconciler) summary(name string) string {
	msg, err := r.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    "BirthdaySummary",
		TemplateData: map[string]string{"Name": name},
	})
	if err != nil {
		return name
	}
	return msg
}
