package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Default values used when config.json is absent or leaves a field unset.
const (
	DefaultCalendarName    = "Birthday Reminders"
	DefaultTimeZone        = "Europe/Paris"
	DefaultSummaryLanguage = "en"
	DefaultAuthFlow        = "browser"
	DefaultPageSize        = 100
)

// Config holds the application configuration.
type Config struct {
	// CalendarName is the display name of the target calendar. The first
	// calendar whose summary equals this name is reused; otherwise one is
	// created.
	CalendarName string `json:"calendar_name"`
	// TimeZone is the IANA timezone identifier attached to created events.
	TimeZone string `json:"timezone"`
	// SummaryLanguage selects the language of the event summary ("en", "fr").
	SummaryLanguage string `json:"summary_language"`
	// AuthFlow selects how the one-time authorization code is collected:
	// "browser" runs a local callback server, "manual" prompts on stdin.
	AuthFlow string `json:"auth_flow"`
	// PageSize bounds each contacts/events listing page.
	PageSize int64 `json:"page_size"`
}

// DefaultConfig returns a Config with every field set to its default.
func DefaultConfig() *Config {
	return &Config{
		CalendarName:    DefaultCalendarName,
		TimeZone:        DefaultTimeZone,
		SummaryLanguage: DefaultSummaryLanguage,
		AuthFlow:        DefaultAuthFlow,
		PageSize:        DefaultPageSize,
	}
}

// Loader defines methods to load configuration, credentials, and token.
type Loader interface {
	LoadConfig() (*Config, error)
	LoadCredentials() ([]byte, error)
	LoadToken() ([]byte, error)
	SaveToken(token []byte) error
}

// FileLoader implements Loader by reading from the filesystem.
type FileLoader struct {
	configDir string
}

// NewFileLoader initializes a FileLoader with the config directory path.
func NewFileLoader() (*FileLoader, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("unable to find user home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, ".bdaycal")
	return &FileLoader{configDir: configDir}, nil
}

// LoadConfig reads the config.json file. A missing file is not an error:
// defaults apply. Fields left unset in the file are also filled from
// defaults, so a partial config.json overrides only what it names.
func (f *FileLoader) LoadConfig() (*Config, error) {
	configPath := filepath.Join(f.configDir, "config.json")
	b, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("os.ReadFile(%s): %w", configPath, err)
	}

	var config Config
	if err := json.Unmarshal(b, &config); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}
	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(c *Config) {
	if c.CalendarName == "" {
		c.CalendarName = DefaultCalendarName
	}
	if c.TimeZone == "" {
		c.TimeZone = DefaultTimeZone
	}
	if c.SummaryLanguage == "" {
		c.SummaryLanguage = DefaultSummaryLanguage
	}
	if c.AuthFlow == "" {
		c.AuthFlow = DefaultAuthFlow
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
}

// LoadCredentials reads the credentials.json file, the OAuth client
// descriptor issued by the provider. Read-only input; never rewritten.
func (f *FileLoader) LoadCredentials() ([]byte, error) {
	credentialsPath := filepath.Join(f.configDir, "credentials.json")
	bytes, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s): %w", credentialsPath, err)
	}
	return bytes, nil
}

// LoadToken reads the token.json file.
func (f *FileLoader) LoadToken() ([]byte, error) {
	tokenPath := filepath.Join(f.configDir, "token.json")
	bytes, err := os.ReadFile(tokenPath)
	if err != nil {
		return nil, err
	}
	return bytes, nil
}

// SaveToken writes the token.json file, replacing any prior record.
func (f *FileLoader) SaveToken(token []byte) error {
	tokenPath := filepath.Join(f.configDir, "token.json")
	if err := os.MkdirAll(f.configDir, 0o700); err != nil {
		return fmt.Errorf("unable to create config directory: %w", err)
	}
	if err := os.WriteFile(tokenPath, token, 0o600); err != nil {
		return fmt.Errorf("unable to save token: %w", err)
	}
	return nil
}
