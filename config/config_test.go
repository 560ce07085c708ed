package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	// Setup: Create a temporary config directory and config file.
	tempDir := t.TempDir()
	configContent := `{"calendar_name": "Cumpleaños", "timezone": "America/Mexico_City", "summary_language": "en", "auth_flow": "manual", "page_size": 25}`
	configPath := filepath.Join(tempDir, "config.json")
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	loader := &FileLoader{configDir: tempDir}
	config, err := loader.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.CalendarName != "Cumpleaños" {
		t.Errorf("Expected CalendarName to be 'Cumpleaños', got '%s'", config.CalendarName)
	}
	if config.TimeZone != "America/Mexico_City" {
		t.Errorf("Expected TimeZone to be 'America/Mexico_City', got '%s'", config.TimeZone)
	}
	if config.AuthFlow != "manual" {
		t.Errorf("Expected AuthFlow to be 'manual', got '%s'", config.AuthFlow)
	}
	if config.PageSize != 25 {
		t.Errorf("Expected PageSize to be 25, got %d", config.PageSize)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	loader := &FileLoader{configDir: t.TempDir()}
	config, err := loader.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.CalendarName != DefaultCalendarName {
		t.Errorf("Expected default calendar name, got '%s'", config.CalendarName)
	}
	if config.TimeZone != DefaultTimeZone {
		t.Errorf("Expected default timezone, got '%s'", config.TimeZone)
	}
	if config.AuthFlow != DefaultAuthFlow {
		t.Errorf("Expected default auth flow, got '%s'", config.AuthFlow)
	}
	if config.PageSize != DefaultPageSize {
		t.Errorf("Expected default page size, got %d", config.PageSize)
	}
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	tempDir := t.TempDir()
	configContent := `{"summary_language": "fr"}`
	if err := os.WriteFile(filepath.Join(tempDir, "config.json"), []byte(configContent), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	loader := &FileLoader{configDir: tempDir}
	config, err := loader.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.SummaryLanguage != "fr" {
		t.Errorf("Expected SummaryLanguage to be 'fr', got '%s'", config.SummaryLanguage)
	}
	if config.CalendarName != DefaultCalendarName {
		t.Errorf("Expected default calendar name, got '%s'", config.CalendarName)
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, "config.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	loader := &FileLoader{configDir: tempDir}
	if _, err := loader.LoadConfig(); err == nil {
		t.Fatal("Expected error for invalid JSON, got nil")
	}
}

func TestSaveAndLoadToken(t *testing.T) {
	tempDir := t.TempDir()
	loader := &FileLoader{configDir: filepath.Join(tempDir, "nested")}

	record := []byte(`{"type":"authorized_user","refresh_token":"r"}`)
	if err := loader.SaveToken(record); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}

	got, err := loader.LoadToken()
	if err != nil {
		t.Fatalf("LoadToken failed: %v", err)
	}
	if string(got) != string(record) {
		t.Errorf("Expected token %q, got %q", record, got)
	}

	// A second save overwrites wholesale.
	if err := loader.SaveToken([]byte(`{}`)); err != nil {
		t.Fatalf("SaveToken overwrite failed: %v", err)
	}
	got, err = loader.LoadToken()
	if err != nil {
		t.Fatalf("LoadToken after overwrite failed: %v", err)
	}
	if string(got) != "{}" {
		t.Errorf("Expected overwritten token, got %q", got)
	}
}

func TestLoadTokenMissing(t *testing.T) {
	loader := &FileLoader{configDir: t.TempDir()}
	if _, err := loader.LoadToken(); err == nil {
		t.Fatal("Expected error for missing token file, got nil")
	}
}
