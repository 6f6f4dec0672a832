package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func loadFromString(t *testing.T, content string) (*Config, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rc")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	config := DefaultConfig()
	return config, config.loadFromFile(path)
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.PollRate != 10*time.Second {
		t.Errorf("PollRate mismatch: got %v, want 10s", config.PollRate)
	}
	if !config.SpeechEnabled {
		t.Errorf("SpeechEnabled mismatch: got false, want true")
	}
	if config.SpeechCommand != "espeak-ng" {
		t.Errorf("SpeechCommand mismatch: got %q", config.SpeechCommand)
	}
	if config.SpeechRate != 0.9 {
		t.Errorf("SpeechRate mismatch: got %v, want 0.9", config.SpeechRate)
	}
	if config.StoreFile == "" || config.CacheFile == "" {
		t.Errorf("default paths missing: store %q cache %q", config.StoreFile, config.CacheFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `# CareScreen display config
set store_url https://example.com/api
set cache_file /var/lib/carescreen/snapshot.db

set poll_rate 5s
set speech false
set speech_command say
set speech_voice cmn
set speech_rate 0.8
set time_format "15:04:05"
set date_format 2006-01-02
`

	config, err := loadFromString(t, content)
	if err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if config.StoreURL != "https://example.com/api" {
		t.Errorf("StoreURL mismatch: got %q", config.StoreURL)
	}
	if config.CacheFile != "/var/lib/carescreen/snapshot.db" {
		t.Errorf("CacheFile mismatch: got %q", config.CacheFile)
	}
	if config.PollRate != 5*time.Second {
		t.Errorf("PollRate mismatch: got %v, want 5s", config.PollRate)
	}
	if config.SpeechEnabled {
		t.Errorf("SpeechEnabled mismatch: got true, want false")
	}
	if config.SpeechCommand != "say" {
		t.Errorf("SpeechCommand mismatch: got %q", config.SpeechCommand)
	}
	if config.SpeechVoice != "cmn" {
		t.Errorf("SpeechVoice mismatch: got %q", config.SpeechVoice)
	}
	if config.SpeechRate != 0.8 {
		t.Errorf("SpeechRate mismatch: got %v", config.SpeechRate)
	}
	if config.TimeFormat != "15:04:05" {
		t.Errorf("TimeFormat mismatch: got %q", config.TimeFormat)
	}
	if config.DateFormat != "2006-01-02" {
		t.Errorf("DateFormat mismatch: got %q", config.DateFormat)
	}
}

func TestPollRateFormats(t *testing.T) {
	tests := []struct {
		value    string
		expected time.Duration
		wantErr  bool
	}{
		{"5s", 5 * time.Second, false},
		{"2m", 2 * time.Minute, false},
		{"30", 30 * time.Second, false}, // bare seconds
		{"500ms", 0, true},              // below one second
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			config, err := loadFromString(t, "set poll_rate "+tt.value+"\n")
			if (err != nil) != tt.wantErr {
				t.Fatalf("error mismatch: got %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && config.PollRate != tt.expected {
				t.Errorf("PollRate mismatch: got %v, want %v", config.PollRate, tt.expected)
			}
		})
	}
}

func TestInvalidLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown variable", "set favourite_color red\n"},
		{"not a set command", "poll_rate 5s\n"},
		{"bad speech rate", "set speech_rate fast\n"},
		{"negative speech rate", "set speech_rate -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadFromString(t, tt.content); err == nil {
				t.Errorf("expected error for %q", tt.content)
			}
		})
	}
}

func TestCommentsAndBlankLines(t *testing.T) {
	content := "\n# comment\n\nset poll_rate 8s\n   \n"

	config, err := loadFromString(t, content)
	if err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}
	if config.PollRate != 8*time.Second {
		t.Errorf("PollRate mismatch: got %v, want 8s", config.PollRate)
	}
}

func TestExpandHome(t *testing.T) {
	home, _ := os.UserHomeDir()

	config, err := loadFromString(t, "set store_file ~/reminders.json\n")
	if err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}
	if config.StoreFile != filepath.Join(home, "reminders.json") {
		t.Errorf("StoreFile mismatch: got %q", config.StoreFile)
	}
}
