package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Record store settings
	StoreFile string // local JSON reminder file
	StoreURL  string // remote endpoint; takes precedence over StoreFile when set

	// Offline cache settings
	CacheFile string

	// Refresh settings
	PollRate time.Duration // background re-fetch interval

	// Speech settings
	SpeechEnabled bool
	SpeechCommand string
	SpeechVoice   string // empty = pick automatically
	SpeechRate    float64

	// Display settings
	TimeFormat string
	DateFormat string
}

func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		StoreFile: filepath.Join(home, ".carescreen", "reminders.json"),
		CacheFile: filepath.Join(home, ".carescreen", "snapshot.db"),

		PollRate: 10 * time.Second,

		SpeechEnabled: true,
		SpeechCommand: "espeak-ng",
		SpeechRate:    0.9,

		TimeFormat: "15:04",
		DateFormat: "2006年1月2日",
	}
}

func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	// Try multiple config file locations
	configPaths := []string{
		os.Getenv("CARESCREEN_CONFIG"),
		filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "carescreen", "rc"),
		filepath.Join(os.Getenv("HOME"), ".config", "carescreen", "rc"),
		filepath.Join(os.Getenv("HOME"), ".carescreenrc"),
	}

	for _, path := range configPaths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); err == nil {
			if err := config.loadFromFile(path); err != nil {
				return nil, fmt.Errorf("error loading config from %s: %w", path, err)
			}
			break
		}
	}

	return config, nil
}

func (c *Config) loadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := c.parseLine(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	return scanner.Err()
}

var setRe = regexp.MustCompile(`^set\s+(\w+)\s+(.+)$`)

func (c *Config) parseLine(line string) error {
	if matches := setRe.FindStringSubmatch(line); matches != nil {
		return c.setVariable(matches[1], matches[2])
	}

	return fmt.Errorf("unknown config line: %s", line)
}

func (c *Config) setVariable(name, value string) error {
	// Remove quotes if present
	value = strings.Trim(value, `"'`)

	switch name {
	case "store_file":
		c.StoreFile = expandHome(value)

	case "store_url":
		c.StoreURL = value

	case "cache_file":
		c.CacheFile = expandHome(value)

	case "poll_rate":
		rate, err := time.ParseDuration(value)
		if err != nil {
			// Try parsing as seconds
			if seconds, err2 := strconv.Atoi(value); err2 == nil {
				rate = time.Duration(seconds) * time.Second
			} else {
				return fmt.Errorf("invalid poll_rate: %s", value)
			}
		}
		if rate < time.Second {
			return fmt.Errorf("poll_rate too small: %s", value)
		}
		c.PollRate = rate

	case "speech":
		c.SpeechEnabled = strings.ToLower(value) == "true" || value == "1"

	case "speech_command":
		c.SpeechCommand = value

	case "speech_voice":
		c.SpeechVoice = value

	case "speech_rate":
		rate, err := strconv.ParseFloat(value, 64)
		if err != nil || rate <= 0 {
			return fmt.Errorf("invalid speech_rate: %s", value)
		}
		c.SpeechRate = rate

	case "time_format":
		c.TimeFormat = value

	case "date_format":
		c.DateFormat = value

	default:
		return fmt.Errorf("unknown config variable: %s", name)
	}

	return nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
