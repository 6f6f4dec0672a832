package store

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"carescreen/internal/reminder"
)

// HTTPSource fetches the reminder collection from a remote endpoint. The
// endpoint cannot push changes, so Watch reports push as unsupported and
// the display falls back to its background poll.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchActive implements reminder.Source.
func (s *HTTPSource) FetchActive(today time.Time) ([]reminder.Reminder, error) {
	endpoint := fmt.Sprintf("%s/reminders?active=true&date=%s",
		s.BaseURL, url.QueryEscape(today.Format("2006-01-02")))

	resp, err := s.Client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch reminders: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch reminders: unexpected status %s", resp.Status)
	}

	var all []reminder.Reminder
	if err := json.NewDecoder(resp.Body).Decode(&all); err != nil {
		return nil, fmt.Errorf("decode reminders: %w", err)
	}

	// The server already filters, but re-check locally so a permissive
	// endpoint cannot put inactive or out-of-range reminders on screen.
	var active []reminder.Reminder
	for _, r := range all {
		if r.ActiveOn(today) {
			active = append(active, r)
		}
	}

	return active, nil
}

// Watch implements reminder.Source; HTTP stores cannot push changes.
func (s *HTTPSource) Watch() (<-chan reminder.ChangeEvent, error) {
	return nil, nil
}

// StopWatching implements reminder.Source.
func (s *HTTPSource) StopWatching() error {
	return nil
}
