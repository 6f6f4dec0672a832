// Package store provides record-store clients for the reminder collection:
// a local JSON file with filesystem change notification, and a remote HTTP
// endpoint reached by polling.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"carescreen/internal/reminder"
)

// FileSource reads the reminder collection from a JSON file (an array of
// reminder records) and pushes change events when the file is rewritten.
type FileSource struct {
	Path string

	watcher *fileWatcher
	events  chan reminder.ChangeEvent
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// FetchActive implements reminder.Source. The returned set is filtered to
// reminders active on the given day and ordered by creation time descending,
// matching the record-store contract; the display re-orders by urgency
// anyway.
func (s *FileSource) FetchActive(today time.Time) ([]reminder.Reminder, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read reminder file: %w", err)
	}

	var all []reminder.Reminder
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("parse reminder file %s: %w", s.Path, err)
	}

	var active []reminder.Reminder
	for _, r := range all {
		if r.ActiveOn(today) {
			active = append(active, r)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})

	return active, nil
}

// Watch implements reminder.Source using a filesystem watcher.
func (s *FileSource) Watch() (<-chan reminder.ChangeEvent, error) {
	if s.watcher != nil {
		return s.events, nil
	}

	s.events = make(chan reminder.ChangeEvent, 10)

	watcher, err := newFileWatcher(s.Path, func(path string) {
		select {
		case s.events <- reminder.ChangeEvent{Origin: path, Timestamp: time.Now()}:
		default:
			// Channel full; a refresh is already owed, drop the event.
		}
	})
	if err != nil {
		return nil, err
	}

	s.watcher = watcher
	return s.events, nil
}

// StopWatching implements reminder.Source.
func (s *FileSource) StopWatching() error {
	if s.watcher == nil {
		return nil
	}

	// The channel is left open: a debounce callback may still be in
	// flight, and subscribers are torn down with the program anyway.
	err := s.watcher.Close()
	s.watcher = nil
	s.events = nil

	return err
}
