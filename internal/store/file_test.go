package store

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleReminders = `[
  {
    "id": "r1",
    "title": "晨间用药",
    "type": "medication",
    "time_slots": [{"time": "08:00", "label": "早餐后"}],
    "frequency": "daily",
    "is_active": true,
    "created_at": "2024-03-01T08:00:00+08:00",
    "updated_at": "2024-03-01T08:00:00+08:00"
  },
  {
    "id": "r2",
    "title": "血压测量",
    "type": "checkup",
    "time_slots": [{"time": "10:00"}],
    "frequency": "daily",
    "is_active": false,
    "created_at": "2024-03-02T08:00:00+08:00",
    "updated_at": "2024-03-02T08:00:00+08:00"
  },
  {
    "id": "r3",
    "title": "血糖化验",
    "type": "test",
    "time_slots": [{"time": "07:00", "label": "空腹"}],
    "frequency": "weekly",
    "start_date": "2024-04-01",
    "is_active": true,
    "created_at": "2024-03-03T08:00:00+08:00",
    "updated_at": "2024-03-03T08:00:00+08:00"
  },
  {
    "id": "r4",
    "title": "晚间用药",
    "type": "medication",
    "time_slots": [{"time": "20:00"}],
    "frequency": "daily",
    "is_active": true,
    "created_at": "2024-03-04T08:00:00+08:00",
    "updated_at": "2024-03-04T08:00:00+08:00"
  }
]`

func writeReminderFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reminders.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write reminder file: %v", err)
	}
	return path
}

func TestFileSourceFetchActive(t *testing.T) {
	source := NewFileSource(writeReminderFile(t, sampleReminders))
	today := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)

	active, err := source.FetchActive(today)
	if err != nil {
		t.Fatalf("FetchActive failed: %v", err)
	}

	// r2 is inactive, r3 has not started; newest created first.
	if len(active) != 2 {
		t.Fatalf("count mismatch: got %d, want 2", len(active))
	}
	if active[0].ID != "r4" || active[1].ID != "r1" {
		t.Errorf("order mismatch: got [%s %s], want [r4 r1]", active[0].ID, active[1].ID)
	}
	if active[1].TimeSlots[0].Label != "早餐后" {
		t.Errorf("slot label mismatch: got %q", active[1].TimeSlots[0].Label)
	}
}

func TestFileSourceErrors(t *testing.T) {
	today := time.Now()

	t.Run("missing file", func(t *testing.T) {
		source := NewFileSource(filepath.Join(t.TempDir(), "absent.json"))
		if _, err := source.FetchActive(today); err == nil {
			t.Errorf("expected error for missing file")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		source := NewFileSource(writeReminderFile(t, "{not json"))
		if _, err := source.FetchActive(today); err == nil {
			t.Errorf("expected error for malformed file")
		}
	})
}

func TestFileSourceWatch(t *testing.T) {
	path := writeReminderFile(t, sampleReminders)
	source := NewFileSource(path)

	events, err := source.Watch()
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer source.StopWatching()

	if events == nil {
		t.Fatalf("Watch returned nil channel for file source")
	}

	// Second Watch reuses the running subscription.
	again, err := source.Watch()
	if err != nil {
		t.Fatalf("second Watch failed: %v", err)
	}
	if again != events {
		t.Errorf("second Watch returned a different channel")
	}

	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatalf("rewrite reminder file: %v", err)
	}

	select {
	case ev := <-events:
		if ev.Origin == "" {
			t.Errorf("change event missing origin")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no change event after rewriting the file")
	}
}

func TestHTTPSourceFetchActive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reminders" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleReminders))
	}))
	defer server.Close()

	source := NewHTTPSource(server.URL)
	today := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)

	active, err := source.FetchActive(today)
	if err != nil {
		t.Fatalf("FetchActive failed: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("count mismatch: got %d, want 2", len(active))
	}

	// Push is unsupported; the display polls instead.
	events, err := source.Watch()
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if events != nil {
		t.Errorf("expected nil watch channel for HTTP source")
	}
}

func TestHTTPSourceServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	source := NewHTTPSource(server.URL)
	if _, err := source.FetchActive(time.Now()); err == nil {
		t.Errorf("expected error for server failure")
	}
}
