package ui

import (
	"log"
	"time"

	"carescreen/internal/announce"
	"carescreen/internal/config"
	"carescreen/internal/reminder"
	"carescreen/internal/voice"

	tea "github.com/charmbracelet/bubbletea"
)

// Snapshots is the offline-continuity cache consumed by the display: one
// reminder set at a time, each save replacing the last.
type Snapshots interface {
	Save(reminders []reminder.Reminder, capturedAt time.Time) error
	Load() ([]reminder.Reminder, time.Time, error)
}

// Model is the display controller: it owns the reminder set and the
// online/offline flag, and it is the only component that touches the record
// store, the snapshot cache and the speech service.
type Model struct {
	// Core components
	config    *config.Config
	source    reminder.Source
	cache     Snapshots
	voice     *voice.Service
	scheduler *announce.Scheduler

	// Display state
	reminders []reminder.Reminder
	online    bool
	loading   bool
	cachedAt  time.Time
	selected  int
	speechOn  bool

	// Change subscription; nil when the store cannot push
	changes <-chan reminder.ChangeEvent

	// UI state
	width        int
	height       int
	message      string
	messageTimer *time.Timer

	// Clock source; replaced in tests for determinism
	now func() time.Time

	// Styles
	styles Styles
}

func NewModel(cfg *config.Config, source reminder.Source, snapshots Snapshots, speech *voice.Service) *Model {
	m := &Model{
		config:    cfg,
		source:    source,
		cache:     snapshots,
		voice:     speech,
		scheduler: announce.NewScheduler(speech),
		online:    true,
		loading:   true,
		speechOn:  cfg.SpeechEnabled,
		now:       time.Now,
		styles:    DefaultStyles(),
	}

	// Serve the last snapshot immediately so the screen is never empty
	// while the first live fetch runs.
	if snapshots != nil {
		if cached, at, err := snapshots.Load(); err == nil && len(cached) > 0 {
			m.reminders = cached
			m.cachedAt = at
			m.loading = false
		}
	}

	// Subscribe to store change events; polling covers stores that
	// cannot push.
	if events, err := source.Watch(); err == nil && events != nil {
		m.changes = events
	} else if err != nil {
		log.Printf("change subscription unavailable: %v", err)
	}

	return m
}

// Message types
type tickMsg time.Time
type pollMsg time.Time
type changeMsg reminder.ChangeEvent
type speakDoneMsg struct{ err error }
type fetchDoneMsg struct {
	reminders []reminder.Reminder
	err       error
	silent    bool
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		m.fetchCmd(false),
		m.tickCmd(),
		m.pollCmd(),
	}
	if c := m.waitForChange(); c != nil {
		cmds = append(cmds, c)
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tickMsg:
		// The per-second tick redraws the clock and runs one
		// announcement pass. The pass never blocks: speech is deferred
		// onto its own timer inside the scheduler.
		if m.speechOn && m.voice != nil && m.voice.Supported() {
			m.scheduler.Check(m.reminders, m.now())
		}
		return m, m.tickCmd()

	case pollMsg:
		// Background re-fetch; also probes for connectivity coming back
		// while offline.
		return m, tea.Batch(m.fetchCmd(true), m.pollCmd())

	case changeMsg:
		return m, tea.Batch(m.fetchCmd(true), m.waitForChange())

	case fetchDoneMsg:
		return m.applyFetch(msg)

	case speakDoneMsg:
		if msg.err != nil {
			m.showMessage("语音播报失败：" + msg.err.Error())
		}
		return m, nil
	}

	return m, nil
}

// applyFetch folds a fetch result into the display state. Results apply
// last-writer-wins: fetches are idempotent full-set reads, so whichever
// completes last determines the displayed state.
func (m *Model) applyFetch(msg fetchDoneMsg) (tea.Model, tea.Cmd) {
	m.loading = false

	if msg.err != nil {
		m.online = false
		if m.cache != nil {
			if cached, at, err := m.cache.Load(); err == nil && len(cached) > 0 {
				m.cachedAt = at
				if !reminder.Equal(m.reminders, cached) {
					m.reminders = cached
					m.clampSelection()
				}
			}
		}
		if !msg.silent {
			m.showMessage("获取提醒失败，已使用离线数据")
		}
		return m, nil
	}

	m.online = true

	// Swap only when the set actually changed; an identical fetch keeps
	// the previous slice so nothing re-renders or resets.
	if !reminder.Equal(m.reminders, msg.reminders) {
		m.reminders = msg.reminders
		m.clampSelection()
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.teardown()
		return m, tea.Quit

	case "r":
		if !m.online {
			m.showMessage("当前离线，无法刷新")
			return m, nil
		}
		m.showMessage("刷新中…")
		return m, m.fetchCmd(false)

	case "j", "down":
		if m.selected < len(m.visible())-1 {
			m.selected++
		}
		return m, nil

	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case "s":
		m.speechOn = !m.speechOn
		if m.speechOn {
			m.showMessage("已开启语音播报")
		} else {
			if m.voice != nil {
				m.voice.Stop()
			}
			m.showMessage("已关闭语音播报")
		}
		return m, nil

	case "enter", " ":
		return m, m.speakToggleCmd()
	}

	return m, nil
}

// speakToggleCmd implements the tap-to-speak affordance: fire-and-forget
// per key press, toggling between speaking and idle, with no announcement
// gating.
func (m *Model) speakToggleCmd() tea.Cmd {
	if m.voice == nil || !m.voice.Supported() {
		m.showMessage("此设备不支持语音播报")
		return nil
	}

	if m.voice.Speaking() {
		m.voice.Stop()
		return nil
	}

	visible := m.visible()
	if m.selected >= len(visible) {
		return nil
	}

	item := visible[m.selected]
	svc := m.voice
	return func() tea.Msg {
		err := svc.AnnounceReminder(item.reminder.Title, item.reminder.Type,
			item.cls.NearestSlot.Time, item.reminder.Description)
		return speakDoneMsg{err: err}
	}
}

// displayItem pairs a reminder with its classification at render time.
type displayItem struct {
	reminder reminder.Reminder
	cls      reminder.Classification
}

// visible returns the urgency-sorted, displayable reminders. Reminders
// without a usable time slot are excluded entirely.
func (m *Model) visible() []displayItem {
	now := m.now()
	sorted := reminder.SortByUrgency(m.reminders, now)

	var items []displayItem
	for _, r := range sorted {
		cls := reminder.Classify(r, now)
		if !cls.Displayable() {
			continue
		}
		items = append(items, displayItem{reminder: r, cls: cls})
	}
	return items
}

func (m *Model) clampSelection() {
	if n := len(m.visible()); m.selected >= n {
		m.selected = 0
	}
}

func (m *Model) fetchCmd(silent bool) tea.Cmd {
	source := m.source
	snapshots := m.cache
	today := m.now()

	return func() tea.Msg {
		reminders, err := source.FetchActive(today)
		if err != nil {
			return fetchDoneMsg{err: err, silent: silent}
		}

		// Every successful fetch replaces the snapshot, keeping the
		// offline fallback fresh.
		if snapshots != nil {
			if cerr := snapshots.Save(reminders, time.Now()); cerr != nil {
				log.Printf("snapshot save failed: %v", cerr)
			}
		}

		return fetchDoneMsg{reminders: reminders, silent: silent}
	}
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) pollCmd() tea.Cmd {
	return tea.Tick(m.config.PollRate, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

func (m *Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}

	events := m.changes
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return changeMsg(ev)
	}
}

func (m *Model) showMessage(msg string) {
	m.message = msg
	if m.messageTimer != nil {
		m.messageTimer.Stop()
	}
	m.messageTimer = time.AfterFunc(3*time.Second, func() {
		m.message = ""
	})
}

// teardown releases timers and subscriptions on exit. In-flight fetches and
// speech are not aborted; their results are simply discarded.
func (m *Model) teardown() {
	if m.messageTimer != nil {
		m.messageTimer.Stop()
	}
	if err := m.source.StopWatching(); err != nil {
		log.Printf("stop watching: %v", err)
	}
	if m.voice != nil {
		m.voice.Stop()
	}
}
