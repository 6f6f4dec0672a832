package voice

import (
	"fmt"
	"strings"
	"sync"

	"carescreen/internal/reminder"
)

// Service owns the single "currently speaking" state on top of an Engine.
// At most one utterance is in flight globally: starting a new one stops the
// current one first.
type Service struct {
	engine Engine

	// PreferredVoice overrides automatic voice selection when set.
	PreferredVoice string

	// Rate overrides the announcement speech rate when positive.
	Rate float64

	mu       sync.Mutex
	speaking bool
}

func NewService(engine Engine) *Service {
	return &Service{engine: engine}
}

// Supported reports whether the underlying engine is usable.
func (s *Service) Supported() bool {
	return s.engine.Supported()
}

// Speaking reports whether an utterance is in flight.
func (s *Service) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speaking
}

// Speak voices the text, stopping any utterance in progress first. It
// blocks until the utterance finishes, so callers run it off the display
// loop.
func (s *Service) Speak(text string, opts Options) error {
	if !s.engine.Supported() {
		return fmt.Errorf("speech engine unavailable")
	}

	s.Stop()

	if opts.Voice == "" {
		opts.Voice = s.pickVoice(opts.Lang)
	}

	s.mu.Lock()
	s.speaking = true
	s.mu.Unlock()

	err := s.engine.Speak(text, opts)

	s.mu.Lock()
	s.speaking = false
	s.mu.Unlock()

	return err
}

// Stop cancels any utterance in flight.
func (s *Service) Stop() {
	s.engine.Stop()

	s.mu.Lock()
	s.speaking = false
	s.mu.Unlock()
}

// pickVoice prefers a Chinese voice, then the first available voice, then
// the engine default (empty name).
func (s *Service) pickVoice(lang string) string {
	if s.PreferredVoice != "" {
		return s.PreferredVoice
	}

	voices := s.engine.Voices()

	if lang == "" {
		lang = "zh-CN"
	}
	for _, v := range voices {
		if strings.HasPrefix(v.Lang, lang) && strings.Contains(v.Name, "Chinese") {
			return v.Name
		}
	}
	for _, v := range voices {
		if strings.HasPrefix(v.Lang, lang) {
			return v.Name
		}
	}
	for _, v := range voices {
		if strings.Contains(v.Lang, "zh") {
			return v.Name
		}
	}

	if len(voices) > 0 {
		return voices[0].Name
	}
	return ""
}

// AnnouncementText composes the spoken reminder announcement.
func AnnouncementText(title string, typ reminder.Type, slotTime, description string) string {
	text := fmt.Sprintf("现在是%s，%s提醒：%s", slotTime, typ.Label(), title)
	if description != "" {
		text += "。" + description
	}
	return text
}

// AnnounceReminder speaks a reminder announcement, slightly slowed so
// elderly listeners can follow.
func (s *Service) AnnounceReminder(title string, typ reminder.Type, slotTime, description string) error {
	rate := s.Rate
	if rate <= 0 {
		rate = 0.9
	}
	return s.Speak(AnnouncementText(title, typ, slotTime, description), Options{
		Rate:   rate,
		Pitch:  1,
		Volume: 1,
		Lang:   "zh-CN",
	})
}
