package voice

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

// espeak-ng defaults; Options values scale against these.
const (
	baseWordsPerMinute = 175
	basePitch          = 50
	baseAmplitude      = 100
)

// CommandEngine speaks through an external espeak-ng style command.
type CommandEngine struct {
	Command string

	mu      sync.Mutex
	current *exec.Cmd
	voices  []Voice
	listed  bool
}

func NewCommandEngine(command string) *CommandEngine {
	if command == "" {
		command = "espeak-ng"
	}
	return &CommandEngine{Command: command}
}

// Supported implements Engine by probing PATH for the speech command.
func (e *CommandEngine) Supported() bool {
	_, err := exec.LookPath(e.Command)
	return err == nil
}

// Voices implements Engine. The listing is loaded once from the command's
// --voices output and cached; a failed listing yields an empty list, which
// is non-fatal (the engine default voice is used).
func (e *CommandEngine) Voices() []Voice {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.listed {
		return e.voices
	}
	e.listed = true

	output, err := exec.Command(e.Command, "--voices").Output()
	if err != nil {
		return nil
	}

	e.voices = parseVoiceList(string(output))
	return e.voices
}

// parseVoiceList parses espeak-ng --voices output:
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  zh-CN           --/M      cmn                cmn                  (zh 5)
func parseVoiceList(output string) []Voice {
	var voices []Voice

	for i, line := range strings.Split(output, "\n") {
		if i == 0 {
			continue // header
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		voices = append(voices, Voice{Lang: fields[1], Name: fields[3]})
	}

	return voices
}

// Speak implements Engine. The command runs to completion; a non-zero exit
// is a synthesis error.
func (e *CommandEngine) Speak(text string, opts Options) error {
	args := buildSpeakArgs(text, opts)

	cmd := exec.Command(e.Command, args...)

	e.mu.Lock()
	if e.current != nil && e.current.Process != nil {
		e.current.Process.Kill()
	}
	e.current = cmd
	e.mu.Unlock()

	err := cmd.Run()

	e.mu.Lock()
	if e.current == cmd {
		e.current = nil
	}
	e.mu.Unlock()

	if err != nil {
		return fmt.Errorf("speech command failed: %w", err)
	}
	return nil
}

func buildSpeakArgs(text string, opts Options) []string {
	var args []string

	switch {
	case opts.Voice != "":
		args = append(args, "-v", opts.Voice)
	case opts.Lang != "":
		args = append(args, "-v", opts.Lang)
	}
	if opts.Rate > 0 {
		args = append(args, "-s", strconv.Itoa(int(opts.Rate*baseWordsPerMinute)))
	}
	if opts.Pitch > 0 {
		args = append(args, "-p", strconv.Itoa(int(opts.Pitch*basePitch)))
	}
	if opts.Volume > 0 {
		args = append(args, "-a", strconv.Itoa(int(opts.Volume*baseAmplitude)))
	}

	return append(args, text)
}

// Stop implements Engine by killing the in-flight command, if any.
func (e *CommandEngine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current != nil && e.current.Process != nil {
		e.current.Process.Kill()
	}
	e.current = nil
}
