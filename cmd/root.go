package cmd

import (
	"fmt"
	"os"

	"carescreen/internal/cache"
	"carescreen/internal/config"
	"carescreen/internal/reminder"
	"carescreen/internal/store"
	"carescreen/internal/ui"
	"carescreen/internal/voice"

	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	cfgFile   string
	storeFile string
	storeURL  string
	noSpeech  bool
	cfg       *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "carescreen",
	Short: "A full-screen health reminder display for elderly care",
	Long: `CareScreen is an unattended full-screen reminder display. It shows
today's health reminders sorted by urgency, announces due reminders out loud,
and keeps serving the last known set when the record store is unreachable.`,
	RunE: runTUI,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVarP(&storeFile, "file", "f", "", "Reminder JSON file to use")
	rootCmd.PersistentFlags().StringVar(&storeURL, "url", "", "Remote reminder endpoint to use")
	rootCmd.PersistentFlags().BoolVar(&noSpeech, "no-speech", false, "Disable spoken announcements")
}

func initConfig() {
	if cfgFile != "" {
		os.Setenv("CARESCREEN_CONFIG", cfgFile)
	}

	var err error
	cfg, err = config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Command-line flags override the config file
	if storeFile != "" {
		cfg.StoreFile = storeFile
		cfg.StoreURL = ""
	}
	if storeURL != "" {
		cfg.StoreURL = storeURL
	}
	if noSpeech {
		cfg.SpeechEnabled = false
	}
}

// buildSource picks the record store: a remote endpoint when configured,
// otherwise the local JSON file.
func buildSource() reminder.Source {
	if cfg.StoreURL != "" {
		return store.NewHTTPSource(cfg.StoreURL)
	}
	return store.NewFileSource(cfg.StoreFile)
}

// buildVoice wires up the speech service, or returns nil when no speech
// engine is available on this device.
func buildVoice() *voice.Service {
	engine := voice.NewCommandEngine(cfg.SpeechCommand)
	if !engine.Supported() {
		fmt.Fprintf(os.Stderr, "Warning: %q not found, spoken announcements disabled\n", cfg.SpeechCommand)
		return nil
	}

	service := voice.NewService(engine)
	service.PreferredVoice = cfg.SpeechVoice
	service.Rate = cfg.SpeechRate
	return service
}

func runTUI(cmd *cobra.Command, args []string) error {
	source := buildSource()

	// A broken cache degrades to no offline fallback, not a startup failure.
	var snapshots ui.Snapshots
	if snap, err := cache.Open(cfg.CacheFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: offline cache unavailable: %v\n", err)
	} else {
		snapshots = snap
		defer snap.Close()
	}

	model := ui.NewModel(cfg, source, snapshots, buildVoice())
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	return nil
}
