package cmd

import (
	"fmt"
	"time"

	"carescreen/internal/reminder"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List today's reminders and exit",
	Long:  `List today's reminders in urgency order in a simple text format and exit.`,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if cfg == nil {
		initConfig()
	}

	source := buildSource()
	now := time.Now()

	reminders, err := source.FetchActive(now)
	if err != nil {
		return fmt.Errorf("error fetching reminders: %w", err)
	}

	fmt.Printf("Reminders for %s:\n", now.Format(cfg.DateFormat))

	shown := 0
	for _, r := range reminder.SortByUrgency(reminders, now) {
		cls := reminder.Classify(r, now)
		if !cls.Displayable() {
			continue
		}
		shown++

		badge := ""
		if b := cls.Status.Badge(); b != "" {
			badge = " [" + b + "]"
		}

		fmt.Printf("  %s - %s（%s）%s\n", cls.NearestSlot.Time, r.Title, r.Type.Label(), badge)
		if r.Description != "" {
			fmt.Printf("    %s\n", r.Description)
		}
	}

	if shown == 0 {
		fmt.Println("No reminders found.")
	}

	return nil
}
