package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jazzmini/jsquiz/internal/quiz"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show every level and whether it is unlocked",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := openServices(cmd, false)
		if err != nil {
			return err
		}
		defer cleanup()

		stats, err := svc.Progress.Get(cmd.Context())
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}

		fmt.Printf("%-6s  %-10s  %s\n", "Level", "Status", "Questions")
		fmt.Println(strings.Repeat("─", 30))
		for i, status := range stats.Grid() {
			level := i + 1
			fmt.Printf("%-6d  %s  %d\n", level, statusText(status), len(svc.Bank.ForLevel(level)))
		}

		fmt.Printf("\nPass mark: %d/%d\n", quiz.PassThreshold, quiz.QuestionsPerLevel)
		return nil
	},
}

// statusText pads before colouring so the table stays aligned.
func statusText(s quiz.LevelStatus) string {
	text := fmt.Sprintf("%-10s", s)
	switch s {
	case quiz.LevelUnlocked:
		return color.GreenString(text)
	case quiz.LevelNext:
		return color.YellowString(text)
	}
	return color.HiBlackString(text)
}
