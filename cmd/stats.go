package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jazzmini/jsquiz/internal/quiz"
	"github.com/jazzmini/jsquiz/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the shared progress document and submission counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := openServices(cmd, false)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		stats, err := svc.Progress.Get(ctx)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		events, err := svc.Events.QueryAttempts(ctx, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("load attempts: %w", err)
		}

		var submitted, failed int
		for _, ev := range events {
			switch ev.Status {
			case "submitted":
				submitted++
			case "failed":
				failed++
			}
		}

		fmt.Printf("Document:       %s\n", svc.Config.Progress.DocumentID)
		fmt.Printf("Max score:      %s\n", color.YellowString("%d", stats.MaxScore))
		fmt.Printf("Highest level:  %s\n", color.CyanString("%d/%d", min(stats.HighestLevel, quiz.TotalLevels), quiz.TotalLevels))
		fmt.Printf("Submissions:    %s submitted, %s failed\n",
			color.GreenString("%d", submitted), color.RedString("%d", failed))
		return nil
	},
}
