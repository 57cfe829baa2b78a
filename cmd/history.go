package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jazzmini/jsquiz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent transaction attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		svc, cleanup, err := openServices(cmd, false)
		if err != nil {
			return err
		}
		defer cleanup()

		events, err := svc.Events.QueryAttempts(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("load attempts: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No attempts recorded.")
			return nil
		}

		fmt.Printf("%-19s  %5s  %-10s  %7s  %s\n", "Time", "Level", "Status", "Latency", "Result")
		fmt.Println(strings.Repeat("─", 80))
		for _, ev := range events {
			status := fmt.Sprintf("%-10s", ev.Status)
			result := ev.TxHash
			if ev.Status == "submitted" {
				status = color.GreenString(status)
			} else {
				status = color.RedString(status)
				result = ev.ErrorKind
				if ev.ErrorMessage != "" {
					result += ": " + ev.ErrorMessage
				}
			}
			fmt.Printf("%-19s  %5d  %s  %5dms  %s\n",
				ev.Timestamp.Local().Format("2006-01-02 15:04:05"), ev.Level, status, ev.LatencyMs, result)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of attempts to show (0 = all)")
}
