package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the shared progress document to level 1",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			ok, err := confirm("Reset all progress")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Aborted.")
				return nil
			}
		}

		svc, cleanup, err := openServices(cmd, false)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := svc.Progress.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
		fmt.Println(color.GreenString("Progress reset."), "Only level 1 is unlocked.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

// confirm asks a yes/no question, defaulting to no.
func confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return false, nil
		}
		return false, fmt.Errorf("prompt: %w", err)
	}
	return true, nil
}
