package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jazzmini/jsquiz/internal/progression"
	"github.com/jazzmini/jsquiz/internal/quiz"
	"github.com/jazzmini/jsquiz/internal/txsubmit"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a level completion transaction without playing",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetInt("level")
		score, _ := cmd.Flags().GetInt("score")
		if !quiz.ValidLevel(level) {
			return fmt.Errorf("--level must be between 1 and %d", quiz.TotalLevels)
		}
		if !quiz.Passed(score) || score > quiz.QuestionsPerLevel {
			return fmt.Errorf("--score must be between %d and %d", quiz.PassThreshold, quiz.QuestionsPerLevel)
		}

		svc, cleanup, err := openServices(cmd, false)
		if err != nil {
			return err
		}
		defer cleanup()

		sub := svc.NewSubmitter(txsubmit.WithObserver(func(a txsubmit.Attempt) {
			if !a.Status.Terminal() {
				fmt.Println(color.HiBlackString(a.Message()))
			}
		}))
		ctrl := progression.NewController(sub, nil,
			progression.WithMirror(svc.Progress),
			progression.WithLogger(svc.Logger),
		)
		defer ctrl.CancelAutoAdvance()

		out := ctrl.OnLevelPassed(cmd.Context(), level, score)
		if !out.Submitted() {
			fmt.Println(color.RedString(out.Attempt.Message()))
			if out.Err != nil {
				return out.Err
			}
			return errors.New("submission failed")
		}

		fmt.Println(color.GreenString(out.Attempt.Message()))
		fmt.Printf("Progress: max score %d, highest level %d\n", out.Stats.MaxScore, out.Stats.HighestLevel)
		return nil
	},
}

func init() {
	submitCmd.Flags().Int("level", 0, "Level to submit (required)")
	submitCmd.Flags().Int("score", quiz.QuestionsPerLevel, "Score recorded in the progress document")
	submitCmd.MarkFlagRequired("level")
}
