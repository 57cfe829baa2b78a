package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/jazzmini/jsquiz/internal/quiz"
	sess "github.com/jazzmini/jsquiz/internal/session"
	"github.com/jazzmini/jsquiz/internal/txsubmit"
	"github.com/jazzmini/jsquiz/internal/ui/components"
	"github.com/jazzmini/jsquiz/internal/ui/layout"
	"github.com/jazzmini/jsquiz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.deps.State.Phase == sess.PhaseResult && s.summary != nil {
		return s.renderResultView(width, height)
	}
	return s.renderQuestionView(width, height)
}

// renderQuestionView renders the active question with its progress line
// and, once answered, the explanation.
func (s *QuizScreen) renderQuestionView(width, height int) string {
	state := s.deps.State
	q := sess.CurrentQuestion(state)
	if q == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  No question loaded.")
	}

	cw := components.ContentWidth(width)
	total := len(state.Questions)

	var b strings.Builder
	info := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d/%d   %s %d",
			state.QuestionIndex+1, total,
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			state.Score,
		))
	b.WriteString(info)
	b.WriteString("\n")
	mark := components.Unanswered
	if state.Answered {
		mark = components.AnsweredWrong
		if state.LastAnswerCorrect {
			mark = components.AnsweredRight
		}
	}
	b.WriteString(components.NewQuestionTrack(total, state.QuestionIndex, mark, cw-2).View())
	b.WriteString("\n\n")
	b.WriteString(s.choice.View())

	if state.ShowExplanation {
		b.WriteString("\n")
		verdict := theme.Correct.Render("Correct!")
		if !state.LastAnswerCorrect {
			verdict = theme.Incorrect.Render("Not quite.") + " " +
				theme.Muted.Render("Answer: "+q.Answer)
		}
		b.WriteString(verdict)
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Width(cw - 6).Render(q.Explanation))
		b.WriteString("\n\n")
		next := "Enter for the next question"
		if sess.IsLastQuestion(state) {
			next = "Enter to finish the level"
		}
		b.WriteString(theme.Hint.Render(next))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	}

	card := components.Card(b.String(), cw, theme.Border)
	if !layout.IsCompactHeight(height) {
		card = "\n" + card
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

// renderResultView renders the score card and the completion transaction
// status.
func (s *QuizScreen) renderResultView(width, height int) string {
	sum := s.summary
	cw := components.ContentWidth(width)

	var b strings.Builder
	border := theme.Error
	if sum.Passed {
		border = theme.Success
		b.WriteString(theme.Correct.Render(fmt.Sprintf("Level %d passed!", sum.Level)))
	} else {
		b.WriteString(theme.Incorrect.Render(fmt.Sprintf("Level %d not passed", sum.Level)))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Score: %d/%d", sum.Score, sum.Total)))
	b.WriteString("\n")
	b.WriteString(theme.Muted.Render(fmt.Sprintf("Time: %s", formatDuration(sum))))
	b.WriteString("\n")

	if !sum.Passed {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Score %d or more to unlock the next level.", quiz.PassThreshold)))
	} else if line := s.txLine(); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}

	if sum.Passed && sum.Level == quiz.TotalLevels {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Every level complete!"))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	}

	card := components.Card(b.String(), cw, border)
	if !layout.IsCompactHeight(height) {
		card = "\n" + card
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

func (s *QuizScreen) txLine() string {
	switch {
	case s.attempt != nil && s.attempt.Status == txsubmit.StatusSubmitted:
		line := theme.Correct.Render(s.attempt.Message())
		if s.outcome != nil && s.outcome.AdvanceScheduled {
			line += "\n" + theme.Hint.Render(fmt.Sprintf("Level %d starts shortly...", s.outcome.NextLevel))
		}
		return line
	case s.attempt != nil && s.attempt.Status == txsubmit.StatusFailed:
		line := theme.Incorrect.Render(s.attempt.Message())
		if s.canRetrySubmission() {
			line += "\n" + theme.Hint.Render("Press T to try the transaction again.")
		}
		return line
	case s.attempt != nil:
		return theme.Muted.Render(s.attempt.Message())
	case s.submitting:
		return theme.Muted.Render("Submitting level completion...")
	}
	return ""
}

func formatDuration(sum *sess.LevelSummary) string {
	secs := int(sum.Duration.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
