package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullBank builds a valid bank with QuestionsPerLevel questions per level.
func fullBank() []Question {
	var qs []Question
	for level := 1; level <= TotalLevels; level++ {
		for i := 0; i < QuestionsPerLevel; i++ {
			qs = append(qs, Question{
				Level:       level,
				Question:    fmt.Sprintf("L%d Q%d", level, i),
				Options:     []string{"right", "wrong"},
				Answer:      "right",
				Explanation: "because",
			})
		}
	}
	return qs
}

func TestDefaultBank(t *testing.T) {
	b, err := DefaultBank()
	require.NoError(t, err)
	assert.Equal(t, TotalLevels*QuestionsPerLevel, b.Len())

	for level := 1; level <= TotalLevels; level++ {
		qs := b.ForLevel(level)
		require.Len(t, qs, QuestionsPerLevel, "level %d", level)
		for _, q := range qs {
			assert.Equal(t, level, q.Level)
			assert.GreaterOrEqual(t, q.AnswerIndex(), 0, "answer missing for %q", q.Question)
		}
	}
}

func TestForLevel_PreservesBankOrder(t *testing.T) {
	qs := fullBank()
	b, err := NewBank(qs)
	require.NoError(t, err)

	got := b.ForLevel(3)
	for i, q := range got {
		assert.Equal(t, fmt.Sprintf("L3 Q%d", i), q.Question)
	}
	assert.Empty(t, b.ForLevel(11))
}

func TestNewBank_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]Question) []Question
		want   string
	}{
		{
			name: "answer not among options",
			mutate: func(qs []Question) []Question {
				qs[0].Answer = "missing"
				return qs
			},
			want: "not one of the options",
		},
		{
			name: "too few options",
			mutate: func(qs []Question) []Question {
				qs[5].Options = []string{"right"}
				return qs
			},
			want: "at least 2 options",
		},
		{
			name: "short level",
			mutate: func(qs []Question) []Question {
				return qs[1:]
			},
			want: "level 1 has 9 questions",
		},
		{
			name: "level out of range",
			mutate: func(qs []Question) []Question {
				qs[0].Level = 11
				return qs
			},
			want: "out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBank(tt.mutate(fullBank()))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidBank))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParse_RejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{`},
		{"not an array", `{"level": 1}`},
		{"missing answer", `[{"level": 1, "question": "q", "options": ["a", "b"], "explanation": ""}]`},
		{"extra field", `[{"level": 1, "question": "q", "options": ["a", "b"], "answer": "a", "explanation": "", "hint": "x"}]`},
		{"duplicate options", `[{"level": 1, "question": "q", "options": ["a", "a"], "answer": "a", "explanation": ""}]`},
		{"string level", `[{"level": "1", "question": "q", "options": ["a", "b"], "answer": "a", "explanation": ""}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidBank)
		})
	}
}

func TestLoadFile(t *testing.T) {
	data, err := json.Marshal(fullBank())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bank.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	b, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 100, b.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestQuestion_IsCorrect(t *testing.T) {
	q := Question{Options: []string{"a", "b"}, Answer: "b"}
	assert.True(t, q.IsCorrect("b"))
	assert.False(t, q.IsCorrect("a"))
	assert.Equal(t, 1, q.AnswerIndex())
}

func TestPassed(t *testing.T) {
	for score := 0; score <= QuestionsPerLevel; score++ {
		assert.Equal(t, score >= 7, Passed(score), "score %d", score)
	}
}
