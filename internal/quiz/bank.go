package quiz

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

//go:embed questions.json
var defaultBankJSON []byte

// ErrInvalidBank is returned when a question bank fails validation.
var ErrInvalidBank = errors.New("invalid question bank")

// Bank is an immutable, ordered set of questions.
type Bank struct {
	questions []Question
	byLevel   map[int][]Question
}

// DefaultBank parses the built-in question bank.
func DefaultBank() (*Bank, error) {
	return Parse(defaultBankJSON)
}

// LoadFile reads and validates a bank from a JSON file.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Parse validates raw JSON and builds a Bank from it.
func Parse(data []byte) (*Bank, error) {
	if err := validateShape(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}

	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}
	return NewBank(questions)
}

// NewBank validates questions and indexes them by level, preserving order.
func NewBank(questions []Question) (*Bank, error) {
	if err := validateBank(questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}

	b := &Bank{
		questions: append([]Question(nil), questions...),
		byLevel:   make(map[int][]Question, TotalLevels),
	}
	for _, q := range b.questions {
		b.byLevel[q.Level] = append(b.byLevel[q.Level], q)
	}
	return b, nil
}

// ForLevel returns the questions for level in bank order.
// The returned slice must not be modified.
func (b *Bank) ForLevel(level int) []Question {
	return b.byLevel[level]
}

// Len returns the total number of questions.
func (b *Bank) Len() int {
	return len(b.questions)
}

// validateBank checks rules the schema cannot express.
func validateBank(questions []Question) error {
	var errs []string
	counts := make(map[int]int, TotalLevels)

	for i, q := range questions {
		if !ValidLevel(q.Level) {
			errs = append(errs, fmt.Sprintf("question %d: level %d out of range", i, q.Level))
			continue
		}
		counts[q.Level]++
		if len(q.Options) < 2 {
			errs = append(errs, fmt.Sprintf("question %d: needs at least 2 options", i))
		}
		if q.AnswerIndex() < 0 {
			errs = append(errs, fmt.Sprintf("question %d: answer %q is not one of the options", i, q.Answer))
		}
	}

	for level := 1; level <= TotalLevels; level++ {
		if counts[level] != QuestionsPerLevel {
			errs = append(errs, fmt.Sprintf("level %d has %d questions, want %d", level, counts[level], QuestionsPerLevel))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
