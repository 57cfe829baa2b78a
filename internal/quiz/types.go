package quiz

const (
	// TotalLevels is the number of ordered quiz stages.
	TotalLevels = 10

	// QuestionsPerLevel is the fixed size of every level's question set.
	QuestionsPerLevel = 10

	// PassThreshold is the minimum score needed to pass a level.
	PassThreshold = 7
)

// Question is a single multiple-choice question from the bank.
type Question struct {
	Level       int      `json:"level"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

// IsCorrect reports whether option is the recorded answer.
func (q Question) IsCorrect(option string) bool {
	return option == q.Answer
}

// AnswerIndex returns the position of the answer in Options, or -1.
func (q Question) AnswerIndex() int {
	for i, opt := range q.Options {
		if opt == q.Answer {
			return i
		}
	}
	return -1
}

// ValidLevel reports whether level is in [1, TotalLevels].
func ValidLevel(level int) bool {
	return level >= 1 && level <= TotalLevels
}

// Passed reports whether score meets the pass threshold.
func Passed(score int) bool {
	return score >= PassThreshold
}
