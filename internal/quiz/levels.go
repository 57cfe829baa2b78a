package quiz

// GlobalStats mirrors the shared progress document.
type GlobalStats struct {
	MaxScore     int `json:"maxScore"`
	HighestLevel int `json:"highestLevel"`
}

// InitialStats is the document written when none exists yet.
func InitialStats() GlobalStats {
	return GlobalStats{MaxScore: 0, HighestLevel: 1}
}

// Normalize clamps HighestLevel to at least 1.
func (s GlobalStats) Normalize() GlobalStats {
	if s.HighestLevel < 1 {
		s.HighestLevel = 1
	}
	if s.MaxScore < 0 {
		s.MaxScore = 0
	}
	return s
}

// Unlocked reports whether level L has been completed (L < HighestLevel).
func (s GlobalStats) Unlocked(level int) bool {
	return level < s.Normalize().HighestLevel
}

// IsNext reports whether level is the frontier level.
func (s GlobalStats) IsNext(level int) bool {
	return level == s.Normalize().HighestLevel
}

// Playable reports whether a quiz may be started at level.
func (s GlobalStats) Playable(level int) bool {
	return ValidLevel(level) && (s.Unlocked(level) || s.IsNext(level))
}

// Raise returns the element-wise maximum of s and other.
func (s GlobalStats) Raise(other GlobalStats) GlobalStats {
	out := s.Normalize()
	other = other.Normalize()
	if other.MaxScore > out.MaxScore {
		out.MaxScore = other.MaxScore
	}
	if other.HighestLevel > out.HighestLevel {
		out.HighestLevel = other.HighestLevel
	}
	return out
}

// LevelStatus is the lock state of a level on the selection grid.
type LevelStatus int

const (
	LevelLocked   LevelStatus = iota // Not yet reachable
	LevelNext                        // Frontier level, playable
	LevelUnlocked                    // Already completed
)

func (s LevelStatus) String() string {
	switch s {
	case LevelUnlocked:
		return "unlocked"
	case LevelNext:
		return "next"
	default:
		return "locked"
	}
}

// Status returns the lock state of level.
func (s GlobalStats) Status(level int) LevelStatus {
	switch {
	case !ValidLevel(level):
		return LevelLocked
	case s.Unlocked(level):
		return LevelUnlocked
	case s.IsNext(level):
		return LevelNext
	default:
		return LevelLocked
	}
}

// Grid returns the status of every level in order.
func (s GlobalStats) Grid() []LevelStatus {
	out := make([]LevelStatus, TotalLevels)
	for i := range out {
		out[i] = s.Status(i + 1)
	}
	return out
}
