package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGlobalStats_Grid(t *testing.T) {
	stats := GlobalStats{HighestLevel: 4}

	grid := stats.Grid()
	assert.Len(t, grid, TotalLevels)
	for level := 1; level <= 3; level++ {
		assert.Equal(t, LevelUnlocked, grid[level-1], "level %d", level)
		assert.True(t, stats.Playable(level))
	}
	assert.Equal(t, LevelNext, grid[3])
	assert.True(t, stats.Playable(4))
	for level := 5; level <= TotalLevels; level++ {
		assert.Equal(t, LevelLocked, grid[level-1], "level %d", level)
		assert.False(t, stats.Playable(level))
	}
}

func TestGlobalStats_InitialOnlyFirstPlayable(t *testing.T) {
	stats := InitialStats()
	assert.Equal(t, LevelNext, stats.Status(1))
	assert.False(t, stats.Playable(2))
	assert.False(t, stats.Playable(0))
}

func TestGlobalStats_ZeroValueNormalizes(t *testing.T) {
	var stats GlobalStats
	assert.True(t, stats.Playable(1))
	assert.Equal(t, 1, stats.Normalize().HighestLevel)
}

func TestGlobalStats_AllCompleted(t *testing.T) {
	stats := GlobalStats{HighestLevel: TotalLevels + 1}
	for level := 1; level <= TotalLevels; level++ {
		assert.Equal(t, LevelUnlocked, stats.Status(level))
	}
	assert.False(t, stats.Playable(TotalLevels+1))
}

func TestGlobalStats_RaiseNeverLowers(t *testing.T) {
	tests := []struct {
		name     string
		current  GlobalStats
		incoming GlobalStats
		want     GlobalStats
	}{
		{"raise both", GlobalStats{3, 2}, GlobalStats{8, 5}, GlobalStats{8, 5}},
		{"lower ignored", GlobalStats{9, 6}, GlobalStats{7, 3}, GlobalStats{9, 6}},
		{"mixed", GlobalStats{9, 2}, GlobalStats{7, 3}, GlobalStats{9, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.current.Raise(tt.incoming))
		})
	}
}

func TestLevelStatus_String(t *testing.T) {
	assert.Equal(t, "locked", LevelLocked.String())
	assert.Equal(t, "next", LevelNext.String())
	assert.Equal(t, "unlocked", LevelUnlocked.String())
}
