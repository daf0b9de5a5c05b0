package engine

import (
	"math"
	"time"
)

// minFallInterval is one frame at 60 Hz.
const minFallInterval = time.Second / 60

// FallInterval returns the gravity period for a level:
// (0.8 - (level-1)*0.007)^(level-1) seconds, never below one 60 Hz frame.
func FallInterval(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	n := float64(level - 1)
	base := 0.8 - n*0.007
	if base <= 0 {
		return minFallInterval
	}
	d := time.Duration(math.Pow(base, n) * float64(time.Second))
	return max(d, minFallInterval)
}

// LinePoints returns the Classic score for clearing lines rows at once.
func LinePoints(lines, level int) int {
	switch lines {
	case 1:
		return 100 * level
	case 2:
		return 300 * level
	case 3:
		return 500 * level
	case 4:
		return 800 * level
	default:
		return 0
	}
}

// LevelFor returns the level after lines total cleared rows, never below initial.
func LevelFor(lines, initial int) int {
	return max(lines/10+1, initial)
}
