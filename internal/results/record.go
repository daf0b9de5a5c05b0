// Package results defines the persisted record of a finished session and
// the recorders that store it.
package results

import (
	"fmt"
	"strconv"
	"time"
)

// TimestampLayout is the record timestamp format.
const TimestampLayout = "2006-01-02 15:04:05"

// Record is one finished session.
type Record struct {
	At       time.Time
	Mode     string // stable mode identifier, e.g. "classic"
	ModeName string // display name written to files, e.g. "Lines 40"
	File     string // per-mode file stem, e.g. "lines40"
	Timed    bool   // ranked by Elapsed instead of Score
	Failed   bool   // ended short of the mode's goal; kept out of rankings
	Score    int
	Elapsed  time.Duration
	Lines    int
	Level    int
	Pieces   int
}

// Ranked reports whether the record belongs on a leaderboard.
func (r Record) Ranked() bool {
	return !r.Failed
}

// Value is the ranking value as written to result files: the integer
// score, or elapsed seconds with full fractional precision for timed modes.
func (r Record) Value() string {
	if r.Timed {
		return strconv.FormatFloat(r.Elapsed.Seconds(), 'f', -1, 64)
	}
	return strconv.Itoa(r.Score)
}

// Display formats the ranking value for humans.
func (r Record) Display() string {
	if r.Timed {
		return FormatElapsed(r.Elapsed)
	}
	return strconv.Itoa(r.Score)
}

// FormatElapsed renders a duration as mm:ss.mmm.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	seconds := (d % time.Minute).Seconds()
	return fmt.Sprintf("%02d:%06.3f", minutes, seconds)
}

// Reporter is implemented by games that produce a record when they end.
type Reporter interface {
	Result() (Record, bool)
}

// Recorder persists records.
type Recorder interface {
	Save(rec Record) error
}
