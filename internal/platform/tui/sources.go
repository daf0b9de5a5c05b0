package tui

import (
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/results"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// ScoreSource supplies ranked records of a mode for the scoreboard.
type ScoreSource interface {
	Scores(mode registry.GameInfo, limit int) ([]results.Record, error)
}

// StoreSource reads the SQLite leaderboard.
type StoreSource struct {
	Store *storage.Store
}

// Scores implements ScoreSource.
func (s StoreSource) Scores(mode registry.GameInfo, limit int) ([]results.Record, error) {
	entries, err := s.Store.Leaderboard(mode.ID, mode.Timed, limit)
	if err != nil {
		return nil, err
	}
	out := make([]results.Record, len(entries))
	for i, e := range entries {
		out[i] = e.Record
	}
	return out, nil
}

// FileSource ranks the per-mode CSV result files.
type FileSource struct {
	Files *results.CSVStore
}

// Scores implements ScoreSource.
func (s FileSource) Scores(mode registry.GameInfo, limit int) ([]results.Record, error) {
	all, err := s.Files.ReadAll(mode.ResultFile, mode.Timed)
	if err != nil {
		return nil, err
	}
	ranked := results.Rank(all)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
