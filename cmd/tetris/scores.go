package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/results"
)

var (
	flagScoresCSV   bool
	flagScoresPage  int
	flagScoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show the best results of a mode",
	Long: `Display the best results for the specified mode: highest scores for
classic, fastest times for sprint.

With --csv the per-mode result file is listed in file order, ten lines
per page.

Examples:
  tetris scores classic
  tetris scores sprint --limit 20
  tetris scores sprint --csv --page 2`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresCSV, "csv", false, "List the CSV result file instead of the leaderboard")
	scoresCmd.Flags().IntVar(&flagScoresPage, "page", 1, "Page of the CSV result file")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of leaderboard entries")
}

func runScores(cmd *cobra.Command, args []string) error {
	mode, ok := registry.Info(args[0])
	if !ok || !mode.Ranked() {
		return fmt.Errorf("unknown mode %q, run 'tetris list' to see available modes", args[0])
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var recs []results.Record
	if flagScoresCSV {
		recs, err = a.files.ReadPage(mode.ResultFile, mode.Timed, flagScoresPage)
	} else {
		recs, err = a.scoreSource().Scores(mode, flagScoresLimit)
	}
	if err != nil {
		return fmt.Errorf("error retrieving results: %w", err)
	}

	fmt.Printf("Results - %s\n", mode.Title)
	fmt.Println()

	if len(recs) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tetris play %s' to set the first one!\n", mode.ID)
		return nil
	}

	valueHeader := "Score"
	if mode.Timed {
		valueHeader = "Time"
	}

	if flagScoresCSV {
		fmt.Printf("  %-19s  %s\n", "Date", valueHeader)
		fmt.Printf("  %-19s  %s\n", "----", "-----")
		for _, rec := range recs {
			fmt.Printf("  %-19s  %s\n", rec.At.Format(results.TimestampLayout), rec.Display())
		}
		fmt.Printf("\nFile: %s\n", a.files.Path(mode.ResultFile))
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-5s  %s\n", "Rank", valueHeader, "Lines", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %s\n", "----", "-----", "-----", "----")
	for i, rec := range recs {
		fmt.Printf("  %-4d  %-10s  %-5d  %s\n", i+1, rec.Display(), rec.Lines, rec.At.Format("2006-01-02 15:04"))
	}

	if a.store == nil {
		return nil
	}
	if stats, err := a.store.GetModeStats(mode.ID); err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Games: %d  Total lines: %d  Last played: %s\n",
			stats.GamesCount, stats.TotalLines, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
