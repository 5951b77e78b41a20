package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bookfees/internal/cli"
	"github.com/theirongolddev/bookfees/internal/pipeline"
	"github.com/theirongolddev/bookfees/internal/store"
)

var flagLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past report runs recorded in the cache",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "Show at most N runs (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	dbPath := pipeline.CachePath()
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("\n  No report history yet.")
		fmt.Println("  Enable the cache (use_cache = true, BOOKFEES_CACHE=1 or --cache) to record runs.")
		return nil
	}

	cache, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer cache.Close()

	runs, err := cache.ListRuns(flagLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("\n  No report runs recorded.")
		return nil
	}

	now := time.Now()
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		rows = append(rows, []string{
			id,
			cli.FormatAge(r.GeneratedAt, now),
			filepath.Base(r.Input),
			filepath.Base(r.Output),
			cli.FormatNumber(int64(r.Records)),
			strconv.Itoa(r.Patrons),
			cli.FormatFee(r.TotalFees),
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("REPORT HISTORY"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Run", "When", "Input", "Output", "Records", "Patrons", "Total"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
