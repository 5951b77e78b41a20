package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/bookfees/internal/cli"
	"github.com/theirongolddev/bookfees/internal/config"
	"github.com/theirongolddev/bookfees/internal/model"
	"github.com/theirongolddev/bookfees/internal/pipeline"
	"github.com/theirongolddev/bookfees/internal/report"
	"github.com/theirongolddev/bookfees/internal/store"
)

var (
	flagJSON bool
	flagSort string
)

const topPatrons = 5

var reportCmd = &cobra.Command{
	Use:   "report [input] [output]",
	Short: "Write the per-patron late-fee report",
	Long: "Read a loans table (patron_id, date_due, date_returned) and write\n" +
		"one row per patron with the late fees owed at 0.25 per day late.\n\n" +
		"Inputs that do not exist relative to the working directory are looked\n" +
		"up under the data directory.",
	Args: cobra.MaximumNArgs(2),
	RunE: runReport,
}

func init() {
	addReportFlags(reportCmd)
	rootCmd.AddCommand(reportCmd)
}

func addReportFlags(c *cobra.Command) {
	c.Flags().BoolVar(&flagJSON, "json", false, "Print the ledger as JSON to stdout")
	c.Flags().StringVar(&flagSort, "sort", "", "Terminal table order: id or fees (default from config)")
}

func runReport(_ *cobra.Command, args []string) error {
	input, output := cfg.Report.Input, cfg.Report.Output
	if len(args) > 0 {
		input = args[0]
	}
	if len(args) > 1 {
		output = args[1]
	}

	sortBy := cfg.Report.SortBy
	if flagSort != "" {
		sortBy = flagSort
	}
	if sortBy != config.SortByID && sortBy != config.SortByFees {
		return fmt.Errorf("invalid --sort %q: must be %q or %q", sortBy, config.SortByID, config.SortByFees)
	}

	inPath := config.DataFilePath(cfg.General.DataDir, input)

	cache := openCache()
	if cache != nil {
		defer cache.Close()
	}

	records, err := loadRecords(cache, inPath)
	if err != nil {
		return err
	}

	ledger, err := pipeline.Report(records, output)
	if err != nil {
		return err
	}
	summary := ledger.Summary()
	logger.Info("wrote report", "path", output, "patrons", summary.Patrons, "total", summary.TotalFees.StringFixed(2))

	if cache != nil {
		recordRun(cache, inPath, output, summary)
	}

	patrons := ledger.Patrons()
	if sortBy == config.SortByFees {
		pipeline.SortByFees(patrons)
	}

	if flagJSON {
		return report.WriteJSON(os.Stdout, summary, patrons)
	}
	if flagQuiet {
		return nil
	}

	printLedger(filepath.Base(inPath), summary, patrons)
	return nil
}

// recordRun appends the run to the history table. History is best-effort.
func recordRun(cache *store.Cache, inPath, outPath string, summary model.ReportSummary) {
	run := model.ReportRun{
		ID:          uuid.NewString(),
		Input:       absPath(inPath),
		Output:      absPath(outPath),
		GeneratedAt: time.Now().UTC(),
		Records:     summary.Records,
		Patrons:     summary.Patrons,
		TotalFees:   summary.TotalFees,
	}
	if err := cache.SaveRun(run); err != nil {
		logger.Warn("could not record report history", "err", err)
		return
	}
	logger.Debug("recorded run", "id", run.ID)
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func printLedger(name string, summary model.ReportSummary, patrons []model.PatronFees) {
	rows := make([][]string, 0, len(patrons))
	for _, p := range patrons {
		rows = append(rows, []string{
			p.PatronID,
			strconv.Itoa(p.Loans),
			strconv.Itoa(p.LateLoans),
			strconv.Itoa(p.DaysLate),
			cli.FormatFee(p.LateFees),
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("LATE FEES  %s  %s/day", name, cli.FormatFee(pipeline.LateFeeRate()))))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Patron", "Loans", "Late", "Days", "Fees"},
		Rows:    rows,
	}))
	fmt.Println(cli.RenderSummary(
		int64(summary.Records),
		int64(summary.Patrons),
		int64(summary.LateLoans),
		cli.FormatFee(summary.TotalFees),
	))

	top := make([]model.PatronFees, len(patrons))
	copy(top, patrons)
	pipeline.SortByFees(top)
	if len(top) > topPatrons {
		top = top[:topPatrons]
	}
	if len(top) == 0 || !top[0].LateFees.IsPositive() {
		fmt.Println()
		return
	}

	maxFee := top[0].LateFees.InexactFloat64()
	labelWidth := 0
	for _, p := range top {
		labelWidth = max(labelWidth, len(p.PatronID))
	}

	fmt.Println()
	fmt.Println("  Highest fees")
	for _, p := range top {
		if !p.LateFees.IsPositive() {
			break
		}
		label := fmt.Sprintf("%-*s", labelWidth, p.PatronID)
		fmt.Println(cli.RenderHorizontalBar(label, p.LateFees.InexactFloat64(), maxFee, 30, cli.FormatFee(p.LateFees)))
	}
	fmt.Println()
}
