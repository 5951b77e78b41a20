package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bookfees/internal/cli"
	"github.com/theirongolddev/bookfees/internal/dates"
)

var (
	flagValues  string
	flagDisplay bool
)

var rangeCmd = &cobra.Command{
	Use:   "range START [N]",
	Short: "Print consecutive dates starting at START",
	Long: "Print N consecutive calendar dates starting at START (YYYY-MM-DD).\n" +
		"With --values, N is taken from the number of values and each date is\n" +
		"printed next to its value.",
	Example: "  bookfees range 2020-02-27 4 --display\n" +
		"  bookfees range 2020-01-01 --values a,b,c",
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRange(os.Stdout, args, cmd.Flags().Changed("values"))
	},
}

func init() {
	rangeCmd.Flags().StringVar(&flagValues, "values", "", "Comma-separated values to pair with the dates")
	rangeCmd.Flags().BoolVar(&flagDisplay, "display", false, "Print dates as DD Mon YYYY")
	rootCmd.AddCommand(rangeCmd)
}

func runRange(w io.Writer, args []string, withValues bool) error {
	start := args[0]

	format := func(t time.Time) string { return t.Format(time.DateOnly) }
	if flagDisplay {
		format = cli.FormatDate
	}

	if withValues {
		if len(args) > 1 {
			return fmt.Errorf("N cannot be combined with --values")
		}
		var values []string
		if flagValues != "" {
			values = strings.Split(flagValues, ",")
		}
		pairs, err := dates.AddRange(values, start)
		if err != nil {
			return err
		}
		for _, p := range pairs {
			fmt.Fprintf(w, "%s\t%s\n", format(p.Date), p.Value)
		}
		return nil
	}

	if len(args) < 2 {
		return fmt.Errorf("N is required without --values")
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid N %q: %w", args[1], err)
	}

	days, err := dates.Range(start, n)
	if err != nil {
		return err
	}
	for _, d := range days {
		fmt.Fprintln(w, format(d))
	}
	return nil
}
