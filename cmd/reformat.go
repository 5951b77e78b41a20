package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bookfees/internal/dates"
)

var reformatCmd = &cobra.Command{
	Use:     "reformat DATE...",
	Short:   "Rewrite YYYY-MM-DD dates as DD Mon YYYY",
	Example: "  bookfees reformat 2001-01-01 2020-02-29",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runReformat(os.Stdout, args)
	},
}

func init() {
	rootCmd.AddCommand(reformatCmd)
}

func runReformat(w io.Writer, args []string) error {
	out, err := dates.Reformat(args)
	if err != nil {
		return err
	}
	for _, d := range out {
		fmt.Fprintln(w, d)
	}
	return nil
}
