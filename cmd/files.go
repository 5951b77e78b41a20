package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bookfees/internal/cli"
	"github.com/theirongolddev/bookfees/internal/source"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List loan tables in the data directory",
	Args:  cobra.NoArgs,
	RunE:  runFiles,
}

func init() {
	rootCmd.AddCommand(filesCmd)
}

func runFiles(_ *cobra.Command, _ []string) error {
	dir := cfg.General.DataDir
	files, err := source.ScanDir(dir)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		fmt.Printf("\n  No CSV files found in %s.\n", dir)
		return nil
	}

	now := time.Now()
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rows = append(rows, []string{
			f.Name,
			cli.FormatBytes(f.Size),
			cli.FormatAge(f.ModTime, now),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   dir,
		Headers: []string{"File", "Size", "Modified"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
