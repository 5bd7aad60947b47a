package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent analyses and downloads",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum entries per list")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete the recorded history")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if _, err := requireSession(); err != nil {
		return err
	}

	if historyClear {
		if err := analysisService.ClearHistory(cmd.Context()); err != nil {
			return err
		}
		cmd.Println("History cleared")
		return nil
	}

	if historyLimit <= 0 {
		return errors.New("limit must be positive")
	}

	analyses, downloads, err := analysisService.History(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	cmd.Println("Analyses:")
	if len(analyses) == 0 {
		cmd.Println("  (none)")
	}
	for _, a := range analyses {
		cmd.Printf("  %s  term %-4s  %d subjects, %d terms\n",
			a.CreatedAt.Format(time.DateTime), domain.TermLabel(a.Term), a.Bar.Len(), a.Line.Len())
	}

	cmd.Println()
	cmd.Println("Downloads:")
	if len(downloads) == 0 {
		cmd.Println("  (none)")
	}
	for _, d := range downloads {
		cmd.Printf("  %s  term %-4s  %-13s  %s\n",
			d.CreatedAt.Format(time.DateTime), domain.TermLabel(d.Term), d.FileType, d.Path)
	}
	return nil
}
