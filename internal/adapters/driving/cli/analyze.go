package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
)

var (
	analyzeTerm string
	analyzeJSON bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyse grades for the selected term",
	Long: `Request a grade analysis from the grading service and print the average
grade per subject and the score per term.

Without --term the selected term is used (see "etis terms select").
Pass --term all to analyse every term.`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeTerm, "term", "t", "", "term to analyse, or \"all\"")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output the analysis as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	session, err := requireSession()
	if err != nil {
		return err
	}

	term := session.SelectedTermOrAll()
	if cmd.Flags().Changed("term") {
		term, err = session.ResolveTerm(analyzeTerm)
		if err != nil {
			return err
		}
	}

	result, err := analysisService.Analyze(cmd.Context(), session.Credentials(), term)
	if err != nil {
		if domain.IsAnalysisError(err) {
			return fmt.Errorf("analysis rejected: %w", err)
		}
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	cmd.Printf("Analysis for term: %s\n\n", domain.TermLabel(term))
	printRows(cmd, "Average grade by subject", "Subject", chartsStore.FormattedBarData())
	cmd.Println()
	printRows(cmd, "Score dynamics by term", "Term", chartsStore.FormattedLineData())
	return nil
}

func printRows(cmd *cobra.Command, title, column string, rows []domain.ChartRow) {
	cmd.Println(title)
	if len(rows) == 0 {
		cmd.Println("  (no data)")
		return
	}

	width := len(column)
	for _, r := range rows {
		if n := len([]rune(r.Category.String())); n > width {
			width = n
		}
	}

	cmd.Printf("  %-*s  %s\n", width, column, "Value")
	for _, r := range rows {
		cmd.Printf("  %-*s  %.2f\n", width, r.Category, r.Value)
	}
}
