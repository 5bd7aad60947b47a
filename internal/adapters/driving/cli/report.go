package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/etis-cli/internal/core/ports/driving"
)

var (
	chartOutput  string
	exportOutput string
)

var chartCmd = &cobra.Command{
	Use:   "chart <bar|line>",
	Short: "Render a chart of the last analysis as PNG",
	Long: `Render the last analysis locally without another request.

  bar   Average grade by subject
  line  Score dynamics by term

If this process has not run an analysis, the most recent recorded analysis
for the selected term is used.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(driving.ChartKindBar), string(driving.ChartKindLine)},
	RunE:      runChart,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the last analysis as an Excel workbook",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	chartCmd.Flags().StringVarP(&chartOutput, "output", "o", "", "output file (default <kind>.png)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "etis-report.xlsx", "output file")
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(exportCmd)
}

func runChart(cmd *cobra.Command, args []string) error {
	kind := driving.ChartKind(args[0])
	if !kind.IsValid() {
		return fmt.Errorf("unknown chart %q: use bar or line", args[0])
	}

	if err := prepareReport(cmd); err != nil {
		return err
	}

	output := chartOutput
	if output == "" {
		output = string(kind) + ".png"
	}

	err := writeFile(output, func(w io.Writer) error {
		return reportService.RenderChart(w, kind)
	})
	if err != nil {
		return fmt.Errorf("render %s chart: %w", kind, err)
	}

	cmd.Printf("Wrote %s\n", output)
	return nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	if err := prepareReport(cmd); err != nil {
		return err
	}

	err := writeFile(exportOutput, reportService.ExportWorkbook)
	if err != nil {
		return fmt.Errorf("export workbook: %w", err)
	}

	cmd.Printf("Wrote %s\n", exportOutput)
	return nil
}

// prepareReport checks for a session and loads recorded chart data when the
// charts store is empty.
func prepareReport(cmd *cobra.Command) error {
	if _, err := requireSession(); err != nil {
		return err
	}
	if reportService == nil || chartsStore == nil {
		return errors.New("report service not configured")
	}

	if len(chartsStore.FormattedBarData()) > 0 || len(chartsStore.FormattedLineData()) > 0 {
		return nil
	}
	return analysisService.RestoreLatest(cmd.Context())
}

// writeFile renders into a new file and removes it again if rendering fails.
func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := render(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}
