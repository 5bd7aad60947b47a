package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
)

var downloadCmd = &cobra.Command{
	Use:   "download <type>...",
	Short: "Download exports of the last analysis",
	Long: `Download files produced by the last analysis for the selected term.

Types:
  csv            Grades (CSV)
  xlsx           Grades (Excel)
  avg_grades     Average grade by subject (PNG)
  term_dynamics  Score dynamics by term (PNG)

Files are saved to the download directory (see "etis settings set-dir").`,
	Args:      cobra.MinimumNArgs(1),
	ValidArgs: fileTypeArgs(),
	RunE:      runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	if _, err := requireSession(); err != nil {
		return err
	}

	var failed []string
	for _, arg := range args {
		fileType := domain.FileType(arg)
		if err := fileType.Validate(); err != nil {
			cmd.PrintErrf("warning: %v, forwarding anyway\n", err)
		}

		path := analysisService.DownloadFile(cmd.Context(), fileType)
		printAlerts(cmd)
		if path == "" {
			failed = append(failed, arg)
			continue
		}
		cmd.Printf("Saved %s to %s\n", fileType.Description(), path)
	}

	if len(failed) > 0 {
		return fmt.Errorf("download failed: %s", strings.Join(failed, ", "))
	}
	return nil
}

func fileTypeArgs() []string {
	types := domain.FileTypes()
	args := make([]string, len(types))
	for i, t := range types {
		args[i] = t.String()
	}
	return args
}
