package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
)

// allTermsArg selects every term on the command line.
const allTermsArg = domain.AllTermsName

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "List the terms available to the logged in user",
	Args:  cobra.NoArgs,
	RunE:  runTerms,
}

var termsSelectCmd = &cobra.Command{
	Use:   "select <term|all>",
	Short: "Select the term used by analyze and download",
	Args:  cobra.ExactArgs(1),
	RunE:  runTermsSelect,
}

func init() {
	termsCmd.AddCommand(termsSelectCmd)
	rootCmd.AddCommand(termsCmd)
}

func runTerms(cmd *cobra.Command, _ []string) error {
	session, err := requireSession()
	if err != nil {
		return err
	}

	selected := session.SelectedTermOrAll()

	cmd.Println("Terms:")
	cmd.Printf("  %s %s\n", marker(selected == domain.AllTerms), allTermsArg)
	for _, t := range session.SelectableTerms() {
		cmd.Printf("  %s %s\n", marker(selected == t.String()), t)
	}
	return nil
}

func runTermsSelect(cmd *cobra.Command, args []string) error {
	session, err := requireSession()
	if err != nil {
		return err
	}

	term, err := session.ResolveTerm(args[0])
	if err != nil {
		return err
	}

	sessionStore.SetSelectedTerm(term)
	cmd.Printf("Selected term: %s\n", domain.TermLabel(term))
	return nil
}

func marker(selected bool) string {
	if selected {
		return "*"
	}
	return " "
}
