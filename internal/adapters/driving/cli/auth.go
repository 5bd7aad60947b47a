package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
)

var (
	loginUsername string
	loginForce    bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the grading service",
	Long: `Authenticate against the grading service and store the session.

The password is read from the terminal without echo, or from the first line
of stdin when stdin is not a terminal.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username (prompted if empty)")
	loginCmd.Flags().BoolVar(&loginForce, "force", false, "log in again even if a session exists")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if analysisService == nil || sessionStore == nil {
		return errors.New("analysis service not configured")
	}

	if current := sessionStore.Session(); current != nil && !loginForce {
		cmd.Printf("Already logged in as %s (use --force to log in again)\n", current.Username)
		return nil
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	username := strings.TrimSpace(loginUsername)
	if username == "" {
		cmd.Print("Username: ")
		username = readLine(reader)
	}
	cmd.Print("Password: ")
	password := readPassword(cmd.InOrStdin(), reader)
	cmd.Println()

	creds := domain.Credentials{Username: username, Password: password}
	if creds.Validate() != nil {
		return errors.New("username and password are required")
	}

	session, err := analysisService.Login(cmd.Context(), creds)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cmd.Printf("Logged in as %s\n", session.Username)
	cmd.Printf("Terms: %s\n", formatTerms(session.SelectableTerms()))
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if analysisService == nil || sessionStore == nil {
		return errors.New("analysis service not configured")
	}

	if !sessionStore.IsAuthenticated() {
		cmd.Println("Not logged in")
		return nil
	}

	analysisService.Logout()
	cmd.Println("Logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if sessionStore == nil {
		return errors.New("session store not configured")
	}

	session := sessionStore.Session()
	if session == nil {
		cmd.Println("Not logged in")
		return nil
	}

	cmd.Printf("User:          %s\n", session.Username)
	cmd.Printf("Terms:         %s\n", formatTerms(session.SelectableTerms()))
	cmd.Printf("Selected term: %s\n", domain.TermLabel(session.SelectedTermOrAll()))
	return nil
}

func formatTerms(terms []domain.Term) string {
	if len(terms) == 0 {
		return "(none)"
	}
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// readPassword reads without echo when in is a terminal.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(password)
		}
	}
	input, _ := reader.ReadString('\n')
	return strings.TrimRight(input, "\r\n")
}
