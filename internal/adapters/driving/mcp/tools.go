package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
)

// LoginInput is the input schema for the login tool.
type LoginInput struct {
	Username string `json:"username" jsonschema:"the student's grading service username"`
	Password string `json:"password" jsonschema:"the student's grading service password"`
}

// LoginOutput is the output schema for the login tool.
type LoginOutput struct {
	Username string `json:"username"`
	Terms    []int  `json:"terms"`
}

// AnalyzeInput is the input schema for the analyze tool.
type AnalyzeInput struct {
	Term string `json:"term,omitempty" jsonschema:"term number or all (default: the selected term)"`
}

// AnalyzeOutput is the output schema for the analyze tool.
type AnalyzeOutput struct {
	Term     string      `json:"term"`
	Message  string      `json:"message,omitempty"`
	Subjects []RowOutput `json:"subjects"`
	Dynamics []RowOutput `json:"dynamics"`
}

// RowOutput is one chart point. Categories are always strings here so the
// output schema stays stable for numeric term labels.
type RowOutput struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// DownloadInput is the input schema for the download tool.
type DownloadInput struct {
	FileType string `json:"file_type" jsonschema:"one of csv, xlsx, avg_grades, term_dynamics"`
}

// DownloadOutput is the output schema for the download tool.
type DownloadOutput struct {
	Path   string   `json:"path,omitempty"`
	Saved  bool     `json:"saved"`
	Alerts []string `json:"alerts,omitempty"`
}

// SelectTermInput is the input schema for the select_term tool.
type SelectTermInput struct {
	Term string `json:"term" jsonschema:"term number or all"`
}

// SelectTermOutput is the output schema for the select_term tool.
type SelectTermOutput struct {
	Term string `json:"term"`
}

// LogoutOutput is the output schema for the logout tool.
type LogoutOutput struct {
	LoggedOut bool `json:"logged_out"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "login",
		Description: "Log in to the grading service and store the session",
	}, s.handleLogin)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "select_term",
		Description: "Select the term used by analyze when no term is given",
	}, s.handleSelectTerm)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze",
		Description: "Analyse the logged in student's grades for a term",
	}, s.handleAnalyze)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "download",
		Description: "Download an export of the last analysis to the download directory",
	}, s.handleDownload)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "logout",
		Description: "Log out and clear the stored session",
	}, s.handleLogout)
}

// handleLogin handles the login tool invocation.
func (s *Server) handleLogin(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LoginInput,
) (*mcp.CallToolResult, LoginOutput, error) {
	creds := domain.Credentials{Username: input.Username, Password: input.Password}
	session, err := s.ports.Analysis.Login(ctx, creds)
	if err != nil {
		return nil, LoginOutput{}, fmt.Errorf("login: %w", err)
	}

	terms := session.Terms
	if terms == nil {
		terms = []int{}
	}
	return nil, LoginOutput{Username: session.Username, Terms: terms}, nil
}

// handleSelectTerm handles the select_term tool invocation.
func (s *Server) handleSelectTerm(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SelectTermInput,
) (*mcp.CallToolResult, SelectTermOutput, error) {
	session, err := s.session()
	if err != nil {
		return nil, SelectTermOutput{}, err
	}

	term, err := session.ResolveTerm(input.Term)
	if err != nil {
		return nil, SelectTermOutput{}, err
	}

	s.ports.Sessions.SetSelectedTerm(term)
	return nil, SelectTermOutput{Term: domain.TermLabel(term)}, nil
}

// handleAnalyze handles the analyze tool invocation.
func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, AnalyzeOutput, error) {
	session, err := s.session()
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}

	term := session.SelectedTermOrAll()
	if input.Term != "" {
		if term, err = session.ResolveTerm(input.Term); err != nil {
			return nil, AnalyzeOutput{}, err
		}
	}

	result, err := s.ports.Analysis.Analyze(ctx, session.Credentials(), term)
	if err != nil {
		return nil, AnalyzeOutput{}, fmt.Errorf("analyze: %w", err)
	}

	return nil, AnalyzeOutput{
		Term:     domain.TermLabel(term),
		Message:  result.Message,
		Subjects: rowsOutput(result.Bar.Rows()),
		Dynamics: rowsOutput(result.Line.Rows()),
	}, nil
}

// handleDownload handles the download tool invocation. Download failures
// are not tool errors: they come back as alerts, the way a user sees them.
func (s *Server) handleDownload(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DownloadInput,
) (*mcp.CallToolResult, DownloadOutput, error) {
	if _, err := s.session(); err != nil {
		return nil, DownloadOutput{}, err
	}
	if input.FileType == "" {
		return nil, DownloadOutput{}, fmt.Errorf("%w: file_type is required", domain.ErrInvalidInput)
	}

	path := s.ports.Analysis.DownloadFile(ctx, domain.FileType(input.FileType))

	output := DownloadOutput{Path: path, Saved: path != ""}
	if s.ports.Alerts != nil {
		output.Alerts = s.ports.Alerts.Drain()
	}
	return nil, output, nil
}

// handleLogout handles the logout tool invocation.
func (s *Server) handleLogout(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, LogoutOutput, error) {
	wasLoggedIn := s.ports.Sessions.IsAuthenticated()
	s.ports.Analysis.Logout()
	return nil, LogoutOutput{LoggedOut: wasLoggedIn}, nil
}

func (s *Server) session() (*domain.Session, error) {
	session := s.ports.Sessions.Session()
	if err := domain.RequireSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

func rowsOutput(rows []domain.ChartRow) []RowOutput {
	out := make([]RowOutput, len(rows))
	for i, r := range rows {
		out[i] = RowOutput{Category: r.Category.String(), Value: r.Value}
	}
	return out
}
