package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for etis resources.
	uriScheme = "etis://"

	sessionURI   = uriScheme + "session"
	barChartURI  = uriScheme + "charts/bar"
	lineChartURI = uriScheme + "charts/line"
)

// sessionInfo is the session as exposed to clients. The password never
// leaves the process.
type sessionInfo struct {
	Username     string `json:"username"`
	Terms        []int  `json:"terms"`
	SelectedTerm string `json:"selected_term"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         sessionURI,
		Name:        "session",
		Description: "The logged in user, their terms and the selected term",
		MIMEType:    "application/json",
	}, s.handleSessionResource)

	s.server.AddResource(&mcp.Resource{
		URI:         barChartURI,
		Name:        "bar-chart",
		Description: "Average grade by subject from the last analysis",
		MIMEType:    "application/json",
	}, s.handleChartResource)

	s.server.AddResource(&mcp.Resource{
		URI:         lineChartURI,
		Name:        "line-chart",
		Description: "Score dynamics by term from the last analysis",
		MIMEType:    "application/json",
	}, s.handleChartResource)
}

// handleSessionResource returns the current session without its password.
func (s *Server) handleSessionResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	session := s.ports.Sessions.Session()
	if session == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	terms := session.Terms
	if terms == nil {
		terms = []int{}
	}
	return jsonResult(req.Params.URI, sessionInfo{
		Username:     session.Username,
		Terms:        terms,
		SelectedTerm: domain.TermLabel(session.SelectedTermOrAll()),
	})
}

// handleChartResource returns the rows of the bar or line chart. An empty
// list means no analysis has been committed.
func (s *Server) handleChartResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	rows := []RowOutput{}
	if s.ports.Charts != nil {
		switch req.Params.URI {
		case barChartURI:
			rows = rowsOutput(s.ports.Charts.FormattedBarData())
		case lineChartURI:
			rows = rowsOutput(s.ports.Charts.FormattedLineData())
		default:
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
	}
	return jsonResult(req.Params.URI, rows)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
