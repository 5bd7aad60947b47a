// Package mcp provides an MCP (Model Context Protocol) server adapter for etis.
// It lets AI assistants log in, run grade analyses and download exports.
package mcp

import "errors"

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("mcp: analysis service is required")

// ErrMissingSessionStore is returned when the session store is not provided.
var ErrMissingSessionStore = errors.New("mcp: session store is required")

// ErrInvalidPorts is returned when no ports are provided.
var ErrInvalidPorts = errors.New("mcp: invalid ports configuration")
