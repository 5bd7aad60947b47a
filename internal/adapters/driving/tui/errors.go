package tui

import "errors"

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("tui: analysis service is required")

// ErrMissingSessionStore is returned when the session store is not provided.
var ErrMissingSessionStore = errors.New("tui: session store is required")

// ErrMissingChartsStore is returned when the charts store is not provided.
var ErrMissingChartsStore = errors.New("tui: charts store is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
