// Package services implements the driving port interfaces.
// Services own the session and chart state and orchestrate
// calls to the grading service through driven ports (adapters).
//
// Services are pure Go with no CGO or external dependencies.
package services
