// Package notify implements driven.Notifier for the terminal front ends.
package notify

import (
	"sync"

	"github.com/custodia-labs/etis-cli/internal/core/ports/driven"
	"github.com/custodia-labs/etis-cli/internal/core/ports/driving"
)

// Ensure Queue implements both sides of the alert channel.
var (
	_ driven.Notifier   = (*Queue)(nil)
	_ driving.AlertFeed = (*Queue)(nil)
)

// Queue collects alerts until a front end drains them. The CLI prints them
// after a command, the TUI shows them in a modal and the MCP server returns
// them with the tool result.
type Queue struct {
	mu       sync.Mutex
	messages []string
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Alert appends message to the queue.
func (q *Queue) Alert(message string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.messages = append(q.messages, message)
}

// Drain returns and clears the queued messages.
func (q *Queue) Drain() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	messages := q.messages
	q.messages = nil
	return messages
}

// Len returns the number of queued messages.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.messages)
}
