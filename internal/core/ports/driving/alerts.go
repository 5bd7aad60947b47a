package driving

// AlertFeed hands the alerts raised by core services to a front end.
type AlertFeed interface {
	// Drain returns and clears the pending alerts.
	Drain() []string
}
