package driven

// FileSaver writes a downloaded payload to the user's filesystem.
type FileSaver interface {
	// Save writes data under name and returns the full path written.
	Save(name string, data []byte) (string, error)
}

// Notifier shows a blocking notification to the user.
type Notifier interface {
	// Alert presents message to the user.
	Alert(message string)
}
