package domain

import "strings"

// Credentials are the username and password used against the grading service.
// They are held only for the duration of a login or analyze call and are
// echoed into the Session on successful login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks that both fields are present.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" || c.Password == "" {
		return ErrInvalidInput
	}
	return nil
}
