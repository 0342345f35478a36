package domain

import (
	"fmt"
	"strings"
)

type Credentials struct {
	Username string
	// Password is never logged or rendered.
	Password string
}

func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if c.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

type LoginOutcome string

const (
	LoginAuthenticated      LoginOutcome = "authenticated"
	LoginInvalidCredentials LoginOutcome = "invalid_credentials"
	LoginUnexpectedStatus   LoginOutcome = "unexpected_status"
)

type LoginResult struct {
	Outcome    LoginOutcome
	Session    Session
	StatusCode int
	Status     string
	FinalURL   string
}

func (r LoginResult) Authenticated() bool {
	return r.Outcome == LoginAuthenticated
}
