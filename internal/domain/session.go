package domain

import (
	"fmt"
	"strings"
)

type Cookie struct {
	Name string
	// Value is sensitive and must never be logged.
	Value string
}

// Session is the set of cookies the bank handed out during login, keyed by name.
// It is a value: WithCookie returns a new Session and leaves the receiver untouched.
type Session struct {
	cookies []Cookie
}

// NewSession builds a session from cookies. Later duplicates of a name are dropped.
func NewSession(cookies ...Cookie) Session {
	out := make([]Cookie, 0, len(cookies))
	seen := make(map[string]struct{}, len(cookies))
	for _, cookie := range cookies {
		name := strings.TrimSpace(cookie.Name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, Cookie{Name: name, Value: cookie.Value})
	}

	return Session{cookies: out}
}

func (s Session) Cookies() []Cookie {
	out := make([]Cookie, len(s.cookies))
	copy(out, s.cookies)
	return out
}

func (s Session) Cookie(name string) (Cookie, bool) {
	for _, cookie := range s.cookies {
		if cookie.Name == name {
			return cookie, true
		}
	}
	return Cookie{}, false
}

func (s Session) Names() []string {
	names := make([]string, 0, len(s.cookies))
	for _, cookie := range s.cookies {
		names = append(names, cookie.Name)
	}
	return names
}

func (s Session) Len() int {
	return len(s.cookies)
}

func (s Session) IsEmpty() bool {
	return len(s.cookies) == 0
}

// WithCookie returns a copy of the session with the named cookie's value replaced.
func (s Session) WithCookie(name string, value string) (Session, error) {
	out := s.Cookies()
	for i := range out {
		if out[i].Name == name {
			out[i].Value = value
			return Session{cookies: out}, nil
		}
	}

	return s, fmt.Errorf("%w: %q", ErrCookieNotFound, name)
}

// Header renders every cookie as a single Cookie request header value.
// Values are written verbatim so attribute suffixes reach the server unchanged.
func (s Session) Header() string {
	parts := make([]string, 0, len(s.cookies))
	for _, cookie := range s.cookies {
		parts = append(parts, cookie.Name+"="+cookie.Value)
	}
	return strings.Join(parts, "; ")
}
