package altoro

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/bnema/altoro-cli/internal/domain"
	"github.com/bnema/altoro-cli/internal/ports"
	"golang.org/x/net/publicsuffix"
)

// SessionManager logs in through the web controller route and owns the cookie jar
// the server fills during that exchange.
type SessionManager struct {
	endpoints endpoints
	cfg       Config
	logger    *slog.Logger
	jar       http.CookieJar
}

var _ ports.SessionManager = (*SessionManager)(nil)

func NewSessionManager(cfg Config) (*SessionManager, error) {
	resolved, err := resolveEndpoints(cfg.Target)
	if err != nil {
		return nil, err
	}

	jar, err := newJar()
	if err != nil {
		return nil, err
	}

	return &SessionManager{
		endpoints: resolved,
		cfg:       cfg,
		logger:    loggerOrDiscard(cfg.Logger).With("component", "session"),
		jar:       jar,
	}, nil
}

// Login posts the credentials and follows redirects. Only the final URL decides
// success: anything but the landing page is invalid credentials, even with a 200.
// Transport failures are returned as errors; HTTP-level failures are outcomes.
func (m *SessionManager) Login(ctx context.Context, creds domain.Credentials) (domain.LoginResult, error) {
	values := url.Values{}
	values.Set("uid", creds.Username)
	values.Set("passw", creds.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoints.login, strings.NewReader(values.Encode()))
	if err != nil {
		return domain.LoginResult{}, fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", formContentType)

	m.logger.Info("sending login request", "username", creds.Username, "url", m.endpoints.login)
	resp, err := m.client().Do(req)
	if err != nil {
		return domain.LoginResult{}, fmt.Errorf("send login request: %w", err)
	}
	defer drainAndClose(resp.Body)

	result := domain.LoginResult{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		FinalURL:   resp.Request.URL.String(),
		Session:    m.Session(),
	}

	if resp.StatusCode != http.StatusOK {
		m.logger.Error("login returned unexpected status", "status", resp.Status)
		result.Outcome = domain.LoginUnexpectedStatus
		return result, nil
	}

	if result.FinalURL != m.endpoints.landing {
		m.logger.Info("login rejected: invalid credentials", "final_url", result.FinalURL)
		result.Outcome = domain.LoginInvalidCredentials
		return result, nil
	}

	m.logger.Info("logged in", "cookies", result.Session.Len())
	result.Outcome = domain.LoginAuthenticated
	return result, nil
}

// Logout drops every cookie. It is safe to call before Login and more than once.
func (m *SessionManager) Logout() {
	jar, err := newJar()
	if err != nil {
		m.logger.Error("reset cookie jar", "error", err)
		return
	}
	m.jar = jar
}

// Session snapshots the jar cookies visible to the bank's pages, keyed by name.
func (m *SessionManager) Session() domain.Session {
	var cookies []domain.Cookie
	for _, raw := range []string{m.endpoints.base.String(), m.endpoints.landing, m.endpoints.transfer} {
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		for _, cookie := range m.jar.Cookies(u) {
			cookies = append(cookies, domain.Cookie{Name: cookie.Name, Value: cookie.Value})
		}
	}
	return domain.NewSession(cookies...)
}

func (m *SessionManager) client() *http.Client {
	return &http.Client{
		Transport: m.cfg.Transport,
		Jar:       m.jar,
		Timeout:   m.cfg.Timeout,
	}
}

func newJar() (http.CookieJar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return jar, nil
}
