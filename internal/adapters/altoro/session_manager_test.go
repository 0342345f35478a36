package altoro

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bnema/altoro-cli/internal/domain"
	"github.com/bnema/altoro-cli/internal/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(baseURL string) Config {
	return Config{Target: domain.Target{Name: "test", BaseURL: baseURL}}
}

func TestLoginSucceedsWhenRedirectedToLandingPage(t *testing.T) {
	t.Parallel()

	bank := testsupport.NewBank(t)
	manager, err := NewSessionManager(newTestConfig(bank.URL()))
	require.NoError(t, err)

	result, err := manager.Login(context.Background(), domain.Credentials{Username: testsupport.BankUsername, Password: testsupport.BankPassword})
	require.NoError(t, err)

	assert.Equal(t, domain.LoginAuthenticated, result.Outcome)
	assert.True(t, result.Authenticated())
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, bank.URL()+"/bank/main.jsp", result.FinalURL)

	cookie, ok := result.Session.Cookie(domain.DefaultAccountCookieName)
	require.True(t, ok)
	decoded, err := domain.DecodeCookieValue(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, testsupport.BankCookiePlaintext, decoded)
	assert.ElementsMatch(t, []string{"JSESSIONID", "AltoroAccounts"}, result.Session.Names())
}

func TestLoginWithWrongPasswordIsNotAnError(t *testing.T) {
	t.Parallel()

	bank := testsupport.NewBank(t)
	manager, err := NewSessionManager(newTestConfig(bank.URL()))
	require.NoError(t, err)

	result, err := manager.Login(context.Background(), domain.Credentials{Username: testsupport.BankUsername, Password: "wrong"})
	require.NoError(t, err)

	assert.Equal(t, domain.LoginInvalidCredentials, result.Outcome)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, bank.URL()+"/login.jsp", result.FinalURL)
}

func TestLoginRequiresExactLandingURL(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/doLogin":
			http.Redirect(w, r, "/bank/main.jsp?welcome=1", http.StatusFound)
		default:
			_, _ = w.Write([]byte("ok"))
		}
	}))
	t.Cleanup(server.Close)

	manager, err := NewSessionManager(newTestConfig(server.URL))
	require.NoError(t, err)

	result, err := manager.Login(context.Background(), domain.Credentials{Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, domain.LoginInvalidCredentials, result.Outcome)
}

func TestLoginUnexpectedStatusIsDistinctOutcome(t *testing.T) {
	t.Parallel()

	bank := testsupport.NewBank(t, testsupport.WithLoginStatus(http.StatusServiceUnavailable))
	manager, err := NewSessionManager(newTestConfig(bank.URL()))
	require.NoError(t, err)

	result, err := manager.Login(context.Background(), domain.Credentials{Username: testsupport.BankUsername, Password: testsupport.BankPassword})
	require.NoError(t, err)
	assert.Equal(t, domain.LoginUnexpectedStatus, result.Outcome)
	assert.Equal(t, http.StatusServiceUnavailable, result.StatusCode)
	assert.False(t, result.Authenticated())
}

func TestLoginPropagatesTransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	manager, err := NewSessionManager(newTestConfig(baseURL))
	require.NoError(t, err)

	_, err = manager.Login(context.Background(), domain.Credentials{Username: "u", Password: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send login request")
}

func TestLogoutClearsCookiesAndIsIdempotent(t *testing.T) {
	t.Parallel()

	bank := testsupport.NewBank(t)
	manager, err := NewSessionManager(newTestConfig(bank.URL()))
	require.NoError(t, err)

	manager.Logout()
	assert.True(t, manager.Session().IsEmpty())

	_, err = manager.Login(context.Background(), domain.Credentials{Username: testsupport.BankUsername, Password: testsupport.BankPassword})
	require.NoError(t, err)
	require.False(t, manager.Session().IsEmpty())

	manager.Logout()
	manager.Logout()
	assert.True(t, manager.Session().IsEmpty())
}

func TestNewSessionManagerRejectsBadBaseURL(t *testing.T) {
	t.Parallel()

	_, err := NewSessionManager(newTestConfig("ftp://bank.example"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http or https")
}
