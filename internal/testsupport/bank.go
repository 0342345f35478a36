package testsupport

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

const (
	BankUsername = "jsmith"
	BankPassword = "demo1234"

	// BankCookiePlaintext is the decoded ownership cookie the fake bank hands out.
	BankCookiePlaintext = "800000~Corporate~-6.679E27|800001~Checking~6.679E27|"
)

// TransferCall records one request received by the fake transfer endpoint.
type TransferCall struct {
	Form    url.Values
	Cookies []*http.Cookie
	Header  string
}

// Bank is an httptest stand-in for the Altoro Mutual web controller routes.
type Bank struct {
	Server *httptest.Server

	mu             sync.Mutex
	cookiePlain    string
	omitCookie     bool
	loginStatus    int
	transferStatus int
	transfers      []TransferCall
}

type BankOption func(*Bank)

// WithCookiePlaintext changes the decoded AltoroAccounts payload set at login.
func WithCookiePlaintext(plaintext string) BankOption {
	return func(b *Bank) { b.cookiePlain = plaintext }
}

// WithoutAccountCookie makes login succeed without setting AltoroAccounts.
func WithoutAccountCookie() BankOption {
	return func(b *Bank) { b.omitCookie = true }
}

// WithLoginStatus forces the login endpoint to answer with status.
func WithLoginStatus(status int) BankOption {
	return func(b *Bank) { b.loginStatus = status }
}

// WithTransferStatus sets the status returned by the transfer endpoint.
func WithTransferStatus(status int) BankOption {
	return func(b *Bank) { b.transferStatus = status }
}

func NewBank(t testing.TB, opts ...BankOption) *Bank {
	t.Helper()

	bank := &Bank{
		cookiePlain:    BankCookiePlaintext,
		transferStatus: http.StatusOK,
	}
	for _, opt := range opts {
		opt(bank)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/doLogin", bank.handleLogin)
	mux.HandleFunc("/bank/main.jsp", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>Hello John Smith</html>"))
	})
	mux.HandleFunc("/login.jsp", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>Login Failed: We're sorry, but this username or password was not found in our system.</html>"))
	})
	mux.HandleFunc("/bank/doTransfer", bank.handleTransfer)

	bank.Server = httptest.NewServer(mux)
	t.Cleanup(bank.Server.Close)

	return bank
}

func (b *Bank) URL() string {
	return b.Server.URL
}

func (b *Bank) Transfers() []TransferCall {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]TransferCall, len(b.transfers))
	copy(out, b.transfers)
	return out
}

func (b *Bank) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	b.mu.Lock()
	loginStatus := b.loginStatus
	plain := b.cookiePlain
	omit := b.omitCookie
	b.mu.Unlock()

	if loginStatus != 0 {
		w.WriteHeader(loginStatus)
		return
	}

	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if r.PostForm.Get("uid") != BankUsername || r.PostForm.Get("passw") != BankPassword {
		http.Redirect(w, r, "/login.jsp", http.StatusFound)
		return
	}

	w.Header().Add("Set-Cookie", "JSESSIONID=5C2E1A9F; Path=/; HttpOnly")
	if !omit {
		// The real server quotes the value because of base64 padding.
		encoded := base64.StdEncoding.EncodeToString([]byte(plain))
		w.Header().Add("Set-Cookie", `AltoroAccounts="`+encoded+`"; Path=/`)
	}
	http.Redirect(w, r, "/bank/main.jsp", http.StatusFound)
}

func (b *Bank) handleTransfer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	b.transfers = append(b.transfers, TransferCall{
		Form:    r.PostForm,
		Cookies: r.Cookies(),
		Header:  r.Header.Get("Cookie"),
	})
	status := b.transferStatus
	b.mu.Unlock()

	w.WriteHeader(status)
	_, _ = w.Write([]byte("<html>transfer page</html>"))
}
