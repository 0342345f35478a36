package cmd

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/altoro-cli/internal/domain"
	"github.com/bnema/altoro-cli/internal/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var transferArgs = []string{
	"transfer",
	"-u", testsupport.BankUsername,
	"-p", testsupport.BankPassword,
	"--from-account", "800000", "--from-type", "Corporate",
	"--to-account", "800002", "--to-type", "Savings",
	"-a", "10.50",
}

func TestTransferHappyPath(t *testing.T) {
	bank := testsupport.NewBank(t)
	home := t.TempDir()
	t.Setenv("ALTORO_BASE_URL", bank.URL())

	stdout, _, err := executeCLI(t, home, transferArgs...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "submitted")
	assert.Contains(t, stdout, "verify out of band")

	calls := bank.Transfers()
	require.Len(t, calls, 1)
	assert.Equal(t, "800000", calls[0].Form.Get("fromAccount"))
	assert.Equal(t, "800002", calls[0].Form.Get("toAccount"))
	assert.Equal(t, "10.5", calls[0].Form.Get("transferAmount"))

	forged := "800002~Savings~-6.679E27|800000~Corporate~6.679E27|"
	wantCookie := "AltoroAccounts=" + base64.StdEncoding.EncodeToString([]byte(forged)) + domain.CookieAttributeSuffix
	assert.Contains(t, calls[0].Header, wantCookie)
	assert.Contains(t, calls[0].Header, "JSESSIONID=5C2E1A9F")
}

func TestTransferJSONOutput(t *testing.T) {
	bank := testsupport.NewBank(t)
	home := t.TempDir()
	t.Setenv("ALTORO_BASE_URL", bank.URL())

	stdout, _, err := executeCLI(t, home, append(transferArgs, "--json")...)
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)))

	var payload transferJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	assert.True(t, payload.Successful)
	assert.Equal(t, domain.TransferAcceptedDetails, payload.Details)
	assert.Equal(t, http.StatusOK, payload.StatusCode)
	assert.Equal(t, "10.5", payload.Amount)
	assert.Empty(t, payload.Kind)
}

func TestTransferInvalidCredentialsReportsFailure(t *testing.T) {
	bank := testsupport.NewBank(t)
	home := t.TempDir()
	t.Setenv("ALTORO_BASE_URL", bank.URL())

	args := append([]string{}, transferArgs...)
	args[4] = "wrong-password"
	stdout, _, err := executeCLI(t, home, append(args, "--json")...)
	require.ErrorIs(t, err, errReported)

	var payload transferJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	assert.False(t, payload.Successful)
	assert.Equal(t, "Login Failed: invalid credentials", payload.Details)
	assert.Equal(t, string(domain.KindAuthenticationRejected), payload.Kind)
	assert.Empty(t, bank.Transfers())
}

func TestTransferRejectedStatus(t *testing.T) {
	bank := testsupport.NewBank(t, testsupport.WithTransferStatus(http.StatusInternalServerError))
	home := t.TempDir()
	t.Setenv("ALTORO_BASE_URL", bank.URL())

	stdout, _, err := executeCLI(t, home, transferArgs...)
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, stdout, "failed")
	assert.Contains(t, stdout, "Internal Server Error")
	assert.Len(t, bank.Transfers(), 1)
}

func TestTransferMalformedCookieNeverSubmits(t *testing.T) {
	bank := testsupport.NewBank(t, testsupport.WithCookiePlaintext("800000~Corporate"))
	home := t.TempDir()
	t.Setenv("ALTORO_BASE_URL", bank.URL())

	stdout, _, err := executeCLI(t, home, append(transferArgs, "--json")...)
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, stdout, "unexpected cookie value")
	assert.Empty(t, bank.Transfers())
}

func TestTransferBaseURLFlagOverridesProfile(t *testing.T) {
	bank := testsupport.NewBank(t)
	home := t.TempDir()
	t.Setenv("ALTORO_BASE_URL", "http://127.0.0.1:1")

	_, _, err := executeCLI(t, home, append(transferArgs, "--base-url", bank.URL()+"/")...)
	require.NoError(t, err)
	assert.Len(t, bank.Transfers(), 1)
}

func TestTransferRejectsBadAmount(t *testing.T) {
	home := t.TempDir()

	args := append([]string{}, transferArgs...)
	args[len(args)-1] = "ten"
	_, _, err := executeCLI(t, home, args...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `parse amount "ten"`)
}

func TestTransferRequiresAccountFlags(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "transfer", "-u", "jsmith", "-p", "x", "-a", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s)")
	assert.Contains(t, err.Error(), "from-account")
}

func TestLoginListsCookieNamesOnly(t *testing.T) {
	bank := testsupport.NewBank(t)
	home := t.TempDir()
	t.Setenv("ALTORO_BASE_URL", bank.URL())

	stdout, _, err := executeCLI(t, home, "login", "-u", testsupport.BankUsername, "-p", testsupport.BankPassword, "--json")
	require.NoError(t, err)

	var payload loginJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	assert.Equal(t, string(domain.LoginAuthenticated), payload.Outcome)
	assert.ElementsMatch(t, []string{"JSESSIONID", "AltoroAccounts"}, payload.CookieNames)
	assert.True(t, strings.HasSuffix(payload.FinalURL, "/bank/main.jsp"))
	assert.NotContains(t, stdout, "5C2E1A9F")
	assert.NotContains(t, stdout, base64.StdEncoding.EncodeToString([]byte(testsupport.BankCookiePlaintext)))
}

func TestLoginUnexpectedStatus(t *testing.T) {
	bank := testsupport.NewBank(t, testsupport.WithLoginStatus(http.StatusServiceUnavailable))
	home := t.TempDir()
	t.Setenv("ALTORO_BASE_URL", bank.URL())

	stdout, _, err := executeCLI(t, home, "login", "-u", testsupport.BankUsername, "-p", testsupport.BankPassword)
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, stdout, string(domain.LoginUnexpectedStatus))
	assert.Contains(t, stdout, "503")
}

func TestCookieDecodeTableAndJSON(t *testing.T) {
	home := t.TempDir()
	raw := `"` + base64.StdEncoding.EncodeToString([]byte(testsupport.BankCookiePlaintext)) + `"`

	stdout, _, err := executeCLI(t, home, "cookie", "decode", raw)
	require.NoError(t, err)
	assert.Contains(t, stdout, testsupport.BankCookiePlaintext)
	assert.Contains(t, stdout, "Corporate")
	assert.Contains(t, stdout, "Checking")

	stdout, _, err = executeCLI(t, home, "cookie", "decode", raw, "--json")
	require.NoError(t, err)
	var payload cookieJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	assert.Equal(t, "800000", payload.Primary.AccountNumber)
	assert.Equal(t, "-6.679E27", payload.Primary.BalanceMarker)
	assert.Equal(t, "800001", payload.Secondary.AccountNumber)
	assert.Equal(t, "6.679E27|", payload.Secondary.BalanceMarker)
	assert.Equal(t, 5, payload.Segments)
}

func TestCookieDecodeRejectsMalformedValue(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "cookie", "decode", "not base64!")
	require.ErrorIs(t, err, domain.ErrMalformedCookieEncoding)
}

func TestCookieForge(t *testing.T) {
	home := t.TempDir()
	raw := base64.StdEncoding.EncodeToString([]byte(testsupport.BankCookiePlaintext))

	stdout, _, err := executeCLI(t, home, "cookie", "forge", raw,
		"--from-account", "800000", "--from-type", "Corporate",
		"--to-account", "800002", "--to-type", "Savings",
	)
	require.NoError(t, err)

	want := base64.StdEncoding.EncodeToString([]byte("800002~Savings~-6.679E27|800000~Corporate~6.679E27|")) + domain.CookieAttributeSuffix
	assert.Equal(t, want, strings.TrimSpace(stdout))
}

func TestTargetListIncludesFileProfiles(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeTargetsFixture(home))

	stdout, _, err := executeCLI(t, home, "target", "list", "--json", "--target", "lab")
	require.NoError(t, err)

	var payload []targetJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	require.Len(t, payload, 2)
	assert.Equal(t, "lab", payload[0].Name)
	assert.Equal(t, "http://10.0.0.5:8080", payload[0].BaseURL)
	assert.Equal(t, domain.DefaultTransferPath, payload[0].TransferPath)
	assert.True(t, payload[0].Selected)
	assert.Equal(t, domain.DefaultTargetName, payload[1].Name)
	assert.False(t, payload[1].Selected)

	stdout, _, err = executeCLI(t, home, "target", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "lab")
	assert.Contains(t, stdout, domain.DefaultBaseURL)
}

func TestUnknownTargetFails(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "login", "-u", "jsmith", "-p", "x", "--target", "missing")
	require.ErrorIs(t, err, domain.ErrTargetNotFound)
}

func TestCancelledContextStopsLogin(t *testing.T) {
	bank := testsupport.NewBank(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ALTORO_LOG_LEVEL", "error")
	t.Setenv("ALTORO_BASE_URL", bank.URL())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	root := newRootCmd()
	stderr := &bytes.Buffer{}
	root.SetOut(&bytes.Buffer{})
	root.SetErr(stderr)
	root.SetArgs([]string{"login", "-u", testsupport.BankUsername, "-p", testsupport.BankPassword})

	err := execute(ctx, root)
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr.String(), "context canceled")
	assert.Empty(t, bank.Transfers())
}

func TestExecuteReportsUnreportedErrors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	root := newRootCmd()
	stderr := &bytes.Buffer{}
	root.SetOut(&bytes.Buffer{})
	root.SetErr(stderr)
	root.SetArgs([]string{"cookie", "decode", "%%%"})

	err := execute(context.Background(), root)
	require.ErrorIs(t, err, domain.ErrMalformedCookieEncoding)
	assert.Contains(t, stderr.String(), "Error:")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev", strings.TrimSpace(stdout))
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("ALTORO_LOG_LEVEL", "error")

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTargetsFixture(home string) error {
	configDir := filepath.Join(home, ".altoro")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	targets := `version = 1

[[targets]]
name = "lab"
base_url = "http://10.0.0.5:8080/"
`

	return os.WriteFile(filepath.Join(configDir, "targets.toml"), []byte(targets), 0o644)
}
