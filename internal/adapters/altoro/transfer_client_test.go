package altoro

import (
	"context"
	"net/http"
	"testing"

	"github.com/bnema/altoro-cli/internal/domain"
	"github.com/bnema/altoro-cli/internal/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitTransferPostsFormWithWholeSession(t *testing.T) {
	t.Parallel()

	bank := testsupport.NewBank(t)
	client, err := NewTransferClient(newTestConfig(bank.URL()))
	require.NoError(t, err)

	session := domain.NewSession(
		domain.Cookie{Name: "JSESSIONID", Value: "abc"},
		domain.Cookie{Name: "AltoroAccounts", Value: "Zm9v; Path=/;"},
	)

	resp, err := client.SubmitTransfer(context.Background(), session, domain.TransferForm{
		FromAccount:    "800000",
		ToAccount:      "800002",
		TransferAmount: "12.5",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	calls := bank.Transfers()
	require.Len(t, calls, 1)
	assert.Equal(t, "800000", calls[0].Form.Get("fromAccount"))
	assert.Equal(t, "800002", calls[0].Form.Get("toAccount"))
	assert.Equal(t, "12.5", calls[0].Form.Get("transferAmount"))
	assert.Equal(t, "JSESSIONID=abc; AltoroAccounts=Zm9v; Path=/;", calls[0].Header)
}

func TestSubmitTransferReportsReasonPhraseOnRejection(t *testing.T) {
	t.Parallel()

	bank := testsupport.NewBank(t, testsupport.WithTransferStatus(http.StatusForbidden))
	client, err := NewTransferClient(newTestConfig(bank.URL()))
	require.NoError(t, err)

	resp, err := client.SubmitTransfer(context.Background(), domain.Session{}, domain.TransferForm{FromAccount: "1", ToAccount: "2", TransferAmount: "1"})
	require.NoError(t, err)
	assert.False(t, resp.Success())
	assert.Equal(t, "Forbidden", resp.ReasonPhrase)
	require.Len(t, bank.Transfers(), 1)
	assert.Empty(t, bank.Transfers()[0].Header)
}

func TestReasonPhraseFallsBackToStatusText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Not Found", reasonPhrase(&http.Response{StatusCode: 404, Status: "404"}))
	assert.Equal(t, "Teapot Time", reasonPhrase(&http.Response{StatusCode: 418, Status: "418 Teapot Time"}))
	assert.Equal(t, "status 599", reasonPhrase(&http.Response{StatusCode: 599}))
}
