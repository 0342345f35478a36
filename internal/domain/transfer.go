package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TransferAcceptedDetails is reported for any 2xx answer from the transfer endpoint.
// The response body is never inspected.
const TransferAcceptedDetails = "transfer request may have succeeded — verify out of band"

type AccountRef struct {
	Number string
	Type   string
}

func (a AccountRef) String() string {
	if a.Type == "" {
		return a.Number
	}
	return a.Number + " (" + a.Type + ")"
}

type TransferRequest struct {
	From   AccountRef
	To     AccountRef
	Amount decimal.Decimal
}

// Validate only checks that the account numbers are present. Amount sign and range
// are left to the server.
func (r TransferRequest) Validate() error {
	if strings.TrimSpace(r.From.Number) == "" {
		return fmt.Errorf("from account number is required")
	}
	if strings.TrimSpace(r.To.Number) == "" {
		return fmt.Errorf("to account number is required")
	}
	return nil
}

// TransferForm is the wire shape posted to the transfer endpoint.
type TransferForm struct {
	FromAccount    string
	ToAccount      string
	TransferAmount string
}

func (r TransferRequest) Form() TransferForm {
	return TransferForm{
		FromAccount:    r.From.Number,
		ToAccount:      r.To.Number,
		TransferAmount: r.Amount.String(),
	}
}

type TransferResponse struct {
	StatusCode   int
	ReasonPhrase string
}

func (r TransferResponse) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

type TransferOutcome struct {
	Accepted   bool
	Details    string
	StatusCode int
}

type TransferStage string

const (
	StageUnauthenticated  TransferStage = "unauthenticated"
	StageAuthenticating   TransferStage = "authenticating"
	StageAuthenticated    TransferStage = "authenticated"
	StageLoginFailed      TransferStage = "login_failed"
	StageCookieLocated    TransferStage = "cookie_located"
	StageCookieTransform  TransferStage = "cookie_transformed"
	StageCookieInstalled  TransferStage = "cookie_installed"
	StageTransferSent     TransferStage = "transfer_sent"
	StageTransferAccepted TransferStage = "transfer_accepted"
	StageTransferRejected TransferStage = "transfer_rejected"
)
