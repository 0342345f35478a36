package domain

import "errors"

var (
	ErrMalformedCookieEncoding = errors.New("malformed cookie encoding")
	ErrUnexpectedCookieShape   = errors.New("unexpected cookie shape")
	ErrCookieNotFound          = errors.New("cookie not found")
	ErrTargetNotFound          = errors.New("target not found")
)

type ErrorKind string

const (
	KindAuthenticationRejected ErrorKind = "authentication_rejected"
	KindLoginUnexpectedStatus  ErrorKind = "login_unexpected_status"
	KindTransport              ErrorKind = "transport"
	KindCookieAbsent           ErrorKind = "cookie_absent"
	KindCookieMalformed        ErrorKind = "cookie_malformed"
	KindCookieUpdateFailed     ErrorKind = "cookie_update_failed"
	KindTransferRejected       ErrorKind = "transfer_rejected"
	KindUnexpected             ErrorKind = "unexpected"
)

// TransferError is the failing arm of a transfer. Details is the user-facing text.
type TransferError struct {
	Kind    ErrorKind
	Stage   TransferStage
	Details string
	Err     error
}

func (e *TransferError) Error() string {
	return e.Details
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// KindOf reports the kind carried by err, or "" when err is not a *TransferError.
func KindOf(err error) ErrorKind {
	var transferErr *TransferError
	if errors.As(err, &transferErr) {
		return transferErr.Kind
	}
	return ""
}
