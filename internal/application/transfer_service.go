package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"

	"github.com/bnema/altoro-cli/internal/domain"
	"github.com/bnema/altoro-cli/internal/ports"
)

const (
	detailsCookieAbsent        = "cookie not in cookie jar"
	detailsCookieMalformed     = "unexpected cookie value"
	detailsCookieUpdateFailed  = "cookie not found"
	detailsInvalidCredentials  = "Login Failed: invalid credentials"
	detailsLoginUnexpectedCode = "Login Failed: unexpected HTTP status"
)

// TransferService logs in, rewrites the ownership cookie and replays it against the
// transfer endpoint. One invocation runs strictly in sequence.
type TransferService struct {
	sessions   ports.SessionManager
	gateway    ports.TransferGateway
	cookieName string
	logger     *slog.Logger
	onStage    func(domain.TransferStage)
}

func NewTransferService(sessions ports.SessionManager, gateway ports.TransferGateway, cookieName string, logger *slog.Logger) *TransferService {
	if cookieName == "" {
		cookieName = domain.DefaultAccountCookieName
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &TransferService{
		sessions:   sessions,
		gateway:    gateway,
		cookieName: cookieName,
		logger:     logger,
	}
}

// OnStage registers fn to be called each time a run moves to a new stage.
func (s *TransferService) OnStage(fn func(domain.TransferStage)) {
	s.onStage = fn
}

func (s *TransferService) notify(stage domain.TransferStage) {
	if s.onStage != nil {
		s.onStage(stage)
	}
}

// Execute logs in with creds and, when authenticated, runs Transfer on the new
// session. The session is discarded before returning.
func (s *TransferService) Execute(ctx context.Context, creds domain.Credentials, req domain.TransferRequest) (domain.TransferOutcome, error) {
	defer s.sessions.Logout()

	login, err := s.Login(ctx, creds)
	if err != nil {
		return domain.TransferOutcome{}, err
	}

	return s.Transfer(ctx, login.Session, req)
}

// VerifyLogin runs only the handshake and discards the session afterwards.
func (s *TransferService) VerifyLogin(ctx context.Context, creds domain.Credentials) (domain.LoginResult, error) {
	defer s.sessions.Logout()

	return s.Login(ctx, creds)
}

// Login runs the handshake and turns every non-authenticated outcome into a
// *domain.TransferError. The LoginResult is returned in every case it exists.
func (s *TransferService) Login(ctx context.Context, creds domain.Credentials) (domain.LoginResult, error) {
	s.notify(domain.StageAuthenticating)
	result, err := s.sessions.Login(ctx, creds)
	if err != nil {
		s.logger.Error("login failed", "stage", domain.StageAuthenticating, "error", err)
		return domain.LoginResult{}, &domain.TransferError{
			Kind:    classify(err),
			Stage:   domain.StageAuthenticating,
			Details: "Error: " + err.Error(),
			Err:     err,
		}
	}

	switch result.Outcome {
	case domain.LoginAuthenticated:
		s.notify(domain.StageAuthenticated)
		return result, nil
	case domain.LoginUnexpectedStatus:
		return result, &domain.TransferError{
			Kind:    domain.KindLoginUnexpectedStatus,
			Stage:   domain.StageLoginFailed,
			Details: fmt.Sprintf("%s %s", detailsLoginUnexpectedCode, result.Status),
		}
	default:
		return result, &domain.TransferError{
			Kind:    domain.KindAuthenticationRejected,
			Stage:   domain.StageLoginFailed,
			Details: detailsInvalidCredentials,
		}
	}
}

// Transfer is the single failure funnel: every error, and any panic, below it comes
// back as a *domain.TransferError.
func (s *TransferService) Transfer(ctx context.Context, session domain.Session, req domain.TransferRequest) (outcome domain.TransferOutcome, err error) {
	stage := domain.StageAuthenticated
	enter := func(next domain.TransferStage) {
		stage = next
		s.notify(next)
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			cause := fmt.Errorf("%v", recovered)
			s.logger.Error("transfer panicked", "stage", stage, "error", cause)
			outcome = domain.TransferOutcome{}
			err = &domain.TransferError{Kind: domain.KindUnexpected, Stage: stage, Details: "Error: " + cause.Error(), Err: cause}
		}
	}()

	fail := func(kind domain.ErrorKind, details string, cause error) (domain.TransferOutcome, error) {
		s.logger.Error("transfer failed", "stage", stage, "kind", kind, "error", cause)
		return domain.TransferOutcome{}, &domain.TransferError{Kind: kind, Stage: stage, Details: details, Err: cause}
	}

	cookie, ok := session.Cookie(s.cookieName)
	if !ok || cookie.Value == "" {
		return fail(domain.KindCookieAbsent, detailsCookieAbsent, fmt.Errorf("%w: %q", domain.ErrCookieNotFound, s.cookieName))
	}
	enter(domain.StageCookieLocated)

	if err := req.Validate(); err != nil {
		return fail(domain.KindUnexpected, "Error: "+err.Error(), err)
	}

	plaintext, err := domain.DecodeCookieValue(cookie.Value)
	if err != nil {
		return fail(domain.KindCookieMalformed, detailsCookieMalformed, err)
	}
	record, err := domain.ParseAccountCookie(plaintext)
	if err != nil {
		return fail(domain.KindCookieMalformed, detailsCookieMalformed, err)
	}
	forged := domain.EncodeCookieValue(domain.TransformAccountCookie(record, req.To, req.From))
	enter(domain.StageCookieTransform)

	updated, err := session.WithCookie(s.cookieName, forged)
	if err != nil {
		return fail(domain.KindCookieUpdateFailed, detailsCookieUpdateFailed, err)
	}
	enter(domain.StageCookieInstalled)

	s.logger.Info("sending transfer",
		"amount", req.Amount.String(),
		"from", req.From.String(),
		"to", req.To.String(),
	)
	resp, err := s.gateway.SubmitTransfer(ctx, updated, req.Form())
	if err != nil {
		return fail(classify(err), "Error: "+err.Error(), err)
	}
	enter(domain.StageTransferSent)

	if !resp.Success() {
		enter(domain.StageTransferRejected)
		return fail(domain.KindTransferRejected, resp.ReasonPhrase, fmt.Errorf("transfer endpoint returned status %d", resp.StatusCode))
	}

	enter(domain.StageTransferAccepted)
	s.logger.Info("transfer request accepted", "status", resp.StatusCode, "stage", stage)
	return domain.TransferOutcome{
		Accepted:   true,
		Details:    domain.TransferAcceptedDetails,
		StatusCode: resp.StatusCode,
	}, nil
}

// Report projects a transfer result onto the (successful, details) pair shown to users.
func Report(outcome domain.TransferOutcome, err error) (bool, string) {
	if err == nil {
		return outcome.Accepted, outcome.Details
	}

	var transferErr *domain.TransferError
	if errors.As(err, &transferErr) {
		return false, transferErr.Details
	}
	return false, "Error: " + err.Error()
}

func classify(err error) domain.ErrorKind {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return domain.KindTransport
	}
	return domain.KindUnexpected
}
