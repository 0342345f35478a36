package altoro

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bnema/altoro-cli/internal/domain"
	"github.com/bnema/altoro-cli/internal/ports"
)

// TransferClient posts transfer forms. It has no jar of its own: the session's
// cookies are written as one raw Cookie header so rewritten values go out verbatim.
type TransferClient struct {
	endpoints endpoints
	cfg       Config
	logger    *slog.Logger
}

var _ ports.TransferGateway = (*TransferClient)(nil)

func NewTransferClient(cfg Config) (*TransferClient, error) {
	resolved, err := resolveEndpoints(cfg.Target)
	if err != nil {
		return nil, err
	}

	return &TransferClient{
		endpoints: resolved,
		cfg:       cfg,
		logger:    loggerOrDiscard(cfg.Logger).With("component", "transfer"),
	}, nil
}

func (c *TransferClient) SubmitTransfer(ctx context.Context, session domain.Session, form domain.TransferForm) (domain.TransferResponse, error) {
	values := url.Values{}
	values.Set("fromAccount", form.FromAccount)
	values.Set("toAccount", form.ToAccount)
	values.Set("transferAmount", form.TransferAmount)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints.transfer, strings.NewReader(values.Encode()))
	if err != nil {
		return domain.TransferResponse{}, fmt.Errorf("create transfer request: %w", err)
	}
	req.Header.Set("Content-Type", formContentType)
	if header := session.Header(); header != "" {
		req.Header.Set("Cookie", header)
	}

	c.logger.Info("sending transfer request",
		"amount", form.TransferAmount,
		"from", form.FromAccount,
		"to", form.ToAccount,
		"cookies", session.Names(),
	)
	resp, err := c.client().Do(req)
	if err != nil {
		return domain.TransferResponse{}, fmt.Errorf("send transfer request: %w", err)
	}
	defer drainAndClose(resp.Body)

	return domain.TransferResponse{
		StatusCode:   resp.StatusCode,
		ReasonPhrase: reasonPhrase(resp),
	}, nil
}

func (c *TransferClient) client() *http.Client {
	return &http.Client{
		Transport: c.cfg.Transport,
		Timeout:   c.cfg.Timeout,
	}
}

func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason != "" {
		return reason
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}
