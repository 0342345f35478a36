package altoro

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/bnema/altoro-cli/internal/domain"
)

const (
	formContentType = "application/x-www-form-urlencoded"
	maxDrainBytes   = 1 << 20
)

// Config is shared by the session manager and the transfer client.
type Config struct {
	Target    domain.Target
	Transport http.RoundTripper
	// Timeout of zero leaves the transport defaults in charge.
	Timeout time.Duration
	Logger  *slog.Logger
}

type endpoints struct {
	base     *url.URL
	login    string
	landing  string
	transfer string
}

func resolveEndpoints(target domain.Target) (endpoints, error) {
	target = target.WithDefaults()
	if err := target.Validate(); err != nil {
		return endpoints{}, fmt.Errorf("target %q: %w", target.Name, err)
	}

	base, err := url.Parse(target.BaseURL)
	if err != nil {
		return endpoints{}, fmt.Errorf("parse base url: %w", err)
	}

	login, err := buildURL(base, target.LoginPath)
	if err != nil {
		return endpoints{}, err
	}
	landing, err := buildURL(base, target.LandingPath)
	if err != nil {
		return endpoints{}, err
	}
	transfer, err := buildURL(base, target.TransferPath)
	if err != nil {
		return endpoints{}, err
	}

	return endpoints{base: base, login: login, landing: landing, transfer: transfer}, nil
}

func buildURL(base *url.URL, path string) (string, error) {
	if path == "" {
		return "", errors.New("endpoint path is required")
	}

	endpoint, err := base.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse endpoint path %q: %w", path, err)
	}
	return endpoint.String(), nil
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxDrainBytes))
	_ = body.Close()
}
