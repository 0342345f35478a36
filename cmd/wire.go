package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bnema/altoro-cli/internal/adapters/altoro"
	tomlrepo "github.com/bnema/altoro-cli/internal/adapters/repo/toml"
	"github.com/bnema/altoro-cli/internal/application"
	"github.com/bnema/altoro-cli/internal/config"
	"github.com/bnema/altoro-cli/internal/domain"
	"github.com/bnema/altoro-cli/internal/logging"
	"github.com/bnema/altoro-cli/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	cfg     config.Config
	logger  *slog.Logger
	targets ports.TargetRepository
	flags   *targetFlags
}

type targetFlags struct {
	name    string
	baseURL string
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}
	logger, _ = logging.WithRunID(logger)

	repo, err := tomlrepo.NewTargetRepository(cfg.TargetsPath)
	if err != nil {
		return nil, fmt.Errorf("wire target repository: %w", err)
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		targets: repo,
		flags:   &targetFlags{},
	}, nil
}

// resolveTarget picks the profile named by --target (or config) and applies the
// --base-url (or ALTORO_BASE_URL) override on top of it.
func (a *app) resolveTarget(ctx context.Context) (domain.Target, error) {
	name := strings.TrimSpace(a.flags.name)
	if name == "" {
		name = a.cfg.Target
	}

	target, err := a.targets.GetByName(ctx, name)
	if err != nil {
		return domain.Target{}, err
	}

	baseURL := strings.TrimSpace(a.flags.baseURL)
	if baseURL == "" {
		baseURL = strings.TrimSpace(a.cfg.BaseURL)
	}
	if baseURL != "" {
		target.BaseURL = strings.TrimRight(baseURL, "/")
	}

	target = target.WithDefaults()
	if err := target.Validate(); err != nil {
		return domain.Target{}, fmt.Errorf("target %q: %w", target.Name, err)
	}
	return target, nil
}

func (a *app) newTransferService(target domain.Target) (*application.TransferService, error) {
	logger := a.logger.With("target", target.Name)
	cfg := altoro.Config{
		Target:  target,
		Timeout: a.cfg.HTTPTimeout,
		Logger:  logger,
	}

	sessions, err := altoro.NewSessionManager(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire session manager: %w", err)
	}
	gateway, err := altoro.NewTransferClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire transfer client: %w", err)
	}

	return application.NewTransferService(sessions, gateway, target.CookieName, logger), nil
}
