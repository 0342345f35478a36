package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bnema/altoro-cli/internal/domain"
	"github.com/bnema/altoro-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

// TargetRepository reads target profiles from a targets.toml file. The built-in
// testfire profile is always available unless the file overrides it by name.
type TargetRepository struct {
	path string
}

var _ ports.TargetRepository = (*TargetRepository)(nil)

func NewTargetRepository(path string) (*TargetRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("targets path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve targets path: %w", err)
	}

	return &TargetRepository{path: filepath.Clean(absPath)}, nil
}

func (r *TargetRepository) GetByName(ctx context.Context, name string) (domain.Target, error) {
	targets, err := r.List(ctx)
	if err != nil {
		return domain.Target{}, err
	}

	wanted := strings.TrimSpace(name)
	if wanted == "" {
		wanted = domain.DefaultTargetName
	}
	for _, target := range targets {
		if target.Name == wanted {
			return target, nil
		}
	}

	return domain.Target{}, fmt.Errorf("%w: %q", domain.ErrTargetNotFound, wanted)
}

func (r *TargetRepository) List(ctx context.Context) ([]domain.Target, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	byName := map[string]domain.Target{
		domain.DefaultTargetName: domain.DefaultTarget(),
	}
	for _, entry := range file.Targets {
		target := fromTargetSchema(entry)
		if err := target.Validate(); err != nil {
			return nil, fmt.Errorf("target %q: %w", entry.Name, err)
		}
		byName[target.Name] = target
	}

	targets := make([]domain.Target, 0, len(byName))
	for _, target := range byName {
		targets = append(targets, target)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i].Name < targets[j].Name })

	return targets, nil
}

func (r *TargetRepository) readSchema() (targetsFileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return targetsFileSchema{}, nil
		}
		return targetsFileSchema{}, fmt.Errorf("read targets file: %w", err)
	}

	var file targetsFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return targetsFileSchema{}, fmt.Errorf("decode targets file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return targetsFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func fromTargetSchema(entry targetSchema) domain.Target {
	name := strings.TrimSpace(entry.Name)
	target := domain.Target{
		Name:         name,
		BaseURL:      strings.TrimRight(strings.TrimSpace(entry.BaseURL), "/"),
		LoginPath:    entry.LoginPath,
		LandingPath:  entry.LandingPath,
		TransferPath: entry.TransferPath,
		CookieName:   entry.CookieName,
	}.WithDefaults()
	// WithDefaults would otherwise turn a nameless entry into the built-in profile.
	target.Name = name
	return target
}
