package ports

import (
	"context"

	"github.com/bnema/altoro-cli/internal/domain"
)

type TargetRepository interface {
	GetByName(ctx context.Context, name string) (domain.Target, error)
	List(ctx context.Context) ([]domain.Target, error)
}
