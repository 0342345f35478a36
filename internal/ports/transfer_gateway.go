package ports

import (
	"context"

	"github.com/bnema/altoro-cli/internal/domain"
)

type TransferGateway interface {
	SubmitTransfer(ctx context.Context, session domain.Session, form domain.TransferForm) (domain.TransferResponse, error)
}
