package ports

import (
	"context"

	"github.com/bnema/altoro-cli/internal/domain"
)

type SessionManager interface {
	Login(ctx context.Context, creds domain.Credentials) (domain.LoginResult, error)
	Logout()
}
