package auth

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/taskloop/backend/domain"
	"github.com/taskloop/backend/identity"
	"github.com/taskloop/backend/repository"
)

// UseCase coordinates the identity provider and the local user mirror.
type UseCase struct {
	users    repository.UserRepository
	provider identity.Provider
	logger   *zap.Logger
}

func New(users repository.UserRepository, provider identity.Provider, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		provider: provider,
		logger:   logger,
	}
}

// Authenticate issues a token for a known user. An email with no local user
// record fails with an unauthorized-class error; a provider lookup failure
// propagates as-is.
func (uc *UseCase) Authenticate(ctx context.Context, email string) (string, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.NewError(domain.ErrCodeUnauthorized, "email is not registered")
	}
	return uc.GenerateToken(ctx, email)
}

// GenerateToken resolves the provider account for the email and signs a
// fresh token bound to it.
func (uc *UseCase) GenerateToken(ctx context.Context, email string) (string, error) {
	account, err := uc.provider.AccountByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return uc.provider.IssueToken(ctx, account.ID)
}

// Register creates a provider account and mirrors it into the local user
// store. The local duplicate check runs first to spare a provider round trip,
// but the provider's own check is authoritative: its conflict also surfaces
// as ErrUserExists, any other provider failure propagates unchanged. A failed
// mirror write is logged and surfaced without rolling back the provider side.
func (uc *UseCase) Register(ctx context.Context, email string) (*identity.Account, error) {
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUserExists
	}

	account, err := uc.provider.CreateAccount(ctx, email)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:        account.ID,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		uc.logger.Error("provider account created but local mirror write failed",
			zap.String("account_id", account.ID),
			zap.Error(err))
		return nil, err
	}

	return account, nil
}
