package auth

import (
	"context"
	"errors"

	"github.com/UK-Mindset/mind-set/internal"
	"github.com/UK-Mindset/mind-set/internal/storage"
)

// LocalAuthProvider resolves bearer tokens directly against the user store.
// Used in development, where no separate auth service runs.
type LocalAuthProvider struct {
	users  storage.UserRepository
	logger internal.Logger
}

func NewLocalAuthProvider(users storage.UserRepository, logger internal.Logger) *LocalAuthProvider {
	return &LocalAuthProvider{users: users, logger: logger}
}

func (a *LocalAuthProvider) ValidateTokenLocal(ctx context.Context, token string) (*internal.User, error) {
	user, err := a.users.FindUserByToken(ctx, token)
	if err != nil {
		a.logger.Warnf("invalid token: %s", token)
		return nil, errors.New("invalid token")
	}
	return user, nil
}

func (a *LocalAuthProvider) ValidateTokenRemote(ctx context.Context, token string) (*internal.User, error) {
	a.logger.Warnf("ValidateTokenRemote not implemented in LocalAuthProvider")
	return nil, errors.New("not implemented in LocalAuthProvider")
}
