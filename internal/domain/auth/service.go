package auth

import (
	"context"
)

type AuthService interface {
	// Register creates a company together with its first employer.
	Register(ctx context.Context, req RegisterRequest) (AccessTokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (AccessTokenResponse, error)
}
