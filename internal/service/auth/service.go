package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx database.Transactor
	user.UserRepository
	company.CompanyService
	jwt.Service
}

func NewAuthService(tx database.Transactor, userRepository user.UserRepository, companyService company.CompanyService, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		tx:             tx,
		UserRepository: userRepository,
		CompanyService: companyService,
		Service:        jwtService,
	}
}

// HashPassword bcrypts password with the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := a.UserRepository.GetByEmail(ctx, email); err == nil {
		return auth.AccessTokenResponse{}, auth.ErrEmailAlreadyExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var employer user.User
	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		newCompany, err := a.CompanyService.Create(txCtx, strings.TrimSpace(req.CompanyName))
		if err != nil {
			return err
		}

		employer, err = a.UserRepository.Create(txCtx, user.User{
			CompanyID:      &newCompany.ID,
			Email:          email,
			PasswordHash:   &hash,
			FirstName:      strings.TrimSpace(req.FirstName),
			LastName:       strings.TrimSpace(req.LastName),
			Role:           user.RoleEmployer,
			AnnualHolidays: user.DefaultAnnualHolidays,
		})
		if errors.Is(err, user.ErrUserEmailExists) {
			return auth.ErrEmailAlreadyExists
		}
		return err
	})
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}

	return a.issue(employer)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidCredentials
	}
	if userData.CompanyID == nil {
		return auth.AccessTokenResponse{}, auth.ErrNoCompany
	}

	return a.issue(userData)
}

func (a *AuthServiceImpl) issue(u user.User) (auth.AccessTokenResponse, error) {
	token, expiresIn, err := a.Service.GenerateAccessToken(u)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return auth.AccessTokenResponse{AccessToken: token, AccessTokenExpiresIn: expiresIn}, nil
}
