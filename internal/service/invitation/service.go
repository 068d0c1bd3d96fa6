package invitation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/invitation"
	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/validator"
	serviceAuth "github.com/cmlabs-hris/holiday-backend-go/internal/service/auth"
	"github.com/google/uuid"
)

type InvitationServiceImpl struct {
	tx             database.Transactor
	invitationRepo invitation.InvitationRepository
	userRepo       user.UserRepository
	companyRepo    company.CompanyRepository
	expiry         time.Duration
}

// NewInvitationService builds the service. A non-positive expiry falls back
// to invitation.DefaultExpiry.
func NewInvitationService(
	tx database.Transactor,
	invitationRepo invitation.InvitationRepository,
	userRepo user.UserRepository,
	companyRepo company.CompanyRepository,
	expiry time.Duration,
) invitation.InvitationService {
	if expiry <= 0 {
		expiry = invitation.DefaultExpiry
	}
	return &InvitationServiceImpl{
		tx:             tx,
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		companyRepo:    companyRepo,
		expiry:         expiry,
	}
}

// Create implements invitation.InvitationService.
func (s *InvitationServiceImpl) Create(ctx context.Context, actor user.Actor, req invitation.CreateRequest) (invitation.InvitationResponse, error) {
	if !actor.IsEmployer() {
		return invitation.InvitationResponse{}, user.ErrEmployerAccessRequired
	}
	if err := req.Validate(); err != nil {
		return invitation.InvitationResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	role := user.RoleEmployee
	if req.Role != nil {
		role = user.Role(*req.Role)
	}
	annual := user.DefaultAnnualHolidays
	if req.AnnualHolidays != nil {
		annual = *req.AnnualHolidays
	}

	var created invitation.Invitation
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.ensureEmailFree(txCtx, email); err != nil {
			return err
		}

		pending, err := s.invitationRepo.ExistsPendingByEmail(txCtx, email, actor.CompanyID)
		if err != nil {
			return fmt.Errorf("failed to check pending invitation: %w", err)
		}
		if pending {
			return invitation.ErrEmailAlreadyInvited
		}

		created, err = s.invitationRepo.Create(txCtx, invitation.Invitation{
			CompanyID:      actor.CompanyID,
			InvitedByID:    actor.UserID,
			Email:          email,
			FirstName:      strings.TrimSpace(req.FirstName),
			LastName:       strings.TrimSpace(req.LastName),
			Role:           role,
			AnnualHolidays: annual,
			Token:          uuid.NewString(),
			Status:         invitation.StatusPending,
			ExpiresAt:      time.Now().Add(s.expiry),
		})
		return err
	})
	if err != nil {
		return invitation.InvitationResponse{}, err
	}

	slog.Info("invitation created", "company_id", actor.CompanyID, "invitation_id", created.ID)
	return invitation.NewInvitationResponse(created), nil
}

// List implements invitation.InvitationService.
func (s *InvitationServiceImpl) List(ctx context.Context, actor user.Actor) ([]invitation.InvitationResponse, error) {
	if !actor.IsEmployer() {
		return nil, user.ErrEmployerAccessRequired
	}

	invitations, err := s.invitationRepo.ListByCompany(ctx, actor.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}

	resp := make([]invitation.InvitationResponse, 0, len(invitations))
	for _, inv := range invitations {
		resp = append(resp, invitation.NewInvitationResponse(inv))
	}
	return resp, nil
}

// Revoke implements invitation.InvitationService.
func (s *InvitationServiceImpl) Revoke(ctx context.Context, actor user.Actor, id string) error {
	if !actor.IsEmployer() {
		return user.ErrEmployerAccessRequired
	}
	if !validator.IsValidUUID(id) {
		return invitation.ErrInvitationNotFound
	}

	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		inv, err := s.invitationRepo.GetByID(txCtx, actor.CompanyID, id)
		if err != nil {
			return err
		}

		switch inv.Status {
		case invitation.StatusAccepted:
			return invitation.ErrCannotRevokeAccepted
		case invitation.StatusRevoked:
			return invitation.ErrInvitationRevoked
		}

		return s.invitationRepo.MarkRevoked(txCtx, inv.ID)
	})
}

// GetByToken implements invitation.InvitationService.
func (s *InvitationServiceImpl) GetByToken(ctx context.Context, token string) (invitation.InvitationDetailResponse, error) {
	if !validator.IsValidUUID(token) {
		return invitation.InvitationDetailResponse{}, invitation.ErrInvitationNotFound
	}

	inv, err := s.invitationRepo.GetByToken(ctx, token)
	if err != nil {
		return invitation.InvitationDetailResponse{}, err
	}

	return invitation.InvitationDetailResponse{
		Email:       inv.Email,
		FirstName:   inv.FirstName,
		LastName:    inv.LastName,
		CompanyName: inv.CompanyName,
		Role:        string(inv.Role),
		InviterName: inv.InviterName,
		Status:      string(inv.Status),
		ExpiresAt:   inv.ExpiresAt.Format(time.RFC3339),
		IsExpired:   inv.IsExpired(),
	}, nil
}

// Accept implements invitation.InvitationService. The invitation row stays
// locked until the account exists, so a token is spent at most once.
func (s *InvitationServiceImpl) Accept(ctx context.Context, req invitation.AcceptRequest) (invitation.AcceptResponse, error) {
	if !validator.IsValidUUID(req.Token) {
		return invitation.AcceptResponse{}, invitation.ErrInvitationNotFound
	}
	if err := req.Validate(); err != nil {
		return invitation.AcceptResponse{}, err
	}

	hash, err := serviceAuth.HashPassword(req.Password)
	if err != nil {
		return invitation.AcceptResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var (
		created user.User
		tenant  company.Company
	)
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		inv, err := s.invitationRepo.GetByTokenForUpdate(txCtx, req.Token)
		if err != nil {
			return err
		}
		if err := inv.AcceptError(); err != nil {
			return err
		}
		if err := s.ensureEmailFree(txCtx, inv.Email); err != nil {
			return err
		}

		tenant, err = s.companyRepo.GetByID(txCtx, inv.CompanyID)
		if err != nil {
			return err
		}

		created, err = s.userRepo.Create(txCtx, user.User{
			CompanyID:      &inv.CompanyID,
			Email:          inv.Email,
			PasswordHash:   &hash,
			FirstName:      inv.FirstName,
			LastName:       inv.LastName,
			Role:           inv.Role,
			AnnualHolidays: inv.AnnualHolidays,
		})
		if err != nil {
			return err
		}

		return s.invitationRepo.MarkAccepted(txCtx, inv.ID)
	})
	if err != nil {
		return invitation.AcceptResponse{}, err
	}

	slog.Info("invitation accepted", "company_id", tenant.ID, "user_id", created.ID)
	return invitation.AcceptResponse{
		CompanyID:   tenant.ID,
		CompanyName: tenant.Name,
		User:        user.NewUserResponse(created),
	}, nil
}

func (s *InvitationServiceImpl) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return user.ErrUserEmailExists
	case errors.Is(err, user.ErrUserNotFound):
		return nil
	default:
		return fmt.Errorf("failed to get user by email: %w", err)
	}
}
