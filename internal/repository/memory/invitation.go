package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/invitation"
)

type invitationRepository struct {
	s *Store
}

func (r *invitationRepository) Create(ctx context.Context, inv invitation.Invitation) (invitation.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inv.ID = newID()
	now := time.Now()
	inv.CreatedAt, inv.UpdatedAt = now, now
	r.s.invitations[inv.ID] = inv
	return inv, nil
}

func (r *invitationRepository) GetByToken(ctx context.Context, token string) (invitation.InvitationWithDetails, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inv, ok := r.byToken(token)
	if !ok {
		return invitation.InvitationWithDetails{}, invitation.ErrInvitationNotFound
	}
	inviter := r.s.users[inv.InvitedByID]
	return invitation.InvitationWithDetails{
		Invitation:  inv,
		CompanyName: r.s.companies[inv.CompanyID].Name,
		InviterName: inviter.FullName(),
	}, nil
}

func (r *invitationRepository) GetByTokenForUpdate(ctx context.Context, token string) (invitation.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inv, ok := r.byToken(token)
	if !ok {
		return invitation.Invitation{}, invitation.ErrInvitationNotFound
	}
	return inv, nil
}

func (r *invitationRepository) byToken(token string) (invitation.Invitation, bool) {
	for _, inv := range r.s.invitations {
		if inv.Token == token {
			return inv, true
		}
	}
	return invitation.Invitation{}, false
}

func (r *invitationRepository) GetByID(ctx context.Context, companyID, id string) (invitation.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inv, ok := r.s.invitations[id]
	if !ok || inv.CompanyID != companyID {
		return invitation.Invitation{}, invitation.ErrInvitationNotFound
	}
	return inv, nil
}

func (r *invitationRepository) ExistsPendingByEmail(ctx context.Context, email, companyID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, inv := range r.s.invitations {
		if inv.CompanyID == companyID && strings.EqualFold(inv.Email, email) && inv.CanBeAccepted() {
			return true, nil
		}
	}
	return false, nil
}

func (r *invitationRepository) ListByCompany(ctx context.Context, companyID string) ([]invitation.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	invitations := make([]invitation.Invitation, 0)
	for _, inv := range r.s.invitations {
		if inv.CompanyID == companyID {
			invitations = append(invitations, inv)
		}
	}
	// uuid v7 ids sort by creation time.
	sort.Slice(invitations, func(i, j int) bool { return invitations[i].ID > invitations[j].ID })
	return invitations, nil
}

func (r *invitationRepository) MarkAccepted(ctx context.Context, id string) error {
	return r.mark(id, func(inv *invitation.Invitation, now time.Time) {
		inv.Status = invitation.StatusAccepted
		inv.AcceptedAt = &now
	})
}

func (r *invitationRepository) MarkRevoked(ctx context.Context, id string) error {
	return r.mark(id, func(inv *invitation.Invitation, now time.Time) {
		inv.Status = invitation.StatusRevoked
		inv.RevokedAt = &now
	})
}

func (r *invitationRepository) mark(id string, apply func(*invitation.Invitation, time.Time)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inv, ok := r.s.invitations[id]
	if !ok {
		return invitation.ErrInvitationNotFound
	}
	now := time.Now()
	apply(&inv, now)
	inv.UpdatedAt = now
	r.s.invitations[id] = inv
	return nil
}
