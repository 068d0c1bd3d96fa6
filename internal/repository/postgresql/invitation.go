package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/invitation"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const invitationColumns = `i.id, i.company_id, i.invited_by_id, i.email, i.first_name, i.last_name, i.role,
	i.annual_holidays, i.token, i.status, i.expires_at, i.accepted_at, i.revoked_at,
	i.created_at, i.updated_at`

type invitationRepositoryImpl struct {
	db *database.DB
}

// NewInvitationRepository creates a new invitation repository instance
func NewInvitationRepository(db *database.DB) invitation.InvitationRepository {
	return &invitationRepositoryImpl{db: db}
}

func invitationDest(inv *invitation.Invitation, invitedBy **string) []any {
	return []any{
		&inv.ID, &inv.CompanyID, invitedBy, &inv.Email, &inv.FirstName, &inv.LastName, &inv.Role,
		&inv.AnnualHolidays, &inv.Token, &inv.Status, &inv.ExpiresAt, &inv.AcceptedAt, &inv.RevokedAt,
		&inv.CreatedAt, &inv.UpdatedAt,
	}
}

func scanInvitation(row pgx.Row) (invitation.Invitation, error) {
	var (
		inv       invitation.Invitation
		invitedBy *string
	)
	if err := row.Scan(invitationDest(&inv, &invitedBy)...); err != nil {
		return invitation.Invitation{}, err
	}
	if invitedBy != nil {
		inv.InvitedByID = *invitedBy
	}
	return inv, nil
}

func (r *invitationRepositoryImpl) getOne(ctx context.Context, query string, args ...any) (invitation.Invitation, error) {
	q := GetQuerier(ctx, r.db)

	inv, err := scanInvitation(q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNotFound(err) {
			return invitation.Invitation{}, invitation.ErrInvitationNotFound
		}
		return invitation.Invitation{}, fmt.Errorf("failed to get invitation: %w", err)
	}
	return inv, nil
}

// Create implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) Create(ctx context.Context, inv invitation.Invitation) (invitation.Invitation, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return invitation.Invitation{}, fmt.Errorf("failed to generate invitation id: %w", err)
	}

	query := `
		INSERT INTO invitations AS i (
			id, company_id, invited_by_id, email, first_name, last_name, role,
			annual_holidays, token, status, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + invitationColumns

	var invitedBy *string
	if inv.InvitedByID != "" {
		invitedBy = &inv.InvitedByID
	}

	q := GetQuerier(ctx, r.db)
	created, err := scanInvitation(q.QueryRow(ctx, query,
		id.String(), inv.CompanyID, invitedBy, inv.Email, inv.FirstName, inv.LastName,
		string(inv.Role), inv.AnnualHolidays, inv.Token, string(inv.Status), inv.ExpiresAt,
	))
	if err != nil {
		return invitation.Invitation{}, fmt.Errorf("failed to create invitation: %w", err)
	}
	return created, nil
}

// GetByToken implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) GetByToken(ctx context.Context, token string) (invitation.InvitationWithDetails, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + invitationColumns + `,
			c.name AS company_name,
			COALESCE(NULLIF(TRIM(inviter.first_name || ' ' || inviter.last_name), ''), inviter.email, '') AS inviter_name
		FROM invitations i
		JOIN companies c ON c.id = i.company_id
		LEFT JOIN users inviter ON inviter.id = i.invited_by_id
		WHERE i.token = $1
	`

	var (
		inv       invitation.InvitationWithDetails
		invitedBy *string
	)
	dest := append(invitationDest(&inv.Invitation, &invitedBy), &inv.CompanyName, &inv.InviterName)
	if err := q.QueryRow(ctx, query, token).Scan(dest...); err != nil {
		if isNotFound(err) {
			return invitation.InvitationWithDetails{}, invitation.ErrInvitationNotFound
		}
		return invitation.InvitationWithDetails{}, fmt.Errorf("failed to get invitation by token: %w", err)
	}
	if invitedBy != nil {
		inv.InvitedByID = *invitedBy
	}
	return inv, nil
}

// GetByTokenForUpdate implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) GetByTokenForUpdate(ctx context.Context, token string) (invitation.Invitation, error) {
	return r.getOne(ctx, `SELECT `+invitationColumns+` FROM invitations i WHERE i.token = $1 FOR UPDATE`, token)
}

// GetByID implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) GetByID(ctx context.Context, companyID, id string) (invitation.Invitation, error) {
	return r.getOne(ctx, `SELECT `+invitationColumns+` FROM invitations i WHERE i.id = $1 AND i.company_id = $2 FOR UPDATE`, id, companyID)
}

// ExistsPendingByEmail implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) ExistsPendingByEmail(ctx context.Context, email, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM invitations
			WHERE LOWER(email) = LOWER($1) AND company_id = $2 AND status = 'pending' AND expires_at > NOW()
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, email, companyID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pending invitation: %w", err)
	}
	return exists, nil
}

// ListByCompany implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]invitation.Invitation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + invitationColumns + ` FROM invitations i WHERE i.company_id = $1 ORDER BY i.created_at DESC, i.id DESC`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	invitations := make([]invitation.Invitation, 0)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return invitations, nil
}

// MarkAccepted implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) MarkAccepted(ctx context.Context, id string) error {
	return r.mark(ctx, `
		UPDATE invitations
		SET status = 'accepted', accepted_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`, id)
}

// MarkRevoked implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) MarkRevoked(ctx context.Context, id string) error {
	return r.mark(ctx, `
		UPDATE invitations
		SET status = 'revoked', revoked_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`, id)
}

func (r *invitationRepositoryImpl) mark(ctx context.Context, query, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		if isNotFound(err) {
			return invitation.ErrInvitationNotFound
		}
		return fmt.Errorf("failed to update invitation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return invitation.ErrInvitationNotFound
	}
	return nil
}
