package invitation

import "context"

// InvitationRepository defines the interface for invitation data access
type InvitationRepository interface {
	Create(ctx context.Context, inv Invitation) (Invitation, error)

	// GetByToken retrieves an invitation by token with the company and
	// inviter names.
	GetByToken(ctx context.Context, token string) (InvitationWithDetails, error)

	// GetByTokenForUpdate locks the row until the surrounding transaction
	// ends.
	GetByTokenForUpdate(ctx context.Context, token string) (Invitation, error)

	GetByID(ctx context.Context, companyID, id string) (Invitation, error)

	// ExistsPendingByEmail checks if email has a pending non-expired invitation in the company
	ExistsPendingByEmail(ctx context.Context, email, companyID string) (bool, error)

	// ListByCompany returns every invitation of the company, newest first.
	ListByCompany(ctx context.Context, companyID string) ([]Invitation, error)

	MarkAccepted(ctx context.Context, id string) error
	MarkRevoked(ctx context.Context, id string) error
}
