package invitation

import (
	"time"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/user"
)

// Status represents the status of an invitation
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRevoked  Status = "revoked"
)

// DefaultExpiry is how long a token stays valid when the caller does not
// configure one.
const DefaultExpiry = 7 * 24 * time.Hour

// Invitation is an employer's offer for someone to join the company. The
// account is created from it when the token is accepted.
type Invitation struct {
	ID             string
	CompanyID      string
	InvitedByID    string
	Email          string
	FirstName      string
	LastName       string
	Role           user.Role
	AnnualHolidays int
	Token          string
	Status         Status
	ExpiresAt      time.Time
	AcceptedAt     *time.Time
	RevokedAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// InvitationWithDetails adds the joined company and inviter names.
type InvitationWithDetails struct {
	Invitation
	CompanyName string
	InviterName string
}

// IsExpired checks if the invitation has expired (query-time check)
func (i *Invitation) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

// CanBeAccepted checks if the invitation can be accepted
func (i *Invitation) CanBeAccepted() bool {
	return i.Status == StatusPending && !i.IsExpired()
}

// AcceptError is the reason CanBeAccepted is false, or nil.
func (i *Invitation) AcceptError() error {
	switch {
	case i.Status == StatusAccepted:
		return ErrInvitationAlreadyUsed
	case i.Status == StatusRevoked:
		return ErrInvitationRevoked
	case i.IsExpired():
		return ErrInvitationExpired
	}
	return nil
}
