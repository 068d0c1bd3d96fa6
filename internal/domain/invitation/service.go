package invitation

import (
	"context"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/user"
)

// InvitationService defines the interface for invitation business logic
type InvitationService interface {
	// Create is employer only. The token is returned to the employer, who
	// hands it to the invitee.
	Create(ctx context.Context, actor user.Actor, req CreateRequest) (InvitationResponse, error)
	List(ctx context.Context, actor user.Actor) ([]InvitationResponse, error)
	Revoke(ctx context.Context, actor user.Actor, id string) error

	// GetByToken retrieves invitation details by token (public endpoint)
	GetByToken(ctx context.Context, token string) (InvitationDetailResponse, error)

	// Accept creates the invitee's account inside the inviting company.
	Accept(ctx context.Context, req AcceptRequest) (AcceptResponse, error)
}
