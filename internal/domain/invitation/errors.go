package invitation

import "errors"

var (
	ErrInvitationNotFound    = errors.New("invitation not found")
	ErrInvitationExpired     = errors.New("invitation has expired")
	ErrInvitationAlreadyUsed = errors.New("invitation has already been used")
	ErrInvitationRevoked     = errors.New("invitation has been revoked")
	ErrEmailAlreadyInvited   = errors.New("email already has a pending invitation in this company")
	ErrCannotRevokeAccepted  = errors.New("cannot revoke an accepted invitation")
)
