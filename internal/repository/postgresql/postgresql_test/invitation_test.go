package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/invitation"
	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/holiday-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestInvitation(t *testing.T, ctx context.Context, companyID, inviterID, email string, expiresAt time.Time) invitation.Invitation {
	t.Helper()
	created, err := postgresql.NewInvitationRepository(testDB).Create(ctx, invitation.Invitation{
		CompanyID:      companyID,
		InvitedByID:    inviterID,
		Email:          email,
		FirstName:      "Grace",
		LastName:       "Hopper",
		Role:           user.RoleEmployee,
		AnnualHolidays: 25,
		Token:          uuid.NewString(),
		Status:         invitation.StatusPending,
		ExpiresAt:      expiresAt,
	})
	require.NoError(t, err)
	return created
}

func TestInvitationRepository_CreateAndGetByToken(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewInvitationRepository(testDB)

	acme := createTestCompany(t, ctx, "Acme Widgets")
	boss := createTestUser(t, ctx, acme.ID, "boss@acme.test", user.RoleEmployer, 20, 0)

	created := createTestInvitation(t, ctx, acme.ID, boss.ID, "grace@acme.test", time.Now().Add(time.Hour))
	assert.Equal(t, invitation.StatusPending, created.Status)
	assert.Equal(t, boss.ID, created.InvitedByID)

	found, err := repo.GetByToken(ctx, created.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Acme Widgets", found.CompanyName)
	assert.Equal(t, "Test boss@acme.test", found.InviterName)
	assert.Equal(t, 25, found.AnnualHolidays)

	_, err = repo.GetByToken(ctx, uuid.NewString())
	assert.ErrorIs(t, err, invitation.ErrInvitationNotFound)
	_, err = repo.GetByToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, invitation.ErrInvitationNotFound)
}

func TestInvitationRepository_PendingAndMarks(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewInvitationRepository(testDB)

	acme := createTestCompany(t, ctx, "Acme Widgets")
	boss := createTestUser(t, ctx, acme.ID, "boss@acme.test", user.RoleEmployer, 20, 0)
	live := createTestInvitation(t, ctx, acme.ID, boss.ID, "grace@acme.test", time.Now().Add(time.Hour))
	createTestInvitation(t, ctx, acme.ID, boss.ID, "old@acme.test", time.Now().Add(-time.Hour))

	exists, err := repo.ExistsPendingByEmail(ctx, "GRACE@acme.test", acme.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsPendingByEmail(ctx, "old@acme.test", acme.ID)
	require.NoError(t, err)
	assert.False(t, exists, "expired invitations do not block a new one")

	listed, err := repo.ListByCompany(ctx, acme.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	err = postgresql.NewTransactor(testDB).WithinTransaction(ctx, func(txCtx context.Context) error {
		locked, err := repo.GetByTokenForUpdate(txCtx, live.Token)
		if err != nil {
			return err
		}
		return repo.MarkAccepted(txCtx, locked.ID)
	})
	require.NoError(t, err)

	accepted, err := repo.GetByID(ctx, acme.ID, live.ID)
	require.NoError(t, err)
	assert.Equal(t, invitation.StatusAccepted, accepted.Status)
	assert.NotNil(t, accepted.AcceptedAt)

	other := createTestCompany(t, ctx, "Globex")
	_, err = repo.GetByID(ctx, other.ID, live.ID)
	assert.ErrorIs(t, err, invitation.ErrInvitationNotFound)

	assert.ErrorIs(t, repo.MarkRevoked(ctx, uuid.NewString()), invitation.ErrInvitationNotFound)
}
