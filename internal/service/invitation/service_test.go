package invitation_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/company"
	domainInvitation "github.com/cmlabs-hris/holiday-backend-go/internal/domain/invitation"
	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/holiday-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/holiday-backend-go/internal/service/invitation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	store  *memory.Store
	svc    domainInvitation.InvitationService
	boss   user.Actor
	worker user.Actor
	tenant company.Company
}

func setup(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	c := store.AddCompany(company.Company{Name: "Acme", Slug: "acme"})
	boss := store.AddUser(user.User{CompanyID: &c.ID, Email: "boss@acme.com", FirstName: "Erin", LastName: "Boss", Role: user.RoleEmployer, AnnualHolidays: 25})
	worker := store.AddUser(user.User{CompanyID: &c.ID, Email: "ann@acme.com", FirstName: "Ann", Role: user.RoleEmployee, AnnualHolidays: 20})

	return fixture{
		store:  store,
		svc:    invitation.NewInvitationService(store, store.Invitations(), store.Users(), store.Companies(), 0),
		boss:   user.Actor{UserID: boss.ID, CompanyID: c.ID, Role: user.RoleEmployer},
		worker: user.Actor{UserID: worker.ID, CompanyID: c.ID, Role: user.RoleEmployee},
		tenant: c,
	}
}

func intPtr(i int) *int { return &i }

func invite(t *testing.T, f fixture, email string) domainInvitation.InvitationResponse {
	t.Helper()
	created, err := f.svc.Create(context.Background(), f.boss, domainInvitation.CreateRequest{
		Email:          email,
		FirstName:      "Grace",
		LastName:       "Hopper",
		AnnualHolidays: intPtr(22),
	})
	require.NoError(t, err)
	return created
}

func accept(f fixture, token string) (domainInvitation.AcceptResponse, error) {
	return f.svc.Accept(context.Background(), domainInvitation.AcceptRequest{
		Token:           token,
		Password:        "password123",
		ConfirmPassword: "password123",
	})
}

func TestCreate(t *testing.T) {
	f := setup(t)

	created := invite(t, f, " Grace@Acme.com ")
	assert.Equal(t, "grace@acme.com", created.Email)
	assert.Equal(t, "employee", created.Role)
	assert.Equal(t, 22, created.AnnualHolidays)
	assert.Equal(t, "pending", created.Status)
	assert.True(t, validator.IsValidUUID(created.Token))
	assert.False(t, created.IsExpired)

	expires, err := time.Parse(time.RFC3339, created.ExpiresAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(domainInvitation.DefaultExpiry), expires, time.Minute)

	listed, err := f.svc.List(context.Background(), f.boss)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}

func TestCreate_Rejections(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	invite(t, f, "grace@acme.com")

	_, err := f.svc.Create(ctx, f.worker, domainInvitation.CreateRequest{Email: "x@acme.com", FirstName: "X"})
	assert.ErrorIs(t, err, user.ErrEmployerAccessRequired)

	_, err = f.svc.Create(ctx, f.boss, domainInvitation.CreateRequest{Email: "GRACE@acme.com", FirstName: "G"})
	assert.ErrorIs(t, err, domainInvitation.ErrEmailAlreadyInvited)

	_, err = f.svc.Create(ctx, f.boss, domainInvitation.CreateRequest{Email: "ann@acme.com", FirstName: "Ann"})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	_, err = f.svc.Create(ctx, f.boss, domainInvitation.CreateRequest{Email: "nope", Role: func() *string { s := "owner"; return &s }()})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "first_name")
	assert.Contains(t, fields, "role")

	_, err = f.svc.List(ctx, f.worker)
	assert.ErrorIs(t, err, user.ErrEmployerAccessRequired)
}

func TestAccept_CreatesAccountInCompany(t *testing.T) {
	f := setup(t)
	created := invite(t, f, "grace@acme.com")

	details, err := f.svc.GetByToken(context.Background(), created.Token)
	require.NoError(t, err)
	assert.Equal(t, "Acme", details.CompanyName)
	assert.Equal(t, "Erin Boss", details.InviterName)
	assert.Equal(t, "pending", details.Status)

	result, err := accept(f, created.Token)
	require.NoError(t, err)
	assert.Equal(t, f.tenant.ID, result.CompanyID)
	assert.Equal(t, "Acme", result.CompanyName)
	assert.Equal(t, "employee", result.User.Role)
	assert.Equal(t, 22, result.User.AnnualHolidays)
	assert.Equal(t, 0, result.User.UsedHolidays)

	stored, err := f.store.Users().GetByEmail(context.Background(), "grace@acme.com")
	require.NoError(t, err)
	require.NotNil(t, stored.CompanyID)
	assert.Equal(t, f.tenant.ID, *stored.CompanyID)
	require.NotNil(t, stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.PasswordHash), []byte("password123")))

	_, err = accept(f, created.Token)
	assert.ErrorIs(t, err, domainInvitation.ErrInvitationAlreadyUsed)

	details, err = f.svc.GetByToken(context.Background(), created.Token)
	require.NoError(t, err)
	assert.Equal(t, "accepted", details.Status)
}

func TestAccept_Rejections(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	expired, err := f.store.Invitations().Create(ctx, domainInvitation.Invitation{
		CompanyID: f.tenant.ID,
		Email:     "late@acme.com",
		FirstName: "Late",
		Role:      user.RoleEmployee,
		Token:     uuid.NewString(),
		Status:    domainInvitation.StatusPending,
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)
	_, err = accept(f, expired.Token)
	assert.ErrorIs(t, err, domainInvitation.ErrInvitationExpired)

	_, err = accept(f, uuid.NewString())
	assert.ErrorIs(t, err, domainInvitation.ErrInvitationNotFound)
	_, err = accept(f, "abc")
	assert.ErrorIs(t, err, domainInvitation.ErrInvitationNotFound)
	_, err = f.svc.GetByToken(ctx, "abc")
	assert.ErrorIs(t, err, domainInvitation.ErrInvitationNotFound)

	created := invite(t, f, "grace@acme.com")
	_, err = f.svc.Accept(ctx, domainInvitation.AcceptRequest{Token: created.Token, Password: "short", ConfirmPassword: "other"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "password")
	assert.Contains(t, verrs.ToMap(), "confirm_password")

	// Someone registered the address after the invitation went out.
	f.store.AddUser(user.User{Email: "grace@acme.com", Role: user.RoleEmployer})
	_, err = accept(f, created.Token)
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	details, err := f.svc.GetByToken(ctx, created.Token)
	require.NoError(t, err)
	assert.Equal(t, "pending", details.Status, "failed accept leaves the invitation usable")
}

func TestRevoke(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	created := invite(t, f, "grace@acme.com")

	assert.ErrorIs(t, f.svc.Revoke(ctx, f.worker, created.ID), user.ErrEmployerAccessRequired)
	assert.ErrorIs(t, f.svc.Revoke(ctx, f.boss, "abc"), domainInvitation.ErrInvitationNotFound)

	other := f.store.AddCompany(company.Company{Name: "Globex", Slug: "globex"})
	outsider := user.Actor{UserID: f.boss.UserID, CompanyID: other.ID, Role: user.RoleEmployer}
	assert.ErrorIs(t, f.svc.Revoke(ctx, outsider, created.ID), domainInvitation.ErrInvitationNotFound)

	require.NoError(t, f.svc.Revoke(ctx, f.boss, created.ID))
	assert.ErrorIs(t, f.svc.Revoke(ctx, f.boss, created.ID), domainInvitation.ErrInvitationRevoked)

	_, err := accept(f, created.Token)
	assert.ErrorIs(t, err, domainInvitation.ErrInvitationRevoked)

	// A revoked invitation no longer blocks a fresh one.
	again := invite(t, f, "grace@acme.com")
	_, err = accept(f, again.Token)
	require.NoError(t, err)
	assert.ErrorIs(t, f.svc.Revoke(ctx, f.boss, again.ID), domainInvitation.ErrCannotRevokeAccepted)
}
