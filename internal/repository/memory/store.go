// Package memory holds in-memory implementations of the repositories,
// used by service and handler tests in place of PostgreSQL.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/invitation"
	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/user"
	"github.com/google/uuid"
)

type txKey struct{}

// Store is a process-local database. Transactions are serialized and
// rolled back by restoring a snapshot.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	companies map[string]company.Company
	users     map[string]user.User
	holidays  map[string]holiday.Holiday

	invitations map[string]invitation.Invitation
}

func NewStore() *Store {
	return &Store{
		companies: make(map[string]company.Company),
		users:     make(map[string]user.User),
		holidays:  make(map[string]holiday.Holiday),

		invitations: make(map[string]invitation.Invitation),
	}
}

func (s *Store) Companies() company.CompanyRepository         { return &companyRepository{s} }
func (s *Store) Users() user.UserRepository                   { return &userRepository{s} }
func (s *Store) Holidays() holiday.HolidayRepository          { return &holidayRepository{s} }
func (s *Store) Invitations() invitation.InvitationRepository { return &invitationRepository{s} }

// WithinTransaction implements database.Transactor.
func (s *Store) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	companies := maps.Clone(s.companies)
	users := maps.Clone(s.users)
	holidays := make(map[string]holiday.Holiday, len(s.holidays))
	for id, h := range s.holidays {
		holidays[id] = cloneHoliday(h)
	}
	invitations := maps.Clone(s.invitations)
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.companies, s.users, s.holidays = companies, users, holidays
		s.invitations = invitations
		s.mu.Unlock()
		return err
	}
	return nil
}

// AddCompany inserts c, assigning an id when empty.
func (s *Store) AddCompany(c company.Company) company.Company {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = newID()
	}
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	s.companies[c.ID] = c
	return c
}

// AddUser inserts u, assigning an id when empty.
func (s *Store) AddUser(u user.User) user.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == "" {
		u.ID = newID()
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.ID] = u
	return u
}

// User returns the stored copy of a user, or the zero value.
func (s *Store) User(id string) user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id]
}

// Holiday returns the stored copy of a holiday and whether it exists.
func (s *Store) Holiday(id string) (holiday.Holiday, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.holidays[id]
	return cloneHoliday(h), ok
}

// HolidayCount is the number of stored holidays across all tenants.
func (s *Store) HolidayCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.holidays)
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func cloneHoliday(h holiday.Holiday) holiday.Holiday {
	h.UserIDs = slices.Clone(h.UserIDs)
	return h
}
