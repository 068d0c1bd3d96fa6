package postgresql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const userColumns = `id, company_id, email, password_hash, first_name, last_name, role,
	annual_holidays, used_holidays, created_at, updated_at`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.CompanyID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Role,
		&u.AnnualHolidays,
		&u.UsedHolidays,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (r *userRepositoryImpl) getOne(ctx context.Context, where string, args ...any) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, args...))
	if err != nil {
		if isNotFound(err) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return found, nil
}

func (r *userRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, `LOWER(email) = LOWER($1)`, email)
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, companyID, id string) (user.User, error) {
	return r.getOne(ctx, `id = $1 AND company_id = $2`, id, companyID)
}

// GetByIDs implements user.UserRepository.
func (r *userRepositoryImpl) GetByIDs(ctx context.Context, companyID string, ids []string) ([]user.User, error) {
	if len(ids) == 0 {
		return []user.User{}, nil
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE company_id = $1 AND id = ANY($2::uuid[]) ORDER BY id`
	return r.list(ctx, query, companyID, ids)
}

// LockByIDs implements user.UserRepository.
func (r *userRepositoryImpl) LockByIDs(ctx context.Context, companyID string, ids []string) ([]user.User, error) {
	if len(ids) == 0 {
		return []user.User{}, nil
	}
	// Rows are locked in id order.
	query := `SELECT ` + userColumns + ` FROM users WHERE company_id = $1 AND id = ANY($2::uuid[]) ORDER BY id FOR UPDATE`
	return r.list(ctx, query, companyID, ids)
}

// ListByCompany implements user.UserRepository.
func (r *userRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE company_id = $1 ORDER BY first_name, last_name, email`
	return r.list(ctx, query, companyID)
}

// ListEmployers implements user.UserRepository.
func (r *userRepositoryImpl) ListEmployers(ctx context.Context, companyID string) ([]user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE company_id = $1 AND role = $2 ORDER BY id`
	return r.list(ctx, query, companyID, string(user.RoleEmployer))
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return user.User{}, fmt.Errorf("failed to generate user id: %w", err)
	}

	query := `
		INSERT INTO users (
			id, company_id, email, password_hash, first_name, last_name, role,
			annual_holidays, used_holidays
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + userColumns

	created, err := scanUser(q.QueryRow(ctx, query,
		id.String(),
		newUser.CompanyID,
		strings.ToLower(newUser.Email),
		newUser.PasswordHash,
		newUser.FirstName,
		newUser.LastName,
		string(newUser.Role),
		newUser.AnnualHolidays,
		newUser.UsedHolidays,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, companyID, id string, req user.UpdateEmployeeRequest) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})

	if req.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.AnnualHolidays != nil {
		updates["annual_holidays"] = *req.AnnualHolidays
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}

	if len(updates) == 0 {
		return user.User{}, fmt.Errorf("no updatable fields provided for user update")
	}

	columns := make([]string, 0, len(updates))
	for col := range updates {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	setClauses := make([]string, 0, len(updates)+1)
	args := make([]interface{}, 0, len(updates)+2)
	i := 1
	for _, col := range columns {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, updates[col])
		i++
	}
	setClauses = append(setClauses, "updated_at = NOW()")

	sql := "UPDATE users SET " + strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE id = $%d AND company_id = $%d RETURNING ", i, i+1) + userColumns
	args = append(args, id, companyID)

	updated, err := scanUser(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if isNotFound(err) {
			return user.User{}, user.ErrUserNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == checkViolation {
			return user.User{}, user.ErrAnnualBelowUsed
		}
		return user.User{}, fmt.Errorf("failed to update user with id %s: %w", id, err)
	}
	return updated, nil
}

// AdjustUsedHolidays implements user.UserRepository.
func (r *userRepositoryImpl) AdjustUsedHolidays(ctx context.Context, companyID string, deltas map[string]int) error {
	if len(deltas) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	ids := make([]string, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	amounts := make([]int32, len(ids))
	for i, id := range ids {
		amounts[i] = int32(deltas[id])
	}

	query := `
		UPDATE users AS u
		SET used_holidays = u.used_holidays + d.delta, updated_at = NOW()
		FROM unnest($2::uuid[], $3::int[]) AS d(id, delta)
		WHERE u.id = d.id AND u.company_id = $1
	`

	tag, err := q.Exec(ctx, query, companyID, ids, amounts)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == checkViolation {
			return user.ErrNegativeBalance
		}
		return fmt.Errorf("failed to adjust used holidays: %w", err)
	}
	if tag.RowsAffected() != int64(len(ids)) {
		return user.ErrUserNotFound
	}

	return nil
}
