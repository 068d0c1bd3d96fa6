package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const holidayColumns = `h.id, h.company_id, h.start_date, h.end_date, h.reason, h.type, h.paid, h.status,
	h.pending_start_date, h.pending_end_date, h.pending_reason, h.pending_type, h.pending_paid,
	h.requested_at, h.updated_at,
	COALESCE((SELECT array_agg(hu.user_id::text ORDER BY hu.user_id) FROM holiday_users hu WHERE hu.holiday_id = h.id), '{}'::text[])`

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

func scanHoliday(row pgx.Row) (holiday.Holiday, error) {
	var h holiday.Holiday
	err := row.Scan(
		&h.ID,
		&h.CompanyID,
		&h.StartDate,
		&h.EndDate,
		&h.Reason,
		&h.Type,
		&h.Paid,
		&h.Status,
		&h.PendingStartDate,
		&h.PendingEndDate,
		&h.PendingReason,
		&h.PendingType,
		&h.PendingPaid,
		&h.RequestedAt,
		&h.UpdatedAt,
		&h.UserIDs,
	)
	return h, err
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to generate holiday id: %w", err)
	}

	query := `
		INSERT INTO holidays (id, company_id, start_date, end_date, reason, type, paid, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = q.Exec(ctx, query,
		id.String(),
		h.CompanyID,
		h.StartDate,
		h.EndDate,
		h.Reason,
		string(h.Type),
		h.Paid,
		string(h.Status),
	)
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	if err := r.SetUsers(ctx, id.String(), h.UserIDs); err != nil {
		return holiday.Holiday{}, err
	}

	return r.GetByID(ctx, h.CompanyID, id.String())
}

// GetByID implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetByID(ctx context.Context, companyID, id string) (holiday.Holiday, error) {
	return r.getOne(ctx, companyID, id, "")
}

// GetByIDForUpdate implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetByIDForUpdate(ctx context.Context, companyID, id string) (holiday.Holiday, error) {
	return r.getOne(ctx, companyID, id, " FOR UPDATE OF h")
}

func (r *holidayRepositoryImpl) getOne(ctx context.Context, companyID, id, lock string) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + holidayColumns + ` FROM holidays h WHERE h.id = $1 AND h.company_id = $2` + lock

	h, err := scanHoliday(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if isNotFound(err) {
			return holiday.Holiday{}, holiday.ErrHolidayNotFound
		}
		return holiday.Holiday{}, fmt.Errorf("failed to get holiday by ID: %w", err)
	}
	return h, nil
}

// List implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context, companyID string, filter holiday.ListFilter) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	where := []string{"h.company_id = $1"}
	args := []interface{}{companyID}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		where = append(where, "h.status = ANY("+arg(statuses)+"::text[])")
	}
	if len(filter.Types) > 0 {
		types := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		where = append(where, "h.type = ANY("+arg(types)+"::text[])")
	}
	if filter.UserID != "" {
		where = append(where, "EXISTS (SELECT 1 FROM holiday_users hu WHERE hu.holiday_id = h.id AND hu.user_id = "+arg(filter.UserID)+"::uuid)")
	}
	if filter.From != nil {
		where = append(where, "h.end_date >= "+arg(*filter.From))
	}
	if filter.To != nil {
		where = append(where, "h.start_date <= "+arg(*filter.To))
	}

	order := " ORDER BY h.start_date, h.id"
	if filter.LatestFirst {
		order = " ORDER BY h.end_date DESC, h.id"
	}

	query := `SELECT ` + holidayColumns + ` FROM holidays h WHERE ` + strings.Join(where, " AND ") + order

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	holidays := make([]holiday.Holiday, 0)
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}

	return holidays, nil
}

// Update implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Update(ctx context.Context, h holiday.Holiday) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE holidays SET
			start_date = $1, end_date = $2, reason = $3, type = $4, paid = $5, status = $6,
			pending_start_date = $7, pending_end_date = $8, pending_reason = $9,
			pending_type = $10, pending_paid = $11, updated_at = NOW()
		WHERE id = $12 AND company_id = $13
	`

	var pendingType *string
	if h.PendingType != nil {
		t := string(*h.PendingType)
		pendingType = &t
	}

	tag, err := q.Exec(ctx, query,
		h.StartDate,
		h.EndDate,
		h.Reason,
		string(h.Type),
		h.Paid,
		string(h.Status),
		h.PendingStartDate,
		h.PendingEndDate,
		h.PendingReason,
		pendingType,
		h.PendingPaid,
		h.ID,
		h.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}

	return nil
}

// SetUsers implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) SetUsers(ctx context.Context, holidayID string, userIDs []string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM holiday_users WHERE holiday_id = $1`, holidayID); err != nil {
		return fmt.Errorf("failed to clear holiday users: %w", err)
	}
	if len(userIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO holiday_users (holiday_id, user_id)
		SELECT $1::uuid, u.id FROM unnest($2::uuid[]) AS u(id)
		ON CONFLICT DO NOTHING
	`
	if _, err := q.Exec(ctx, query, holidayID, userIDs); err != nil {
		return fmt.Errorf("failed to set holiday users: %w", err)
	}

	return nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, companyID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1 AND company_id = $2`, id, companyID)
	if isNotFound(err) {
		return holiday.ErrHolidayNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}

	return nil
}
