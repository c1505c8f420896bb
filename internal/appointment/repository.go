package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create inserts the appointment. The appointments table carries an
	// exclusion constraint on the blocked interval, so a concurrent booking
	// of an overlapping slot fails here even if HasOverlap saw none.
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id string) (*Appointment, error)
	List(ctx context.Context, filter Filter) ([]*Appointment, int, error)

	// ListForDate returns the non-cancelled appointments of a calendar day,
	// ordered by time. This is the snapshot the slot computation works on.
	ListForDate(ctx context.Context, day time.Time) ([]*Appointment, error)

	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error

	// HasOverlap checks if any non-cancelled appointment's blocked interval
	// intersects [from, until). excludeID ignores one appointment (updates).
	HasOverlap(ctx context.Context, from, until time.Time, excludeID string) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const apptColumns = `a.id, a.property_id, COALESCE(p.reference, ''), a.scheduled_at,
	a.duration_mins, a.margin_mins, a.blocked_from, a.blocked_until,
	a.visitor_name, a.visitor_email, a.visitor_phone, a.delegate_agent,
	a.status, a.created_at, a.updated_at`

func (r *pgxRepository) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.NewString()

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.appointments").
		Columns(
			"id", "property_id", "scheduled_at", "duration_mins", "margin_mins",
			"blocked_from", "blocked_until",
			"visitor_name", "visitor_email", "visitor_phone", "delegate_agent", "status",
		).
		Values(
			a.ID, a.PropertyID, a.ScheduledAt, a.DurationMins, a.MarginMins,
			a.BlockedFrom, a.BlockedUntil,
			a.VisitorName, a.VisitorEmail, a.VisitorPhone, a.DelegateAgent, a.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create appointment query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) &&
			(pgErr.Code == pgerrcode.ExclusionViolation || pgErr.Code == pgerrcode.UniqueViolation) {
			return ErrTimeConflict
		}
		return fmt.Errorf("create appointment failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(apptColumns).
		From("public.appointments a").
		LeftJoin("public.properties p ON a.property_id = p.id").
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get appointment query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var a Appointment
	if err := scanAppointment(row, &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get appointment failed: %w", err)
	}
	return &a, nil
}

func scanAppointment(row pgx.Row, a *Appointment) error {
	return row.Scan(
		&a.ID, &a.PropertyID, &a.PropertyRef, &a.ScheduledAt,
		&a.DurationMins, &a.MarginMins, &a.BlockedFrom, &a.BlockedUntil,
		&a.VisitorName, &a.VisitorEmail, &a.VisitorPhone, &a.DelegateAgent,
		&a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Appointment, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(apptColumns + ", count(*) OVER() as total_count").
		From("public.appointments a").
		LeftJoin("public.properties p ON a.property_id = p.id")

	if filter.PropertyID != "" {
		query = query.Where(squirrel.Eq{"a.property_id": filter.PropertyID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"a.status": filter.Status})
	}
	if filter.DateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"a.scheduled_at": filter.DateFrom})
	}
	if filter.DateTo != nil {
		query = query.Where(squirrel.Lt{"a.scheduled_at": filter.DateTo})
	}

	// Sorting
	orderBy := "a.scheduled_at"
	if filter.SortBy != "" {
		orderBy = "a." + filter.SortBy
	}

	orderDir := "ASC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}

	query = query.OrderBy(orderBy + " " + orderDir)

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list appointments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list appointments failed: %w", err)
	}
	defer rows.Close()

	var appointments []*Appointment
	var total int

	for rows.Next() {
		var a Appointment
		if err := rows.Scan(
			&a.ID, &a.PropertyID, &a.PropertyRef, &a.ScheduledAt,
			&a.DurationMins, &a.MarginMins, &a.BlockedFrom, &a.BlockedUntil,
			&a.VisitorName, &a.VisitorEmail, &a.VisitorPhone, &a.DelegateAgent,
			&a.Status, &a.CreatedAt, &a.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan appointment failed: %w", err)
		}
		appointments = append(appointments, &a)
	}

	return appointments, total, nil
}

func (r *pgxRepository) ListForDate(ctx context.Context, day time.Time) ([]*Appointment, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(apptColumns).
		From("public.appointments a").
		LeftJoin("public.properties p ON a.property_id = p.id").
		Where(squirrel.GtOrEq{"a.scheduled_at": dayStart}).
		Where(squirrel.Lt{"a.scheduled_at": dayEnd}).
		Where(squirrel.NotEq{"a.status": StatusCancelled}).
		OrderBy("a.scheduled_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list appointments for date query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments for date failed: %w", err)
	}
	defer rows.Close()

	var appointments []*Appointment
	for rows.Next() {
		var a Appointment
		if err := scanAppointment(rows, &a); err != nil {
			return nil, fmt.Errorf("scan appointment failed: %w", err)
		}
		appointments = append(appointments, &a)
	}

	return appointments, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update appointment status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update appointment status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete appointment query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete appointment failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, from, until time.Time, excludeID string) (bool, error) {
	// Half-open interval intersection:
	// (NewFrom < ExistingUntil) AND (NewUntil > ExistingFrom)
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.appointments").
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Where(squirrel.Lt{"blocked_from": until}).
		Where(squirrel.Gt{"blocked_until": from})

	if excludeID != "" {
		subQuery = subQuery.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	query := "SELECT EXISTS (" + sql + ")"

	var exists bool
	err = r.pool.QueryRow(ctx, query, args...).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}
