package agenda

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, r *Rule) error
	GetByID(ctx context.Context, id string) (*Rule, error)
	List(ctx context.Context, filter Filter) ([]*Rule, int, error)
	ListForWeekday(ctx context.Context, weekday time.Weekday) ([]*Rule, error)
	Update(ctx context.Context, r *Rule) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const ruleColumns = "id, weekday, opens_at, closes_at, slot_every_mins, visit_duration_mins, margin_mins, active, created_at, updated_at"

func scanRule(row pgx.Row) (*Rule, error) {
	var r Rule
	var weekday int
	if err := row.Scan(
		&r.ID, &weekday, &r.OpensAt, &r.ClosesAt, &r.SlotEveryMins,
		&r.VisitDurationMins, &r.MarginMins, &r.Active, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	r.Weekday = time.Weekday(weekday)
	return &r, nil
}

func (r *pgxRepository) Create(ctx context.Context, rule *Rule) error {
	rule.ID = uuid.NewString()

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.availability_rules").
		Columns("id", "weekday", "opens_at", "closes_at", "slot_every_mins", "visit_duration_mins", "margin_mins", "active").
		Values(rule.ID, int(rule.Weekday), rule.OpensAt, rule.ClosesAt, rule.SlotEveryMins, rule.VisitDurationMins, rule.MarginMins, rule.Active).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create rule query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&rule.CreatedAt, &rule.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Rule, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(ruleColumns).
		From("public.availability_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get rule query failed: %w", err)
	}

	rule, err := scanRule(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get rule failed: %w", err)
	}
	return rule, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Rule, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		ruleColumns,
		"count(*) OVER() as total_count",
	).
		From("public.availability_rules")

	if filter.Weekday != nil {
		query = query.Where(squirrel.Eq{"weekday": int(*filter.Weekday)})
	}
	if filter.ActiveOnly {
		query = query.Where(squirrel.Eq{"active": true})
	}

	query = query.OrderBy("weekday ASC", "opens_at ASC")

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
		return nil, 0, fmt.Errorf("build list rules query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list rules failed: %w", err)
	}
	defer rows.Close()

	var rules []*Rule
	var total int

	for rows.Next() {
		var rule Rule
		var weekday int
		if err := rows.Scan(
			&rule.ID, &weekday, &rule.OpensAt, &rule.ClosesAt, &rule.SlotEveryMins,
			&rule.VisitDurationMins, &rule.MarginMins, &rule.Active,
			&rule.CreatedAt, &rule.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan rule failed: %w", err)
		}
		rule.Weekday = time.Weekday(weekday)
		rules = append(rules, &rule)
	}

	return rules, total, nil
}

func (r *pgxRepository) ListForWeekday(ctx context.Context, weekday time.Weekday) ([]*Rule, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(ruleColumns).
		From("public.availability_rules").
		Where(squirrel.Eq{"weekday": int(weekday)}).
		Where(squirrel.Eq{"active": true}).
		OrderBy("opens_at ASC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list rules for weekday query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list rules for weekday failed: %w", err)
	}
	defer rows.Close()

	var rules []*Rule
	for rows.Next() {
		var rule Rule
		var wd int
		if err := rows.Scan(
			&rule.ID, &wd, &rule.OpensAt, &rule.ClosesAt, &rule.SlotEveryMins,
			&rule.VisitDurationMins, &rule.MarginMins, &rule.Active,
			&rule.CreatedAt, &rule.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rule failed: %w", err)
		}
		rule.Weekday = time.Weekday(wd)
		rules = append(rules, &rule)
	}

	return rules, nil
}

func (r *pgxRepository) Update(ctx context.Context, rule *Rule) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.availability_rules").
		Set("opens_at", rule.OpensAt).
		Set("closes_at", rule.ClosesAt).
		Set("slot_every_mins", rule.SlotEveryMins).
		Set("visit_duration_mins", rule.VisitDurationMins).
		Set("margin_mins", rule.MarginMins).
		Set("active", rule.Active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": rule.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update rule query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update rule failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.availability_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete rule query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete rule failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
