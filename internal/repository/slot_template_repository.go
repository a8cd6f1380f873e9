package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/swim_bot/internal/model"
	"github.com/Freeeeeet/swim_bot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

const templateColumns = `id, weekday, start_minute, end_minute, capacity, is_active, created_at`

type SlotTemplateRepository struct {
	pool *pgxpool.Pool
}

func NewSlotTemplateRepository(pool *pgxpool.Pool) *SlotTemplateRepository {
	return &SlotTemplateRepository{pool: pool}
}

func scanTemplate(row scanner) (*model.SlotTemplate, error) {
	var (
		tmpl        model.SlotTemplate
		weekday     int
		startMinute int
		endMinute   int
	)
	err := row.Scan(
		&tmpl.ID,
		&weekday,
		&startMinute,
		&endMinute,
		&tmpl.Capacity,
		&tmpl.IsActive,
		&tmpl.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	tmpl.Weekday = time.Weekday(weekday)
	tmpl.Start = model.ClockTime{Hour: startMinute / 60, Minute: startMinute % 60}
	tmpl.End = model.ClockTime{Hour: endMinute / 60, Minute: endMinute % 60}
	return &tmpl, nil
}

func (r *SlotTemplateRepository) queryTemplates(ctx context.Context, query string, args ...any) ([]*model.SlotTemplate, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*model.SlotTemplate
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot template: %w", err)
		}
		templates = append(templates, tmpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slot templates: %w", err)
	}

	return templates, nil
}

// Create создаёт новое окно расписания
func (r *SlotTemplateRepository) Create(ctx context.Context, tmpl *model.SlotTemplate) error {
	query := `
		INSERT INTO slot_templates (weekday, start_minute, end_minute, capacity, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		int(tmpl.Weekday),
		tmpl.Start.Minutes(),
		tmpl.End.Minutes(),
		tmpl.Capacity,
		tmpl.IsActive,
	).Scan(&tmpl.ID, &tmpl.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return fmt.Errorf("create slot template: %w", ErrDuplicate)
		}
		return fmt.Errorf("create slot template: %w", err)
	}

	return nil
}

// GetByID получает окно по ID
func (r *SlotTemplateRepository) GetByID(ctx context.Context, id int64) (*model.SlotTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM slot_templates WHERE id = $1`

	tmpl, err := scanTemplate(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot template by id: %w", err)
	}

	return tmpl, nil
}

// ListActiveByWeekday получает активные окна дня недели, упорядоченные по началу
func (r *SlotTemplateRepository) ListActiveByWeekday(ctx context.Context, weekday time.Weekday) ([]*model.SlotTemplate, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM slot_templates
		WHERE weekday = $1 AND is_active = true
		ORDER BY start_minute
	`

	templates, err := r.queryTemplates(ctx, query, int(weekday))
	if err != nil {
		return nil, fmt.Errorf("list active slot templates: %w", err)
	}

	return templates, nil
}

// FindActive ищет активное окно по дню недели и времени начала
func (r *SlotTemplateRepository) FindActive(ctx context.Context, weekday time.Weekday, start model.ClockTime) (*model.SlotTemplate, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM slot_templates
		WHERE weekday = $1 AND start_minute = $2 AND is_active = true
		ORDER BY id
		LIMIT 1
	`

	tmpl, err := scanTemplate(r.pool.QueryRow(ctx, query, int(weekday), start.Minutes()))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active slot template: %w", err)
	}

	return tmpl, nil
}

// ListAll получает все окна (включая неактивные), по дням недели и началу
func (r *SlotTemplateRepository) ListAll(ctx context.Context) ([]*model.SlotTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM slot_templates ORDER BY weekday, start_minute`

	templates, err := r.queryTemplates(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list slot templates: %w", err)
	}

	return templates, nil
}

// SetActive включает или выключает окно. Второе активное окно на то же время даёт ErrDuplicate.
func (r *SlotTemplateRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE slot_templates SET is_active = $1 WHERE id = $2`

	result, err := r.pool.Exec(ctx, query, active, id)
	if err != nil {
		if base.IsUniqueViolation(err) {
			return fmt.Errorf("set slot template active: %w", ErrDuplicate)
		}
		return fmt.Errorf("set slot template active: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot template not found")
	}

	return nil
}

// Delete удаляет окно. Уже созданные тренировки не трогает: связь с окном только по дню и времени.
func (r *SlotTemplateRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM slot_templates WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete slot template: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot template not found")
	}

	return nil
}
