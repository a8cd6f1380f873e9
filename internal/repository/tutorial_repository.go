package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/swim_bot/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TutorialRepository struct {
	pool *pgxpool.Pool
}

func NewTutorialRepository(pool *pgxpool.Pool) *TutorialRepository {
	return &TutorialRepository{pool: pool}
}

// Create добавляет обучающий материал
func (r *TutorialRepository) Create(ctx context.Context, tutorial *model.Tutorial) error {
	query := `
		INSERT INTO tutorials (style, title, description, photo_ref, voice_ref, video_ref, position, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		tutorial.Style,
		tutorial.Title,
		tutorial.Description,
		tutorial.PhotoRef,
		tutorial.VoiceRef,
		tutorial.VideoRef,
		tutorial.Position,
		tutorial.IsActive,
	).Scan(&tutorial.ID, &tutorial.CreatedAt)

	if err != nil {
		return fmt.Errorf("create tutorial: %w", err)
	}

	return nil
}

// ListByStyle получает активные материалы стиля в порядке показа
func (r *TutorialRepository) ListByStyle(ctx context.Context, style model.SwimStyle) ([]*model.Tutorial, error) {
	query := `
		SELECT id, style, title, description, photo_ref, voice_ref, video_ref, position, is_active, created_at
		FROM tutorials
		WHERE style = $1 AND is_active = true
		ORDER BY position, id
	`

	rows, err := r.pool.Query(ctx, query, style)
	if err != nil {
		return nil, fmt.Errorf("list tutorials: %w", err)
	}
	defer rows.Close()

	var tutorials []*model.Tutorial
	for rows.Next() {
		var t model.Tutorial
		err := rows.Scan(
			&t.ID,
			&t.Style,
			&t.Title,
			&t.Description,
			&t.PhotoRef,
			&t.VoiceRef,
			&t.VideoRef,
			&t.Position,
			&t.IsActive,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan tutorial: %w", err)
		}
		tutorials = append(tutorials, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tutorials: %w", err)
	}

	return tutorials, nil
}

// CountAll считает все материалы (используется при заполнении базы)
func (r *TutorialRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tutorials`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count tutorials: %w", err)
	}
	return count, nil
}
