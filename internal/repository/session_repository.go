package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/swim_bot/internal/model"
	"github.com/Freeeeeet/swim_bot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

const sessionColumns = `s.id, s.client_id, s.starts_at, s.duration_minutes, s.status, s.notified, s.created_at`

// sessionWithClient выборка тренировок вместе с клиентом
const sessionWithClient = `
	SELECT ` + sessionColumns + `,
		c.id, c.telegram_id, c.username, c.first_name, c.last_name, c.is_admin, c.notifications_enabled, c.created_at
	FROM sessions s
	JOIN clients c ON c.id = s.client_id
`

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func scanSession(row scanner) (*model.Session, error) {
	var session model.Session
	err := row.Scan(
		&session.ID,
		&session.ClientID,
		&session.StartsAt,
		&session.DurationMinutes,
		&session.Status,
		&session.Notified,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func scanSessionWithClient(row scanner) (*model.Session, error) {
	var (
		session model.Session
		client  model.Client
	)
	err := row.Scan(
		&session.ID,
		&session.ClientID,
		&session.StartsAt,
		&session.DurationMinutes,
		&session.Status,
		&session.Notified,
		&session.CreatedAt,
		&client.ID,
		&client.TelegramID,
		&client.Username,
		&client.FirstName,
		&client.LastName,
		&client.IsAdmin,
		&client.NotificationsEnabled,
		&client.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	session.Client = &client
	return &session, nil
}

func (r *SessionRepository) querySessions(ctx context.Context, withClient bool, query string, args ...any) ([]*model.Session, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scan := scanSession
	if withClient {
		scan = scanSessionWithClient
	}

	var sessions []*model.Session
	for rows.Next() {
		session, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return sessions, nil
}

// Create создаёт тренировку. Повторная запись клиента на то же время даёт ErrDuplicate.
func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	query := `
		INSERT INTO sessions (client_id, starts_at, duration_minutes, status, notified)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		session.ClientID,
		session.StartsAt,
		session.DurationMinutes,
		session.Status,
		session.Notified,
	).Scan(&session.ID, &session.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return fmt.Errorf("create session: %w", ErrDuplicate)
		}
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

// GetByID получает тренировку по ID
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions s WHERE s.id = $1`

	session, err := scanSession(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session by id: %w", err)
	}

	return session, nil
}

// GetByIDWithClient получает тренировку по ID вместе с клиентом
func (r *SessionRepository) GetByIDWithClient(ctx context.Context, id int64) (*model.Session, error) {
	query := sessionWithClient + ` WHERE s.id = $1`

	session, err := scanSessionWithClient(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session with client: %w", err)
	}

	return session, nil
}

// FindScheduled ищет запланированную тренировку клиента на точное время
func (r *SessionRepository) FindScheduled(ctx context.Context, clientID int64, startsAt time.Time) (*model.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions s
		WHERE s.client_id = $1 AND s.starts_at = $2 AND s.status = 'scheduled'
		LIMIT 1
	`

	session, err := scanSession(r.pool.QueryRow(ctx, query, clientID, startsAt))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find scheduled session: %w", err)
	}

	return session, nil
}

// CountOccupying считает тренировки, занимающие место в окне (scheduled и completed)
func (r *SessionRepository) CountOccupying(ctx context.Context, startsAt time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM sessions
		WHERE starts_at = $1 AND status IN ('scheduled', 'completed')
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, startsAt).Scan(&count); err != nil {
		return 0, fmt.Errorf("count occupying sessions: %w", err)
	}

	return count, nil
}

// OccupancyBetween возвращает занятость по времени начала для тренировок в [from, to)
func (r *SessionRepository) OccupancyBetween(ctx context.Context, from, to time.Time) (map[time.Time]int, error) {
	query := `
		SELECT starts_at, COUNT(*)
		FROM sessions
		WHERE starts_at >= $1 AND starts_at < $2 AND status IN ('scheduled', 'completed')
		GROUP BY starts_at
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("query occupancy: %w", err)
	}
	defer rows.Close()

	occupancy := make(map[time.Time]int)
	for rows.Next() {
		var (
			startsAt time.Time
			count    int
		)
		if err := rows.Scan(&startsAt, &count); err != nil {
			return nil, fmt.Errorf("scan occupancy: %w", err)
		}
		occupancy[startsAt.UTC()] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate occupancy: %w", err)
	}

	return occupancy, nil
}

// UpdateStatus меняет статус тренировки
func (r *SessionRepository) UpdateStatus(ctx context.Context, id int64, status model.SessionStatus) error {
	query := `UPDATE sessions SET status = $1 WHERE id = $2`

	result, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update session status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found")
	}

	return nil
}

// MarkNotified отмечает, что напоминание отправлено. Флаг только взводится.
func (r *SessionRepository) MarkNotified(ctx context.Context, id int64) error {
	query := `UPDATE sessions SET notified = true WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark session notified: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found")
	}

	return nil
}

// ListUpcomingByClient получает будущие запланированные тренировки клиента
func (r *SessionRepository) ListUpcomingByClient(ctx context.Context, clientID int64, from time.Time, limit int) ([]*model.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions s
		WHERE s.client_id = $1 AND s.status = 'scheduled' AND s.starts_at >= $2
		ORDER BY s.starts_at
		LIMIT $3
	`

	sessions, err := r.querySessions(ctx, false, query, clientID, from, limit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming client sessions: %w", err)
	}

	return sessions, nil
}

// ListUpcoming получает все будущие запланированные тренировки с клиентами
func (r *SessionRepository) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*model.Session, error) {
	query := sessionWithClient + `
		WHERE s.status = 'scheduled' AND s.starts_at >= $1
		ORDER BY s.starts_at
		LIMIT $2
	`

	sessions, err := r.querySessions(ctx, true, query, from, limit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming sessions: %w", err)
	}

	return sessions, nil
}

// ListDueForReminder получает запланированные тренировки без напоминания,
// начинающиеся в [from, to] (обе границы включительно)
func (r *SessionRepository) ListDueForReminder(ctx context.Context, from, to time.Time) ([]*model.Session, error) {
	query := sessionWithClient + `
		WHERE s.status = 'scheduled'
		  AND s.notified = false
		  AND s.starts_at >= $1
		  AND s.starts_at <= $2
		ORDER BY s.starts_at
	`

	sessions, err := r.querySessions(ctx, true, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sessions due for reminder: %w", err)
	}

	return sessions, nil
}

// ListBetween получает тренировки с клиентами, начинающиеся в [from, to)
func (r *SessionRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*model.Session, error) {
	query := sessionWithClient + `
		WHERE s.starts_at >= $1 AND s.starts_at < $2
		ORDER BY s.starts_at
	`

	sessions, err := r.querySessions(ctx, true, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sessions between: %w", err)
	}

	return sessions, nil
}

// CountByStatus считает тренировки со статусом, начинающиеся в [from, to)
func (r *SessionRepository) CountByStatus(ctx context.Context, status model.SessionStatus, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM sessions
		WHERE status = $1 AND starts_at >= $2 AND starts_at < $3
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, status, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("count sessions by status: %w", err)
	}

	return count, nil
}

// CountScheduledFrom считает запланированные тренировки начиная с from
func (r *SessionRepository) CountScheduledFrom(ctx context.Context, from time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM sessions WHERE status = 'scheduled' AND starts_at >= $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, from).Scan(&count); err != nil {
		return 0, fmt.Errorf("count scheduled sessions: %w", err)
	}

	return count, nil
}

// CountCompletedByClient возвращает число проведённых тренировок по каждому клиенту
func (r *SessionRepository) CountCompletedByClient(ctx context.Context) (map[int64]int, error) {
	query := `
		SELECT client_id, COUNT(*)
		FROM sessions
		WHERE status = 'completed'
		GROUP BY client_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count completed by client: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var (
			clientID int64
			count    int
		)
		if err := rows.Scan(&clientID, &count); err != nil {
			return nil, fmt.Errorf("scan completed count: %w", err)
		}
		counts[clientID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completed counts: %w", err)
	}

	return counts, nil
}
