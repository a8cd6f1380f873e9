package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/swim_bot/internal/model"
	"github.com/Freeeeeet/swim_bot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicate нарушение уникального индекса при вставке
var ErrDuplicate = base.ErrDuplicate

// scanner общий интерфейс pgx.Row и pgx.Rows
type scanner interface {
	Scan(dest ...any) error
}

const clientColumns = `id, telegram_id, username, first_name, last_name, is_admin, notifications_enabled, created_at`

type ClientRepository struct {
	pool *pgxpool.Pool
}

func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

func scanClient(row scanner) (*model.Client, error) {
	var client model.Client
	err := row.Scan(
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
	return &client, nil
}

// Create создаёт нового клиента
func (r *ClientRepository) Create(ctx context.Context, client *model.Client) error {
	query := `
		INSERT INTO clients (telegram_id, username, first_name, last_name, is_admin, notifications_enabled)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		client.TelegramID,
		client.Username,
		client.FirstName,
		client.LastName,
		client.IsAdmin,
		client.NotificationsEnabled,
	).Scan(&client.ID, &client.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return fmt.Errorf("create client: %w", ErrDuplicate)
		}
		return fmt.Errorf("create client: %w", err)
	}

	return nil
}

// GetByTelegramID получает клиента по Telegram ID
func (r *ClientRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE telegram_id = $1`

	client, err := scanClient(r.pool.QueryRow(ctx, query, telegramID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Клиент не найден
		}
		return nil, fmt.Errorf("get client by telegram id: %w", err)
	}

	return client, nil
}

// GetByID получает клиента по ID
func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	client, err := scanClient(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by id: %w", err)
	}

	return client, nil
}

// UpdateProfile обновляет имя и признак администратора
func (r *ClientRepository) UpdateProfile(ctx context.Context, client *model.Client) error {
	query := `
		UPDATE clients
		SET username = $1, first_name = $2, last_name = $3, is_admin = $4
		WHERE id = $5
	`

	result, err := r.pool.Exec(
		ctx, query,
		client.Username,
		client.FirstName,
		client.LastName,
		client.IsAdmin,
		client.ID,
	)

	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("client not found")
	}

	return nil
}

// SetNotifications включает или выключает напоминания
func (r *ClientRepository) SetNotifications(ctx context.Context, id int64, enabled bool) error {
	query := `UPDATE clients SET notifications_enabled = $1 WHERE id = $2`

	result, err := r.pool.Exec(ctx, query, enabled, id)
	if err != nil {
		return fmt.Errorf("set notifications: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("client not found")
	}

	return nil
}

// CountClients считает клиентов (без администраторов)
func (r *ClientRepository) CountClients(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM clients WHERE is_admin = false`

	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}

	return count, nil
}

// ListClients получает клиентов (без администраторов), новые первыми
func (r *ClientRepository) ListClients(ctx context.Context) ([]*model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE is_admin = false ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []*model.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}

	return clients, nil
}
