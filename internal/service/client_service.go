package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/swim_bot/internal/metrics"
	"github.com/Freeeeeet/swim_bot/internal/model"
	"github.com/Freeeeeet/swim_bot/internal/repository"
	"go.uber.org/zap"
)

// AdminChecker список администраторов (config.Config)
type AdminChecker interface {
	IsAdmin(telegramID int64) bool
}

// Profile данные пользователя Telegram, приходящие с каждым сообщением
type Profile struct {
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
}

type ClientService struct {
	clients ClientStore
	admins  AdminChecker
	logger  *zap.Logger
}

func NewClientService(clients ClientStore, admins AdminChecker, logger *zap.Logger) *ClientService {
	return &ClientService{
		clients: clients,
		admins:  admins,
		logger:  logger,
	}
}

// Register регистрирует или обновляет клиента. Признак администратора всегда берётся из конфигурации.
func (s *ClientService) Register(ctx context.Context, p Profile) (*model.Client, error) {
	isAdmin := s.admins.IsAdmin(p.TelegramID)

	existing, err := s.clients.GetByTelegramID(ctx, p.TelegramID)
	if err != nil {
		return nil, fmt.Errorf("check existing client: %w", err)
	}

	if existing != nil {
		if existing.Username == p.Username &&
			existing.FirstName == p.FirstName &&
			existing.LastName == p.LastName &&
			existing.IsAdmin == isAdmin {
			return existing, nil
		}

		existing.Username = p.Username
		existing.FirstName = p.FirstName
		existing.LastName = p.LastName
		existing.IsAdmin = isAdmin

		if err := s.clients.UpdateProfile(ctx, existing); err != nil {
			return nil, fmt.Errorf("update client: %w", err)
		}

		s.logger.Info("Client updated",
			zap.Int64("telegram_id", p.TelegramID),
			zap.String("username", p.Username),
		)

		return existing, nil
	}

	client := &model.Client{
		TelegramID:           p.TelegramID,
		Username:             p.Username,
		FirstName:            p.FirstName,
		LastName:             p.LastName,
		IsAdmin:              isAdmin,
		NotificationsEnabled: true,
	}

	if err := s.clients.Create(ctx, client); err != nil {
		// Параллельный /start того же пользователя
		if errors.Is(err, repository.ErrDuplicate) {
			return s.GetByTelegramID(ctx, p.TelegramID)
		}
		return nil, fmt.Errorf("create client: %w", err)
	}

	metrics.RecordRegistration()
	s.logger.Info("New client registered",
		zap.Int64("client_id", client.ID),
		zap.Int64("telegram_id", p.TelegramID),
		zap.String("username", p.Username),
		zap.Bool("is_admin", isAdmin),
	)

	return client, nil
}

// GetByTelegramID получает клиента по Telegram ID
func (s *ClientService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Client, error) {
	client, err := s.clients.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	if client == nil {
		return nil, ErrClientNotFound
	}
	return client, nil
}

// ToggleNotifications переключает напоминания и возвращает новое значение
func (s *ClientService) ToggleNotifications(ctx context.Context, client *model.Client) (bool, error) {
	enabled := !client.NotificationsEnabled

	if err := s.clients.SetNotifications(ctx, client.ID, enabled); err != nil {
		return client.NotificationsEnabled, fmt.Errorf("toggle notifications: %w", err)
	}
	client.NotificationsEnabled = enabled

	s.logger.Info("Notifications toggled",
		zap.Int64("client_id", client.ID),
		zap.Bool("enabled", enabled),
	)

	return enabled, nil
}
