package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticAdmins map[int64]bool

func (a staticAdmins) IsAdmin(telegramID int64) bool {
	return a[telegramID]
}

func TestRegisterCreatesThenRefreshes(t *testing.T) {
	ctx := context.Background()
	clients := newFakeClients()
	admins := staticAdmins{}
	service := NewClientService(clients, admins, zap.NewNop())

	created, err := service.Register(ctx, Profile{TelegramID: 77, Username: "anna", FirstName: "Anna"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, created.NotificationsEnabled)
	assert.False(t, created.IsAdmin)

	admins[77] = true
	updated, err := service.Register(ctx, Profile{TelegramID: 77, Username: "anna_swim", FirstName: "Anna", LastName: "K"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "anna_swim", updated.Username)
	assert.Equal(t, "Anna K", updated.FullName())
	assert.True(t, updated.IsAdmin)

	count, err := clients.CountClients(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "admins are not counted as clients")
}

func TestGetByTelegramIDNotFound(t *testing.T) {
	service := NewClientService(newFakeClients(), staticAdmins{}, zap.NewNop())

	_, err := service.GetByTelegramID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestToggleNotifications(t *testing.T) {
	ctx := context.Background()
	clients := newFakeClients()
	service := NewClientService(clients, staticAdmins{}, zap.NewNop())

	client, err := service.Register(ctx, Profile{TelegramID: 5})
	require.NoError(t, err)

	enabled, err := service.ToggleNotifications(ctx, client)
	require.NoError(t, err)
	assert.False(t, enabled)

	stored, err := clients.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.False(t, stored.NotificationsEnabled)

	enabled, err = service.ToggleNotifications(ctx, client)
	require.NoError(t, err)
	assert.True(t, enabled)
}
