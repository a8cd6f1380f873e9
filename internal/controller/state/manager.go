package state

import (
	"sync"
	"time"

	"github.com/Freeeeeet/swim_bot/internal/common/clock"
)

// Manager хранит состояния диалогов в памяти процесса.
// Незавершённый диалог сбрасывается через DialogTTL.
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // telegramID -> UserData
	clock  clock.Clock
	ttl    time.Duration
}

func NewManager(c clock.Clock) *Manager {
	if c == nil {
		c = &clock.DefaultClock{}
	}
	return &Manager{
		states: make(map[int64]*UserData),
		clock:  c,
		ttl:    DialogTTL,
	}
}

// GetState текущий шаг диалога пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, ok := sm.live(telegramID); ok {
		return userData.State
	}
	return StateNone
}

// SetState переводит пользователя на шаг диалога; StateNone завершает диалог
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		delete(sm.states, telegramID)
		return
	}

	userData, ok := sm.live(telegramID)
	if !ok {
		userData = &UserData{Data: make(map[string]interface{})}
		sm.states[telegramID] = userData
	}
	userData.State = state
	userData.UpdatedAt = sm.clock.Now()
}

// GetData значение из данных диалога
func (sm *Manager) GetData(telegramID int64, key string) (interface{}, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, ok := sm.live(telegramID); ok {
		value, exists := userData.Data[key]
		return value, exists
	}
	return nil, false
}

// SetData сохраняет значение в данные диалога
func (sm *Manager) SetData(telegramID int64, key string, value interface{}) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	userData, ok := sm.live(telegramID)
	if !ok {
		userData = &UserData{State: StateNone, Data: make(map[string]interface{})}
		sm.states[telegramID] = userData
	}
	userData.Data[key] = value
	userData.UpdatedAt = sm.clock.Now()
}

// ClearState завершает диалог и удаляет его данные
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}

// live возвращает данные, если диалог не устарел. Вызывается под блокировкой.
func (sm *Manager) live(telegramID int64) (*UserData, bool) {
	userData, ok := sm.states[telegramID]
	if !ok {
		return nil, false
	}
	if sm.clock.Now().Sub(userData.UpdatedAt) > sm.ttl {
		return nil, false
	}
	return userData, true
}
