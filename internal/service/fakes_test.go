package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/swim_bot/internal/model"
	"github.com/Freeeeeet/swim_bot/internal/repository"
)

// fakeClients хранилище клиентов в памяти
type fakeClients struct {
	mu      sync.Mutex
	nextID  int64
	clients map[int64]*model.Client
}

func newFakeClients() *fakeClients {
	return &fakeClients{clients: make(map[int64]*model.Client)}
}

func (f *fakeClients) Create(_ context.Context, client *model.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.clients {
		if c.TelegramID == client.TelegramID {
			return repository.ErrDuplicate
		}
	}
	f.nextID++
	client.ID = f.nextID
	client.CreatedAt = time.Now()
	stored := *client
	f.clients[client.ID] = &stored
	return nil
}

func (f *fakeClients) GetByTelegramID(_ context.Context, telegramID int64) (*model.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.clients {
		if c.TelegramID == telegramID {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeClients) GetByID(_ context.Context, id int64) (*model.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.clients[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeClients) UpdateProfile(_ context.Context, client *model.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *client
	f.clients[client.ID] = &stored
	return nil
}

func (f *fakeClients) SetNotifications(_ context.Context, id int64, enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients[id].NotificationsEnabled = enabled
	return nil
}

func (f *fakeClients) CountClients(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, c := range f.clients {
		if !c.IsAdmin {
			count++
		}
	}
	return count, nil
}

func (f *fakeClients) ListClients(_ context.Context) ([]*model.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Client
	for _, c := range f.clients {
		if !c.IsAdmin {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fakeTemplates хранилище окон в памяти
type fakeTemplates struct {
	mu        sync.Mutex
	nextID    int64
	templates map[int64]*model.SlotTemplate
}

func newFakeTemplates() *fakeTemplates {
	return &fakeTemplates{templates: make(map[int64]*model.SlotTemplate)}
}

func (f *fakeTemplates) add(weekday time.Weekday, start, end string, capacity int) *model.SlotTemplate {
	s, _ := model.ParseClockTime(start)
	e, _ := model.ParseClockTime(end)
	tmpl := &model.SlotTemplate{Weekday: weekday, Start: s, End: e, Capacity: capacity, IsActive: true}
	_ = f.Create(context.Background(), tmpl)
	return tmpl
}

// hasActiveTwin повторяет частичный уникальный индекс по (weekday, start_minute)
func (f *fakeTemplates) hasActiveTwin(tmpl *model.SlotTemplate) bool {
	for _, t := range f.templates {
		if t.ID != tmpl.ID && t.IsActive && t.Weekday == tmpl.Weekday && t.Start == tmpl.Start {
			return true
		}
	}
	return false
}

func (f *fakeTemplates) Create(_ context.Context, tmpl *model.SlotTemplate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if tmpl.IsActive && f.hasActiveTwin(tmpl) {
		return repository.ErrDuplicate
	}
	f.nextID++
	tmpl.ID = f.nextID
	stored := *tmpl
	f.templates[tmpl.ID] = &stored
	return nil
}

func (f *fakeTemplates) GetByID(_ context.Context, id int64) (*model.SlotTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.templates[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeTemplates) sorted(keep func(*model.SlotTemplate) bool) []*model.SlotTemplate {
	var out []*model.SlotTemplate
	for _, t := range f.templates {
		if keep(t) {
			copied := *t
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weekday != out[j].Weekday {
			return out[i].Weekday < out[j].Weekday
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

func (f *fakeTemplates) ListActiveByWeekday(_ context.Context, weekday time.Weekday) ([]*model.SlotTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sorted(func(t *model.SlotTemplate) bool { return t.IsActive && t.Weekday == weekday }), nil
}

func (f *fakeTemplates) FindActive(_ context.Context, weekday time.Weekday, start model.ClockTime) (*model.SlotTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	found := f.sorted(func(t *model.SlotTemplate) bool {
		return t.IsActive && t.Weekday == weekday && t.Start == start
	})
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (f *fakeTemplates) ListAll(_ context.Context) ([]*model.SlotTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sorted(func(*model.SlotTemplate) bool { return true }), nil
}

func (f *fakeTemplates) SetActive(_ context.Context, id int64, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if active && f.hasActiveTwin(f.templates[id]) {
		return repository.ErrDuplicate
	}
	f.templates[id].IsActive = active
	return nil
}

func (f *fakeTemplates) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.templates, id)
	return nil
}

// fakeSessions хранилище тренировок в памяти с тем же уникальным индексом, что и в Postgres
type fakeSessions struct {
	mu       sync.Mutex
	nextID   int64
	sessions map[int64]*model.Session
	clients  *fakeClients
}

func newFakeSessions(clients *fakeClients) *fakeSessions {
	return &fakeSessions{sessions: make(map[int64]*model.Session), clients: clients}
}

func (f *fakeSessions) withClient(s *model.Session) *model.Session {
	copied := *s
	if f.clients != nil {
		if c, ok := f.clients.clients[s.ClientID]; ok {
			client := *c
			copied.Client = &client
		}
	}
	return &copied
}

func (f *fakeSessions) filter(keep func(*model.Session) bool) []*model.Session {
	var out []*model.Session
	for _, s := range f.sessions {
		if keep(s) {
			out = append(out, f.withClient(s))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartsAt.Equal(out[j].StartsAt) {
			return out[i].StartsAt.Before(out[j].StartsAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func limitSessions(sessions []*model.Session, limit int) []*model.Session {
	if len(sessions) > limit {
		return sessions[:limit]
	}
	return sessions
}

func (f *fakeSessions) Create(_ context.Context, session *model.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.ClientID == session.ClientID && s.StartsAt.Equal(session.StartsAt) &&
			s.Status == model.SessionStatusScheduled && session.Status == model.SessionStatusScheduled {
			return repository.ErrDuplicate
		}
	}
	f.nextID++
	session.ID = f.nextID
	session.CreatedAt = time.Now()
	stored := *session
	stored.Client = nil
	f.sessions[session.ID] = &stored
	return nil
}

func (f *fakeSessions) GetByID(_ context.Context, id int64) (*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeSessions) GetByIDWithClient(_ context.Context, id int64) (*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[id]; ok {
		return f.withClient(s), nil
	}
	return nil, nil
}

func (f *fakeSessions) FindScheduled(_ context.Context, clientID int64, startsAt time.Time) (*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	found := f.filter(func(s *model.Session) bool {
		return s.ClientID == clientID && s.StartsAt.Equal(startsAt) && s.Status == model.SessionStatusScheduled
	})
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (f *fakeSessions) CountOccupying(_ context.Context, startsAt time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.filter(func(s *model.Session) bool {
		return s.StartsAt.Equal(startsAt) && s.Status.OccupiesSlot()
	})), nil
}

func (f *fakeSessions) OccupancyBetween(_ context.Context, from, to time.Time) (map[time.Time]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[time.Time]int)
	for _, s := range f.sessions {
		if !s.StartsAt.Before(from) && s.StartsAt.Before(to) && s.Status.OccupiesSlot() {
			out[s.StartsAt.UTC()]++
		}
	}
	return out, nil
}

func (f *fakeSessions) UpdateStatus(_ context.Context, id int64, status model.SessionStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[id].Status = status
	return nil
}

func (f *fakeSessions) MarkNotified(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[id].Notified = true
	return nil
}

func (f *fakeSessions) ListUpcomingByClient(_ context.Context, clientID int64, from time.Time, limit int) ([]*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return limitSessions(f.filter(func(s *model.Session) bool {
		return s.ClientID == clientID && s.Status == model.SessionStatusScheduled && !s.StartsAt.Before(from)
	}), limit), nil
}

func (f *fakeSessions) ListUpcoming(_ context.Context, from time.Time, limit int) ([]*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return limitSessions(f.filter(func(s *model.Session) bool {
		return s.Status == model.SessionStatusScheduled && !s.StartsAt.Before(from)
	}), limit), nil
}

func (f *fakeSessions) ListDueForReminder(_ context.Context, from, to time.Time) ([]*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter(func(s *model.Session) bool {
		return s.Status == model.SessionStatusScheduled && !s.Notified &&
			!s.StartsAt.Before(from) && !s.StartsAt.After(to)
	}), nil
}

func (f *fakeSessions) ListBetween(_ context.Context, from, to time.Time) ([]*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter(func(s *model.Session) bool {
		return !s.StartsAt.Before(from) && s.StartsAt.Before(to)
	}), nil
}

func (f *fakeSessions) CountByStatus(_ context.Context, status model.SessionStatus, from, to time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.filter(func(s *model.Session) bool {
		return s.Status == status && !s.StartsAt.Before(from) && s.StartsAt.Before(to)
	})), nil
}

func (f *fakeSessions) CountScheduledFrom(_ context.Context, from time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.filter(func(s *model.Session) bool {
		return s.Status == model.SessionStatusScheduled && !s.StartsAt.Before(from)
	})), nil
}

func (f *fakeSessions) CountCompletedByClient(_ context.Context) (map[int64]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[int64]int)
	for _, s := range f.sessions {
		if s.Status == model.SessionStatusCompleted {
			out[s.ClientID]++
		}
	}
	return out, nil
}

// seed добавляет тренировку напрямую, минуя проверки сервиса
func (f *fakeSessions) seed(clientID int64, startsAt time.Time, status model.SessionStatus) *model.Session {
	session := &model.Session{
		ClientID:        clientID,
		StartsAt:        startsAt,
		DurationMinutes: model.DefaultSessionMinutes,
		Status:          status,
	}
	f.mu.Lock()
	f.nextID++
	session.ID = f.nextID
	stored := *session
	f.sessions[session.ID] = &stored
	f.mu.Unlock()
	return session
}

func (f *fakeSessions) get(id int64) model.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.sessions[id]
}
