package handlers

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/Freeeeeet/swim_bot/internal/model"
	"github.com/Freeeeeet/swim_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// fakeTelegram записывает все вызовы Bot API
type fakeTelegram struct {
	mu        sync.Mutex
	messages  []*bot.SendMessageParams
	edits     []*bot.EditMessageTextParams
	answers   []*bot.AnswerCallbackQueryParams
	deletes   []*bot.DeleteMessageParams
	photos    []*bot.SendPhotoParams
	voices    []*bot.SendVoiceParams
	videos    []*bot.SendVideoParams
	documents []*bot.SendDocumentParams
	payloads  [][]byte // содержимое загруженных документов
}

func (f *fakeTelegram) SendMessage(_ context.Context, p *bot.SendMessageParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, p)
	return &models.Message{ID: len(f.messages)}, nil
}

func (f *fakeTelegram) EditMessageText(_ context.Context, p *bot.EditMessageTextParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, p)
	return &models.Message{ID: p.MessageID}, nil
}

func (f *fakeTelegram) DeleteMessage(_ context.Context, p *bot.DeleteMessageParams) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, p)
	return true, nil
}

func (f *fakeTelegram) AnswerCallbackQuery(_ context.Context, p *bot.AnswerCallbackQueryParams) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers = append(f.answers, p)
	return true, nil
}

func (f *fakeTelegram) SendPhoto(_ context.Context, p *bot.SendPhotoParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.photos = append(f.photos, p)
	return &models.Message{}, nil
}

func (f *fakeTelegram) SendVoice(_ context.Context, p *bot.SendVoiceParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.voices = append(f.voices, p)
	return &models.Message{}, nil
}

func (f *fakeTelegram) SendVideo(_ context.Context, p *bot.SendVideoParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.videos = append(f.videos, p)
	return &models.Message{}, nil
}

func (f *fakeTelegram) SendDocument(_ context.Context, p *bot.SendDocumentParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.documents = append(f.documents, p)
	if upload, ok := p.Document.(*models.InputFileUpload); ok {
		data, _ := io.ReadAll(upload.Data)
		f.payloads = append(f.payloads, data)
	}
	return &models.Message{}, nil
}

func (f *fakeTelegram) lastMessage() *bot.SendMessageParams {
	if len(f.messages) == 0 {
		return nil
	}
	return f.messages[len(f.messages)-1]
}

func (f *fakeTelegram) lastEdit() *bot.EditMessageTextParams {
	if len(f.edits) == 0 {
		return nil
	}
	return f.edits[len(f.edits)-1]
}

func (f *fakeTelegram) lastAnswer() *bot.AnswerCallbackQueryParams {
	if len(f.answers) == 0 {
		return nil
	}
	return f.answers[len(f.answers)-1]
}

type staticAdmins map[int64]bool

func (a staticAdmins) IsAdmin(telegramID int64) bool { return a[telegramID] }

type fakeClients struct {
	admins  staticAdmins
	clients map[int64]*model.Client
	nextID  int64
	toggled int
}

func newFakeClients(admins staticAdmins) *fakeClients {
	return &fakeClients{admins: admins, clients: map[int64]*model.Client{}}
}

func (f *fakeClients) Register(_ context.Context, p service.Profile) (*model.Client, error) {
	client, ok := f.clients[p.TelegramID]
	if !ok {
		f.nextID++
		client = &model.Client{ID: f.nextID, TelegramID: p.TelegramID, NotificationsEnabled: true}
		f.clients[p.TelegramID] = client
	}
	client.Username = p.Username
	client.FirstName = p.FirstName
	client.LastName = p.LastName
	client.IsAdmin = f.admins.IsAdmin(p.TelegramID)
	return client, nil
}

func (f *fakeClients) ToggleNotifications(_ context.Context, client *model.Client) (bool, error) {
	f.toggled++
	client.NotificationsEnabled = !client.NotificationsEnabled
	return client.NotificationsEnabled, nil
}

type fakeAvailability struct {
	dates   []time.Time
	windows map[string][]service.Window // ключ: дата 2006-01-02
	week    []service.Day
}

func (f *fakeAvailability) OpenWindows(_ context.Context, date time.Time) ([]service.Window, error) {
	return f.windows[date.Format("2006-01-02")], nil
}

func (f *fakeAvailability) BookableDates() []time.Time { return f.dates }

func (f *fakeAvailability) WeekOverview(context.Context, time.Time) ([]service.Day, error) {
	return f.week, nil
}

type bookCall struct {
	clientID int64
	startsAt time.Time
}

type fakeBooking struct {
	bookErr   error
	cancelErr error
	booked    []bookCall
	cancelled []int64
	upcoming  []*model.Session
}

func (f *fakeBooking) Book(_ context.Context, client *model.Client, startsAt time.Time) (*model.Session, error) {
	f.booked = append(f.booked, bookCall{clientID: client.ID, startsAt: startsAt})
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	return &model.Session{
		ID:              int64(len(f.booked)),
		ClientID:        client.ID,
		StartsAt:        startsAt,
		DurationMinutes: 60,
		Status:          model.SessionStatusScheduled,
	}, nil
}

func (f *fakeBooking) Cancel(_ context.Context, requester *model.Client, sessionID int64) (*model.Session, error) {
	f.cancelled = append(f.cancelled, sessionID)
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	return &model.Session{
		ID:              sessionID,
		ClientID:        requester.ID,
		StartsAt:        time.Date(2025, 10, 20, 6, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          model.SessionStatusCancelled,
	}, nil
}

func (f *fakeBooking) Upcoming(context.Context, int64) ([]*model.Session, error) {
	return f.upcoming, nil
}

func (f *fakeBooking) CancellableSessions(context.Context, int64) ([]*model.Session, error) {
	return f.upcoming, nil
}

type addTemplateCall struct {
	weekday    time.Weekday
	start, end model.ClockTime
	capacity   int
}

type fakeAdmin struct {
	stats     *service.Statistics
	templates []*model.SlotTemplate
	added     []addTemplateCall
	toggled   []int64
	pending   []*model.Session
	marked    map[int64]model.SessionStatus
	report    *service.MonthReport
}

func (f *fakeAdmin) Statistics(context.Context) (*service.Statistics, error) { return f.stats, nil }

func (f *fakeAdmin) Clients(context.Context) ([]service.ClientSummary, error) { return nil, nil }

func (f *fakeAdmin) UpcomingSessions(context.Context) ([]*model.Session, error) { return nil, nil }

func (f *fakeAdmin) PendingMarks(context.Context) ([]*model.Session, error) {
	var left []*model.Session
	for _, s := range f.pending {
		if _, done := f.marked[s.ID]; !done {
			left = append(left, s)
		}
	}
	return left, nil
}

func (f *fakeAdmin) MarkSession(_ context.Context, id int64, status model.SessionStatus) (*model.Session, error) {
	if f.marked == nil {
		f.marked = map[int64]model.SessionStatus{}
	}
	f.marked[id] = status
	return &model.Session{ID: id, Status: status}, nil
}

func (f *fakeAdmin) Templates(context.Context) ([]*model.SlotTemplate, error) {
	return f.templates, nil
}

func (f *fakeAdmin) AddTemplate(_ context.Context, weekday time.Weekday, start, end model.ClockTime, capacity int) (*model.SlotTemplate, error) {
	f.added = append(f.added, addTemplateCall{weekday: weekday, start: start, end: end, capacity: capacity})
	tmpl := &model.SlotTemplate{ID: int64(len(f.added)), Weekday: weekday, Start: start, End: end, Capacity: capacity, IsActive: true}
	f.templates = append(f.templates, tmpl)
	return tmpl, nil
}

func (f *fakeAdmin) ToggleTemplate(_ context.Context, id int64) (*model.SlotTemplate, error) {
	f.toggled = append(f.toggled, id)
	for _, t := range f.templates {
		if t.ID == id {
			t.IsActive = !t.IsActive
			return t, nil
		}
	}
	return nil, service.ErrTemplateNotFound
}

func (f *fakeAdmin) DeleteTemplate(context.Context, int64) error { return nil }

func (f *fakeAdmin) MonthReport(_ context.Context, month time.Time) (*service.MonthReport, error) {
	return f.report, nil
}

type fakeTutorials struct {
	byStyle map[model.SwimStyle][]*model.Tutorial
}

func (f *fakeTutorials) ByStyle(_ context.Context, style model.SwimStyle) ([]*model.Tutorial, error) {
	return f.byStyle[style], nil
}
