package handlers

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/swim_bot/internal/common/clock/mocks"
	"github.com/Freeeeeet/swim_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/swim_bot/internal/controller/state"
	"github.com/Freeeeeet/swim_bot/internal/lock"
	"github.com/Freeeeeet/swim_bot/internal/model"
	"github.com/Freeeeeet/swim_bot/internal/service"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	adminTelegramID  = 1
	clientTelegramID = 11
)

type HandlersTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *mocks.MockClock
	ctx       context.Context
	msk       *time.Location
	now       time.Time

	tg           *fakeTelegram
	clients      *fakeClients
	availability *fakeAvailability
	booking      *fakeBooking
	admin        *fakeAdmin
	tutorials    *fakeTutorials
	states       *state.Manager
	handlers     *Handlers
}

func (s *HandlersTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.ctx = context.Background()
	s.msk = time.FixedZone("MSK", 3*60*60)

	// Воскресенье, 19 октября, полдень по Москве
	s.now = time.Date(2025, 10, 19, 12, 0, 0, 0, s.msk)
	s.mockClock.EXPECT().Now().Return(s.now).AnyTimes()

	monday := time.Date(2025, 10, 20, 0, 0, 0, 0, s.msk)
	at := func(hour int) time.Time { return monday.Add(time.Duration(hour) * time.Hour) }

	s.tg = &fakeTelegram{}
	admins := staticAdmins{adminTelegramID: true}
	s.clients = newFakeClients(admins)
	s.availability = &fakeAvailability{
		dates: []time.Time{monday.AddDate(0, 0, -1), monday},
		windows: map[string][]service.Window{
			"2025-10-20": {
				{StartsAt: at(9), EndsAt: at(10), Capacity: 1, Booked: 1},
				{StartsAt: at(18), EndsAt: at(19), Capacity: 2, Booked: 1},
			},
		},
	}
	s.booking = &fakeBooking{}
	s.admin = &fakeAdmin{}
	s.tutorials = &fakeTutorials{byStyle: map[model.SwimStyle][]*model.Tutorial{}}
	s.states = state.NewManager(s.mockClock)

	s.handlers = New(Config{
		Clients:      s.clients,
		Availability: s.availability,
		Booking:      s.booking,
		Admin:        s.admin,
		Tutorials:    s.tutorials,
		Admins:       admins,
		States:       s.states,
		Clock:        s.mockClock,
		Location:     s.msk,
		PoolAddress:  "Бассейн «Волна»",
	})
	s.handlers.mediaPause = 0
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func message(telegramID int64, text string) *models.Update {
	return &models.Update{Message: &models.Message{
		ID:   100,
		From: &models.User{ID: telegramID, FirstName: "Anna", Username: "anna"},
		Chat: models.Chat{ID: telegramID},
		Text: text,
	}}
}

func callback(telegramID int64, data string) *models.Update {
	return &models.Update{CallbackQuery: &models.CallbackQuery{
		ID:   "cb",
		From: models.User{ID: telegramID, FirstName: "Anna"},
		Message: models.MaybeInaccessibleMessage{
			Message: &models.Message{ID: 7, Chat: models.Chat{ID: telegramID}},
		},
		Data: data,
	}}
}

func inline(markup models.ReplyMarkup) [][]models.InlineKeyboardButton {
	kb, ok := markup.(*models.InlineKeyboardMarkup)
	if !ok || kb == nil {
		return nil
	}
	return kb.InlineKeyboard
}

func (s *HandlersTestSuite) TestStartShowsMenuByRole() {
	s.handlers.HandleStart(s.ctx, s.tg, message(clientTelegramID, "/start"))
	client := s.tg.lastMessage()
	s.Require().NotNil(client)
	s.Contains(client.Text, "Привет, Anna")
	s.Len(client.ReplyMarkup.(*models.ReplyKeyboardMarkup).Keyboard, len(keyboard.MainMenu(false).Keyboard))

	s.handlers.HandleStart(s.ctx, s.tg, message(adminTelegramID, "/start"))
	admin := s.tg.lastMessage()
	s.Len(admin.ReplyMarkup.(*models.ReplyKeyboardMarkup).Keyboard, len(keyboard.MainMenu(true).Keyboard))
}

func (s *HandlersTestSuite) TestBookListsDates() {
	s.handlers.HandleBook(s.ctx, s.tg, message(clientTelegramID, keyboard.BtnBook))

	rows := inline(s.tg.lastMessage().ReplyMarkup)
	s.Require().Len(rows, 3)
	s.Equal("d:20251019", rows[0][0].CallbackData)
	s.Equal("Понедельник - 20.10.2025", rows[1][0].Text)
	s.Equal("x", rows[2][0].CallbackData)
}

func (s *HandlersTestSuite) TestPickDateMarksOccupiedWindows() {
	s.handlers.HandleCallbackQuery(s.ctx, s.tg, callback(clientTelegramID, "d:20251020"))

	edit := s.tg.lastEdit()
	s.Require().NotNil(edit)
	s.Contains(edit.Text, "20 октября")

	rows := inline(edit.ReplyMarkup)
	s.Require().Len(rows, 3)
	s.Equal("oc", rows[0][0].CallbackData)
	s.Contains(rows[0][0].Text, "Занято")
	s.Equal("t:20251020:1800", rows[1][0].CallbackData)
	s.Contains(rows[1][0].Text, "1 место")
	s.Equal("bd", rows[2][0].CallbackData)
}

func (s *HandlersTestSuite) TestPickDateWithoutWindows() {
	s.handlers.HandleCallbackQuery(s.ctx, s.tg, callback(clientTelegramID, "d:20251021"))

	s.Equal("К сожалению, на этот день нет доступных слотов.", s.tg.lastEdit().Text)
}

func (s *HandlersTestSuite) TestPickTimeBooksSession() {
	s.handlers.HandleCallbackQuery(s.ctx, s.tg, callback(clientTelegramID, "t:20251020:1800"))

	s.Require().Len(s.booking.booked, 1)
	s.True(s.booking.booked[0].startsAt.Equal(time.Date(2025, 10, 20, 15, 0, 0, 0, time.UTC)))
	s.Equal("✅ Вы успешно записаны!", s.tg.lastAnswer().Text)
	s.Contains(s.tg.lastEdit().Text, "18:00-19:00")
}

func (s *HandlersTestSuite) TestPickTimeRejections() {
	for _, err := range []error{service.ErrAlreadyBooked, service.ErrSlotInPast, lock.ErrLockBusy} {
		s.tg = &fakeTelegram{}
		s.booking.bookErr = err

		s.handlers.HandleCallbackQuery(s.ctx, s.tg, callback(clientTelegramID, "t:20251020:1800"))

		answer := s.tg.lastAnswer()
		s.Require().NotNil(answer)
		s.Equal(ErrorMessage(err), answer.Text)
		s.True(answer.ShowAlert)
		s.Empty(s.tg.edits, "message stays as is for %v", err)
	}
}

func (s *HandlersTestSuite) TestPickTimeFullRefreshesWindows() {
	s.booking.bookErr = service.ErrSlotFull

	s.handlers.HandleCallbackQuery(s.ctx, s.tg, callback(clientTelegramID, "t:20251020:1800"))

	s.Equal(ErrorMessage(service.ErrSlotFull), s.tg.lastAnswer().Text)
	s.Require().NotNil(s.tg.lastEdit())
	s.Len(inline(s.tg.lastEdit().ReplyMarkup), 3)
}

func (s *HandlersTestSuite) TestCancelSession() {
	s.handlers.HandleCallbackQuery(s.ctx, s.tg, callback(clientTelegramID, "cs:42"))

	s.Equal([]int64{42}, s.booking.cancelled)
	s.Equal("✅ Тренировка отменена", s.tg.lastAnswer().Text)
	s.Contains(s.tg.lastEdit().Text, "09:00")

	s.booking.cancelErr = service.ErrNotSessionOwner
	s.handlers.HandleCallbackQuery(s.ctx, s.tg, callback(clientTelegramID, "cs:43"))
	s.Equal(ErrorMessage(service.ErrNotSessionOwner), s.tg.lastAnswer().Text)
}

func (s *HandlersTestSuite) TestUnknownCallbackIsAnswered() {
	s.handlers.HandleCallbackQuery(s.ctx, s.tg, callback(clientTelegramID, "book_date_0"))

	s.Require().Len(s.tg.answers, 1)
	s.Contains(s.tg.answers[0].Text, "устарела")
	s.Empty(s.booking.booked)
}

func (s *HandlersTestSuite) TestDismissDeletesMessage() {
	s.handlers.HandleCallbackQuery(s.ctx, s.tg, callback(clientTelegramID, "x"))

	s.Require().Len(s.tg.deletes, 1)
	s.Equal(7, s.tg.deletes[0].MessageID)
}

func (s *HandlersTestSuite) TestAdminButtonsRequireAdmin() {
	s.admin.templates = []*model.SlotTemplate{{ID: 1, Weekday: time.Monday, IsActive: true, Capacity: 1}}

	s.handlers.HandleCallbackQuery(s.ctx, s.tg, callback(clientTelegramID, "tt:1"))
	s.Equal(noAdminAccessText, s.tg.lastAnswer().Text)
	s.Empty(s.admin.toggled)

	s.handlers.HandleStatistics(s.ctx, s.tg, message(clientTelegramID, keyboard.BtnStatistics))
	s.Equal(noAdminAccessText, s.tg.lastMessage().Text)

	s.handlers.HandleCallbackQuery(s.ctx, s.tg, callback(adminTelegramID, "tt:1"))
	s.Equal([]int64{1}, s.admin.toggled)
	s.Equal("⏸ Слот выключен", s.tg.lastAnswer().Text)
}

func (s *HandlersTestSuite) TestAddTemplateDialog() {
	s.handlers.HandleCallbackQuery(s.ctx, s.tg, callback(adminTelegramID, "ad:3"))
	s.Equal(state.StateAddTemplateTime, s.states.GetState(adminTelegramID))
	s.Contains(s.tg.lastEdit().Text, "Среда")

	s.handlers.HandleText(s.ctx, s.tg, message(adminTelegramID, "18:00"))
	s.Equal(ErrorMessage(service.ErrInvalidTemplate), s.tg.lastMessage().Text)
	s.Equal(state.StateAddTemplateTime, s.states.GetState(adminTelegramID), "wrong input keeps the dialog open")

	s.handlers.HandleText(s.ctx, s.tg, message(adminTelegramID, "18:00-19:00 2"))
	s.Require().Len(s.admin.added, 1)
	s.Equal(addTemplateCall{
		weekday:  time.Wednesday,
		start:    model.ClockTime{Hour: 18},
		end:      model.ClockTime{Hour: 19},
		capacity: 2,
	}, s.admin.added[0])
	s.Equal(state.StateNone, s.states.GetState(adminTelegramID))
	s.Contains(s.tg.lastMessage().Text, "Слот добавлен")
}

func (s *HandlersTestSuite) TestCancelCommandEndsDialog() {
	s.states.SetState(adminTelegramID, state.StateAddTemplateTime)

	s.handlers.HandleCancel(s.ctx, s.tg, message(adminTelegramID, "/cancel"))
	s.Equal(state.StateNone, s.states.GetState(adminTelegramID))
	s.Equal("✅ Операция отменена.", s.tg.lastMessage().Text)

	s.handlers.HandleCancel(s.ctx, s.tg, message(adminTelegramID, "/cancel"))
	s.Equal("❌ Нет активных операций для отмены.", s.tg.lastMessage().Text)
}

func (s *HandlersTestSuite) TestMarkPendingSessions() {
	s.admin.pending = []*model.Session{
		{ID: 5, StartsAt: time.Date(2025, 10, 18, 6, 0, 0, 0, time.UTC), Client: &model.Client{FirstName: "Anna"}},
		{ID: 6, StartsAt: time.Date(2025, 10, 18, 7, 0, 0, 0, time.UTC), Client: &model.Client{FirstName: "Boris"}},
	}

	s.handlers.HandleCallbackQuery(s.ctx, s.tg, callback(adminTelegramID, "pm"))
	rows := inline(s.tg.lastEdit().ReplyMarkup)
	s.Require().Len(rows, 3)
	s.Equal("ms:5:c", rows[0][0].CallbackData)
	s.Equal("ms:5:m", rows[0][1].CallbackData)

	s.handlers.HandleCallbackQuery(s.ctx, s.tg, callback(adminTelegramID, "ms:5:m"))
	s.Equal(model.SessionStatusMissed, s.admin.marked[5])
	s.Len(inline(s.tg.lastEdit().ReplyMarkup), 2)
}

func (s *HandlersTestSuite) TestCalendarExport() {
	s.handlers.HandleCalendarExport(s.ctx, s.tg, message(clientTelegramID, keyboard.BtnCalendar))
	s.Equal("Нет запланированных тренировок для экспорта.", s.tg.lastMessage().Text)

	s.booking.upcoming = []*model.Session{
		{ID: 1, StartsAt: time.Date(2025, 10, 20, 15, 0, 0, 0, time.UTC), DurationMinutes: 60, Status: model.SessionStatusScheduled},
	}
	s.handlers.HandleCalendarExport(s.ctx, s.tg, message(clientTelegramID, keyboard.BtnCalendar))

	s.Require().Len(s.tg.documents, 1)
	s.Equal(calendarFileName, s.tg.documents[0].Document.(*models.InputFileUpload).Filename)
	ics := string(s.tg.payloads[0])
	s.Contains(ics, "DTSTART:20251020T150000Z")
	s.Contains(ics, "LOCATION:Бассейн «Волна»")
}

func (s *HandlersTestSuite) TestMonthReportIsXLSX() {
	s.admin.report = &service.MonthReport{
		Month:  time.Date(2025, 10, 1, 0, 0, 0, 0, s.msk),
		Counts: map[model.SessionStatus]int{},
	}

	s.handlers.HandleMonthReport(s.ctx, s.tg, message(adminTelegramID, keyboard.BtnMonthReport))

	s.Require().Len(s.tg.documents, 1)
	s.Equal("swim_report_2025_10.xlsx", s.tg.documents[0].Document.(*models.InputFileUpload).Filename)
	s.True(strings.HasPrefix(string(s.tg.payloads[0]), "PK"), "xlsx is a zip archive")
}

func (s *HandlersTestSuite) TestTutorialsWithoutMediaSendText() {
	s.tutorials.byStyle[model.SwimStyleFreestyle] = []*model.Tutorial{
		{ID: 1, Style: model.SwimStyleFreestyle, Title: "Дыхание", Description: "Вдох на каждый третий гребок"},
	}

	s.handlers.HandleCallbackQuery(s.ctx, s.tg, callback(clientTelegramID, "tu:freestyle"))

	s.Require().Len(s.tg.messages, 2)
	s.Contains(s.tg.messages[0].Text, "Дыхание")
	s.Contains(s.tg.messages[1].Text, "Все материалы отправлены")
	s.Empty(s.tg.photos)

	s.handlers.HandleCallbackQuery(s.ctx, s.tg, callback(clientTelegramID, "tu:butterfly"))
	s.Contains(s.tg.lastMessage().Text, "скоро появятся")
}

func (s *HandlersTestSuite) TestTutorialMediaByReference() {
	s.tutorials.byStyle[model.SwimStyleBackstroke] = []*model.Tutorial{
		{ID: 2, Title: "Старт", PhotoRef: "AgACAgIAAxkBAAIB", VideoRef: "https://example.com/start.mp4"},
	}

	s.handlers.HandleCallbackQuery(s.ctx, s.tg, callback(clientTelegramID, "tu:backstroke"))

	s.Require().Len(s.tg.photos, 1)
	s.Equal("AgACAgIAAxkBAAIB", s.tg.photos[0].Photo.(*models.InputFileString).Data)
	s.Require().Len(s.tg.videos, 1)
	s.Empty(s.tg.voices)
}

func (s *HandlersTestSuite) TestNotificationsToggle() {
	s.handlers.HandleNotifications(s.ctx, s.tg, message(clientTelegramID, keyboard.BtnNotifications))
	s.Contains(s.tg.lastMessage().Text, "выключены")

	s.handlers.HandleNotifications(s.ctx, s.tg, message(clientTelegramID, keyboard.BtnNotifications))
	s.Contains(s.tg.lastMessage().Text, "включены")
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Вы уже записаны на это время!", ErrorMessage(service.ErrAlreadyBooked))
	assert.Equal(t, ErrorMessage(service.ErrSlotFull), ErrorMessage(errors.Join(errors.New("ctx"), service.ErrSlotFull)))
	assert.Equal(t, genericErrorText, ErrorMessage(errors.New("connection reset")))
	assert.Equal(t, "❌ На это время уже есть активный слот", ErrorMessage(service.ErrTemplateExists))
	assert.NotEqual(t, ErrorMessage(service.ErrInvalidTemplate), ErrorMessage(service.ErrTemplateExists))
	assert.True(t, isExpected(service.ErrSessionNotFound))
	assert.False(t, isExpected(errors.New("connection reset")))
}

func TestFormatStatistics(t *testing.T) {
	text := formatStatistics(&service.Statistics{Clients: 12, Upcoming: 5, CompletedWeek: 3, CompletedMonth: 14, CancelledMonth: 2})

	assert.Contains(t, text, "Всего клиентов: 12")
	assert.Contains(t, text, "Запланировано тренировок: 5")
	assert.Contains(t, text, "Отменено: 2")
}

func TestTemplatesScreenGroupsFromMonday(t *testing.T) {
	templates := []*model.SlotTemplate{
		{ID: 1, Weekday: time.Sunday, Start: model.ClockTime{Hour: 10}, End: model.ClockTime{Hour: 11}, Capacity: 1, IsActive: true},
		{ID: 2, Weekday: time.Monday, Start: model.ClockTime{Hour: 9}, End: model.ClockTime{Hour: 10}, Capacity: 2, IsActive: false},
	}

	text, kb := templatesScreen(templates)

	assert.Less(t, strings.Index(text, "Понедельник"), strings.Index(text, "Воскресенье"))
	assert.Contains(t, text, "❌ 09:00 - 10:00 (макс: 2)")
	rows := kb.Build().InlineKeyboard
	assert.Equal(t, "tt:2", rows[0][0].CallbackData)
	assert.Equal(t, "dt:1", rows[1][1].CallbackData)
}

func (s *HandlersTestSuite) TestScheduleSendsWeekImage() {
	s.handlers.HandleSchedule(s.ctx, s.tg, message(clientTelegramID, keyboard.BtnSchedule))
	s.Equal("Расписание пока не установлено.", s.tg.lastMessage().Text)

	monday := time.Date(2025, 10, 20, 0, 0, 0, 0, s.msk)
	s.availability.week = make([]service.Day, 7)
	for i := range s.availability.week {
		s.availability.week[i].Date = monday.AddDate(0, 0, i)
	}
	s.availability.week[0].Windows = s.availability.windows["2025-10-20"]

	s.handlers.HandleSchedule(s.ctx, s.tg, message(clientTelegramID, keyboard.BtnSchedule))

	s.Require().Len(s.tg.photos, 1)
	caption := s.tg.photos[0].Caption
	s.Contains(caption, "Пн, 20.10")
	s.Contains(caption, "❌ 09:00-10:00")
	s.Contains(caption, "✅ 18:00-19:00")
}
