package handlers

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/swim_bot/internal/controller/action"
	"github.com/Freeeeeet/swim_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/swim_bot/internal/controller/state"
	"github.com/Freeeeeet/swim_bot/internal/formatting"
	"github.com/Freeeeeet/swim_bot/internal/model"
	"github.com/Freeeeeet/swim_bot/internal/report"
	"github.com/Freeeeeet/swim_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const noAdminAccessText = "У вас нет доступа к админ-панели."

// requireAdmin пропускает дальше только администраторов
func (h *Handlers) requireAdmin(ctx context.Context, tg Telegram, update *models.Update) bool {
	if update.Message == nil || update.Message.From == nil {
		return false
	}
	if !h.isAdmin(update.Message.From.ID) {
		h.sendMessage(ctx, tg, update.Message.Chat.ID, noAdminAccessText, nil)
		return false
	}
	return true
}

// HandleAdminPanel открывает меню администратора
func (h *Handlers) HandleAdminPanel(ctx context.Context, tg Telegram, update *models.Update) {
	if !h.requireAdmin(ctx, tg, update) {
		return
	}
	h.sendMessage(ctx, tg, update.Message.Chat.ID, "👨‍💼 Админ-панель\n\nВыберите действие:", keyboard.AdminMenu())
}

// HandleStatistics показывает сводку по клиентам и тренировкам
func (h *Handlers) HandleStatistics(ctx context.Context, tg Telegram, update *models.Update) {
	if !h.requireAdmin(ctx, tg, update) {
		return
	}
	chatID := update.Message.Chat.ID

	stats, err := h.admin.Statistics(ctx)
	if err != nil {
		h.logger.Error("Failed to collect statistics", zap.Error(err))
		h.sendMessage(ctx, tg, chatID, genericErrorText, nil)
		return
	}

	h.sendMessage(ctx, tg, chatID, formatStatistics(stats), nil)
}

func formatStatistics(stats *service.Statistics) string {
	return fmt.Sprintf(
		"📊 Статистика:\n\n"+
			"👥 Всего клиентов: %d\n"+
			"📅 Запланировано тренировок: %d\n\n"+
			"📈 За эту неделю:\n"+
			"   ✅ Проведено: %d\n\n"+
			"📈 За этот месяц:\n"+
			"   ✅ Проведено: %d\n"+
			"   ❌ Отменено: %d",
		stats.Clients,
		stats.Upcoming,
		stats.CompletedWeek,
		stats.CompletedMonth,
		stats.CancelledMonth,
	)
}

// HandleClients показывает клиентов с количеством проведённых тренировок
func (h *Handlers) HandleClients(ctx context.Context, tg Telegram, update *models.Update) {
	if !h.requireAdmin(ctx, tg, update) {
		return
	}
	chatID := update.Message.Chat.ID

	summaries, err := h.admin.Clients(ctx)
	if err != nil {
		h.logger.Error("Failed to list clients", zap.Error(err))
		h.sendMessage(ctx, tg, chatID, genericErrorText, nil)
		return
	}

	if len(summaries) == 0 {
		h.sendMessage(ctx, tg, chatID, "Пока нет зарегистрированных клиентов.", nil)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👥 Список клиентов (%d):\n\n", len(summaries)))
	for _, s := range summaries {
		sb.WriteString(fmt.Sprintf("👤 %s\n", s.Client.FullName()))
		sb.WriteString(fmt.Sprintf("   %s\n", usernameLabel(s.Client)))
		sb.WriteString(fmt.Sprintf("   📊 Тренировок: %d\n\n", s.Completed))
	}

	h.sendMessage(ctx, tg, chatID, sb.String(), nil)
}

func usernameLabel(c *model.Client) string {
	if c.Username == "" {
		return "нет username"
	}
	return "@" + c.Username
}

// HandleAllSessions показывает ближайшие запланированные тренировки всех клиентов
func (h *Handlers) HandleAllSessions(ctx context.Context, tg Telegram, update *models.Update) {
	if !h.requireAdmin(ctx, tg, update) {
		return
	}
	chatID := update.Message.Chat.ID

	sessions, err := h.admin.UpcomingSessions(ctx)
	if err != nil {
		h.logger.Error("Failed to list upcoming sessions", zap.Error(err))
		h.sendMessage(ctx, tg, chatID, genericErrorText, nil)
		return
	}

	if len(sessions) == 0 {
		h.sendMessage(ctx, tg, chatID, "Нет запланированных тренировок.", nil)
		return
	}

	var sb strings.Builder
	sb.WriteString("📅 Предстоящие тренировки:\n\n")
	for i, s := range sessions {
		start := s.StartsAt.In(h.loc)
		sb.WriteString(fmt.Sprintf("%d. %s %s\n", i+1, formatting.FormatDateWithWeekday(start), formatting.FormatTime(start)))
		if s.Client != nil {
			sb.WriteString(fmt.Sprintf("   👤 %s\n   %s\n", s.Client.FullName(), usernameLabel(s.Client)))
		}
		sb.WriteString("\n")
	}

	h.sendMessage(ctx, tg, chatID, sb.String(), nil)
}

// HandleManageSchedule меню управления шаблонами расписания
func (h *Handlers) HandleManageSchedule(ctx context.Context, tg Telegram, update *models.Update) {
	if !h.requireAdmin(ctx, tg, update) {
		return
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("➕ Добавить слот", action.AddTemplate())).
		Row(keyboard.Button("📋 Список слотов", action.ListTemplates())).
		Row(keyboard.Button("✍️ Отметить тренировки", action.PendingMarks())).
		Row(keyboard.Close("❌ Закрыть"))

	h.sendMessage(ctx, tg, update.Message.Chat.ID, "🕐 Управление графиком:", kb.Build())
}

// HandleMonthReport отправляет xlsx отчёт за текущий месяц
func (h *Handlers) HandleMonthReport(ctx context.Context, tg Telegram, update *models.Update) {
	if !h.requireAdmin(ctx, tg, update) {
		return
	}
	chatID := update.Message.Chat.ID

	monthReport, err := h.admin.MonthReport(ctx, h.clock.Now())
	if err != nil {
		h.logger.Error("Failed to collect month report", zap.Error(err))
		h.sendMessage(ctx, tg, chatID, genericErrorText, nil)
		return
	}

	data, err := report.BuildMonth(monthReport, h.loc)
	if err != nil {
		h.logger.Error("Failed to build month report", zap.Error(err))
		h.sendMessage(ctx, tg, chatID, genericErrorText, nil)
		return
	}

	month := monthReport.Month.In(h.loc)
	_, err = tg.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:   chatID,
		Document: &models.InputFileUpload{Filename: report.FileName(month), Data: bytes.NewReader(data)},
		Caption: fmt.Sprintf("📥 Отчёт за %s %d: %d %s",
			strings.ToLower(formatting.GetMonthName(month.Month())), month.Year(),
			len(monthReport.Sessions), formatting.PluralizeTrainings(len(monthReport.Sessions))),
	})
	if err != nil {
		h.logger.Error("Failed to send month report", zap.Error(err))
	}
}

// adminCallback проверяет права на нажатие админской кнопки
func (h *Handlers) adminCallback(ctx context.Context, tg Telegram, callback *models.CallbackQuery) (*models.Message, bool) {
	if !h.isAdmin(callback.From.ID) {
		h.answer(ctx, tg, callback.ID, noAdminAccessText, true)
		return nil, false
	}
	msg := callbackMessage(callback)
	if msg == nil {
		h.answer(ctx, tg, callback.ID, "", false)
		return nil, false
	}
	return msg, true
}

// onListTemplates список шаблонов с кнопками включения и удаления
func (h *Handlers) onListTemplates(ctx context.Context, tg Telegram, callback *models.CallbackQuery, _ action.Action) {
	msg, ok := h.adminCallback(ctx, tg, callback)
	if !ok {
		return
	}
	h.answer(ctx, tg, callback.ID, "", false)
	h.showTemplates(ctx, tg, msg)
}

func (h *Handlers) showTemplates(ctx context.Context, tg Telegram, msg *models.Message) {
	templates, err := h.admin.Templates(ctx)
	if err != nil {
		h.logger.Error("Failed to list templates", zap.Error(err))
		h.editMessage(ctx, tg, msg, genericErrorText, nil)
		return
	}

	addRow := keyboard.NewBuilder().
		Row(keyboard.Button("➕ Добавить слот", action.AddTemplate())).
		Row(keyboard.Close("❌ Закрыть"))
	if len(templates) == 0 {
		h.editMessage(ctx, tg, msg, "Слоты не настроены.", addRow.Build())
		return
	}

	text, kb := templatesScreen(templates)
	kb.Row(keyboard.Button("➕ Добавить слот", action.AddTemplate())).Row(keyboard.Close("❌ Закрыть"))
	h.editMessage(ctx, tg, msg, text, kb.Build())
}

// templatesScreen текст списка шаблонов по дням недели и кнопки управления ими
func templatesScreen(templates []*model.SlotTemplate) (string, *keyboard.Builder) {
	var sb strings.Builder
	sb.WriteString("📋 Временные слоты:\n")
	kb := keyboard.NewBuilder()

	for _, weekday := range formatting.WeekdaysFromMonday {
		header := false
		for _, t := range templates {
			if t.Weekday != weekday {
				continue
			}
			if !header {
				sb.WriteString(fmt.Sprintf("\n📅 %s:\n", formatting.GetWeekdayName(weekday)))
				header = true
			}

			status := "✅"
			toggle := "⏸"
			if !t.IsActive {
				status = "❌"
				toggle = "▶️"
			}
			slot := fmt.Sprintf("%s %s-%s", formatting.GetWeekdayShortName(weekday), t.Start, t.End)
			sb.WriteString(fmt.Sprintf("   %s %s - %s (макс: %d)\n", status, t.Start, t.End, t.Capacity))

			kb.Row(
				keyboard.Button(toggle+" "+slot, action.ToggleTemplate(t.ID)),
				keyboard.Button("🗑", action.DeleteTemplate(t.ID)),
			)
		}
	}

	return sb.String(), kb
}

// onAddTemplate выбор дня недели для нового слота
func (h *Handlers) onAddTemplate(ctx context.Context, tg Telegram, callback *models.CallbackQuery, _ action.Action) {
	msg, ok := h.adminCallback(ctx, tg, callback)
	if !ok {
		return
	}
	h.answer(ctx, tg, callback.ID, "", false)

	buttons := make([]models.InlineKeyboardButton, 0, len(formatting.WeekdaysFromMonday))
	for _, weekday := range formatting.WeekdaysFromMonday {
		buttons = append(buttons, keyboard.Button(formatting.GetWeekdayShortName(weekday), action.AddTemplateDay(weekday)))
	}
	kb := keyboard.NewBuilder().Grid(4, buttons...).Row(keyboard.Close("❌ Отмена"))

	h.editMessage(ctx, tg, msg, "➕ Новый слот\n\nВыберите день недели:", kb.Build())
}

// onAddTemplateDay запоминает день и ждёт время слота текстом
func (h *Handlers) onAddTemplateDay(ctx context.Context, tg Telegram, callback *models.CallbackQuery, a action.Action) {
	msg, ok := h.adminCallback(ctx, tg, callback)
	if !ok {
		return
	}
	h.answer(ctx, tg, callback.ID, "", false)

	h.states.SetState(callback.From.ID, state.StateAddTemplateTime)
	h.states.SetData(callback.From.ID, state.KeyWeekday, a.Weekday)

	h.editMessage(ctx, tg, msg, fmt.Sprintf(
		"➕ Новый слот: %s\n\n"+
			"Отправьте время в формате ЧЧ:ММ-ЧЧ:ММ и, при желании, количество мест.\n"+
			"Например: 09:00-10:00 или 18:00-19:00 2\n\n"+
			"/cancel - отменить",
		formatting.GetWeekdayName(a.Weekday)), nil)
}

// handleAddTemplateTimeStep создаёт слот из введённого времени
func (h *Handlers) handleAddTemplateTimeStep(ctx context.Context, tg Telegram, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	if !h.isAdmin(telegramID) {
		h.states.ClearState(telegramID)
		h.sendMessage(ctx, tg, chatID, noAdminAccessText, nil)
		return
	}

	raw, ok := h.states.GetData(telegramID, state.KeyWeekday)
	weekday, isWeekday := raw.(time.Weekday)
	if !ok || !isWeekday {
		h.states.ClearState(telegramID)
		h.sendMessage(ctx, tg, chatID, genericErrorText, nil)
		return
	}

	start, end, capacity, err := service.ParseTemplateInput(update.Message.Text)
	if err != nil {
		// Остаёмся на том же шаге, пока админ не введёт корректное время или /cancel
		h.sendMessage(ctx, tg, chatID, ErrorMessage(err), nil)
		return
	}

	tmpl, err := h.admin.AddTemplate(ctx, weekday, start, end, capacity)
	if err != nil {
		if !isExpected(err) {
			h.logger.Error("Failed to add template", zap.Error(err))
		}
		h.sendMessage(ctx, tg, chatID, ErrorMessage(err), nil)
		return
	}
	h.states.ClearState(telegramID)

	h.sendMessage(ctx, tg, chatID, fmt.Sprintf(
		"✅ Слот добавлен: %s %s-%s, %d %s",
		formatting.GetWeekdayName(tmpl.Weekday), tmpl.Start, tmpl.End,
		tmpl.Capacity, formatting.PluralizePlaces(tmpl.Capacity)),
		keyboard.AdminMenu())
}

func (h *Handlers) onToggleTemplate(ctx context.Context, tg Telegram, callback *models.CallbackQuery, a action.Action) {
	msg, ok := h.adminCallback(ctx, tg, callback)
	if !ok {
		return
	}

	tmpl, err := h.admin.ToggleTemplate(ctx, a.ID)
	if err != nil {
		if !isExpected(err) {
			h.logger.Error("Failed to toggle template", zap.Int64("template_id", a.ID), zap.Error(err))
		}
		h.answer(ctx, tg, callback.ID, ErrorMessage(err), true)
		return
	}

	if tmpl.IsActive {
		h.answer(ctx, tg, callback.ID, "✅ Слот включён", false)
	} else {
		h.answer(ctx, tg, callback.ID, "⏸ Слот выключен", false)
	}
	h.showTemplates(ctx, tg, msg)
}

func (h *Handlers) onDeleteTemplate(ctx context.Context, tg Telegram, callback *models.CallbackQuery, a action.Action) {
	msg, ok := h.adminCallback(ctx, tg, callback)
	if !ok {
		return
	}

	if err := h.admin.DeleteTemplate(ctx, a.ID); err != nil {
		if !isExpected(err) {
			h.logger.Error("Failed to delete template", zap.Int64("template_id", a.ID), zap.Error(err))
		}
		h.answer(ctx, tg, callback.ID, ErrorMessage(err), true)
		return
	}

	h.answer(ctx, tg, callback.ID, "🗑 Слот удалён", false)
	h.showTemplates(ctx, tg, msg)
}

// onPendingMarks прошедшие тренировки, которые нужно отметить проведёнными или пропущенными
func (h *Handlers) onPendingMarks(ctx context.Context, tg Telegram, callback *models.CallbackQuery, _ action.Action) {
	msg, ok := h.adminCallback(ctx, tg, callback)
	if !ok {
		return
	}
	h.answer(ctx, tg, callback.ID, "", false)
	h.showPendingMarks(ctx, tg, msg)
}

func (h *Handlers) showPendingMarks(ctx context.Context, tg Telegram, msg *models.Message) {
	sessions, err := h.admin.PendingMarks(ctx)
	if err != nil {
		h.logger.Error("Failed to list pending marks", zap.Error(err))
		h.editMessage(ctx, tg, msg, genericErrorText, nil)
		return
	}

	closeRow := keyboard.NewBuilder().Row(keyboard.Close("❌ Закрыть"))
	if len(sessions) == 0 {
		h.editMessage(ctx, tg, msg, "✅ Все прошедшие тренировки отмечены.", closeRow.Build())
		return
	}

	var sb strings.Builder
	sb.WriteString("✍️ Отметьте прошедшие тренировки:\n\n")
	kb := keyboard.NewBuilder()
	for i, s := range sessions {
		start := s.StartsAt.In(h.loc)
		name := "клиент"
		if s.Client != nil {
			name = s.Client.FullName()
		}
		sb.WriteString(fmt.Sprintf("%d. %s %s - %s\n", i+1, formatting.FormatDateWithWeekday(start), formatting.FormatTime(start), name))
		kb.Row(
			keyboard.Button(fmt.Sprintf("%d ✅ Пришёл", i+1), action.MarkSession(s.ID, model.SessionStatusCompleted)),
			keyboard.Button(fmt.Sprintf("%d 🚫 Не пришёл", i+1), action.MarkSession(s.ID, model.SessionStatusMissed)),
		)
	}
	kb.Row(keyboard.Close("❌ Закрыть"))

	h.editMessage(ctx, tg, msg, sb.String(), kb.Build())
}

func (h *Handlers) onMarkSession(ctx context.Context, tg Telegram, callback *models.CallbackQuery, a action.Action) {
	msg, ok := h.adminCallback(ctx, tg, callback)
	if !ok {
		return
	}

	session, err := h.admin.MarkSession(ctx, a.ID, a.Status)
	if err != nil {
		if !isExpected(err) {
			h.logger.Error("Failed to mark session", zap.Int64("session_id", a.ID), zap.Error(err))
		}
		h.answer(ctx, tg, callback.ID, ErrorMessage(err), true)
		return
	}

	h.answer(ctx, tg, callback.ID, formatting.GetSessionStatusLabel(session.Status), false)
	h.showPendingMarks(ctx, tg, msg)
}
