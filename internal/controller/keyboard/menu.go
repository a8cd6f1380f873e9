package keyboard

import "github.com/go-telegram/bot/models"

// Тексты кнопок главного меню
const (
	BtnBook          = "📅 Записаться на тренировку"
	BtnMySessions    = "📋 Мои тренировки"
	BtnSchedule      = "🕐 Расписание тренера"
	BtnCancel        = "❌ Отменить запись"
	BtnTutorials     = "📚 Обучение"
	BtnNotifications = "🔔 Уведомления"
	BtnCalendar      = "🗓 В календарь"
	BtnAdminPanel    = "👨‍💼 Админ-панель"

	BtnStatistics  = "📊 Статистика"
	BtnClients     = "👥 Список клиентов"
	BtnManage      = "🕐 Управление графиком"
	BtnAllSessions = "📅 Все тренировки"
	BtnMonthReport = "📥 Отчёт за месяц"
	BtnBack        = "⬅️ Назад"
)

// MainMenu reply клавиатура клиента; у администратора добавляется вход в админ-панель
func MainMenu(isAdmin bool) *models.ReplyKeyboardMarkup {
	rows := [][]models.KeyboardButton{
		{{Text: BtnBook}},
		{{Text: BtnMySessions}, {Text: BtnSchedule}},
		{{Text: BtnCancel}, {Text: BtnTutorials}},
		{{Text: BtnNotifications}, {Text: BtnCalendar}},
	}
	if isAdmin {
		rows = append(rows, []models.KeyboardButton{{Text: BtnAdminPanel}})
	}
	return &models.ReplyKeyboardMarkup{
		Keyboard:       rows,
		ResizeKeyboard: true,
	}
}

// AdminMenu reply клавиатура админ-панели
func AdminMenu() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: BtnStatistics}, {Text: BtnClients}},
			{{Text: BtnManage}, {Text: BtnAllSessions}},
			{{Text: BtnMonthReport}},
			{{Text: BtnBack}},
		},
		ResizeKeyboard: true,
	}
}
