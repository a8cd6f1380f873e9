package formatting

import (
	"fmt"
	"time"
)

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDateWithWeekday форматирует дату с кратким днём недели: "Пн, 20.10"
func FormatDateWithWeekday(t time.Time) string {
	return fmt.Sprintf("%s, %s", GetWeekdayShortName(t.Weekday()), t.Format("02.01"))
}

// FormatLongDate форматирует дату полностью: "понедельник, 20 октября"
func FormatLongDate(t time.Time) string {
	return fmt.Sprintf("%s, %d %s", lowerWeekdays[t.Weekday()], t.Day(), monthsGenitive[t.Month()])
}

// FormatTime форматирует только время
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatTimeRange форматирует диапазон времени
func FormatTimeRange(start, end time.Time) string {
	return fmt.Sprintf("%s-%s", start.Format("15:04"), end.Format("15:04"))
}

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}

var weekdays = []string{
	"Воскресенье",
	"Понедельник",
	"Вторник",
	"Среда",
	"Четверг",
	"Пятница",
	"Суббота",
}

var lowerWeekdays = []string{
	"воскресенье",
	"понедельник",
	"вторник",
	"среда",
	"четверг",
	"пятница",
	"суббота",
}

// GetWeekdayName возвращает название дня недели на русском
func GetWeekdayName(weekday time.Weekday) string {
	if weekday >= 0 && int(weekday) < len(weekdays) {
		return weekdays[weekday]
	}
	return "Неизвестно"
}

// GetWeekdayShortName возвращает краткое название дня недели на русском
func GetWeekdayShortName(weekday time.Weekday) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	if weekday >= 0 && int(weekday) < len(names) {
		return names[weekday]
	}
	return "?"
}

// WeekdaysFromMonday дни недели в порядке русского календаря
var WeekdaysFromMonday = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

var monthsGenitive = map[time.Month]string{
	time.January:   "января",
	time.February:  "февраля",
	time.March:     "марта",
	time.April:     "апреля",
	time.May:       "мая",
	time.June:      "июня",
	time.July:      "июля",
	time.August:    "августа",
	time.September: "сентября",
	time.October:   "октября",
	time.November:  "ноября",
	time.December:  "декабря",
}

// GetMonthName возвращает название месяца на русском
func GetMonthName(month time.Month) string {
	names := map[time.Month]string{
		time.January:   "Январь",
		time.February:  "Февраль",
		time.March:     "Март",
		time.April:     "Апрель",
		time.May:       "Май",
		time.June:      "Июнь",
		time.July:      "Июль",
		time.August:    "Август",
		time.September: "Сентябрь",
		time.October:   "Октябрь",
		time.November:  "Ноябрь",
		time.December:  "Декабрь",
	}
	return names[month]
}
