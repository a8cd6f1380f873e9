package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/swim_bot/internal/model"
	"github.com/google/uuid"
)

// ReminderMinutes за сколько минут календарь напомнит о тренировке
const ReminderMinutes = 60

// uidNamespace пространство имён для UID событий: один UID на одну тренировку
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("swim-bot/sessions"))

// Event событие календаря
type Event struct {
	UID         string
	Summary     string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
	Reminder    int // минут до события
}

// SessionEvent строит событие календаря по тренировке
func SessionEvent(session *model.Session, location string) Event {
	return Event{
		UID:         SessionUID(session.ID),
		Summary:     "🏊 Тренировка по плаванию",
		Description: "Не забудьте шапочку, очки и полотенце",
		Location:    location,
		StartTime:   session.StartsAt,
		EndTime:     session.EndsAt(),
		Reminder:    ReminderMinutes,
	}
}

// SessionUID стабильный UID события: повторный импорт обновляет событие, а не дублирует его
func SessionUID(sessionID int64) string {
	return uuid.NewSHA1(uidNamespace, []byte(strconv.FormatInt(sessionID, 10))).String() + "@swim-bot"
}

// Generate генерирует .ics файл с несколькими событиями
func Generate(events []Event, stamp time.Time) []byte {
	var sb strings.Builder

	sb.WriteString("BEGIN:VCALENDAR\r\n")
	sb.WriteString("VERSION:2.0\r\n")
	sb.WriteString("PRODID:-//SwimBot//Training Calendar//RU\r\n")
	sb.WriteString("CALSCALE:GREGORIAN\r\n")
	sb.WriteString("METHOD:PUBLISH\r\n")
	sb.WriteString("X-WR-CALNAME:Тренировки по плаванию\r\n")

	for _, event := range events {
		sb.WriteString("BEGIN:VEVENT\r\n")
		sb.WriteString(fmt.Sprintf("UID:%s\r\n", event.UID))
		sb.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(stamp)))
		sb.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(event.StartTime)))
		sb.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(event.EndTime)))
		sb.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(event.Summary)))

		if event.Description != "" {
			sb.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(event.Description)))
		}
		if event.Location != "" {
			sb.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(event.Location)))
		}

		if event.Reminder > 0 {
			sb.WriteString("BEGIN:VALARM\r\n")
			sb.WriteString("ACTION:DISPLAY\r\n")
			sb.WriteString(fmt.Sprintf("TRIGGER:-PT%dM\r\n", event.Reminder))
			sb.WriteString("DESCRIPTION:Напоминание о тренировке\r\n")
			sb.WriteString("END:VALARM\r\n")
		}

		sb.WriteString("END:VEVENT\r\n")
	}

	sb.WriteString("END:VCALENDAR\r\n")

	return []byte(sb.String())
}

// formatICSTime форматирует время в формат iCalendar
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS экранирует специальные символы для iCalendar
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
