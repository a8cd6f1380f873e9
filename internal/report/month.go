package report

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/swim_bot/internal/formatting"
	"github.com/Freeeeeet/swim_bot/internal/model"
	"github.com/Freeeeeet/swim_bot/internal/service"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSessions = "Тренировки"
	SheetSummary  = "Итоги"
)

// statusOrder порядок статусов в итогах
var statusOrder = []model.SessionStatus{
	model.SessionStatusScheduled,
	model.SessionStatusCompleted,
	model.SessionStatusMissed,
	model.SessionStatusCancelled,
}

// FileName имя файла отчёта за месяц
func FileName(month time.Time) string {
	return fmt.Sprintf("swim_report_%s.xlsx", month.Format("2006_01"))
}

// BuildMonth строит xlsx-отчёт о тренировках за месяц
func BuildMonth(r *service.MonthReport, loc *time.Location) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSessions); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return nil, fmt.Errorf("create summary sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E8F5"}},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	// Лист с тренировками: A-Дата, B-День, C-Время, D-Клиент, E-Username, F-Статус, G-Длительность
	headers := []string{"Дата", "День", "Время", "Клиент", "Username", "Статус", "Длительность, мин"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(SheetSessions, cell, h)
	}
	f.SetCellStyle(SheetSessions, "A1", "G1", headerStyle)

	for i, session := range r.Sessions {
		row := i + 2
		start := session.StartsAt.In(loc)

		clientName, username := "", ""
		if session.Client != nil {
			clientName = session.Client.FullName()
			if session.Client.Username != "" {
				username = "@" + session.Client.Username
			}
		}

		f.SetCellValue(SheetSessions, fmt.Sprintf("A%d", row), formatting.FormatDate(start))
		f.SetCellValue(SheetSessions, fmt.Sprintf("B%d", row), formatting.GetWeekdayShortName(start.Weekday()))
		f.SetCellValue(SheetSessions, fmt.Sprintf("C%d", row), formatting.FormatTimeRange(start, session.EndsAt().In(loc)))
		f.SetCellValue(SheetSessions, fmt.Sprintf("D%d", row), clientName)
		f.SetCellValue(SheetSessions, fmt.Sprintf("E%d", row), username)
		f.SetCellValue(SheetSessions, fmt.Sprintf("F%d", row), statusName(session.Status))
		f.SetCellValue(SheetSessions, fmt.Sprintf("G%d", row), session.DurationMinutes)
	}

	f.SetColWidth(SheetSessions, "A", "A", 12)
	f.SetColWidth(SheetSessions, "C", "C", 13)
	f.SetColWidth(SheetSessions, "D", "E", 24)
	f.SetColWidth(SheetSessions, "F", "F", 14)
	f.SetColWidth(SheetSessions, "G", "G", 18)

	// Итоги по статусам
	title := fmt.Sprintf("%s %d", formatting.GetMonthName(r.Month.Month()), r.Month.Year())
	f.SetCellValue(SheetSummary, "A1", title)
	f.SetCellStyle(SheetSummary, "A1", "A1", headerStyle)

	row := 2
	for _, status := range statusOrder {
		f.SetCellValue(SheetSummary, fmt.Sprintf("A%d", row), statusName(status))
		f.SetCellValue(SheetSummary, fmt.Sprintf("B%d", row), r.Counts[status])
		row++
	}
	f.SetCellValue(SheetSummary, fmt.Sprintf("A%d", row), "Всего")
	f.SetCellValue(SheetSummary, fmt.Sprintf("B%d", row), len(r.Sessions))
	f.SetColWidth(SheetSummary, "A", "A", 20)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func statusName(status model.SessionStatus) string {
	switch status {
	case model.SessionStatusScheduled:
		return "запланирована"
	case model.SessionStatusCompleted:
		return "проведена"
	case model.SessionStatusMissed:
		return "пропущена"
	case model.SessionStatusCancelled:
		return "отменена"
	default:
		return string(status)
	}
}
