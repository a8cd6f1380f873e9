package render

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/Freeeeeet/swim_bot/internal/formatting"
	"github.com/Freeeeeet/swim_bot/internal/service"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Константы размеров и отступов
const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 100
	leftLabelsWidth  = 80
	legendWidth      = 140
	dayPaddingX      = 8
	minSlotHeight    = 8.0
	slotBorderRadius = 6.0
	shadowOffset     = 3.0
	hourPaddingTop   = 1
	hourPaddingBot   = 1
	defaultMinHour   = 7
	defaultMaxHour   = 21
)

// Константы шрифтов
const (
	titleFontSize      = 25.0
	dayFontSize        = 24.0
	hourLabelFontSize  = 16.0
	slotTimeFontSize   = 15.0
	legendItemFontSize = 12.0
)

// Цветовая схема
var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	textColor        = color.RGBA{80, 85, 90, 220}
	hourLabelColor   = color.RGBA{110, 115, 120, 200}
	hourLineColor    = color.NRGBA{150, 150, 150, 255}
	todayBgColor     = color.NRGBA{120, 180, 230, 110}
	evenDayColor     = color.NRGBA{240, 240, 240, 255}
	oddDayColor      = color.NRGBA{225, 228, 232, 255}
	currentTimeColor = color.NRGBA{255, 80, 80, 200}

	slotFreeColor     = color.RGBA{133, 193, 85, 220}
	slotPartialColor  = color.RGBA{250, 210, 110, 230}
	slotFullColor     = color.RGBA{255, 182, 193, 255}
	slotTextColor     = color.RGBA{20, 24, 28, 230}
	slotFullTextColor = color.RGBA{120, 40, 50, 255}
	slotShadowColor   = color.RGBA{0, 0, 0, 20}

	legendItemColor = color.RGBA{70, 74, 78, 220}
)

// hourRange диапазон часов для отображения
type hourRange struct {
	start int
	end   int
	total int
}

var (
	fontsOnce   sync.Once
	regularFont *opentype.Font
	boldFont    *opentype.Font
)

// loadFont выставляет шрифт Go (с кириллицей) нужного размера, basicfont как запасной вариант
func loadFont(dc *gg.Context, size float64, bold bool) {
	fontsOnce.Do(func() {
		regularFont, _ = opentype.Parse(goregular.TTF)
		boldFont, _ = opentype.Parse(gobold.TTF)
	})

	f := regularFont
	if bold {
		f = boldFont
	}
	if f != nil {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// WeekImage рисует PNG с окнами расписания на неделю.
// days идут подряд, now отмечается линией текущего времени.
func WeekImage(days []service.Day, now time.Time) ([]byte, error) {
	if len(days) == 0 {
		return nil, fmt.Errorf("no days to render")
	}

	loc := days[0].Date.Location()
	now = now.In(loc)

	hours := calculateHourRange(days)
	dc := createCanvas()
	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / len(days)
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, days)
	drawHourLabels(dc, hours, cellHeight)

	todayIndex := -1
	for i, day := range days {
		x := float64(leftLabelsWidth + i*dayWidth)
		y := float64(headerHeight)

		isToday := isSameDay(day.Date, now)
		if isToday {
			todayIndex = i
		}

		drawDayBackground(dc, x, y, dayWidth, dayHeight, i, isToday)
		drawDayHeader(dc, day.Date, x, y, dayWidth)
		drawHourLines(dc, x, y, dayWidth, hours, cellHeight)
		for _, w := range day.Windows {
			drawWindow(dc, w, loc, x, y, dayWidth, hours, cellHeight)
		}
	}

	if todayIndex >= 0 {
		drawCurrentTimeLine(dc, now, hours, cellHeight, dayWidth, todayIndex)
	}
	drawLegend(dc, len(days)*dayWidth)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// calculateHourRange определяет диапазон часов по окнам недели
func calculateHourRange(days []service.Day) hourRange {
	minHour := 24
	maxHour := 0

	for _, day := range days {
		for _, w := range day.Windows {
			start := w.StartsAt.In(day.Date.Location())
			end := w.EndsAt.In(day.Date.Location())
			endH := end.Hour()
			if end.Minute() > 0 {
				endH++
			}
			if start.Hour() < minHour {
				minHour = start.Hour()
			}
			if endH > maxHour {
				maxHour = endH
			}
		}
	}

	if minHour == 24 {
		minHour = defaultMinHour
		maxHour = defaultMaxHour
	}

	startHour := minHour - hourPaddingTop
	endHour := maxHour + hourPaddingBot
	if startHour < 0 {
		startHour = 0
	}
	if endHour > 24 {
		endHour = 24
	}

	return hourRange{
		start: startHour,
		end:   endHour,
		total: endHour - startHour,
	}
}

func createCanvas() *gg.Context {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

// drawHeader рисует заголовок с месяцем
func drawHeader(dc *gg.Context, days []service.Day) {
	first := days[0].Date.Month()
	last := days[len(days)-1].Date.Month()

	title := "Расписание: " + formatting.GetMonthName(first)
	if first != last {
		title += " - " + formatting.GetMonthName(last)
	}

	loadFont(dc, titleFontSize, true)
	dc.SetColor(textColor)
	_, h := dc.MeasureString(title)
	dc.DrawStringAnchored(title, float64(leftLabelsWidth), float64(headerHeight)/8+h/2, 0, 0)
}

// drawHourLabels рисует колонку с часами слева
func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	loadFont(dc, hourLabelFontSize, false)
	dc.SetColor(hourLabelColor)

	for i := 0; i <= hours.total; i++ {
		y := float64(headerHeight) + float64(i)*cellHeight
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", hours.start+i), float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

func isSameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int, isToday bool) {
	switch {
	case isToday:
		dc.SetColor(todayBgColor)
	case dayIndex%2 == 0:
		dc.SetColor(evenDayColor)
	default:
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

// drawDayHeader рисует день недели и дату
func drawDayHeader(dc *gg.Context, date time.Time, x, y float64, dayWidth int) {
	loadFont(dc, dayFontSize, true)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(date.Format("02.01"), x+float64(dayWidth)/2, y, 0.5, -1)
	dc.DrawStringAnchored(formatting.GetWeekdayShortName(date.Weekday()), x+float64(dayWidth)/2, y, 0.5, -0.2)
}

func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)

	for i := 0; i <= hours.total; i++ {
		hy := y + float64(i)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

// drawWindow рисует одно окно с занятостью
func drawWindow(dc *gg.Context, w service.Window, loc *time.Location, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	start := w.StartsAt.In(loc)
	end := w.EndsAt.In(loc)
	startHour := float64(start.Hour()) + float64(start.Minute())/60.0
	endHour := float64(end.Hour()) + float64(end.Minute())/60.0
	if endHour <= startHour {
		endHour = 24
	}

	slotY := y + (startHour-float64(hours.start))*cellHeight
	slotHeight := (endHour - startHour) * cellHeight
	if slotHeight < minSlotHeight {
		slotHeight = minSlotHeight
	}

	fillColor := windowColor(w)
	slotWidth := float64(dayWidth) - float64(dayPaddingX*2)

	// Тень
	dc.SetColor(slotShadowColor)
	dc.DrawRoundedRectangle(x+dayPaddingX+shadowOffset, slotY+2+shadowOffset, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Fill()

	dc.SetColor(fillColor)
	dc.DrawRoundedRectangle(x+dayPaddingX, slotY+2, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fillColor, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+dayPaddingX, slotY+2, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Stroke()

	txtColor := slotTextColor
	if !w.Bookable() {
		txtColor = slotFullTextColor
	}

	loadFont(dc, slotTimeFontSize, true)
	dc.SetColor(txtColor)
	txtX := x + dayPaddingX + 8
	txtY := slotY + 18
	dc.DrawStringAnchored(formatting.FormatTimeRange(start, end), txtX, txtY, 0, 0)

	if slotHeight > 40 {
		loadFont(dc, slotTimeFontSize-2, false)
		dc.DrawStringAnchored(fmt.Sprintf("%d/%d", w.Booked, w.Capacity), txtX, txtY+18, 0, 0)
	}
}

func windowColor(w service.Window) color.RGBA {
	switch {
	case !w.Bookable():
		return slotFullColor
	case w.Booked > 0:
		return slotPartialColor
	default:
		return slotFreeColor
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// drawCurrentTimeLine рисует красную линию текущего времени в колонке сегодняшнего дня
func drawCurrentTimeLine(dc *gg.Context, now time.Time, hours hourRange, cellHeight float64, dayWidth, dayIndex int) {
	current := float64(now.Hour()) + float64(now.Minute())/60.0
	if current < float64(hours.start) || current > float64(hours.end) {
		return
	}

	y := float64(headerHeight) + (current-float64(hours.start))*cellHeight
	x := float64(leftLabelsWidth + dayIndex*dayWidth)
	dc.SetColor(currentTimeColor)
	dc.SetLineWidth(2.0)
	dc.DrawLine(x, y, x+float64(dayWidth), y)
	dc.Stroke()
}

// drawLegend рисует легенду справа
func drawLegend(dc *gg.Context, daysWidth int) {
	liX := float64(leftLabelsWidth+daysWidth) + 10
	liY := float64(imageHeight) - 100.0

	items := []struct {
		Label string
		Clr   color.Color
	}{
		{"Свободно", slotFreeColor},
		{"Есть места", slotPartialColor},
		{"Занято", slotFullColor},
	}

	boxW := 20.0
	boxH := 14.0

	for _, item := range items {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(liX, liY, boxW, boxH, 3)
		dc.Fill()

		loadFont(dc, legendItemFontSize, false)
		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(item.Label, liX+boxW+8, liY+boxH/2+1, 0, 0.2)
		liY += boxH + 14
	}
}
