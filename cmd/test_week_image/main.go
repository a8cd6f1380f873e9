package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/swim_bot/internal/render"
	"github.com/Freeeeeet/swim_bot/internal/service"
)

func main() {
	// Начинаем с понедельника текущей недели
	now := time.Now()
	startDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for startDate.Weekday() != time.Monday {
		startDate = startDate.AddDate(0, 0, -1)
	}

	days := make([]service.Day, 7)
	for i := range days {
		days[i].Date = startDate.AddDate(0, 0, i)
	}

	window := func(day, hour, capacity, booked int) service.Window {
		start := startDate.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour)
		return service.Window{StartsAt: start, EndsAt: start.Add(time.Hour), Capacity: capacity, Booked: booked}
	}

	// Понедельник, среда и пятница: утро и вечер
	for _, day := range []int{0, 2, 4} {
		days[day].Windows = []service.Window{
			window(day, 9, 1, day/2%2),
			window(day, 10, 1, 0),
			window(day, 18, 2, 1),
		}
	}
	// Суббота: групповое занятие
	days[5].Windows = []service.Window{window(5, 11, 4, 4)}

	imageData, err := render.WeekImage(days, now)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	filename := "week.png"
	if err := os.WriteFile(filename, imageData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	windows := 0
	for _, d := range days {
		windows += len(d.Windows)
	}

	fmt.Printf("✅ Изображение успешно сохранено в %s\n", filename)
	fmt.Printf("📅 Период: %s - %s\n", startDate.Format("02.01.2006"), days[6].Date.Format("02.01.2006"))
	fmt.Printf("📊 Окон: %d\n", windows)
}
