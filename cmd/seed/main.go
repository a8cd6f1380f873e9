package main

import (
	"context"
	"log"
	"time"

	"github.com/Freeeeeet/swim_bot/internal/app"
	"github.com/Freeeeeet/swim_bot/internal/config"
	"github.com/Freeeeeet/swim_bot/internal/model"
	"github.com/Freeeeeet/swim_bot/internal/repository"
	"github.com/Freeeeeet/swim_bot/internal/repository/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Расписание по умолчанию: понедельник, среда и пятница, по одному месту в окне
var defaultWeekdays = []time.Weekday{time.Monday, time.Wednesday, time.Friday}

var defaultWindows = [][2]model.ClockTime{
	{{Hour: 9}, {Hour: 10}},
	{{Hour: 10}, {Hour: 11}},
	{{Hour: 18}, {Hour: 19}},
}

var sampleTutorials = []*model.Tutorial{
	{
		Style:       model.SwimStyleFreestyle,
		Title:       "Кроль: дыхание",
		Description: "Вдох в сторону на каждый третий гребок, выдох в воду полностью.",
	},
	{
		Style:       model.SwimStyleFreestyle,
		Title:       "Кроль: работа ног",
		Description: "Ноги работают от бедра, стопы вытянуты, амплитуда небольшая.",
		Position:    1,
	},
	{
		Style:       model.SwimStyleBreaststroke,
		Title:       "Брасс: скольжение",
		Description: "После толчка ногами задержитесь в скольжении с вытянутыми руками.",
	},
	{
		Style:       model.SwimStyleBackstroke,
		Title:       "На спине: положение тела",
		Description: "Голова лежит на воде, подбородок слегка прижат, бёдра у поверхности.",
	},
	{
		Style:       model.SwimStyleButterfly,
		Title:       "Баттерфляй: волна",
		Description: "Движение начинается от груди и проходит через всё тело к стопам.",
	},
	{
		Style:       model.SwimStyleGeneral,
		Title:       "Что взять на тренировку",
		Description: "Шапочка, очки, полотенце, сланцы и бутылка воды.",
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment).Named("seed")
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, migrations.FS, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	if err := seedTemplates(ctx, repository.NewSlotTemplateRepository(pool), logger); err != nil {
		logger.Fatal("Failed to seed slot templates", zap.Error(err))
	}
	if err := seedTutorials(ctx, repository.NewTutorialRepository(pool), logger); err != nil {
		logger.Fatal("Failed to seed tutorials", zap.Error(err))
	}

	logger.Info("Seed completed")
}

// seedTemplates добавляет окна по умолчанию, пропуская уже существующие
func seedTemplates(ctx context.Context, templates *repository.SlotTemplateRepository, logger *zap.Logger) error {
	created := 0
	for _, weekday := range defaultWeekdays {
		for _, window := range defaultWindows {
			existing, err := templates.FindActive(ctx, weekday, window[0])
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}

			tmpl := &model.SlotTemplate{
				Weekday:  weekday,
				Start:    window[0],
				End:      window[1],
				Capacity: 1,
				IsActive: true,
			}
			if err := templates.Create(ctx, tmpl); err != nil {
				return err
			}
			created++
		}
	}

	logger.Info("Slot templates seeded", zap.Int("created", created))
	return nil
}

// seedTutorials заполняет материалы, только если таблица пустая
func seedTutorials(ctx context.Context, tutorials *repository.TutorialRepository, logger *zap.Logger) error {
	count, err := tutorials.CountAll(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Tutorials already present, skipping", zap.Int("count", count))
		return nil
	}

	for _, t := range sampleTutorials {
		t.IsActive = true
		if err := tutorials.Create(ctx, t); err != nil {
			return err
		}
	}

	logger.Info("Tutorials seeded", zap.Int("created", len(sampleTutorials)))
	return nil
}
