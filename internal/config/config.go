package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultTimezone     = "Europe/Moscow"
	defaultMetricsAddr  = ":9090"
	defaultBookingDays  = 7
	defaultReminderCron = "*/5 * * * *"
)

type Config struct {
	TelegramToken string `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN         string `mapstructure:"DB_DSN"`
	Environment   string `mapstructure:"ENV"`

	AdminIDs     []int64        `mapstructure:"ADMIN_IDS"`
	Timezone     string         `mapstructure:"TIMEZONE"`
	Location     *time.Location `mapstructure:"-"`
	BookingDays  int            `mapstructure:"BOOKING_DAYS"`
	ReminderCron string         `mapstructure:"REMINDER_CRON"`
	PoolAddress  string         `mapstructure:"POOL_ADDRESS"` // Адрес бассейна для экспорта в календарь

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	MetricsAddr   string `mapstructure:"METRICS_ADDR"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		DBDSN:         os.Getenv("DB_DSN"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		Environment:   os.Getenv("ENV"),
		Timezone:      os.Getenv("TIMEZONE"),
		ReminderCron:  os.Getenv("REMINDER_CRON"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		MetricsAddr:   os.Getenv("METRICS_ADDR"),
		PoolAddress:   os.Getenv("POOL_ADDRESS"),
		BookingDays:   defaultBookingDays,
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = defaultTimezone
	}
	if cfg.ReminderCron == "" {
		cfg.ReminderCron = defaultReminderCron
	}
	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = defaultMetricsAddr
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	if raw := os.Getenv("BOOKING_DAYS"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 1 {
			return nil, fmt.Errorf("BOOKING_DAYS must be a positive integer, got %q", raw)
		}
		cfg.BookingDays = days
	}

	adminIDs, err := ParseAdminIDs(os.Getenv("ADMIN_IDS"))
	if err != nil {
		return nil, err
	}
	cfg.AdminIDs = adminIDs

	log.Printf("Config loaded\n")

	return cfg, nil
}

// ParseAdminIDs разбирает список Telegram ID через запятую
func ParseAdminIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse ADMIN_IDS entry %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// IsAdmin проверяет, входит ли пользователь в список администраторов
func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}
