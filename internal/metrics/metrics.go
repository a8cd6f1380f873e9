package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики бота тренера
var (
	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swim_bot_bookings_total",
			Help: "Попытки записи на тренировку по результату",
		},
		[]string{"result"}, // created, already_booked, full, not_offered, past, error
	)

	CancellationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swim_bot_cancellations_total",
			Help: "Отмены тренировок по результату",
		},
		[]string{"result"},
	)

	RemindersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swim_bot_reminders_total",
			Help: "Напоминания о тренировках по результату",
		},
		[]string{"status"}, // sent, skipped, failed
	)

	SweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "swim_bot_reminder_sweep_duration_seconds",
			Help:    "Время одного прохода рассылки напоминаний",
			Buckets: prometheus.DefBuckets,
		},
	)

	ClientRegistrations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "swim_bot_client_registrations_total",
			Help: "Новые клиенты",
		},
	)

	UpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swim_bot_updates_total",
			Help: "Обработанные обновления Telegram",
		},
		[]string{"kind"}, // message, callback
	)

	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swim_bot_errors_total",
			Help: "Ошибки по компонентам",
		},
		[]string{"component"},
	)
)

// RecordBooking записывает результат попытки записи
func RecordBooking(result string) {
	BookingsTotal.WithLabelValues(result).Inc()
}

// RecordCancellation записывает результат отмены
func RecordCancellation(result string) {
	CancellationsTotal.WithLabelValues(result).Inc()
}

// RecordReminder записывает результат отправки напоминания
func RecordReminder(status string) {
	RemindersTotal.WithLabelValues(status).Inc()
}

// ObserveSweep записывает длительность прохода рассылки
func ObserveSweep(d time.Duration) {
	SweepDuration.Observe(d.Seconds())
}

// RecordRegistration записывает регистрацию клиента
func RecordRegistration() {
	ClientRegistrations.Inc()
}

// RecordUpdate записывает обработанное обновление
func RecordUpdate(kind string) {
	UpdatesTotal.WithLabelValues(kind).Inc()
}

// RecordError записывает ошибку компонента
func RecordError(component string) {
	ErrorsTotal.WithLabelValues(component).Inc()
}
