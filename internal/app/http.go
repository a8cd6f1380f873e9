package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Pinger проверка доступности хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse ответ /healthz
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks"`
}

// HealthChecker отдаёт состояние процесса и базы
type HealthChecker struct {
	db        Pinger
	startTime time.Time
}

func NewHealthChecker(db Pinger) *HealthChecker {
	return &HealthChecker{db: db, startTime: time.Now()}
}

// HealthHandler обрабатывает /healthz: 200 если база отвечает, иначе 503
func (h *HealthChecker) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := "healthy"
	checks := map[string]string{"database": "healthy"}
	if err := h.db.Ping(ctx); err != nil {
		checks["database"] = "unhealthy: " + err.Error()
		status = "unhealthy"
	}

	w.Header().Set("Content-Type", "application/json")
	if status == "healthy" {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	json.NewEncoder(w).Encode(HealthResponse{
		Status:    status,
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Truncate(time.Second).String(),
		Checks:    checks,
	})
}

// NewMetricsServer HTTP сервер с /metrics (Prometheus) и /healthz
func NewMetricsServer(addr string, health *HealthChecker) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", health.HealthHandler)
	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// ServeMetrics запускает сервер в фоне и гасит его при отмене ctx
func ServeMetrics(ctx context.Context, srv *http.Server, logger *zap.Logger) {
	go func() {
		logger.Info("Metrics server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Metrics server shutdown", zap.Error(err))
		}
	}()
}
