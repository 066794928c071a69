package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/vlat-exam/api/internal/api/types"
	"github.com/vlat-exam/api/pkg/database"
	"github.com/vlat-exam/api/pkg/logger"
)

// Checker runs a trivial query against the store.
type Checker interface {
	Check(ctx context.Context) error
}

// SystemInfo is the static data reported by the service endpoints.
type SystemInfo struct {
	Environment string
	DBHost      string
	DBName      string
	DBPort      int
	DBUser      string
	Started     time.Time
}

// HealthHandler serves the service metadata, health and db-info endpoints.
type HealthHandler struct {
	checker Checker
	info    SystemInfo
	now     func() time.Time
}

func NewHealthHandler(checker Checker, info SystemInfo) *HealthHandler {
	if info.Started.IsZero() {
		info.Started = time.Now()
	}
	return &HealthHandler{checker: checker, info: info, now: time.Now}
}

func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.ServiceInfo{
		Message:     "VLAT Exam Backend API",
		Status:      "running",
		Database:    "connected",
		Timestamp:   types.Timestamp(h.now()),
		Environment: h.info.Environment,
	})
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	if err := h.checker.Check(r.Context()); err != nil {
		logger.L().Error("health check failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, types.HealthStatus{
			Status:    "unhealthy",
			Database:  "disconnected",
			Error:     database.ErrorMessage(err),
			Timestamp: types.Timestamp(now),
		})
		return
	}

	uptime := now.Sub(h.info.Started).Seconds()
	writeJSON(w, http.StatusOK, types.HealthStatus{
		Status:      "healthy",
		Database:    "connected",
		Timestamp:   types.Timestamp(now),
		Uptime:      &uptime,
		Environment: h.info.Environment,
	})
}

// DBInfo reports connection parameters without touching the store. It is an
// unauthenticated diagnostic and exposes infrastructure details.
func (h *HealthHandler) DBInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.DBInfo{
		Host:      h.info.DBHost,
		Database:  h.info.DBName,
		Port:      strconv.Itoa(h.info.DBPort),
		User:      h.info.DBUser,
		NodeEnv:   h.info.Environment,
		Timestamp: types.Timestamp(h.now()),
	})
}
