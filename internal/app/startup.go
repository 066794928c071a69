// Package app holds process startup steps shared by the commands.
package app

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vlat-exam/api/pkg/database"
)

// ProbeTimeout bounds the startup connectivity check.
const ProbeTimeout = 10 * time.Second

// Counter reports the number of stored rows.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// PrepareStore probes the store and, when reachable, creates missing tables
// and logs the current user count. Failures are logged and never stop startup;
// the result reports whether the store was ready.
func PrepareStore(ctx context.Context, log *zap.Logger, db *gorm.DB, users Counter, models ...any) bool {
	probeCtx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	if err := database.Probe(probeCtx, db); err != nil {
		log.Error("Database connection failed",
			zap.String("message", database.ErrorMessage(err)),
			zap.String("code", database.ErrorCode(err)),
			zap.Error(err),
		)
		return false
	}
	log.Info("Database connected")

	if err := database.EnsureTables(ctx, db, models...); err != nil {
		log.Error("Error creating tables", zap.Error(err))
		return false
	}
	log.Info("Users table is ready")

	n, err := users.Count(ctx)
	if err != nil {
		log.Error("Counting users failed", zap.String("message", database.ErrorMessage(err)))
		return true
	}
	log.Info("Total users in database", zap.Int64("count", n))
	return true
}
