package logging

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Track runs fn as one logged unit of work. It assigns a run ID (unless ctx
// already carries one), stores the logger in the context handed to fn, and
// logs the outcome and duration of the run.
func Track(ctx context.Context, logger *Logger, operation string, fn func(ctx context.Context) error) error {
	start := time.Now()

	runID := RunID(ctx)
	if runID == "" {
		runID = uuid.New().String()
		ctx = WithRunID(ctx, runID)
	}
	ctx = WithLogger(ctx, logger)

	log := logger.WithContext(ctx).With("operation", operation)
	log.Debug("Run started")

	err := fn(ctx)

	duration := time.Since(start)
	if err != nil {
		log.Error("Run failed",
			"duration", duration,
			"error", err)
		return err
	}

	log.Info("Run completed", "duration", duration)
	return nil
}
