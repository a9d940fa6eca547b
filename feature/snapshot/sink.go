package snapshot

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Sink persists a snapshot somewhere.
type Sink interface {
	Name() string
	Write(ctx context.Context, run Run) error
}

// Publish writes run to every sink in order and stops at the first failure.
func Publish(ctx context.Context, logger *zap.Logger, run Run, sinks ...Sink) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, sink := range sinks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sink.Write(ctx, run); err != nil {
			return fmt.Errorf("sink %s: %w", sink.Name(), err)
		}
		logger.Info("Snapshot written",
			zap.String("sink", sink.Name()),
			zap.String("run_id", run.ID))
	}
	return nil
}
