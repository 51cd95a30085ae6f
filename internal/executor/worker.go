package executor

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/vk/varzip/internal/ctxlog"
)

// worker is the core processing loop for a single concurrent worker. It
// returns when every project is done, the context is cancelled, or a
// project fails.
func (e *Executor) worker(ctx context.Context, readyChan chan *task, remaining *atomic.Int32, workerID int) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)
	defer logger.Debug("Worker finished.", "workerID", workerID)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t, ok := <-readyChan:
			if !ok {
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			taskCtx, workerLogger := ctxlog.With(ctx, "workerID", workerID, "project", t.path)
			workerLogger.Debug("Worker picked up project.")

			if err := e.compressProject(taskCtx, t.path); err != nil {
				workerLogger.Error("Project compression failed.", "error", err)
				return fmt.Errorf("project %s: %w", t.path, err)
			}

			for _, dependent := range t.dependents {
				if dependent.depCount.Add(-1) == 0 {
					workerLogger.Debug("Unlocking dependent project.", "dependent", dependent.path)
					readyChan <- dependent
				}
			}

			if remaining.Add(-1) == 0 {
				close(readyChan)
			}
		}
	}
}
