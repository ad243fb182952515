package ordercleanup

import (
	"context"
	"fmt"
	"time"

	"log/slog"
)

func (w *Worker) worker(ctx context.Context) {
	ticker := time.NewTicker(w.c.WorkerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.deleteAbandonedOrders(ctx); err != nil {
				slog.Default().ErrorContext(ctx, "can't delete abandoned orders",
					slog.String("err", err.Error()),
				)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (w *Worker) deleteAbandonedOrders(ctx context.Context) error {
	olderThan := w.repo.Now().Add(-w.c.UnpaidThreshold)
	orders, err := w.repo.Orders().StaleUnpaidOrders(ctx, olderThan)
	if err != nil {
		return fmt.Errorf("can't get stale unpaid orders: %w", err)
	}

	for _, order := range orders {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := w.repo.Orders().DeleteOrder(ctx, order.ID); err != nil {
			slog.Default().ErrorContext(ctx, "can't delete abandoned order",
				slog.String("err", err.Error()),
				slog.Int("order_id", order.ID),
			)
			continue
		}
		slog.Default().InfoContext(ctx, "deleted abandoned order",
			slog.Int("order_id", order.ID),
			slog.Time("placed", order.Placed),
		)
	}

	return nil
}
