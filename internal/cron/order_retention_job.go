package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/lunakids/lunakids-backend/pkg/logger"
)

const (
	defaultPendingCancelAfter = 14 * 24 * time.Hour
	defaultCancelledRetention = 90 * 24 * time.Hour
)

type orderSweeper interface {
	CancelPendingBefore(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteCancelledBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// OrderRetentionJobParams configure the order lifecycle sweep.
type OrderRetentionJobParams struct {
	Logger             *logger.Logger
	Orders             orderSweeper
	PendingCancelAfter time.Duration
	CancelledRetention time.Duration
}

// NewOrderRetentionJob builds the job that cancels orders whose WhatsApp
// conversation went cold and purges cancelled orders past retention.
func NewOrderRetentionJob(params OrderRetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("order sweeper required")
	}
	pendingCancelAfter := params.PendingCancelAfter
	if pendingCancelAfter <= 0 {
		pendingCancelAfter = defaultPendingCancelAfter
	}
	cancelledRetention := params.CancelledRetention
	if cancelledRetention <= 0 {
		cancelledRetention = defaultCancelledRetention
	}
	return &orderRetentionJob{
		logg:               params.Logger,
		orders:             params.Orders,
		pendingCancelAfter: pendingCancelAfter,
		cancelledRetention: cancelledRetention,
		now:                time.Now,
	}, nil
}

type orderRetentionJob struct {
	logg               *logger.Logger
	orders             orderSweeper
	pendingCancelAfter time.Duration
	cancelledRetention time.Duration
	now                func() time.Time
}

func (j *orderRetentionJob) Name() string { return "order-retention" }

func (j *orderRetentionJob) Run(ctx context.Context) error {
	var errs []error
	if err := j.cancelColdOrders(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := j.purgeCancelledOrders(ctx); err != nil {
		errs = append(errs, err)
	}
	return multierr.Combine(errs...)
}

func (j *orderRetentionJob) cancelColdOrders(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.pendingCancelAfter)
	cancelled, err := j.orders.CancelPendingBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("cancel cold pending orders: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"cancelled": cancelled})
	j.logg.Info(logCtx, "cold order cancellation complete")
	return nil
}

func (j *orderRetentionJob) purgeCancelledOrders(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.cancelledRetention)
	purged, err := j.orders.DeleteCancelledBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("purge cancelled orders: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"purged": purged})
	j.logg.Info(logCtx, "cancelled order purge complete")
	return nil
}
