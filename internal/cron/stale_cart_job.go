package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/lunakids/lunakids-backend/pkg/logger"
)

const defaultStaleCartAfter = 30 * 24 * time.Hour

type staleCartDeleter interface {
	DeleteStaleBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// StaleCartJobParams configure the abandoned-cart sweep.
type StaleCartJobParams struct {
	Logger     *logger.Logger
	Carts      staleCartDeleter
	StaleAfter time.Duration
}

// NewStaleCartJob builds the job that drops carts nobody touched in weeks.
func NewStaleCartJob(params StaleCartJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Carts == nil {
		return nil, fmt.Errorf("cart deleter required")
	}
	staleAfter := params.StaleAfter
	if staleAfter <= 0 {
		staleAfter = defaultStaleCartAfter
	}
	return &staleCartJob{
		logg:       params.Logger,
		carts:      params.Carts,
		staleAfter: staleAfter,
		now:        time.Now,
	}, nil
}

type staleCartJob struct {
	logg       *logger.Logger
	carts      staleCartDeleter
	staleAfter time.Duration
	now        func() time.Time
}

func (j *staleCartJob) Name() string { return "stale-cart-cleanup" }

func (j *staleCartJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.staleAfter)
	dropped, err := j.carts.DeleteStaleBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("delete stale carts: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"dropped": dropped})
	j.logg.Info(logCtx, "stale cart sweep complete")
	return nil
}
