package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lunakids/lunakids-backend/pkg/logger"
)

type fakeCartDeleter struct {
	cutoff time.Time
	err    error
}

func (f *fakeCartDeleter) DeleteStaleBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return 3, f.err
}

func TestStaleCartJobUsesConfiguredHorizon(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	deleter := &fakeCartDeleter{}
	jobIface, err := NewStaleCartJob(StaleCartJobParams{
		Logger:     logger.New(logger.Options{ServiceName: "cron-test"}),
		Carts:      deleter,
		StaleAfter: 720 * time.Hour,
	})
	if err != nil {
		t.Fatalf("NewStaleCartJob: %v", err)
	}
	job := jobIface.(*staleCartJob)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := now.Add(-720 * time.Hour); !deleter.cutoff.Equal(want) {
		t.Fatalf("cutoff = %s, want %s", deleter.cutoff, want)
	}
}

func TestStaleCartJobSurfacesSweepError(t *testing.T) {
	deleter := &fakeCartDeleter{err: errors.New("boom")}
	job, err := NewStaleCartJob(StaleCartJobParams{
		Logger: logger.New(logger.Options{ServiceName: "cron-test"}),
		Carts:  deleter,
	})
	if err != nil {
		t.Fatalf("NewStaleCartJob: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
