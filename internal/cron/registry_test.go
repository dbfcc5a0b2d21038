package cron

import (
	"context"
	"testing"
)

type stubJob struct {
	name string
}

func (s *stubJob) Name() string              { return s.name }
func (s *stubJob) Run(context.Context) error { return nil }

func TestRegistryStoresJobs(t *testing.T) {
	registry := NewRegistry()
	jobA := &stubJob{name: "a"}
	jobB := &stubJob{name: "b"}
	registry.Register(jobA)
	registry.Register(jobB)
	jobs := registry.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0] != jobA || jobs[1] != jobB {
		t.Fatalf("jobs returned out of order")
	}
	// ensure caller cannot mutate internal slice
	jobs[0] = nil
	if registry.Jobs()[0] == nil {
		t.Fatalf("internal slice leaked")
	}
}

func TestRegistryIgnoresNilJobs(t *testing.T) {
	registry := NewRegistry(nil, &stubJob{name: "a"}, nil)
	registry.Register(nil)
	if got := len(registry.Jobs()); got != 1 {
		t.Fatalf("expected 1 job, got %d", got)
	}
}

func TestRegistryDeduplicatesByName(t *testing.T) {
	first := &stubJob{name: "stale-cart-cleanup"}
	registry := NewRegistry(first, &stubJob{name: "stale-cart-cleanup"})
	registry.Register(&stubJob{name: "stale-cart-cleanup"})

	jobs := registry.Jobs()
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if jobs[0] != first {
		t.Fatalf("duplicate registration replaced the original job")
	}
}

func TestRegistryNames(t *testing.T) {
	registry := NewRegistry(&stubJob{name: "stale-cart-cleanup"}, &stubJob{name: "order-retention"})
	names := registry.Names()
	if len(names) != 2 || names[0] != "stale-cart-cleanup" || names[1] != "order-retention" {
		t.Fatalf("names = %v", names)
	}
}
