package redis

import (
	"testing"

	"github.com/lunakids/lunakids-backend/pkg/config"
)

func TestBuildKeyNamespacesAndSkipsEmptyParts(t *testing.T) {
	t.Parallel()

	c := &Client{}
	if got := c.CartLeaseKey("sess-1"); got != "lk:cart_lease:sess-1" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := c.PromoGrantKey(""); got != "lk:promo:grant" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := c.IdempotencyKey("checkout", "abc"); got != "lk:idempotency:checkout:abc" {
		t.Fatalf("unexpected key: %s", got)
	}
}

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	t.Parallel()

	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error when no url or address configured")
	}
}

func TestOptionsFromConfigAddressFallback(t *testing.T) {
	t.Parallel()

	opts, err := optionsFromConfig(config.RedisConfig{Address: "localhost:6379", PoolSize: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" {
		t.Fatalf("unexpected addr: %s", opts.Addr)
	}
	if opts.PoolSize != 5 {
		t.Fatalf("unexpected pool size: %d", opts.PoolSize)
	}
}
