package promos

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/lunakids/lunakids-backend/pkg/config"
	"github.com/lunakids/lunakids-backend/pkg/enums"
	pkgerrors "github.com/lunakids/lunakids-backend/pkg/errors"
)

// wheelSegments are the discount percentages the spin wheel can land on.
var wheelSegments = []int{5, 10, 15, 20, 25, 30}

// Grant is a session-scoped discount held in Redis until checkout redeems it
// or the TTL expires. The percent is authoritative server-side; the storefront
// only renders it.
type Grant struct {
	Kind      enums.PromoKind `json:"kind"`
	Percent   int             `json:"percent"`
	GrantedAt time.Time       `json:"granted_at"`
}

// grantStore is the Redis surface the promo service needs.
type grantStore interface {
	PromoGrantKey(sessionID string) string
	PromoSpinKey(sessionID string) string
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
}

// Service manages the storefront's discount gimmicks.
type Service interface {
	Spin(ctx context.Context, sessionID string) (*Grant, error)
	ExitIntent(ctx context.Context, sessionID string) (*Grant, error)
	ActiveGrant(ctx context.Context, sessionID string) (*Grant, error)
	Redeem(ctx context.Context, sessionID string) (*Grant, error)
}

type service struct {
	store grantStore
	cfg   config.PromoConfig
	now   func() time.Time
	pick  func(n int) int
}

// NewService builds the promo service on top of the shared Redis client.
func NewService(store grantStore, cfg config.PromoConfig) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "grant store is required")
	}
	return &service{
		store: store,
		cfg:   cfg,
		now:   time.Now,
		pick:  rand.Intn,
	}, nil
}

// Spin runs the wheel once per cooldown window. The result replaces any
// weaker grant already held by the session.
func (s *service) Spin(ctx context.Context, sessionID string) (*Grant, error) {
	if err := ensureSession(sessionID); err != nil {
		return nil, err
	}

	acquired, err := s.store.SetNX(ctx, s.store.PromoSpinKey(sessionID), "1", s.cfg.SpinCooldown)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check spin cooldown")
	}
	if !acquired {
		return nil, pkgerrors.New(pkgerrors.CodeRateLimit, "spin already used, come back tomorrow")
	}

	percent := wheelSegments[s.pick(len(wheelSegments))]
	if percent > s.cfg.MaxDiscountPercent {
		percent = s.cfg.MaxDiscountPercent
	}
	return s.saveBestGrant(ctx, sessionID, Grant{
		Kind:      enums.PromoKindSpinWheel,
		Percent:   percent,
		GrantedAt: s.now(),
	})
}

// ExitIntent grants the fixed leave-the-page discount. It never downgrades an
// existing grant and carries no cooldown of its own.
func (s *service) ExitIntent(ctx context.Context, sessionID string) (*Grant, error) {
	if err := ensureSession(sessionID); err != nil {
		return nil, err
	}
	return s.saveBestGrant(ctx, sessionID, Grant{
		Kind:      enums.PromoKindExitIntent,
		Percent:   s.cfg.ExitIntentPercent,
		GrantedAt: s.now(),
	})
}

// ActiveGrant returns the session's current grant, or nil when none is held.
func (s *service) ActiveGrant(ctx context.Context, sessionID string) (*Grant, error) {
	if err := ensureSession(sessionID); err != nil {
		return nil, err
	}
	return s.loadGrant(ctx, sessionID)
}

// Redeem consumes the grant so checkout can apply it exactly once.
func (s *service) Redeem(ctx context.Context, sessionID string) (*Grant, error) {
	if err := ensureSession(sessionID); err != nil {
		return nil, err
	}
	grant, err := s.loadGrant(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if grant == nil {
		return nil, nil
	}
	if err := s.store.Del(ctx, s.store.PromoGrantKey(sessionID)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume promo grant")
	}
	return grant, nil
}

func (s *service) saveBestGrant(ctx context.Context, sessionID string, candidate Grant) (*Grant, error) {
	existing, err := s.loadGrant(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Percent >= candidate.Percent {
		return existing, nil
	}

	payload, err := json.Marshal(candidate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode promo grant")
	}
	if err := s.store.Set(ctx, s.store.PromoGrantKey(sessionID), string(payload), s.cfg.GrantTTL); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save promo grant")
	}
	return &candidate, nil
}

func (s *service) loadGrant(ctx context.Context, sessionID string) (*Grant, error) {
	raw, err := s.store.Get(ctx, s.store.PromoGrantKey(sessionID))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load promo grant")
	}
	var grant Grant
	if err := json.Unmarshal([]byte(raw), &grant); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode promo grant")
	}
	return &grant, nil
}

func ensureSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return nil
}
