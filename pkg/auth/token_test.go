package auth

import (
	"testing"
	"time"

	"github.com/lunakids/lunakids-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "lunakids-test",
		ExpirationMinutes: 60,
	}
}

func TestMintAndParseAdminToken(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	signed, err := MintAdminToken(cfg, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := ParseAdminToken(cfg, signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Role != AdminRole {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
	if claims.ID == "" {
		t.Fatal("expected a token id")
	}
}

func TestParseAdminTokenRejectsExpired(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	signed, err := MintAdminToken(cfg, time.Now().Add(-48*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ParseAdminToken(cfg, signed); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestParseAdminTokenRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	signed, err := MintAdminToken(testJWTConfig(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := testJWTConfig()
	other.Secret = "different"
	if _, err := ParseAdminToken(other, signed); err == nil {
		t.Fatal("expected signature mismatch to fail")
	}
}

func TestMintAdminTokenRequiresConfig(t *testing.T) {
	t.Parallel()

	if _, err := MintAdminToken(config.JWTConfig{}, time.Now()); err == nil {
		t.Fatal("expected error for missing secret")
	}
}
