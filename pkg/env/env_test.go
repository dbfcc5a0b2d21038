package env

import "testing"

func TestGetPrefersPrefixedName(t *testing.T) {
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv(Prefix+"LOG_FORMAT", "json")

	if got := Get("LOG_FORMAT", "text"); got != "json" {
		t.Fatalf("value = %q", got)
	}
}

func TestGetFallsBack(t *testing.T) {
	t.Setenv("SOME_UNSET_KEY", "  ")

	if got := Get("SOME_UNSET_KEY", "fallback"); got != "fallback" {
		t.Fatalf("value = %q", got)
	}

	t.Setenv("SOME_UNSET_KEY", "set")
	if got := Get("SOME_UNSET_KEY", "fallback"); got != "set" {
		t.Fatalf("value = %q", got)
	}
}
