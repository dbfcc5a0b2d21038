package env

import (
	"os"
	"strings"
)

// Prefix scopes the variables this service reads straight from the
// environment, mirroring the envconfig prefix used by pkg/config.
const Prefix = "LUNAKIDS_"

// Get returns the value of the given environment variable or a fallback.
// The prefixed name wins over the bare one so deployments can namespace
// their settings without breaking local overrides.
func Get(key, fallback string) string {
	for _, name := range []string{Prefix + key, key} {
		if val := strings.TrimSpace(os.Getenv(name)); val != "" {
			return val
		}
	}
	return fallback
}
