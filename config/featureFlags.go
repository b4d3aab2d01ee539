package config

import (
	"os"
	"strings"
)

// CandidateCacheEnabled gates the Redis read-through cache of candidate maps.
// Re-optimizing an unchanged cart then skips the catalog fan-out entirely.
//
// Set via env:
// - CANDIDATE_CACHE_ENABLED=true
func CandidateCacheEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("CANDIDATE_CACHE_ENABLED")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
