package optimizer

import (
	"context"
	"fmt"
	"time"

	"github.com/TheBeardNerd/SmartCart-sub002/config"
	"github.com/TheBeardNerd/SmartCart-sub002/models"
)

// policyVersionKey tracks the version the store-policy table is currently
// at. Catalog maintenance (cmd/catalog-seed and whatever syncs policies)
// bumps it; a stale or missing key just means the cache is bypassed.
const policyVersionKey = "optimizer:policy_version"

// CandidateCache is a read-through Redis cache of candidate tables, keyed by
// (product-set hash, policy version). Entries are immutable once written and
// safe for concurrent readers; eviction is the TTL (catalog staleness
// bound). All Redis access goes through the nil-safe config helpers, so a
// missing Redis degrades to "never hits".
type CandidateCache struct {
	ttl time.Duration
}

func NewCandidateCache(ttl time.Duration) *CandidateCache {
	return &CandidateCache{ttl: ttl}
}

func (c *CandidateCache) key(hash string, policyVersion int) string {
	return fmt.Sprintf("optimizer:candidates:%s:v%d", hash, policyVersion)
}

func (c *CandidateCache) CurrentPolicyVersion() (int, bool) {
	var version int
	found, err := config.GetRedisObject(policyVersionKey, &version)
	if err != nil || !found || version <= 0 {
		return 0, false
	}
	return version, true
}

func (c *CandidateCache) Get(hash string, policyVersion int) (map[string][]models.Candidate, bool) {
	var candidates map[string][]models.Candidate
	found, err := config.GetRedisObject(c.key(hash, policyVersion), &candidates)
	if err != nil || !found {
		return nil, false
	}
	return candidates, true
}

func (c *CandidateCache) Put(hash string, policyVersion int, candidates map[string][]models.Candidate) {
	// Cache write failure is never worth failing the request over. The
	// policy-version pointer is deliberately not touched here: a degraded
	// fan-out can produce a lower version than the catalog is really at, and
	// writing it back would re-validate stale entries. Only catalog
	// maintenance moves the pointer, via SetCurrentPolicyVersion.
	_ = config.SetRedisObject(c.key(hash, policyVersion), candidates, c.ttl)
}

// SetCurrentPolicyVersion is called by catalog maintenance after policy
// changes land; it invalidates every cached candidate table at once.
func SetCurrentPolicyVersion(version int) error {
	return config.SetRedisObject(policyVersionKey, version, 0)
}

// tryLock takes a short single-flight lock around a candidate rebuild so
// concurrent re-optimizations of the same cart do one catalog fan-out, not
// N. Returns nil when no lock could be taken (no Redis, contended); the
// caller then just rebuilds, which is always correct.
func (c *CandidateCache) tryLock(ctx context.Context, hash string) func() {
	locker := config.GetRedisLock()
	if locker == nil {
		return nil
	}
	lock, err := locker.Obtain(ctx, "optimizer:candidates:lock:"+hash, 3*time.Second, nil)
	if err != nil {
		return nil
	}
	return func() { _ = lock.Release(context.Background()) }
}
