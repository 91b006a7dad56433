package supabase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/bolao-app/bolao-api/internal/domain/user"
)

type cacheEntry struct {
	principal user.Principal
	expiresAt time.Time
}

type principalCache struct {
	mu         sync.RWMutex
	entries    map[string]cacheEntry
	ttl        time.Duration
	maxEntries int
}

func newPrincipalCache(ttl time.Duration, maxEntries int) *principalCache {
	return &principalCache{
		entries:    make(map[string]cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

func (c *principalCache) Get(key string) (user.Principal, bool) {
	now := time.Now()

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return user.Principal{}, false
	}
	if !entry.expiresAt.After(now) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return user.Principal{}, false
	}

	return entry.principal, true
}

func (c *principalCache) Set(key string, principal user.Principal) {
	if c.ttl <= 0 {
		return
	}

	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictExpired(now)
		if len(c.entries) >= c.maxEntries {
			c.evictOne()
		}
	}

	c.entries[key] = cacheEntry{
		principal: principal,
		expiresAt: now.Add(c.ttl),
	}
}

func (c *principalCache) evictExpired(now time.Time) {
	for key, entry := range c.entries {
		if !entry.expiresAt.After(now) {
			delete(c.entries, key)
		}
	}
}

func (c *principalCache) evictOne() {
	for key := range c.entries {
		delete(c.entries, key)
		return
	}
}

// CachingVerifier memoizes successful verifications for a short window so a
// burst of authenticated requests does not introspect the same token over and
// over. Tokens are stored hashed, never in the clear.
type CachingVerifier struct {
	client *Client
	cache  *principalCache
}

func NewCachingVerifier(client *Client, ttl time.Duration, maxEntries int) *CachingVerifier {
	return &CachingVerifier{
		client: client,
		cache:  newPrincipalCache(ttl, maxEntries),
	}
}

func (v *CachingVerifier) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	key := hashToken(token)
	if principal, ok := v.cache.Get(key); ok {
		return principal, nil
	}

	principal, err := v.client.VerifyAccessToken(ctx, token)
	if err != nil {
		return user.Principal{}, err
	}

	v.cache.Set(key, principal)
	return principal, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
