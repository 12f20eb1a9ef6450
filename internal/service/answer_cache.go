package service

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"helpdesk/internal/domain"
)

// answerCache memoizes generated answers by normalized query. Concurrent
// misses for the same query share one generation call.
type answerCache struct {
	lru   *expirable.LRU[string, domain.Answer]
	group singleflight.Group
}

// newAnswerCache returns nil when size <= 0. A zero ttl never expires entries.
func newAnswerCache(size int, ttl time.Duration) *answerCache {
	if size <= 0 {
		return nil
	}
	return &answerCache{lru: expirable.NewLRU[string, domain.Answer](size, nil, ttl)}
}

func cacheKey(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// getOrCompute returns the cached answer or runs compute. Fallback answers are
// shared with concurrent waiters but never stored.
func (c *answerCache) getOrCompute(query string, compute func() domain.Answer) (domain.Answer, bool) {
	key := cacheKey(query)
	if a, ok := c.lru.Get(key); ok {
		return a, true
	}
	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		if a, ok := c.lru.Get(key); ok {
			return a, nil
		}
		a := compute()
		if a.Source != domain.SourceFallback {
			c.lru.Add(key, a)
		}
		return a, nil
	})
	return v.(domain.Answer), false
}

func (c *answerCache) len() int {
	return c.lru.Len()
}
