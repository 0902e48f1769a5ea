package usecase

import (
	"sync"
	"time"

	"github.com/secmon-lab/aegis/pkg/domain/model"
)

const sessionCacheTTL = 5 * time.Minute

type cachedSession struct {
	session  *model.Session
	cachedAt time.Time
}

// sessionCache keeps recently validated sessions to spare a store read on
// every request
type sessionCache struct {
	cache sync.Map
}

func newSessionCache() *sessionCache {
	return &sessionCache{}
}

func (c *sessionCache) get(id string, now time.Time) (*model.Session, bool) {
	val, ok := c.cache.Load(id)
	if !ok {
		return nil, false
	}

	cached := val.(*cachedSession)
	if now.Sub(cached.cachedAt) > sessionCacheTTL {
		c.cache.Delete(id)
		return nil, false
	}
	return cached.session, true
}

func (c *sessionCache) set(session *model.Session, now time.Time) {
	c.cache.Store(session.ID, &cachedSession{session: session, cachedAt: now})
}

func (c *sessionCache) remove(id string) {
	c.cache.Delete(id)
}

func (c *sessionCache) removeUser(userID string) {
	c.cache.Range(func(key, val any) bool {
		if val.(*cachedSession).session.UserID == userID {
			c.cache.Delete(key)
		}
		return true
	})
}
