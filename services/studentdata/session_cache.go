package studentdata

import (
	"context"
	"time"

	"academia-backend/services/studentdata/store"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const sessionKey = "session"

// sessionCache keeps the session cookie header out of the hot path;
// entries expire so a re-login lands within a bounded delay.
type sessionCache struct {
	cache *expirable.LRU[string, string]
	store store.Store
}

func newSessionCache(st store.Store) sessionCache {
	return sessionCache{
		cache: expirable.NewLRU[string, string](8, nil, time.Minute*15),
		store: st,
	}
}

func (s sessionCache) Cookies(ctx context.Context) (string, error) {
	cached, hit := s.cache.Get(sessionKey)
	if hit {
		return cached, nil
	}

	creds, ok, err := s.store.GetCredentials(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNotLoggedIn
	}

	s.cache.Add(sessionKey, creds.Cookies)
	return creds.Cookies, nil
}

func (s sessionCache) Invalidate() {
	s.cache.Purge()
}
