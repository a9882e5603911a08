package db

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/dgraph-io/ristretto"
)

// Summary responses are cached per user and recomputed when the
// underlying rows change. The key registry exists so a mutation can
// drop every summary a user has cached without scanning ristretto.
var (
	Cache            *ristretto.Cache
	summaryCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
)

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

// SummaryCacheKey builds the cache key for a user's summary of the
// given kind ("accounts", "cards", "analytics", ...).
func SummaryCacheKey(kind string, userID int64) string {
	return fmt.Sprintf("%s_summary:%d", kind, userID)
}

func GetSummaryCache(cacheKey string) (interface{}, bool) {
	if Cache == nil {
		return nil, false
	}
	return Cache.Get(cacheKey)
}

func SetSummaryCache(cacheKey string, value interface{}) {
	if Cache == nil {
		return
	}
	summaryCacheKeys.Lock()
	summaryCacheKeys.m[cacheKey] = struct{}{}
	summaryCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
}

// ClearUserSummaryCaches drops every cached summary belonging to the
// user. Called after any write that could change a summary.
func ClearUserSummaryCaches(userID int64) {
	if Cache == nil {
		return
	}
	suffix := fmt.Sprintf(":%d", userID)
	summaryCacheKeys.Lock()
	for key := range summaryCacheKeys.m {
		if strings.HasSuffix(key, suffix) {
			Cache.Del(key)
			delete(summaryCacheKeys.m, key)
		}
	}
	summaryCacheKeys.Unlock()
}
