package common

import (
	"encoding/json"
	"fmt"
	"time"
)

func GetResponseTime(init time.Time) string {
	timeDiff := time.Since(init).Milliseconds()
	return fmt.Sprintf("%dms", timeDiff)
}

// DatasetCachePrefix is the namespace for every cached value belonging to
// one dataset; DeletePrefix on it drops records and computed results alike.
func DatasetCachePrefix(datasetID string) string {
	return "dataset:" + datasetID + ":"
}

// TypedValue recovers a T from a cached value. The in-memory cache hands back
// the stored type directly; the Redis backend hands back whatever
// encoding/json decoded, so fall back to a marshal round-trip in that case.
func TypedValue[T any](val interface{}) (T, bool) {
	if typed, ok := val.(T); ok {
		return typed, true
	}
	var typed T
	raw, err := json.Marshal(val)
	if err != nil {
		return typed, false
	}
	if err := json.Unmarshal(raw, &typed); err != nil {
		return typed, false
	}
	return typed, true
}
