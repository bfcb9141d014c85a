package prediction

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iamami1990/rh-platform/internal/features"

	"github.com/redis/go-redis/v9"
)

const (
	predictionCacheKeyPrefix = "ml:prediction:"
	predictionCacheTTL       = 1 * time.Hour
)

// cacheKey hashes the canonical JSON of the record. Predictions are pure
// functions of the record and the process-lifetime artifacts, so identical
// records can share a cached response within the TTL.
func cacheKey(endpoint string, employee features.Record) string {
	payload, err := json.Marshal(employee)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(payload)
	return predictionCacheKeyPrefix + endpoint + ":" + hex.EncodeToString(sum[:])
}

func cacheGet[T any](ctx context.Context, rdb *redis.Client, key string) (T, bool) {
	var resp T
	if rdb == nil || key == "" {
		return resp, false
	}
	cached, err := rdb.Get(ctx, key).Result()
	if err != nil {
		return resp, false
	}
	if err := json.Unmarshal([]byte(cached), &resp); err != nil {
		return resp, false
	}
	return resp, true
}

func (s *service) cacheSet(ctx context.Context, key string, resp any) {
	if s.rdb == nil || key == "" {
		return
	}
	if payload, err := json.Marshal(resp); err == nil {
		s.rdb.Set(ctx, key, payload, predictionCacheTTL)
	}
}

func employeeIDString(rec features.Record) string {
	if id := rec.EmployeeID(); id != nil {
		return fmt.Sprint(id)
	}
	return ""
}
