package cache

import (
	"context"
	"testing"
	"time"
)

func TestGetOrLoadJSONNilCacheBypasses(t *testing.T) {
	type payload struct {
		N int `json:"n"`
	}

	calls := 0
	load := func(ctx context.Context) (*payload, error) {
		calls++
		return &payload{N: calls}, nil
	}

	var c *Cache
	for want := 1; want <= 2; want++ {
		got, err := GetOrLoadJSON(c, context.Background(), "k", time.Minute, load)
		if err != nil {
			t.Fatalf("GetOrLoadJSON failed: %v", err)
		}
		if got.N != want {
			t.Errorf("n = %d, want %d (nil cache must not memoize)", got.N, want)
		}
	}
}
