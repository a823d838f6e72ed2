// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"
)

// redisForTest connects to FOLIO_TEST_REDIS_URL under a per-test prefix.
func redisForTest(t *testing.T, prefix string) *RedisCache {
	t.Helper()
	url := os.Getenv("FOLIO_TEST_REDIS_URL")
	if url == "" {
		t.Skip("FOLIO_TEST_REDIS_URL not set")
	}

	c, err := NewRedisCache(Config{RedisURL: url, Prefix: prefix, DefaultTTL: time.Minute})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	_ = c.Clear(context.Background())
	t.Cleanup(func() {
		_ = c.Clear(context.Background())
		_ = c.Close()
	})
	return c
}

func TestRedisCache_RoundTrip(t *testing.T) {
	c := redisForTest(t, "folio-test:roundtrip:")
	ctx := context.Background()

	key := "md:a1b2c3"
	if err := c.Set(ctx, key, []byte("<p>hello</p>"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "<p>hello</p>" {
		t.Errorf("Get = %q", got)
	}
	if ok, _ := c.Has(ctx, key); !ok {
		t.Error("Has = false after Set")
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, key); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get after Delete = %v, want ErrCacheMiss", err)
	}
}

func TestRedisCache_Expiry(t *testing.T) {
	c := redisForTest(t, "folio-test:expiry:")
	ctx := context.Background()

	if err := c.Set(ctx, "sitemap:1", []byte("<urlset/>"), 100*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(200 * time.Millisecond)

	if _, err := c.Get(ctx, "sitemap:1"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get after expiry = %v, want ErrCacheMiss", err)
	}
}

func TestRedisCache_DeleteByPrefix(t *testing.T) {
	c := redisForTest(t, "folio-test:prefix:")
	ctx := context.Background()

	for _, k := range []string{"sitemap:1", "sitemap:2", "md:ff00"} {
		if err := c.Set(ctx, k, []byte("v"), time.Minute); err != nil {
			t.Fatalf("Set %s: %v", k, err)
		}
	}

	if err := c.DeleteByPrefix(ctx, "sitemap:"); err != nil {
		t.Fatalf("DeleteByPrefix: %v", err)
	}

	for _, k := range []string{"sitemap:1", "sitemap:2"} {
		if _, err := c.Get(ctx, k); !errors.Is(err, ErrCacheMiss) {
			t.Errorf("%s survived DeleteByPrefix", k)
		}
	}
	if _, err := c.Get(ctx, "md:ff00"); err != nil {
		t.Errorf("md:ff00 was removed: %v", err)
	}
}

func TestRedisCache_PurgeSpansBatches(t *testing.T) {
	c := redisForTest(t, "folio-test:batch:")
	ctx := context.Background()

	n := purgeBatch*2 + 7
	for i := range n {
		if err := c.Set(ctx, fmt.Sprintf("sitemap:%d", i), []byte("v"), time.Minute); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	_ = c.Set(ctx, "md:keep", []byte("v"), time.Minute)

	sitemaps := NewTypedCache[string](c, "sitemap", time.Minute)
	if err := sitemaps.Purge(ctx); err != nil {
		t.Fatalf("Purge: %v", err)
	}
	for i := range n {
		if ok, _ := c.Has(ctx, fmt.Sprintf("sitemap:%d", i)); ok {
			t.Fatalf("sitemap:%d survived Purge", i)
		}
	}
	if ok, _ := c.Has(ctx, "md:keep"); !ok {
		t.Error("Purge removed another namespace")
	}
}

func TestRedisCache_ClearKeepsOtherPrefixes(t *testing.T) {
	a := redisForTest(t, "folio-test:site-a:")
	b := redisForTest(t, "folio-test:site-b:")
	ctx := context.Background()

	_ = a.Set(ctx, "sitemap:1", []byte("a"), time.Minute)
	_ = b.Set(ctx, "sitemap:1", []byte("b"), time.Minute)

	if err := a.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got, err := b.Get(ctx, "sitemap:1"); err != nil || string(got) != "b" {
		t.Errorf("other prefix Get = %q, %v", got, err)
	}
}

func TestRedisCache_PingAndClose(t *testing.T) {
	c := redisForTest(t, "folio-test:close:")
	ctx := context.Background()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Get after Close = %v, want ErrCacheClosed", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set after Close = %v, want ErrCacheClosed", err)
	}
}

func TestNewRedisCache_InvalidURL(t *testing.T) {
	for _, url := range []string{"", "invalid-url"} {
		if _, err := NewRedisCache(Config{RedisURL: url, Prefix: "folio:"}); err == nil {
			t.Errorf("NewRedisCache(%q) succeeded, want error", url)
		}
	}
}
