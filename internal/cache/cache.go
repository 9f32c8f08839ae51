// Package cache is the read-side cache in front of the hosted backend.
// A miss or a cache failure is never an error for callers; read paths fall
// through to the backend.
package cache

import (
	"context"
	"time"
)

// Cache stores serialized values under prefixed string keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
	Close() error
}

// Well-known cache keys.
const (
	KeyCmsContent  = "cms_content"
	KeyPublicPosts = "posts:public"
	KeyAuthors     = "authors"
)
