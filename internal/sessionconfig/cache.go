package sessionconfig

import (
	"context"
	"time"

	"callbridge/internal/observability"
)

// CachedSource memoises another source's sections per variant. Cache
// failures fall through to the wrapped source; errors are never cached.
type CachedSource struct {
	source ContextSource
	cache  Cache
	ttl    time.Duration
	logger *observability.Logger
}

func NewCachedSource(source ContextSource, cache Cache, ttl time.Duration, logger *observability.Logger) *CachedSource {
	return &CachedSource{source: source, cache: cache, ttl: ttl, logger: logger}
}

func (c *CachedSource) Name() string {
	return c.source.Name()
}

func (c *CachedSource) Fallback() string {
	return c.source.Fallback()
}

func (c *CachedSource) Section(ctx context.Context, sc SessionContext) (string, error) {
	key := c.key(sc)
	ctx = observability.WithFields(ctx, observability.Field{Key: "cache_key", Value: key})

	if value, ok, err := c.cache.Get(ctx, key); err != nil {
		c.logger.InfoWithError(ctx, "Prompt cache read failed", err)
	} else if ok {
		return value, nil
	}

	section, err := c.source.Section(ctx, sc)
	if err != nil {
		return "", err
	}
	if err := c.cache.Set(ctx, key, section, c.ttl); err != nil {
		c.logger.InfoWithError(ctx, "Prompt cache write failed", err)
	}
	return section, nil
}

func (c *CachedSource) key(sc SessionContext) string {
	return "prompt:section:" + sc.Variant + ":" + c.source.Name()
}
