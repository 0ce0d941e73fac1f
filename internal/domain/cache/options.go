package cache

// Option applies a configuration option to the in-memory cache.
type Option func(*inMemoryCache)

// WithMaxEntries bounds the number of athletes kept in the cache.
// Zero or negative means unbounded.
func WithMaxEntries(n int) Option {
	return func(c *inMemoryCache) {
		c.maxEntries = n
	}
}
