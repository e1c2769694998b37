// Package cache provides a generic TTL cache with in-memory and Redis backends.
//
// Memory suits a single process and tests; Redis shares entries across
// processes. Both satisfy Cache[V]:
//
//	c := cache.NewMemory[int](cache.WithDefaultTTL(5 * time.Second))
//	defer c.Close()
//
//	n, err := cache.GetOrSet(ctx, c, "files:count", func(ctx context.Context) (int, time.Duration, error) {
//		n, err := repo.Count(ctx)
//		return n, 0, err
//	})
//
// Redis values go through a Marshaler. JSON is the default; Raw keeps strings
// verbatim so keys written by other tools stay readable.
package cache
