package out

// RateLimiterPort is a time-windowed counter for the booking edge.
// It is an injected dependency with defined eviction, not a
// process-lifetime global map.
type RateLimiterPort interface {
	// Allow records one hit for key and reports whether the key is
	// still under its window budget.
	Allow(key string) bool
}
