package core

// IDGenerator produces identifiers for new records
type IDGenerator interface {
	// NewID returns prefix followed by a unique suffix, e.g. "tx-6f1c..."
	NewID(prefix string) string
	// NewSlugID returns a readable id derived from title with a short unique suffix
	NewSlugID(title string) string
}

// RandomSource is the pseudo-random source used for presentational values
type RandomSource interface {
	// Intn returns a value in [0, n)
	Intn(n int) int
}
