package identity

import (
	"math/rand/v2"
	"strings"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// UUIDGenerator implements core.IDGenerator with random uuids
type UUIDGenerator struct{}

// NewUUIDGenerator creates an id generator
func NewUUIDGenerator() core.IDGenerator {
	return UUIDGenerator{}
}

// NewID returns "<prefix>-<uuid>"
func (UUIDGenerator) NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// NewSlugID returns the slug of title followed by 8 hex characters
func (UUIDGenerator) NewSlugID(title string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	base := slug.Make(title)
	if base == "" {
		base = "match"
	}
	return base + "-" + suffix
}

// MathRandom implements core.RandomSource over math/rand/v2
type MathRandom struct{}

// NewMathRandom creates a random source seeded by the runtime
func NewMathRandom() core.RandomSource {
	return MathRandom{}
}

// Intn returns a value in [0, n); n <= 0 yields 0
func (MathRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return rand.IntN(n)
}
