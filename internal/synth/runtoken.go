package synth

import (
	"sync"

	"github.com/google/uuid"
)

// RunTokenGenerator produces correlation tokens for synthesis runs.
// Implemented by UUIDv7Generator (production) and FixedGenerator (tests).
//
// Run tokens exist for audit correlation only. They are excluded from the
// determinism hash, so a random token does not break reproducibility.
type RunTokenGenerator interface {
	Generate() string
}

// UUIDv7Generator produces time-sortable UUIDv7 run tokens.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7 string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined tokens in order. Tests use it so
// audit rows are byte-stable.
type FixedGenerator struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedGenerator creates a generator over a fixed token sequence.
// Generate panics once the sequence is exhausted - a fail-fast signal
// that a test ran more synthesis runs than it declared.
func NewFixedGenerator(tokens ...string) *FixedGenerator {
	return &FixedGenerator{tokens: tokens}
}

// Generate returns the next predetermined token.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.tokens) {
		panic("FixedGenerator: all tokens exhausted")
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}
