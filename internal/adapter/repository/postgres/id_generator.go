package postgres

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates monotonic ULIDs for audit records.
type ULIDGenerator struct {
	now     func() time.Time
	entropy io.Reader
	mu      sync.Mutex
}

// NewULIDGenerator creates a generator stamped by the wall clock.
func NewULIDGenerator() *ULIDGenerator {
	return NewULIDGeneratorWithClock(time.Now)
}

// NewULIDGeneratorWithClock creates a generator stamped by now.
func NewULIDGeneratorWithClock(now func() time.Time) *ULIDGenerator {
	return &ULIDGenerator{
		now:     now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy).String()
}
