// Package idgen provides ID generation for persisted records
package idgen

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// UUIDGenerator generates UUIDs with an optional prefix
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a new UUID generator with optional prefix
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	id := uuid.NewString()
	if g.prefix != "" {
		return g.prefix + "_" + id
	}
	return id
}

// TimeOrderedGenerator generates IDs that sort lexically by creation time.
// Memory ranking relies on this to prefer newer entries among equal scores.
type TimeOrderedGenerator struct {
	prefix string
	seq    uint32
}

// NewTimeOrdered creates a generator producing prefix_<unix nanos>_<seq> IDs
func NewTimeOrdered(prefix string) *TimeOrderedGenerator {
	return &TimeOrderedGenerator{prefix: prefix}
}

// Generate creates a new time-ordered ID
func (g *TimeOrderedGenerator) Generate() string {
	n := atomic.AddUint32(&g.seq, 1)
	return fmt.Sprintf("%s_%020d_%08x", g.prefix, time.Now().UnixNano(), n)
}

// SequentialGenerator generates sequential IDs for testing
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates a new sequential ID, zero padded so IDs sort in order
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%06d", g.prefix, n)
	}
	return fmt.Sprintf("%06d", n)
}
