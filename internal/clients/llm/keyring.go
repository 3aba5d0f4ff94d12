package llm

import (
	"strings"
	"sync/atomic"
)

// KeyRing hands out API keys round-robin. Each call to Next advances the
// ring whether or not the request using the key succeeds.
type KeyRing struct {
	keys    []string
	offset  uint64
	counter atomic.Uint64
}

// NewKeyRing builds a ring over the non-blank keys. offset picks the key
// handed out first, so rotation is reproducible in tests.
func NewKeyRing(keys []string, offset int) *KeyRing {
	cleaned := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			cleaned = append(cleaned, k)
		}
	}
	if offset < 0 {
		offset = 0
	}
	return &KeyRing{keys: cleaned, offset: uint64(offset)}
}

// Len returns the number of usable keys
func (r *KeyRing) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Next returns the next key, or false when the ring is empty
func (r *KeyRing) Next() (string, bool) {
	if r.Len() == 0 {
		return "", false
	}
	n := r.counter.Add(1) - 1
	return r.keys[(r.offset+n)%uint64(len(r.keys))], true
}
