// Package id generates time-sortable ULID identifiers for orders and trades.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type generator struct {
	mu      sync.Mutex
	entropy io.Reader
}

var gen = newGenerator()

func newGenerator() *generator {
	// ulid.Monotonic keeps IDs generated within the same millisecond
	// lexicographically increasing, which matters for order and trade
	// records indexed by ID. The PRNG is seeded from crypto/rand.
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &generator{
		entropy: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0),
	}
}

// New returns a fresh ULID string. Safe for concurrent use.
func New() string {
	gen.mu.Lock()
	defer gen.mu.Unlock()

	u, err := ulid.New(ulid.Timestamp(time.Now().UTC()), gen.entropy)
	if err != nil {
		// Only possible if time goes backwards or entropy fails.
		panic(err)
	}
	return u.String()
}
