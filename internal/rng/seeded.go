// Package rng supplies reproducible randomness keyed by calendar day.
//
// A sequence for (day, key) is derived by hashing day+key with SHA-256 and
// seeding a math/rand generator from the digest. The same pair always yields
// the same sequence, so step counts and loot rolls can be replayed and tested
// by pinning the day instead of the system clock.
package rng

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/alexanderramin/questgame/internal/domain"
)

// Source hands out deterministic generators for a distinguishing key.
type Source interface {
	Sequence(key string) *rand.Rand
}

// DaySource derives sequences from a fixed calendar day.
type DaySource struct {
	Day string
}

// ForDay returns a DaySource for the calendar day of t.
func ForDay(t time.Time) DaySource {
	return DaySource{Day: domain.DateKey(t)}
}

// Sequence returns a generator seeded from Day+key.
func (s DaySource) Sequence(key string) *rand.Rand {
	return rand.New(rand.NewSource(Seed(s.Day + key)))
}

// Seed hashes s with SHA-256 and folds the 256-bit digest into an int64.
func Seed(s string) int64 {
	sum := sha256.Sum256([]byte(s))
	var folded uint64
	for i := 0; i < len(sum); i += 8 {
		folded ^= binary.BigEndian.Uint64(sum[i : i+8])
	}
	return int64(folded)
}

// IntBetween returns an integer in [min, max] drawn from r.
func IntBetween(r *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min+1)
}
