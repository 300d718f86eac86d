// Copyright (c) 2024 The bddkit authors
//
// MIT License

package share

import (
	"encoding/binary"
	"sort"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/cespare/xxhash/v2"
)

// Defaults for the filter pair. The capacity is the number of distinct
// clauses a filter is sized for; past it the false-positive rate degrades
// gracefully rather than failing.
const (
	DefaultCapacity         = 1 << 17
	DefaultFPRate           = 0.01
	DefaultGlobalResetEvery = 10
)

// Config sizes the clause database. Zero values select the defaults.
type Config struct {
	Capacity         uint
	FPRate           float64
	GlobalResetEvery int
}

func (cfg Config) withDefaults() Config {
	if cfg.Capacity == 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.FPRate == 0 {
		cfg.FPRate = DefaultFPRate
	}
	if cfg.GlobalResetEvery == 0 {
		cfg.GlobalResetEvery = DefaultGlobalResetEvery
	}
	return cfg
}

// Database remembers which clause fingerprints have been forwarded. The
// global filter spans sharing rounds and the local filter one round; both
// are probabilistic, so a fresh clause can be dropped as a false positive.
// That loses an optimization, never soundness.
type Database struct {
	global *bloom.BloomFilter
	local  *bloom.BloomFilter
}

// NewDatabase builds the filter pair for the given sizing.
func NewDatabase(cfg Config) *Database {
	cfg = cfg.withDefaults()
	return &Database{
		global: bloom.NewWithEstimates(cfg.Capacity, cfg.FPRate),
		local:  bloom.NewWithEstimates(cfg.Capacity, cfg.FPRate),
	}
}

// Admit records the clause in both filters and reports whether it was new
// to both, in which case the caller should forward it.
func (d *Database) Admit(c []int) bool {
	fp := fingerprint(c)
	inGlobal := d.global.TestOrAdd(fp)
	inLocal := d.local.TestOrAdd(fp)
	return !inGlobal && !inLocal
}

// ResetLocal empties the per-round filter.
func (d *Database) ResetLocal() { d.local.ClearAll() }

// ResetGlobal empties the cross-round filter, letting long-lived clauses be
// forwarded again.
func (d *Database) ResetGlobal() { d.global.ClearAll() }

// fingerprint hashes the clause as a literal set: the literals are sorted
// before hashing so clause identity does not depend on discovery order.
func fingerprint(c []int) []byte {
	lits := make([]int, len(c))
	copy(lits, c)
	sort.Ints(lits)

	h := xxhash.New()
	var buf [8]byte
	for _, l := range lits {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(l)))
		h.Write(buf[:])
	}
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, h.Sum64())
	return out
}
