// Package bloom remembers listings seen within a session using Bloom filters.
package bloom

import (
	"encoding/binary"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sangga"
)

// Defaults sized for a few dozen searches of ~15 listings each.
const (
	DefaultCapacity = 1000
	DefaultFPRate   = 0.01
)

var _ sangga.SeenSet = (*Filter)(nil)

// Filter wraps a Bloom filter of listing fingerprints.
// It is not safe for concurrent use; sessions guard it with their own lock.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected listings
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Mark adds a listing to the filter.
func (f *Filter) Mark(p *sangga.Property) {
	f.f.Add(fingerprint(p))
}

// Seen returns true if the listing might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Seen(p *sangga.Property) bool {
	return f.f.Test(fingerprint(p))
}

// EstimatedCount returns the approximate number of listings in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// Fingerprint identifies a listing across searches. IDs are assigned per
// answer by the model, so the external link is used instead, falling back
// to source and name for listings without one.
func Fingerprint(p *sangga.Property) uint64 {
	key := strings.TrimSpace(p.Link)
	if key == "" {
		key = strings.TrimSpace(p.Source) + "\x00" + strings.TrimSpace(p.Name)
	}
	return xxhash.Sum64String(key)
}

func fingerprint(p *sangga.Property) []byte {
	return binary.BigEndian.AppendUint64(nil, Fingerprint(p))
}
