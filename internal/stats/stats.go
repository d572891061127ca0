// Package stats collects lookup counters for the HTTP service's stats
// endpoint.
package stats

import (
	"sync/atomic"
	"time"

	"github.com/dnsq/dnsq/internal/wire"
)

// LookupStats counts completed and failed lookups.
// All methods are safe for concurrent use.
type LookupStats struct {
	lookupsTotal   atomic.Uint64
	failures       atomic.Uint64
	nxdomain       atomic.Uint64
	latencyTotalNs atomic.Uint64
}

// NewLookupStats creates a new lookup statistics collector.
func NewLookupStats() *LookupStats {
	return &LookupStats{}
}

// RecordLookup records one completed lookup and its round-trip time.
func (s *LookupStats) RecordLookup(rcode wire.RCode, rtt time.Duration) {
	s.lookupsTotal.Add(1)
	if rcode == wire.RCodeNXDomain {
		s.nxdomain.Add(1)
	}
	if ns := rtt.Nanoseconds(); ns > 0 {
		s.latencyTotalNs.Add(uint64(ns))
	}
}

// RecordFailure records a lookup that produced no decodable response
// (transport error, timeout, or malformed message).
func (s *LookupStats) RecordFailure() {
	s.lookupsTotal.Add(1)
	s.failures.Add(1)
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	LookupsTotal uint64
	Failures     uint64
	NXDomain     uint64
	AvgRTTMs     float64
}

// Snapshot returns the current statistics.
func (s *LookupStats) Snapshot() Snapshot {
	total := s.lookupsTotal.Load()
	failures := s.failures.Load()
	latencyNs := s.latencyTotalNs.Load()

	avgMs := 0.0
	if completed := total - failures; completed > 0 {
		avgMs = float64(latencyNs) / float64(completed) / 1e6
	}

	return Snapshot{
		LookupsTotal: total,
		Failures:     failures,
		NXDomain:     s.nxdomain.Load(),
		AvgRTTMs:     avgMs,
	}
}
