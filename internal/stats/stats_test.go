package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dnsq/dnsq/internal/wire"
)

func TestSnapshot(t *testing.T) {
	s := NewLookupStats()
	s.RecordLookup(wire.RCodeNoError, 10*time.Millisecond)
	s.RecordLookup(wire.RCodeNXDomain, 30*time.Millisecond)
	s.RecordFailure()

	snap := s.Snapshot()
	assert.Equal(t, uint64(3), snap.LookupsTotal)
	assert.Equal(t, uint64(1), snap.Failures)
	assert.Equal(t, uint64(1), snap.NXDomain)
	assert.InDelta(t, 20.0, snap.AvgRTTMs, 0.01)
}

func TestSnapshotEmpty(t *testing.T) {
	snap := NewLookupStats().Snapshot()
	assert.Zero(t, snap.LookupsTotal)
	assert.Zero(t, snap.AvgRTTMs)
}

func TestConcurrentRecording(t *testing.T) {
	s := NewLookupStats()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				s.RecordLookup(wire.RCodeNoError, time.Millisecond)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(800), s.Snapshot().LookupsTotal)
}
