package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dictEntry struct {
	Symbol int
	Count  int
}

func TestGetReturnsZeroedBlocks(t *testing.T) {
	p := New[dictEntry]()
	blk := p.Get()
	assert.Equal(t, 0, blk.Symbol)
	assert.Equal(t, 0, blk.Count)
}

func TestPutRecyclesBlocks(t *testing.T) {
	p := New[dictEntry]()
	a := p.Get()
	a.Symbol = 42
	p.Put(a)
	assert.Equal(t, 0, p.Allocated())

	b := p.Get()
	// recycled block must come back zeroed, not carrying stale data
	assert.Equal(t, 0, b.Symbol)
	assert.Equal(t, 1, p.Allocated())
}

func TestGrowsAcrossMultipleSegments(t *testing.T) {
	p := New[dictEntry]()
	n := defaultSegmentCapacity*2 + 5
	blocks := make([]*dictEntry, n)
	for i := 0; i < n; i++ {
		blocks[i] = p.Get()
		blocks[i].Symbol = i
	}
	require.Equal(t, n, p.Allocated())
	require.Equal(t, n, p.HighWater())
	for i, b := range blocks {
		assert.Equal(t, i, b.Symbol, "pointer identity must survive across segment growth")
	}
}

func TestResetClearsEverything(t *testing.T) {
	p := New[dictEntry]()
	for i := 0; i < 10; i++ {
		p.Get()
	}
	p.Reset()
	assert.Equal(t, 0, p.Allocated())
	assert.Equal(t, 0, p.HighWater())
	blk := p.Get()
	assert.Equal(t, 0, blk.Symbol)
}

func TestHighWaterTracksPeakNotCurrent(t *testing.T) {
	p := New[dictEntry]()
	a := p.Get()
	b := p.Get()
	p.Put(a)
	p.Put(b)
	assert.Equal(t, 0, p.Allocated())
	assert.Equal(t, 2, p.HighWater())
}
