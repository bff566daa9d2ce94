package strategy

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickBufferKeepsLastCapacityQuotes(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		quotes   []float64
		expected []float64
	}{
		{
			name:     "below capacity",
			capacity: 5,
			quotes:   []float64{1, 2, 3},
			expected: []float64{1, 2, 3},
		},
		{
			name:     "exactly capacity",
			capacity: 3,
			quotes:   []float64{1, 2, 3},
			expected: []float64{1, 2, 3},
		},
		{
			name:     "capacity plus k",
			capacity: 3,
			quotes:   []float64{1, 2, 3, 4, 5, 6, 7},
			expected: []float64{5, 6, 7},
		},
		{
			name:     "capacity one",
			capacity: 1,
			quotes:   []float64{9, 8, 7},
			expected: []float64{7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewTickBuffer(tt.capacity)
			for i, q := range tt.quotes {
				b.Record(q)
				assert.LessOrEqual(t, b.Len(), tt.capacity, "length exceeded capacity after quote %d", i)
			}
			assert.Equal(t, tt.expected, b.Snapshot())
		})
	}
}

func TestTickBufferSnapshotIsStable(t *testing.T) {
	b := NewTickBuffer(14)
	for i := 0; i < 20; i++ {
		b.Record(float64(i))
	}

	first := b.Snapshot()
	second := b.Snapshot()
	assert.Equal(t, first, second)

	// снапшот — копия: правка не должна протекать в окно
	first[0] = -1
	assert.Equal(t, second, b.Snapshot())
}

func TestTickBufferLast(t *testing.T) {
	b := NewTickBuffer(3)
	_, ok := b.Last()
	assert.False(t, ok)

	b.Record(101.5)
	b.Record(102.25)
	last, ok := b.Last()
	require.True(t, ok)
	assert.Equal(t, 102.25, last)
	assert.Equal(t, 3, b.Cap())
}

func TestTickBufferConcurrentRecordAndSnapshot(t *testing.T) {
	const capacity = 14
	b := NewTickBuffer(capacity)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			b.Record(float64(i))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			snap := b.Snapshot()
			if len(snap) > capacity {
				t.Errorf("snapshot length %d exceeds capacity", len(snap))
				return
			}
			for j := 1; j < len(snap); j++ {
				if snap[j] != snap[j-1]+1 {
					t.Errorf("snapshot out of order: %v", snap)
					return
				}
			}
		}
	}()
	wg.Wait()

	snap := b.Snapshot()
	require.Len(t, snap, capacity)
	assert.Equal(t, float64(999), snap[capacity-1])
	assert.Equal(t, float64(1000-capacity), snap[0])
}
