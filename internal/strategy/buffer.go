package strategy

import (
	"sync"
)

// TickBuffer — скользящее окно последних котировок фиксированной ёмкости (FIFO).
// Пишет только ингест, раннер читает снапшоты.
type TickBuffer struct {
	mu     sync.RWMutex
	cap    int
	quotes []float64
}

func NewTickBuffer(capacity int) *TickBuffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &TickBuffer{
		cap:    capacity,
		quotes: make([]float64, 0, capacity),
	}
}

// Record добавляет котировку, при заполненном окне сначала выкидывает самую старую.
func (b *TickBuffer) Record(quote float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.quotes) >= b.cap {
		copy(b.quotes, b.quotes[1:])
		b.quotes = b.quotes[:len(b.quotes)-1]
	}
	b.quotes = append(b.quotes, quote)
}

// Snapshot возвращает копию окна в порядке прихода.
func (b *TickBuffer) Snapshot() []float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]float64, len(b.quotes))
	copy(out, b.quotes)
	return out
}

func (b *TickBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.quotes)
}

func (b *TickBuffer) Cap() int { return b.cap }

// Last — последняя котировка; ok=false пока окно пустое.
func (b *TickBuffer) Last() (float64, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.quotes) == 0 {
		return 0, false
	}
	return b.quotes[len(b.quotes)-1], true
}
