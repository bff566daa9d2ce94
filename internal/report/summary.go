package report

import (
	"sync"

	"deriv_bot/internal/models"
)

// RunSummary — журнал прогона: все тики и сделки. Только дописывается.
type RunSummary struct {
	mu     sync.Mutex
	ticks  []float64
	trades []models.TradeRecord
}

func NewRunSummary() *RunSummary {
	return &RunSummary{}
}

func (s *RunSummary) AddTick(price float64) {
	s.mu.Lock()
	s.ticks = append(s.ticks, price)
	s.mu.Unlock()
}

func (s *RunSummary) AddTrade(tr models.TradeRecord) {
	s.mu.Lock()
	s.trades = append(s.trades, tr)
	s.mu.Unlock()
}

// Ticks — копия, её можно отдавать наружу.
func (s *RunSummary) Ticks() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]float64(nil), s.ticks...)
}

func (s *RunSummary) Trades() []models.TradeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.TradeRecord(nil), s.trades...)
}

type Stats struct {
	Ticks  int
	Trades int
	Wins   int
}

// Stats считает выигрыши тем же правилом, что и контроллер.
func (s *RunSummary) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Stats{Ticks: len(s.ticks), Trades: len(s.trades)}
	for _, tr := range s.trades {
		if models.IsWin(tr.SellPrice) {
			st.Wins++
		}
	}
	return st
}
