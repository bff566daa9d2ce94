package service

import (
	"math"
	"sync/atomic"
	"time"
)

type State struct {
	ready     atomic.Bool
	startedAt time.Time

	wsConnected  atomic.Bool
	lastTickUnix atomic.Int64 // unix seconds

	round       atomic.Int64
	balanceBits atomic.Uint64
	terminal    atomic.Value // string
}

func NewState() *State {
	s := &State{startedAt: time.Now()}
	s.ready.Store(false)
	s.terminal.Store("")
	return s
}

// SetReady — сессия авторизована и крутит раунды.
func (s *State) SetReady(v bool) { s.ready.Store(v) }
func (s *State) Ready() bool     { return s.ready.Load() }

func (s *State) SetWSConnected(v bool) { s.wsConnected.Store(v) }
func (s *State) WSConnected() bool     { return s.wsConnected.Load() }

func (s *State) TouchTick(t time.Time) { s.lastTickUnix.Store(t.Unix()) }
func (s *State) LastTick() time.Time {
	u := s.lastTickUnix.Load()
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}

func (s *State) SetRound(n int) { s.round.Store(int64(n)) }
func (s *State) Round() int     { return int(s.round.Load()) }

func (s *State) SetBalance(v float64) { s.balanceBits.Store(math.Float64bits(v)) }
func (s *State) Balance() float64     { return math.Float64frombits(s.balanceBits.Load()) }

func (s *State) SetTerminal(v string) { s.terminal.Store(v) }
func (s *State) Terminal() string     { return s.terminal.Load().(string) }

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }
