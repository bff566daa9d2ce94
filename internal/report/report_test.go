package report

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"deriv_bot/internal/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func sampleSummary() *RunSummary {
	s := NewRunSummary()
	for _, p := range []float64{100.1, 100.2, 100.3} {
		s.AddTick(p)
	}
	s.AddTrade(models.TradeRecord{Round: 1, Tick: 100.3, ContractType: models.ContractDigitOdd, SellPrice: 587.4, Balance: 10287.4})
	s.AddTrade(models.TradeRecord{Round: 2, Tick: 100.3, ContractType: models.ContractDigitEven, SellPrice: 0, Balance: 9987.4})
	return s
}

func sampleResult() models.SessionResult {
	return models.SessionResult{
		Terminal:       models.TerminalRoundsExhausted,
		Rounds:         2,
		Wins:           1,
		Losses:         1,
		InitialBalance: 10000,
		FinalBalance:   9987.4,
	}
}

func TestRunSummary_CopiesAndStats(t *testing.T) {
	s := sampleSummary()

	ticks := s.Ticks()
	ticks[0] = -1
	assert.Equal(t, 100.1, s.Ticks()[0])

	trades := s.Trades()
	trades[0].Round = 99
	assert.Equal(t, 1, s.Trades()[0].Round)

	assert.Equal(t, Stats{Ticks: 3, Trades: 2, Wins: 1}, s.Stats())
}

func TestRunSummary_StatsMatchesWinRule(t *testing.T) {
	s := NewRunSummary()
	sells := []float64{587.4, 0, -1, 0.01}
	want := 0
	for i, sell := range sells {
		s.AddTrade(models.TradeRecord{Round: i + 1, SellPrice: sell})
		if models.IsWin(sell) {
			want++
		}
	}
	assert.Equal(t, 3, want)
	assert.Equal(t, want, s.Stats().Wins)
}

func TestRunSummary_Concurrent(t *testing.T) {
	s := NewRunSummary()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.AddTick(float64(j))
				_ = s.Ticks()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, s.Ticks(), 800)
}

func TestYAMLFile_Report(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "run.yaml")
	require.NoError(t, NewYAMLFile(path).Report(context.Background(), sampleSummary(), sampleResult()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(raw, &doc))

	session := doc["session"].(map[interface{}]interface{})
	assert.Equal(t, "rounds_exhausted", session["terminal"])
	assert.Equal(t, 2, session["rounds"])
	assert.Equal(t, -12.6, session["profit"])

	assert.Len(t, doc["ticks"], 3)
	trades := doc["trades"].([]interface{})
	require.Len(t, trades, 2)
	first := trades[0].(map[interface{}]interface{})
	assert.Equal(t, "DIGITODD", first["trade_type"])
	assert.Equal(t, "Buy", first["label"])
	assert.Equal(t, 587.4, first["sell_price"])
	second := trades[1].(map[interface{}]interface{})
	assert.Equal(t, "Sell", second["label"])
}

func TestYAMLFile_EmptyPathIsNoop(t *testing.T) {
	assert.NoError(t, NewYAMLFile("").Report(context.Background(), sampleSummary(), sampleResult()))
}

func TestRender_EmptySummary(t *testing.T) {
	out, err := Render(nil, models.SessionResult{Terminal: models.TerminalCancelled})
	require.NoError(t, err)
	assert.Contains(t, string(out), "terminal: cancelled")
	assert.Contains(t, string(out), "ticks: []")
	assert.Contains(t, string(out), "trades: []")
}

type recordNotifier struct{ msgs []string }

func (r *recordNotifier) Send(msg string)                  { r.msgs = append(r.msgs, msg) }
func (r *recordNotifier) Sendf(format string, args ...any) {}

func TestText_Report(t *testing.T) {
	n := &recordNotifier{}
	require.NoError(t, NewText(n).Report(context.Background(), sampleSummary(), sampleResult()))
	require.Len(t, n.msgs, 1)

	msg := n.msgs[0]
	assert.Contains(t, msg, "Раунды закончились")
	assert.Contains(t, msg, "W 1 / L 1")
	assert.Contains(t, msg, "10000.00 -> 9987.40 (-12.60)")
	assert.Contains(t, msg, "#1 Buy DIGITODD @ 100.3 -> 587.40")
	assert.Contains(t, msg, "#2 Sell DIGITEVEN")
}

func TestFormatSummary_StartupFailed(t *testing.T) {
	msg := FormatSummary(nil, models.SessionResult{Terminal: models.TerminalStartupFailed})
	assert.Contains(t, msg, "Сессия не стартовала")
}

func TestFormatSummary_Profit(t *testing.T) {
	msg := FormatSummary(nil, models.SessionResult{
		Terminal: models.TerminalTakeProfitHit, InitialBalance: 10000, FinalBalance: 15287.4,
	})
	assert.Contains(t, msg, "Take profit")
	assert.Contains(t, msg, "(+5287.40)")
}

type failingReporter struct{ calls int }

func (f *failingReporter) Report(context.Context, *RunSummary, models.SessionResult) error {
	f.calls++
	return errors.New("disk full")
}

func TestMulti_ContinuesAfterError(t *testing.T) {
	bad := &failingReporter{}
	n := &recordNotifier{}
	m := Multi{bad, nil, NewText(n)}

	err := m.Report(context.Background(), sampleSummary(), sampleResult())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 1, bad.calls)
	assert.Len(t, n.msgs, 1)
}
