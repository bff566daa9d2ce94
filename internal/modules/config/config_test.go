package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(configDirENV, dir)
	t.Setenv(configFilePathENV, "values_test.yaml")
	return dir
}

func TestNewConfigDefaults(t *testing.T) {
	isolate(t)

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "R_100", cfg.Deriv.Symbol)
	assert.Equal(t, 300.0, cfg.Trading.BetAmount)
	assert.Equal(t, 20000.0, cfg.Trading.MaxBetAmount)
	assert.Equal(t, 10, cfg.Trading.TotalRounds)
	assert.Equal(t, 5000.0, cfg.Trading.TakeProfit)
	assert.Equal(t, 50000.0, cfg.Trading.StopLoss)
	assert.Equal(t, 14, cfg.Trading.RSIPeriod)
	assert.Equal(t, time.Second, cfg.Trading.PollInterval)
	assert.Equal(t, "USD", cfg.Trading.Currency)
}

func TestNewConfigFileAndEnvOverrides(t *testing.T) {
	dir := isolate(t)
	content := []byte(`
deriv:
  app_id: "1089"
  symbol: R_50
trading:
  bet_amount: 10
  total_rounds: 3
  poll_interval: 250ms
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "values_test.yaml"), content, 0o644))

	t.Setenv("DERIV_TOKEN", "secret-token")
	t.Setenv("TOTAL_ROUNDS", "7")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "1089", cfg.Deriv.AppID)
	assert.Equal(t, "R_50", cfg.Deriv.Symbol)
	assert.Equal(t, "secret-token", cfg.Deriv.Token)
	assert.Equal(t, 10.0, cfg.Trading.BetAmount)
	assert.Equal(t, 7, cfg.Trading.TotalRounds)
	assert.Equal(t, 250*time.Millisecond, cfg.Trading.PollInterval)
	assert.Equal(t, int64(42), cfg.Telegram.ChatID)
	assert.Equal(t, "wss://ws.derivws.com/websockets/v3?app_id=1089", cfg.StreamURL())
}

func TestNewConfigRejectsBetAboveCap(t *testing.T) {
	isolate(t)
	t.Setenv("BET_AMOUNT", "25000")

	_, err := NewConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_bet_amount")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.Deriv.AppID = "1"
		c.Trading.BetAmount = 1
		c.Trading.MaxBetAmount = 10
		c.Trading.TotalRounds = 1
		c.Trading.TakeProfit = 1
		c.Trading.StopLoss = 1
		c.Trading.RSIPeriod = 14
		c.Trading.PollInterval = time.Second
		return c
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "zero period", mutate: func(c *Config) { c.Trading.RSIPeriod = 0 }},
		{name: "zero rounds", mutate: func(c *Config) { c.Trading.TotalRounds = 0 }},
		{name: "zero bet", mutate: func(c *Config) { c.Trading.BetAmount = 0 }},
		{name: "bet above cap", mutate: func(c *Config) { c.Trading.BetAmount = 11 }},
		{name: "no take profit", mutate: func(c *Config) { c.Trading.TakeProfit = 0 }},
		{name: "no poll interval", mutate: func(c *Config) { c.Trading.PollInterval = 0 }},
		{name: "no app id", mutate: func(c *Config) { c.Deriv.AppID = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
