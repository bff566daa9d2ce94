package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	configFilePathENV = "CONFIG_FILE"
	configDirENV      = "CONFIG_DIR"
	defaultConfigName = "values_local.yaml"
	defaultConfigDir  = "configs"
)

// Config ...
type Config struct {
	Deriv struct {
		AppID  string `mapstructure:"app_id"`
		Token  string `mapstructure:"token"`
		URL    string `mapstructure:"url"`
		Symbol string `mapstructure:"symbol"`
	} `mapstructure:"deriv"`

	Telegram struct {
		Token  string `mapstructure:"token"`
		ChatID int64  `mapstructure:"chat_id"`
	} `mapstructure:"telegram"`

	Service struct {
		Name       string `mapstructure:"name"`
		HealthAddr string `mapstructure:"health_addr"`
		LogLevel   string `mapstructure:"log_level"`
	} `mapstructure:"service"`

	Tracing struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	} `mapstructure:"tracing"`

	Trading struct {
		Currency     string        `mapstructure:"currency"`
		BetAmount    float64       `mapstructure:"bet_amount"`
		MaxBetAmount float64       `mapstructure:"max_bet_amount"`
		TotalRounds  int           `mapstructure:"total_rounds"`
		TakeProfit   float64       `mapstructure:"take_profit"`
		StopLoss     float64       `mapstructure:"stop_loss"`
		RSIPeriod    int           `mapstructure:"rsi_period"`
		PollInterval time.Duration `mapstructure:"poll_interval"`
	} `mapstructure:"trading"`

	Report struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"report"`
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = defaultConfigName
	}
	configDir := os.Getenv(configDirENV)
	if configDir == "" {
		configDir = defaultConfigDir
	}
	v.SetConfigName(strings.TrimSuffix(configFileName, ".yaml"))
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config file")
		}
		// без файла живём на дефолтах и env
	}

	bindEnv(v)

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deriv.app_id", "0000")
	v.SetDefault("deriv.url", "wss://ws.derivws.com/websockets/v3")
	v.SetDefault("deriv.symbol", "R_100")

	v.SetDefault("service.name", "deriv_bot")
	v.SetDefault("service.health_addr", ":8080")
	v.SetDefault("service.log_level", "info")

	v.SetDefault("trading.currency", "USD")
	v.SetDefault("trading.bet_amount", 300)
	v.SetDefault("trading.max_bet_amount", 20000)
	v.SetDefault("trading.total_rounds", 10)
	v.SetDefault("trading.take_profit", 5000)
	v.SetDefault("trading.stop_loss", 50000)
	v.SetDefault("trading.rsi_period", 14)
	v.SetDefault("trading.poll_interval", "1s")

	v.SetDefault("report.path", "reports/last_run.yaml")
}

// bindEnv — плоские имена переменных, как в .env исходного бота.
func bindEnv(v *viper.Viper) {
	pairs := map[string]string{
		"deriv.app_id":           "DERIV_APP_ID",
		"deriv.token":            "DERIV_TOKEN",
		"deriv.url":              "DERIV_URL",
		"deriv.symbol":           "SYMBOL",
		"telegram.token":         "TELEGRAM_TOKEN",
		"telegram.chat_id":       "TELEGRAM_CHAT_ID",
		"service.health_addr":    "HEALTH_ADDR",
		"service.log_level":      "LOG_LEVEL",
		"tracing.host":           "JAEGER_HOST",
		"tracing.port":           "JAEGER_PORT",
		"trading.currency":       "CURRENCY",
		"trading.bet_amount":     "BET_AMOUNT",
		"trading.max_bet_amount": "MAX_BET_AMOUNT",
		"trading.total_rounds":   "TOTAL_ROUNDS",
		"trading.take_profit":    "TAKE_PROFIT",
		"trading.stop_loss":      "STOP_LOSS",
		"trading.rsi_period":     "RSI_PERIOD",
		"trading.poll_interval":  "POLL_INTERVAL",
		"report.path":            "REPORT_PATH",
	}
	for key, env := range pairs {
		_ = v.BindEnv(key, env)
	}
}

// Validate проверяет то, что нельзя менять по ходу прогона.
func (c *Config) Validate() error {
	t := c.Trading
	if t.RSIPeriod < 1 {
		return fmt.Errorf("rsi_period must be >= 1, got %d", t.RSIPeriod)
	}
	if t.TotalRounds < 1 {
		return fmt.Errorf("total_rounds must be >= 1, got %d", t.TotalRounds)
	}
	if t.BetAmount <= 0 {
		return fmt.Errorf("bet_amount must be > 0, got %v", t.BetAmount)
	}
	if t.MaxBetAmount > 0 && t.BetAmount > t.MaxBetAmount {
		return fmt.Errorf("bet_amount %v exceeds max_bet_amount %v", t.BetAmount, t.MaxBetAmount)
	}
	if t.TakeProfit <= 0 || t.StopLoss <= 0 {
		return fmt.Errorf("take_profit and stop_loss must be > 0")
	}
	if t.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be > 0, got %s", t.PollInterval)
	}
	if c.Deriv.AppID == "" {
		return fmt.Errorf("deriv.app_id is required")
	}
	return nil
}

// StreamURL — адрес websocket с app_id.
func (c *Config) StreamURL() string {
	sep := "?"
	if strings.Contains(c.Deriv.URL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%sapp_id=%s", c.Deriv.URL, sep, c.Deriv.AppID)
}
