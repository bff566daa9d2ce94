package models

// TradeRecord — сделка в отчёте прогона.
type TradeRecord struct {
	Round        int          `yaml:"round"`
	Tick         float64      `yaml:"tick"`
	ContractType ContractType `yaml:"trade_type"`
	SellPrice    float64      `yaml:"sell_price"`
	Balance      float64      `yaml:"balance"`
}

// IsWin — контракт выигран, если брокер его выкупил (sell_price не ноль).
func IsWin(sellPrice float64) bool { return sellPrice != 0 }
