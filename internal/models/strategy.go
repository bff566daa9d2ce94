package models

// TradeSignal — вывод по чётности RSI.
type TradeSignal string

const (
	SignalNone TradeSignal = ""
	SignalEven TradeSignal = "EVEN"
	SignalOdd  TradeSignal = "ODD"
)

// ContractType — тип контракта Deriv на последнюю цифру котировки.
type ContractType string

const (
	ContractDigitEven ContractType = "DIGITEVEN"
	ContractDigitOdd  ContractType = "DIGITODD"
)

// ContractFor маппит сигнал в контракт; ok=false для SignalNone.
func ContractFor(sig TradeSignal) (ContractType, bool) {
	switch sig {
	case SignalEven:
		return ContractDigitEven, true
	case SignalOdd:
		return ContractDigitOdd, true
	default:
		return "", false
	}
}

// Label — подпись сделки на графике: DIGITODD рисуется как Buy, DIGITEVEN как Sell.
func (c ContractType) Label() string {
	if c == ContractDigitOdd {
		return "Buy"
	}
	return "Sell"
}
