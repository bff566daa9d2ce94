package helper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// exactExp — хватает, чтобы любой float64 перевести в десятичное без потерь.
const exactExp = -1100

// RoundPlaces округляет точное двоичное значение v до places знаков,
// половину — к чётному. Совпадает с round(x, n) в Python: 0.35 -> 0.3, 0.25 -> 0.2.
func RoundPlaces(v float64, places int32) float64 {
	return decimal.NewFromFloatWithExponent(v, exactExp).RoundBank(places).InexactFloat64()
}

// ParseQuote приводит котировку Deriv к float64: в истории и тиках
// цена приходит то числом, то строкой.
func ParseQuote(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("parse quote %q: %w", v, err)
		}
		return f, nil
	case fmt.Stringer:
		return ParseQuote(v.String())
	default:
		return 0, fmt.Errorf("unsupported quote type %T", raw)
	}
}

// Diff — разница a-b без хвостов float (для P/L в отчётах).
func Diff(a, b float64) float64 {
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).InexactFloat64()
}
