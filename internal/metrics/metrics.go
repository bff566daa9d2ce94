package metrics

import (
	"deriv_bot/internal/models"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	TicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "deriv_ticks_total", Help: "Count of quotes ingested from the tick stream"},
		[]string{"symbol"},
	)
	RoundsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "deriv_rounds_total", Help: "Rounds finished by outcome"},
		[]string{"outcome"},
	)
	ContractsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "deriv_contracts_total", Help: "Contracts bought by type"},
		[]string{"contract_type"},
	)
	BrokerErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "deriv_broker_errors_total", Help: "Failed brokerage steps"},
		[]string{"step"},
	)
	SessionBalance = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "deriv_session_balance", Help: "Last known account balance"},
	)
	LastRSI = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "deriv_last_rsi", Help: "RSI computed in the last round"},
	)
)

func init() {
	prometheus.MustRegister(TicksTotal, RoundsTotal, ContractsTotal, BrokerErrorsTotal, SessionBalance, LastRSI)
}

// ObserveRound — раунд закрыт: исход, тип контракта и баланс.
func ObserveRound(r models.Round) {
	RoundsTotal.WithLabelValues(string(r.Outcome)).Inc()
	if r.HasRSI {
		LastRSI.Set(r.RSI)
	}
	if r.ContractID != 0 {
		ContractsTotal.WithLabelValues(string(r.ContractType)).Inc()
	}
}
