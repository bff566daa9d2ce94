package service

// ProposalParams — параметры предложения контракта.
type ProposalParams struct {
	Amount       float64
	Barrier      string
	Basis        string
	ContractType string
	Currency     string
	Duration     int
	DurationUnit string
	Symbol       string
}

func (p ProposalParams) request() map[string]any {
	return map[string]any{
		"proposal":      1,
		"amount":        p.Amount,
		"barrier":       p.Barrier,
		"basis":         p.Basis,
		"contract_type": p.ContractType,
		"currency":      p.Currency,
		"duration":      p.Duration,
		"duration_unit": p.DurationUnit,
		"symbol":        p.Symbol,
	}
}

type Authorization struct {
	LoginID  string  `json:"loginid"`
	Currency string  `json:"currency"`
	Balance  float64 `json:"balance"`
}

type Balance struct {
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

type Proposal struct {
	ID       string  `json:"id"`
	AskPrice float64 `json:"ask_price"`
	Payout   float64 `json:"payout"`
	Spot     float64 `json:"spot"`
}

type Contract struct {
	ContractID    int64   `json:"contract_id"`
	TransactionID int64   `json:"transaction_id"`
	BuyPrice      float64 `json:"buy_price"`
	Payout        float64 `json:"payout"`
	Balance       float64 `json:"balance_after"`
}

type Transaction struct {
	ContractID    int64   `json:"contract_id"`
	TransactionID int64   `json:"transaction_id"`
	BuyPrice      float64 `json:"buy_price"`
	SellPrice     float64 `json:"sell_price"`
	PurchaseTime  int64   `json:"purchase_time"`
	SellTime      int64   `json:"sell_time"`
	ShortCode     string  `json:"shortcode"`
}

// response — общий конверт ответа Deriv; заполнено только поле под msg_type.
type response struct {
	ReqID       int64          `json:"req_id"`
	MsgType     string         `json:"msg_type"`
	Error       *APIError      `json:"error"`
	Authorize   *Authorization `json:"authorize"`
	Balance     *Balance       `json:"balance"`
	Proposal    *Proposal      `json:"proposal"`
	Buy         *Contract      `json:"buy"`
	ProfitTable *struct {
		Count        int           `json:"count"`
		Transactions []Transaction `json:"transactions"`
	} `json:"profit_table"`
}
