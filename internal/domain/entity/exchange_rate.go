package entity

// ExchangeRate is how many Target units one Source unit buys.
type ExchangeRate struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Rate   float64 `json:"rate"`
}
