package entity

// CurrencyUSD is the currency Cost Explorer reports unblended cost in.
const CurrencyUSD = "USD"

// CostEntry represents the cost of one service for the reported window.
// Valid is false when the upstream amount was missing or unparsable; such an
// entry counts as zero and is never displayed.
type CostEntry struct {
	Label    string  `json:"label"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Valid    bool    `json:"valid"`
}

// Displayable reports whether the entry can appear in the ranking.
func (e CostEntry) Displayable() bool {
	return e.Label != "" && e.Valid
}

// CostEntryList keeps the order Cost Explorer returned until it is ranked.
type CostEntryList []CostEntry
