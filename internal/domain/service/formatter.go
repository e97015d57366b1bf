package service

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Rótulos fixos das moedas no relatório.
const (
	TargetCurrencySuffix = "円"
	SourceCurrencyPrefix = "$"
)

const sourceDecimalPlaces = 2

// FormatAmount renders amountUSD as "<JPY>円($<USD>)", e.g. "1234円($8.23)".
func FormatAmount(amountUSD, rate float64) string {
	return strconv.FormatFloat(TargetAmount(amountUSD, rate), 'f', -1, 64) +
		TargetCurrencySuffix +
		"(" + SourceCurrencyPrefix + SourceAmount(amountUSD) + ")"
}

// TargetAmount converts to the target currency and rounds half away from
// zero to a whole unit. Non-finite results become 0.
func TargetAmount(amountUSD, rate float64) float64 {
	v := math.Round(amountUSD * rate)
	if math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
		// also folds -0 into 0
		return 0
	}
	return v
}

// SourceAmount rounds amountUSD to at most two decimal places using banker's
// rounding on its shortest decimal representation. Amounts that already have
// fewer decimals are printed as they are ("25.5", "10"); longer ones keep
// exactly two ("0.00", "8.23").
func SourceAmount(amountUSD float64) string {
	if math.IsNaN(amountUSD) || math.IsInf(amountUSD, 0) {
		return decimal.Zero.String()
	}

	d := decimal.NewFromFloat(amountUSD)
	places := int32(0)
	if exp := d.Exponent(); exp < 0 {
		places = -exp
	}
	if places > sourceDecimalPlaces {
		places = sourceDecimalPlaces
	}
	return d.RoundBank(sourceDecimalPlaces).StringFixed(places)
}
