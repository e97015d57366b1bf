package types

import "errors"

// Tipos de erro de uma execução do relatório. Qualquer um deles aborta a execução inteira.
var (
	ErrRateUnavailable        = errors.New("exchange rate unavailable")
	ErrNoData                 = errors.New("no cost groups found in the first result")
	ErrForecastUnavailable    = errors.New("current month forecast unavailable")
	ErrMonthToDateUnavailable = errors.New("month-to-date cost unavailable")
	ErrMalformedAmount        = errors.New("malformed amount")
	ErrDateComputation        = errors.New("failed to compute date window")
)

var errorKinds = []struct {
	err  error
	name string
}{
	{ErrRateUnavailable, "RateUnavailable"},
	{ErrNoData, "NoData"},
	{ErrForecastUnavailable, "ForecastUnavailable"},
	{ErrMonthToDateUnavailable, "MonthToDateUnavailable"},
	{ErrMalformedAmount, "MalformedAmount"},
	{ErrDateComputation, "DateComputationFailure"},
}

// ErrorKind names the first known error kind in err's chain, or "Unknown".
func ErrorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "Unknown"
}
