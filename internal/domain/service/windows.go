package service

import (
	"fmt"
	"time"

	"github.com/diillson/aws-cost-report/internal/domain/entity"
	"github.com/diillson/aws-cost-report/internal/shared/types"
)

// BillingWindows computes the query windows for the UTC day containing now:
// the day two days ago, the whole current month and the rest of the month.
func BillingWindows(now time.Time) (entity.BillingWindows, error) {
	if now.IsZero() {
		return entity.BillingWindows{}, fmt.Errorf("%w: zero reference time", types.ErrDateComputation)
	}

	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	firstOfNextMonth := firstOfMonth.AddDate(0, 1, 0)

	windows := entity.BillingWindows{
		TwoDaysAgo: entity.DateWindow{Start: today.AddDate(0, 0, -2), End: today.AddDate(0, 0, -1)},
		Month:      entity.DateWindow{Start: firstOfMonth, End: firstOfNextMonth},
		Forecast:   entity.DateWindow{Start: today, End: firstOfNextMonth},
	}

	for _, w := range []entity.DateWindow{windows.TwoDaysAgo, windows.Month, windows.Forecast} {
		if !w.End.After(w.Start) {
			return entity.BillingWindows{}, fmt.Errorf("%w: empty window %s", types.ErrDateComputation, w)
		}
	}
	return windows, nil
}
