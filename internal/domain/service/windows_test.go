package service

import (
	"errors"
	"testing"
	"time"

	"github.com/diillson/aws-cost-report/internal/shared/types"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBillingWindows(t *testing.T) {
	tests := []struct {
		name                     string
		now                      time.Time
		twoDaysStart, twoDaysEnd time.Time
		monthStart, monthEnd     time.Time
		forecastStart            time.Time
	}{
		{
			name:         "mid month",
			now:          time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC),
			twoDaysStart: day(2026, 10, 17), twoDaysEnd: day(2026, 10, 18),
			monthStart: day(2026, 10, 1), monthEnd: day(2026, 11, 1),
			forecastStart: day(2026, 10, 19),
		},
		{
			name:         "first of month reaches into previous month",
			now:          time.Date(2026, 3, 1, 0, 30, 0, 0, time.UTC),
			twoDaysStart: day(2026, 2, 27), twoDaysEnd: day(2026, 2, 28),
			monthStart: day(2026, 3, 1), monthEnd: day(2026, 4, 1),
			forecastStart: day(2026, 3, 1),
		},
		{
			name:         "december rolls the year",
			now:          time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC),
			twoDaysStart: day(2026, 12, 29), twoDaysEnd: day(2026, 12, 30),
			monthStart: day(2026, 12, 1), monthEnd: day(2027, 1, 1),
			forecastStart: day(2026, 12, 31),
		},
		{
			name:         "end of january",
			now:          time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC),
			twoDaysStart: day(2026, 1, 29), twoDaysEnd: day(2026, 1, 30),
			monthStart: day(2026, 1, 1), monthEnd: day(2026, 2, 1),
			forecastStart: day(2026, 1, 31),
		},
		{
			name:         "non-UTC input uses the UTC day",
			now:          time.Date(2026, 10, 19, 8, 0, 0, 0, time.FixedZone("JST", 9*60*60)),
			twoDaysStart: day(2026, 10, 16), twoDaysEnd: day(2026, 10, 17),
			monthStart: day(2026, 10, 1), monthEnd: day(2026, 11, 1),
			forecastStart: day(2026, 10, 18),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := BillingWindows(tt.now)
			if err != nil {
				t.Fatalf("BillingWindows: %v", err)
			}
			if !w.TwoDaysAgo.Start.Equal(tt.twoDaysStart) || !w.TwoDaysAgo.End.Equal(tt.twoDaysEnd) {
				t.Errorf("TwoDaysAgo = %s", w.TwoDaysAgo)
			}
			if !w.Month.Start.Equal(tt.monthStart) || !w.Month.End.Equal(tt.monthEnd) {
				t.Errorf("Month = %s", w.Month)
			}
			if !w.Forecast.Start.Equal(tt.forecastStart) || !w.Forecast.End.Equal(tt.monthEnd) {
				t.Errorf("Forecast = %s", w.Forecast)
			}
		})
	}
}

func TestBillingWindows_ZeroTime(t *testing.T) {
	_, err := BillingWindows(time.Time{})
	if !errors.Is(err, types.ErrDateComputation) {
		t.Errorf("err = %v, want ErrDateComputation", err)
	}
}
