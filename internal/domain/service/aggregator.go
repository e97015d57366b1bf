package service

import (
	"sort"

	"github.com/diillson/aws-cost-report/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ComputeTotal soma o custo de todas as entradas válidas.
// A soma é feita em ponto fixo para não depender da ordem das entradas.
func ComputeTotal(entries entity.CostEntryList) float64 {
	total := decimal.Zero
	for _, e := range entries {
		if !e.Valid {
			continue
		}
		total = total.Add(decimal.NewFromFloat(e.Amount))
	}
	return total.InexactFloat64()
}

// RankTop returns the n most expensive entries, most expensive first.
// Entries with equal cost keep the order Cost Explorer returned them in.
// The input list is left untouched.
func RankTop(entries entity.CostEntryList, n int) entity.CostEntryList {
	if n <= 0 {
		return entity.CostEntryList{}
	}

	ranked := make(entity.CostEntryList, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return rankAmount(ranked[i]) > rankAmount(ranked[j])
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

func rankAmount(e entity.CostEntry) float64 {
	if !e.Valid {
		return 0
	}
	return e.Amount
}
