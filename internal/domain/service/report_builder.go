package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/diillson/aws-cost-report/internal/domain/entity"
)

// LabelColumnWidth is the default width of the service name column.
const LabelColumnWidth = 50

const (
	rankingSeparator = ":  "
	rankingFence     = "```"

	reportTemplate = "前々日料金:%s\n" +
		"--------------\n" +
		"現時点料金:%s\n" +
		"今月の予測:%s\n" +
		"■前々日の料金ランキング\n" +
		"%s\n"
)

// LabelPolicy controls how service names fill the label column.
// Labels shorter than Width are padded with spaces; longer labels are cut to
// Width runes only when Truncate is set.
type LabelPolicy struct {
	Width    int
	Truncate bool
}

// DefaultLabelPolicy pads to LabelColumnWidth and never truncates.
func DefaultLabelPolicy() LabelPolicy {
	return LabelPolicy{Width: LabelColumnWidth}
}

// Apply fits label into the column.
func (p LabelPolicy) Apply(label string) string {
	n := utf8.RuneCountInString(label)
	if p.Truncate && n > p.Width {
		return string([]rune(label)[:p.Width])
	}
	if n < p.Width {
		return label + strings.Repeat(" ", p.Width-n)
	}
	return label
}

// ReportBuilder monta o texto final do relatório.
type ReportBuilder struct {
	policy LabelPolicy
}

// NewReportBuilder creates a builder using the given label policy.
func NewReportBuilder(policy LabelPolicy) *ReportBuilder {
	if policy.Width < 0 {
		policy.Width = 0
	}
	return &ReportBuilder{policy: policy}
}

// BuildServiceRanking renders the top displayCount services as a fenced
// block. Entries without a label or a valid amount are skipped, so the block
// may hold fewer than displayCount lines.
func (b *ReportBuilder) BuildServiceRanking(entries entity.CostEntryList, rate float64, displayCount int) string {
	var lines strings.Builder
	for _, e := range RankTop(entries, displayCount) {
		if !e.Displayable() {
			continue
		}
		lines.WriteString(b.policy.Apply(e.Label))
		lines.WriteString(rankingSeparator)
		lines.WriteString(FormatAmount(e.Amount, rate))
		lines.WriteString("\n")
	}
	return rankingFence + "\n" + lines.String() + "\n" + rankingFence
}

// BuildReport fills the fixed report template.
func (b *ReportBuilder) BuildReport(totalTwoDaysAgo, monthToDate, forecast, serviceRanking string) string {
	return fmt.Sprintf(reportTemplate, totalTwoDaysAgo, monthToDate, forecast, serviceRanking)
}
