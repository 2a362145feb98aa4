package report

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"finanalyst/pkg/models"
)

var printer = message.NewPrinter(language.English)

// FormatAmount renders a period value as an integer with thousands
// separators.
func FormatAmount(v float64) string {
	return printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(0)))
}

// FormatPercent renders a derived percentage column to 2 decimals.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// FormatRatio renders a liquidity ratio to 2 decimals, or N/A.
func FormatRatio(r models.Ratio) string {
	if !r.Available {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", r.Value)
}

// FormatCurrentRatioWithDelta renders the current-period liquidity
// ratio annotated with its change from the prior period when both are
// numeric.
func FormatCurrentRatioWithDelta(p models.LiquidityPair) string {
	if !p.Current.Available {
		return "N/A"
	}
	if !p.Prior.Available {
		return fmt.Sprintf("%.2f", p.Current.Value)
	}
	return fmt.Sprintf("%.2f (%+.2f)", p.Current.Value, p.Current.Value-p.Prior.Value)
}

// TableRow is one display-formatted row of the enriched table.
type TableRow struct {
	Label        string `json:"label"`
	Prior        string `json:"prior"`
	Current      string `json:"current"`
	Growth       string `json:"growth"`
	PriorShare   string `json:"prior_share"`
	CurrentShare string `json:"current_share"`
}

// FormatTable applies the display contract to every enriched row:
// thousands-separated integers for the period values, 2-decimal
// percentages for the derived columns.
func FormatTable(rows []models.EnrichedLineItem) []TableRow {
	out := make([]TableRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, TableRow{
			Label:        row.Label,
			Prior:        FormatAmount(row.Prior),
			Current:      FormatAmount(row.Current),
			Growth:       FormatPercent(row.GrowthPct),
			PriorShare:   FormatPercent(row.PriorSharePct),
			CurrentShare: FormatPercent(row.CurrentSharePct),
		})
	}
	return out
}
