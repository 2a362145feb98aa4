package models

import "strings"

// LineItem is one row of a balance sheet: a label plus the reported
// value for the prior and current periods. Labels are not unique and
// the slice order is the statement order.
type LineItem struct {
	Label   string  `json:"label"`
	Prior   float64 `json:"prior"`
	Current float64 `json:"current"`
}

// EnrichedLineItem carries the derived columns alongside the source row.
type EnrichedLineItem struct {
	LineItem
	GrowthPct       float64 `json:"growth_pct"`
	PriorSharePct   float64 `json:"prior_share_pct"`
	CurrentSharePct float64 `json:"current_share_pct"`
}

// Ratio is a liquidity ratio that may be unavailable, either because a
// source row is missing or because the denominator is exactly zero.
type Ratio struct {
	Value     float64 `json:"value"`
	Available bool    `json:"available"`
}

// NewRatio wraps a computed ratio value.
func NewRatio(v float64) Ratio {
	return Ratio{Value: v, Available: true}
}

// NotAvailable is the N/A ratio.
func NotAvailable() Ratio {
	return Ratio{}
}

// LiquidityPair holds the current ratio (current assets / current
// liabilities) for both reporting periods.
type LiquidityPair struct {
	Prior   Ratio `json:"prior"`
	Current Ratio `json:"current"`
}

// Anchor rows are located bilingually: statements arrive with either
// English or Vietnamese wording, and exports frequently mix both on a
// single sheet. Matching is case-insensitive substring and the first
// matching row wins; duplicate matches are not deduplicated.
var (
	TotalAssetsAliases        = []string{"TOTAL ASSETS", "CỘNG TÀI SẢN"}
	CurrentAssetsAliases      = []string{"CURRENT ASSETS", "TÀI SẢN NGẮN HẠN"}
	CurrentLiabilitiesAliases = []string{"CURRENT LIABILITIES", "NỢ NGẮN HẠN"}
)

// MatchesAny reports whether the label contains any alias, ignoring case.
func MatchesAny(label string, aliases []string) bool {
	upper := strings.ToUpper(label)
	for _, alias := range aliases {
		if strings.Contains(upper, alias) {
			return true
		}
	}
	return false
}

// FindRow returns the first row whose label matches one of the aliases.
func FindRow(rows []LineItem, aliases []string) (LineItem, bool) {
	for _, row := range rows {
		if MatchesAny(row.Label, aliases) {
			return row, true
		}
	}
	return LineItem{}, false
}

// FindEnrichedRow is FindRow over an enriched row set.
func FindEnrichedRow(rows []EnrichedLineItem, aliases []string) (EnrichedLineItem, bool) {
	for _, row := range rows {
		if MatchesAny(row.Label, aliases) {
			return row, true
		}
	}
	return EnrichedLineItem{}, false
}
