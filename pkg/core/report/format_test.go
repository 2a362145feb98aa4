package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanalyst/pkg/models"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1,234,567", FormatAmount(1234567))
	assert.Equal(t, "0", FormatAmount(0))
	assert.Equal(t, "-9,000", FormatAmount(-9000))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "12.35%", FormatPercent(12.3456))
	assert.Equal(t, "100.00%", FormatPercent(100))
}

func TestFormatRatio(t *testing.T) {
	assert.Equal(t, "2.00", FormatRatio(models.NewRatio(2)))
	assert.Equal(t, "N/A", FormatRatio(models.NotAvailable()))
}

func TestFormatCurrentRatioWithDelta(t *testing.T) {
	both := models.LiquidityPair{Prior: models.NewRatio(2), Current: models.NewRatio(2)}
	assert.Equal(t, "2.00 (+0.00)", FormatCurrentRatioWithDelta(both))

	up := models.LiquidityPair{Prior: models.NewRatio(1.5), Current: models.NewRatio(2)}
	assert.Equal(t, "2.00 (+0.50)", FormatCurrentRatioWithDelta(up))

	down := models.LiquidityPair{Prior: models.NewRatio(2), Current: models.NewRatio(1.25)}
	assert.Equal(t, "1.25 (-0.75)", FormatCurrentRatioWithDelta(down))

	noPrior := models.LiquidityPair{Prior: models.NotAvailable(), Current: models.NewRatio(1.5)}
	assert.Equal(t, "1.50", FormatCurrentRatioWithDelta(noPrior))

	noCurrent := models.LiquidityPair{Prior: models.NewRatio(2), Current: models.NotAvailable()}
	assert.Equal(t, "N/A", FormatCurrentRatioWithDelta(noCurrent))
}

func TestFormatTable(t *testing.T) {
	rows := []models.EnrichedLineItem{
		{
			LineItem:        models.LineItem{Label: "TỔNG CỘNG TÀI SẢN", Prior: 1234567, Current: 2000000},
			GrowthPct:       62.0002,
			PriorSharePct:   100,
			CurrentSharePct: 100,
		},
	}

	formatted := FormatTable(rows)
	require.Len(t, formatted, 1)
	assert.Equal(t, "1,234,567", formatted[0].Prior)
	assert.Equal(t, "2,000,000", formatted[0].Current)
	assert.Equal(t, "62.00%", formatted[0].Growth)
	assert.Equal(t, "100.00%", formatted[0].PriorShare)
}
