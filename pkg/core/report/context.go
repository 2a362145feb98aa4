package report

import (
	"fmt"
	"strconv"
	"strings"

	"finanalyst/pkg/core/metrics"
	"finanalyst/pkg/models"
)

// Serialize renders the derived analysis into the flat text block that
// gets embedded in the model prompt. The enriched table keeps full
// float precision so the model has the exact backing numbers; the
// derived-facts block below it is rounded to 2 decimals because those
// lines are what the model is expected to cite verbatim.
func Serialize(a *metrics.Analysis) string {
	var b strings.Builder

	b.WriteString("| Chỉ tiêu | Năm trước | Năm sau | Tốc độ tăng trưởng (%) | Tỷ trọng Năm trước (%) | Tỷ trọng Năm sau (%) |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, row := range a.Rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			escapePipes(row.Label),
			fullPrecision(row.Prior),
			fullPrecision(row.Current),
			fullPrecision(row.GrowthPct),
			fullPrecision(row.PriorSharePct),
			fullPrecision(row.CurrentSharePct),
		)
	}

	b.WriteString("\n**Chỉ số dẫn xuất:**\n")
	fmt.Fprintf(&b, "- Tăng trưởng Tài sản ngắn hạn (%%): %s\n", currentAssetsGrowth(a.Rows))
	fmt.Fprintf(&b, "- Thanh toán hiện hành (Năm trước): %s\n", FormatRatio(a.Liquidity.Prior))
	fmt.Fprintf(&b, "- Thanh toán hiện hành (Năm sau): %s\n", FormatRatio(a.Liquidity.Current))

	return b.String()
}

func currentAssetsGrowth(rows []models.EnrichedLineItem) string {
	row, ok := models.FindEnrichedRow(rows, models.CurrentAssetsAliases)
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", row.GrowthPct)
}

func fullPrecision(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escapePipes(label string) string {
	return strings.ReplaceAll(label, "|", "\\|")
}
