package metrics

import (
	"crypto/sha256"
	"fmt"

	"github.com/rs/zerolog"

	"finanalyst/pkg/models"
)

// epsilon replaces an exactly-zero divisor so growth and share columns
// stay finite for degenerate inputs. The table remains renderable even
// when a prior-year value or a period total is zero.
const epsilon = 1e-9

// MissingRequiredRowError means the statement has no total-assets row.
// Without that anchor no share column can be computed, so the whole
// derived table is withheld.
type MissingRequiredRowError struct {
	Label string
}

func (e *MissingRequiredRowError) Error() string {
	return fmt.Sprintf("required row %q not found in statement", e.Label)
}

// Analysis is the full derived output for one statement.
type Analysis struct {
	Rows      []models.EnrichedLineItem `json:"rows"`
	Liquidity models.LiquidityPair      `json:"liquidity"`

	key [sha256.Size]byte
}

// Engine derives growth, composition, and liquidity metrics from a
// statement. Computation is pure; the engine only adds memoization and
// a logger for soft warnings.
type Engine struct {
	logger zerolog.Logger
	cache  *analysisCache
}

func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{logger: logger, cache: newAnalysisCache()}
}

// Analyze runs both computations, memoized on a hash of the row set.
// Re-analyzing the same rows returns the identical result; a new row
// set computes fresh. Callers must treat the result as read-only.
func (e *Engine) Analyze(rows []models.LineItem) (*Analysis, error) {
	key := hashRows(rows)
	if cached, ok := e.cache.get(key); ok {
		return cached, nil
	}

	enriched, err := e.ComputeGrowthAndShares(rows)
	if err != nil {
		return nil, err
	}
	analysis := &Analysis{
		Rows:      enriched,
		Liquidity: e.ComputeLiquidity(rows),
		key:       key,
	}
	e.cache.put(key, analysis)
	return analysis, nil
}

// Invalidate drops a previously returned analysis from the memo. The
// upload path calls this when a new statement replaces the one the
// analysis was computed from; the engine is shared across sessions, so
// without eviction it would retain one entry per distinct upload for
// the life of the process.
func (e *Engine) Invalidate(a *Analysis) {
	if a == nil {
		return
	}
	e.cache.evict(a.key)
}

// ComputeGrowthAndShares derives the growth and composition columns for
// every row. The statement must contain a total-assets row (first
// case-insensitive substring match); its period values anchor the share
// columns. The pass is O(n), order-preserving, and deterministic.
func (e *Engine) ComputeGrowthAndShares(rows []models.LineItem) ([]models.EnrichedLineItem, error) {
	total, ok := models.FindRow(rows, models.TotalAssetsAliases)
	if !ok {
		return nil, &MissingRequiredRowError{Label: "TOTAL ASSETS"}
	}

	priorTotal := guardZero(total.Prior)
	currentTotal := guardZero(total.Current)

	enriched := make([]models.EnrichedLineItem, 0, len(rows))
	for _, row := range rows {
		enriched = append(enriched, models.EnrichedLineItem{
			LineItem:        row,
			GrowthPct:       (row.Current - row.Prior) / guardZero(row.Prior) * 100,
			PriorSharePct:   row.Prior / priorTotal * 100,
			CurrentSharePct: row.Current / currentTotal * 100,
		})
	}
	return enriched, nil
}

// ComputeLiquidity derives the current ratio for both periods. A
// missing current-assets or current-liabilities row degrades both
// ratios to N/A with a warning instead of failing the pipeline; an
// exactly-zero denominator degrades only that period's ratio.
func (e *Engine) ComputeLiquidity(rows []models.LineItem) models.LiquidityPair {
	assets, okAssets := models.FindRow(rows, models.CurrentAssetsAliases)
	liabilities, okLiabilities := models.FindRow(rows, models.CurrentLiabilitiesAliases)
	if !okAssets || !okLiabilities {
		e.logger.Warn().
			Bool("current_assets_found", okAssets).
			Bool("current_liabilities_found", okLiabilities).
			Msg("liquidity rows missing, ratios unavailable")
		return models.LiquidityPair{Prior: models.NotAvailable(), Current: models.NotAvailable()}
	}

	pair := models.LiquidityPair{Prior: models.NotAvailable(), Current: models.NotAvailable()}
	if liabilities.Prior != 0 {
		pair.Prior = models.NewRatio(assets.Prior / liabilities.Prior)
	}
	if liabilities.Current != 0 {
		pair.Current = models.NewRatio(assets.Current / liabilities.Current)
	}
	return pair
}

func guardZero(v float64) float64 {
	if v == 0 {
		return epsilon
	}
	return v
}
