package main

import (
	"context"
	"math/rand"
	"sort"
)

// runColaSearch executes the full pipeline for one filter state: primary
// query, batched enrichment, merge, summary aggregation, then the shuffle
// and display cap. The reported total always reflects the true match count.
func (a *App) runColaSearch(ctx context.Context, filters ColaFilters) (*SearchResult, error) {
	colas, err := a.loadFilteredColas(ctx, filters)
	if err != nil {
		return nil, err
	}

	summary := commoditySummary(colas)
	chart := buildChart(colas, filters.StartDate, filters.EndDate)

	total := len(colas)

	// shuffle for variety before capping; order is not a correctness concern
	rand.Shuffle(len(colas), func(i, j int) {
		colas[i], colas[j] = colas[j], colas[i]
	})

	limited := total > maxDisplayedResults
	if limited {
		colas = colas[:maxDisplayedResults]
	}

	return &SearchResult{
		Records:          colas,
		TotalCount:       total,
		DisplayedCount:   len(colas),
		Limited:          limited,
		Message:          buildResultsMessage(filters, total, limited),
		CommoditySummary: summary,
		Chart:            chart,
	}, nil
}

// loadFilteredColas runs the primary query plus both auxiliary batches and
// merges everything onto the records, newest completion date first.
func (a *App) loadFilteredColas(ctx context.Context, filters ColaFilters) ([]Cola, error) {
	colas, err := a.queryColas(ctx, filters)
	if err != nil {
		return nil, err
	}

	colaIDs := make([]string, 0, len(colas))
	for _, cola := range colas {
		colaIDs = append(colaIDs, cola.ColaID)
	}

	images, err := a.fetchColaImages(ctx, colaIDs)
	if err != nil {
		return nil, err
	}
	violations, err := a.fetchColaViolations(ctx, colaIDs)
	if err != nil {
		return nil, err
	}

	attachRelated(colas, images, violations)
	decorateIcons(colas)
	return colas, nil
}

func decorateIcons(colas []Cola) {
	for i := range colas {
		colas[i].CommodityIcon = commodityIcon(colas[i].Commodity)
		colas[i].FlagIcon = flagIcon(derefString(colas[i].Origin), derefString(colas[i].Source))
	}
}

// commoditySummary counts records per commodity in the preferred display
// order (wine, beer, distilled spirits, then the rest alphabetically).
func commoditySummary(colas []Cola) []CommodityCount {
	counts := make(map[string]int)
	for _, cola := range colas {
		counts[cola.Commodity]++
	}

	commodities := make([]string, 0, len(counts))
	for commodity := range counts {
		commodities = append(commodities, commodity)
	}
	sort.Strings(commodities)

	summary := make([]CommodityCount, 0, len(counts))
	for _, commodity := range orderCommodities(commodities) {
		summary = append(summary, CommodityCount{
			Commodity: commodity,
			Icon:      commodityIcon(commodity),
			Color:     commodityColor(commodity),
			Count:     counts[commodity],
		})
	}
	return summary
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
