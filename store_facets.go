package main

import (
	"context"
	"database/sql"
	"sort"
	"strings"
)

// storeLoadFilterOptions gathers the distinct values backing each sidebar
// filter, plus the available completion-date bounds.
func (a *App) storeLoadFilterOptions(ctx context.Context) (*FilterOptions, error) {
	opts := &FilterOptions{
		Origins:         []string{},
		ClassTypes:      []string{},
		Brands:          []string{},
		ViolationGroups: []string{},
		Commodities:     []CommodityOption{},
	}

	var err error
	opts.Origins, err = a.queryDistinctStrings(ctx, `
		SELECT DISTINCT COALESCE(origin, 'UNKNOWN')
		FROM cola_images.colas
		ORDER BY 1`)
	if err != nil {
		return nil, err
	}

	opts.ClassTypes, err = a.queryDistinctStrings(ctx, `
		SELECT DISTINCT COALESCE(class_type, 'UNKNOWN')
		FROM cola_images.colas
		ORDER BY 1`)
	if err != nil {
		return nil, err
	}

	opts.Brands, err = a.queryDistinctStrings(ctx, `
		SELECT DISTINCT brand_name
		FROM cola_images.colas
		WHERE brand_name IS NOT NULL AND TRIM(brand_name) != ''
		ORDER BY 1`)
	if err != nil {
		return nil, err
	}

	opts.ViolationGroups, err = a.queryDistinctStrings(ctx, `
		SELECT DISTINCT violation_group
		FROM cola_images.vw_cola_violations_list
		WHERE violation_group IS NOT NULL AND TRIM(violation_group) != ''
		ORDER BY violation_group`)
	if err != nil {
		return nil, err
	}

	commodities, err := a.queryDistinctStrings(ctx, `
		SELECT DISTINCT ct_commodity
		FROM cola_images.vw_colas
		WHERE ct_commodity IS NOT NULL`)
	if err != nil {
		return nil, err
	}
	for _, commodity := range orderCommodities(commodities) {
		opts.Commodities = append(opts.Commodities, CommodityOption{
			Value: commodity,
			Label: commodityIcon(commodity) + " " + commodityDisplayName(commodity),
			Color: commodityColor(commodity),
		})
	}

	var minDate, maxDate sql.NullTime
	err = a.db.QueryRowContext(ctx, `
		SELECT MIN(completed_date), MAX(completed_date)
		FROM cola_images.colas
		WHERE completed_date IS NOT NULL`).Scan(&minDate, &maxDate)
	if err != nil {
		return nil, err
	}
	if minDate.Valid && maxDate.Valid {
		opts.MinDate = minDate.Time.UTC().Format("2006-01-02")
		opts.MaxDate = maxDate.Time.UTC().Format("2006-01-02")

		// default window reaches back two weeks, clamped to the oldest record
		defaultStart := maxDate.Time.UTC().AddDate(0, 0, -defaultDateWindowDays)
		if defaultStart.Before(minDate.Time.UTC()) {
			defaultStart = minDate.Time.UTC()
		}
		opts.DefaultStartDate = defaultStart.Format("2006-01-02")
	}

	return opts, nil
}

func (a *App) queryDistinctStrings(ctx context.Context, query string) ([]string, error) {
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}

// orderCommodities puts wine, beer and distilled spirits first, then the
// rest alphabetically.
func orderCommodities(raw []string) []string {
	present := make(map[string]struct{}, len(raw))
	for _, commodity := range raw {
		present[commodity] = struct{}{}
	}

	ordered := make([]string, 0, len(raw))
	for _, commodity := range commodityOrder {
		if _, ok := present[commodity]; ok {
			ordered = append(ordered, commodity)
			delete(present, commodity)
		}
	}

	rest := make([]string, 0, len(present))
	for commodity := range present {
		rest = append(rest, commodity)
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}

func commodityDisplayName(commodity string) string {
	words := strings.Fields(strings.ReplaceAll(commodity, "_", " "))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func commodityColor(commodity string) string {
	if color, ok := commodityColorMap[commodity]; ok {
		return color
	}
	return defaultCommodityColor
}
