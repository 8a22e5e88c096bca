package main

import (
	"sort"
	"time"
)

// ChartData is the time-bucketed commodity histogram behind the bar chart.
// The zero value is the explicit "no chart" variant: rendering it is a
// deliberate skip, not a swallowed failure.
type ChartData struct {
	Granularity string            `json:"granularity,omitempty"`
	XAxisTitle  string            `json:"x_axis_title,omitempty"`
	Commodities []string          `json:"commodities,omitempty"`
	Colors      map[string]string `json:"colors,omitempty"`
	Buckets     []ChartBucket     `json:"buckets,omitempty"`
}

type ChartBucket struct {
	Start  string         `json:"start"`
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

func (d ChartData) IsEmpty() bool { return len(d.Buckets) == 0 }

// buildChart aggregates completion dates into commodity-stacked buckets.
// Granularity follows the selected range: daily up to two months, weekly up
// to a year, monthly beyond. Unusable dates yield the empty variant.
func buildChart(colas []Cola, startDate, endDate string) ChartData {
	if len(colas) == 0 {
		return ChartData{}
	}

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return ChartData{}
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return ChartData{}
	}

	rangeDays := int(end.Sub(start).Hours() / 24)
	granularity := "day"
	xAxisTitle := "Completed Date"
	switch {
	case rangeDays > chartMonthlyThresholdDays:
		granularity = "month"
		xAxisTitle = "Month"
	case rangeDays > chartWeeklyThresholdDays:
		granularity = "week"
		xAxisTitle = "Week"
	}

	buckets := make(map[string]map[string]int)
	present := make(map[string]struct{})
	for _, cola := range colas {
		if cola.CompletedDate == nil {
			continue
		}
		completed, err := time.Parse("2006-01-02", *cola.CompletedDate)
		if err != nil {
			continue
		}
		key := bucketStart(completed, granularity).Format("2006-01-02")
		if buckets[key] == nil {
			buckets[key] = make(map[string]int)
		}
		buckets[key][cola.Commodity]++
		present[cola.Commodity] = struct{}{}
	}
	if len(buckets) == 0 {
		return ChartData{}
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	commodities := make([]string, 0, len(present))
	for commodity := range present {
		commodities = append(commodities, commodity)
	}
	sort.Strings(commodities)
	commodities = orderCommodities(commodities)

	colors := make(map[string]string, len(commodities))
	for _, commodity := range commodities {
		colors[commodity] = commodityColor(commodity)
	}

	chart := ChartData{
		Granularity: granularity,
		XAxisTitle:  xAxisTitle,
		Commodities: commodities,
		Colors:      colors,
		Buckets:     make([]ChartBucket, 0, len(keys)),
	}
	for _, key := range keys {
		total := 0
		for _, count := range buckets[key] {
			total += count
		}
		chart.Buckets = append(chart.Buckets, ChartBucket{
			Start:  key,
			Counts: buckets[key],
			Total:  total,
		})
	}
	return chart
}

func bucketStart(t time.Time, granularity string) time.Time {
	switch granularity {
	case "month":
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case "week":
		// weeks start on Monday
		offset := (int(t.Weekday()) + 6) % 7
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -offset)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}
