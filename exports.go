package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"

	"github.com/go-pdf/fpdf"
)

func buildColaCSV(colas []Cola) (string, error) {
	buffer := &bytes.Buffer{}
	writer := csv.NewWriter(buffer)

	header := []string{
		"cola_id", "brand_name", "fanciful_name", "origin", "class_type",
		"commodity", "source", "permit_num", "serial_num", "completed_date",
		"image_count", "analysis_count", "violation_count", "details_url",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, cola := range colas {
		row := []string{
			cola.ColaID,
			derefString(cola.BrandName),
			derefString(cola.FancifulName),
			derefString(cola.Origin),
			derefString(cola.ClassType),
			cola.Commodity,
			derefString(cola.Source),
			derefString(cola.PermitNum),
			derefString(cola.SerialNum),
			derefString(cola.CompletedDate),
			strconv.Itoa(cola.ImageCount),
			strconv.Itoa(cola.AnalysisCount),
			strconv.Itoa(cola.ViolationCount),
			derefString(cola.DetailsURL),
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return buffer.String(), nil
}

// sortedByCountDesc orders keys by descending count, with ties broken
// alphabetically so repeated exports of the same data render identically.
func sortedByCountDesc(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

func buildColaPDF(colas []Cola, summaryLine string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 16)
	pdf.Cell(0, 10, "TTB COLA Export")

	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, summaryLine, "", "L", false)
	pdf.Ln(4)
	pdf.Cell(0, 8, fmt.Sprintf("Total records: %d", len(colas)))
	pdf.Ln(10)

	commodityCounts := map[string]int{}
	violationGroupCounts := map[string]int{}
	for _, cola := range colas {
		commodityCounts[cola.Commodity]++
		for _, violation := range cola.Violations {
			if violation.Group != "" {
				violationGroupCounts[violation.Group]++
			}
		}
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 8, "Commodity distribution")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, key := range sortedByCountDesc(commodityCounts) {
		pdf.Cell(0, 6, fmt.Sprintf("- %s: %d", commodityDisplayName(key), commodityCounts[key]))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 8, "Top violation groups")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	groups := sortedByCountDesc(violationGroupCounts)
	if len(groups) > 10 {
		groups = groups[:10]
	}
	for _, group := range groups {
		pdf.Cell(0, 6, fmt.Sprintf("- %s: %d", group, violationGroupCounts[group]))
		pdf.Ln(6)
	}

	buffer := bytes.NewBuffer(nil)
	if err := pdf.Output(buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
