package main

import (
	"fmt"
	"strings"
	"time"
)

// buildResultsMessage renders the "Found N COLA records ..." line with a
// humanized explanation of every active filter.
func buildResultsMessage(f ColaFilters, total int, limited bool) string {
	explanations := []string{}

	if f.StartDate != "" && f.EndDate != "" {
		explanations = append(explanations, fmt.Sprintf(
			"with completion date from %s through %s",
			humanDate(f.StartDate), humanDate(f.EndDate),
		))
	}

	if len(f.Commodities) > 0 {
		names := make([]string, 0, len(f.Commodities))
		for _, commodity := range f.Commodities {
			names = append(names, commodityDisplayName(commodity))
		}
		if len(names) == 1 {
			explanations = append(explanations, fmt.Sprintf("limited to %s COLAs only", names[0]))
		} else {
			explanations = append(explanations, fmt.Sprintf("limited to %s COLAs", joinAnd(names)))
		}
	}

	if len(f.Brands) > 0 {
		if len(f.Brands) == 1 {
			explanations = append(explanations, fmt.Sprintf("for brand %s", f.Brands[0]))
		} else {
			explanations = append(explanations, fmt.Sprintf("for brands %s", joinAnd(f.Brands)))
		}
	}

	if len(f.Origins) > 0 {
		if len(f.Origins) == 1 {
			explanations = append(explanations, fmt.Sprintf("of origin %s", f.Origins[0]))
		} else {
			explanations = append(explanations, fmt.Sprintf("of origins %s", joinAnd(f.Origins)))
		}
	}

	if len(f.ClassTypes) > 0 {
		if len(f.ClassTypes) == 1 {
			explanations = append(explanations, fmt.Sprintf("with Class Type = %s", f.ClassTypes[0]))
		} else {
			explanations = append(explanations, fmt.Sprintf("with Class Type = [%s]", strings.Join(f.ClassTypes, ", ")))
		}
	}

	if len(f.ViolationGroups) > 0 {
		explanations = append(explanations, fmt.Sprintf("with %s violations", joinAnd(f.ViolationGroups)))
	}

	if ids, ok := parseColaIDList(f.Search); ok {
		if len(ids) == 1 {
			explanations = append(explanations, fmt.Sprintf("for COLA ID %s", ids[0]))
		} else {
			explanations = append(explanations, fmt.Sprintf("for %d specific COLA IDs", len(ids)))
		}
	} else if f.Search != "" {
		explanations = append(explanations, fmt.Sprintf("matching search term '%s'", f.Search))
	}

	if f.Exclude != "" {
		explanations = append(explanations, fmt.Sprintf("excluding '%s'", f.Exclude))
	}

	message := fmt.Sprintf("Found %s COLA records", formatCount(total))
	if len(explanations) > 0 {
		message += " " + strings.Join(explanations, ", ")
	}
	if limited {
		message += fmt.Sprintf(", limiting to %d results displayed", maxDisplayedResults)
	}
	return message
}

func humanDate(iso string) string {
	parsed, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return parsed.Format("January 02, 2006")
}

// joinAnd renders "a", "a and b", or "a, b, and c".
func joinAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

// formatCount writes an integer with thousands separators.
func formatCount(n int) string {
	raw := fmt.Sprintf("%d", n)
	if len(raw) <= 3 {
		return raw
	}
	var b strings.Builder
	lead := len(raw) % 3
	if lead > 0 {
		b.WriteString(raw[:lead])
	}
	for i := lead; i < len(raw); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(raw[i : i+3])
	}
	return b.String()
}
