package main

import (
	"fmt"
	"strings"
)

// ColaFilters is the request-scoped filter state parsed from query
// parameters. Multi-valued fields arrive as comma-separated lists.
type ColaFilters struct {
	Search          string
	Exclude         string
	StartDate       string
	EndDate         string
	Origins         []string
	ClassTypes      []string
	Brands          []string
	Commodities     []string
	ViolationGroups []string
}

const searchFieldCount = 8 // 5 base fields + image analysis text + analysis response/metadata

// parseColaIDList reports whether search is a comma-separated list of
// 14-digit COLA IDs. A single non-conforming token rejects the whole list.
func parseColaIDList(search string) ([]string, bool) {
	if strings.TrimSpace(search) == "" {
		return nil, false
	}
	parts := strings.Split(search, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		id := strings.TrimSpace(part)
		if len(id) != colaIDLength || !isDigits(id) {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, len(ids) > 0
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// buildColaFilters compiles the filter state into a WHERE-clause fragment
// (to be appended after "WHERE 1=1") and its ordered argument list. When
// the search text is a COLA ID list every other filter is ignored: the ID
// list is a jump-to-record shortcut.
func buildColaFilters(f ColaFilters) (string, []any) {
	args := make([]any, 0)
	argIndex := 1

	if ids, ok := parseColaIDList(f.Search); ok {
		whereClause := fmt.Sprintf(" AND c.cola_id IN (%s)", placeholders(argIndex, len(ids)))
		for _, id := range ids {
			args = append(args, id)
		}
		return whereClause, args
	}

	whereClause := ""

	if len(f.Origins) > 0 {
		whereClause += fmt.Sprintf(" AND COALESCE(c.origin, 'UNKNOWN') IN (%s)", placeholders(argIndex, len(f.Origins)))
		args = appendStrings(args, f.Origins)
		argIndex += len(f.Origins)
	}
	if len(f.ClassTypes) > 0 {
		whereClause += fmt.Sprintf(" AND COALESCE(c.class_type, 'UNKNOWN') IN (%s)", placeholders(argIndex, len(f.ClassTypes)))
		args = appendStrings(args, f.ClassTypes)
		argIndex += len(f.ClassTypes)
	}
	if len(f.Commodities) > 0 {
		whereClause += fmt.Sprintf(" AND c.ct_commodity IN (%s)", placeholders(argIndex, len(f.Commodities)))
		args = appendStrings(args, f.Commodities)
		argIndex += len(f.Commodities)
	}
	if len(f.Brands) > 0 {
		whereClause += fmt.Sprintf(" AND COALESCE(c.brand_name, 'UNKNOWN') IN (%s)", placeholders(argIndex, len(f.Brands)))
		args = appendStrings(args, f.Brands)
		argIndex += len(f.Brands)
	}
	if len(f.ViolationGroups) > 0 {
		whereClause += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM cola_images.vw_cola_violations_list v
			WHERE v.cola_id = c.cola_id
			AND v.violation_group IN (%s)
		)`, placeholders(argIndex, len(f.ViolationGroups)))
		args = appendStrings(args, f.ViolationGroups)
		argIndex += len(f.ViolationGroups)
	}
	if f.StartDate != "" && f.EndDate != "" {
		whereClause += fmt.Sprintf(" AND c.completed_date BETWEEN $%d AND $%d", argIndex, argIndex+1)
		args = append(args, f.StartDate, f.EndDate)
		argIndex += 2
	}

	if f.Search != "" {
		term := "%" + strings.ToLower(f.Search) + "%"
		whereClause += " AND (" + searchFieldPredicates(argIndex) + ")"
		for i := 0; i < searchFieldCount; i++ {
			args = append(args, term)
		}
		argIndex += searchFieldCount
	}
	if f.Exclude != "" {
		term := "%" + strings.ToLower(f.Exclude) + "%"
		whereClause += " AND NOT (" + searchFieldPredicates(argIndex) + ")"
		for i := 0; i < searchFieldCount; i++ {
			args = append(args, term)
		}
		argIndex += searchFieldCount
	}

	return whereClause, args
}

// searchFieldPredicates renders the OR-block of case-insensitive substring
// matches used by both the search and exclude terms. All placeholders bind
// the same LIKE pattern; matching is boolean with no relevance ranking.
func searchFieldPredicates(argIndex int) string {
	conditions := []string{
		fmt.Sprintf("LOWER(CAST(c.cola_id AS VARCHAR)) LIKE $%d", argIndex),
		fmt.Sprintf("LOWER(COALESCE(c.brand_name, '')) LIKE $%d", argIndex+1),
		fmt.Sprintf("LOWER(COALESCE(c.fanciful_name, '')) LIKE $%d", argIndex+2),
		fmt.Sprintf("LOWER(COALESCE(c.permit_num, '')) LIKE $%d", argIndex+3),
		fmt.Sprintf("LOWER(COALESCE(c.serial_num, '')) LIKE $%d", argIndex+4),
		fmt.Sprintf(`EXISTS (
			SELECT 1 FROM cola_images.image_analysis_items iai
			WHERE iai.cola_id = c.cola_id
			AND LOWER(COALESCE(iai.text, '')) LIKE $%d
		)`, argIndex+5),
		fmt.Sprintf(`EXISTS (
			SELECT 1 FROM cola_images.cola_analysis ca
			WHERE ca.cola_id = c.cola_id
			AND (
				LOWER(CAST(ca.response AS VARCHAR)) LIKE $%d
				OR LOWER(CAST(ca.metadata AS VARCHAR)) LIKE $%d
			)
		)`, argIndex+6, argIndex+7),
	}
	return strings.Join(conditions, " OR ")
}

func placeholders(start, count int) string {
	parts := make([]string, count)
	for i := 0; i < count; i++ {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ",")
}

func appendStrings(args []any, values []string) []any {
	for _, value := range values {
		args = append(args, value)
	}
	return args
}
