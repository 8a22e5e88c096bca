package main

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseColaIDList(t *testing.T) {
	tests := []struct {
		name    string
		search  string
		wantIDs []string
		wantOK  bool
	}{
		{
			name:    "Single ID",
			search:  "12345678901234",
			wantIDs: []string{"12345678901234"},
			wantOK:  true,
		},
		{
			name:    "Multiple IDs with whitespace",
			search:  "12345678901234, 98765432109876 ,11111111111111",
			wantIDs: []string{"12345678901234", "98765432109876", "11111111111111"},
			wantOK:  true,
		},
		{
			name:   "One bad token rejects the list",
			search: "12345678901234,notanid",
			wantOK: false,
		},
		{
			name:   "Thirteen digits",
			search: "1234567890123",
			wantOK: false,
		},
		{
			name:   "Fifteen digits",
			search: "123456789012345",
			wantOK: false,
		},
		{
			name:   "Digits with letter",
			search: "1234567890123a",
			wantOK: false,
		},
		{
			name:   "Empty",
			search: "",
			wantOK: false,
		},
		{
			name:   "Plain text",
			search: "whiskey",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, ok := parseColaIDList(tt.search)
			if ok != tt.wantOK {
				t.Fatalf("ok mismatch: got %v want %v", ok, tt.wantOK)
			}
			if tt.wantOK && !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Fatalf("ids mismatch: got %v want %v", ids, tt.wantIDs)
			}
		})
	}
}

func TestBuildColaFilters(t *testing.T) {
	tests := []struct {
		name      string
		filters   ColaFilters
		wantParts []string
		wantArgs  []any
	}{
		{
			name:      "No filters",
			filters:   ColaFilters{},
			wantParts: []string{},
			wantArgs:  []any{},
		},
		{
			name: "Commodity and date range",
			filters: ColaFilters{
				Commodities: []string{"wine"},
				StartDate:   "2024-01-01",
				EndDate:     "2024-01-31",
			},
			wantParts: []string{
				"c.ct_commodity IN ($1)",
				"c.completed_date BETWEEN $2 AND $3",
			},
			wantArgs: []any{"wine", "2024-01-01", "2024-01-31"},
		},
		{
			name: "Categorical filters coalesce to UNKNOWN",
			filters: ColaFilters{
				Origins:    []string{"France", "UNKNOWN"},
				ClassTypes: []string{"TABLE RED WINE"},
				Brands:     []string{"OLD TOM"},
			},
			wantParts: []string{
				"COALESCE(c.origin, 'UNKNOWN') IN ($1,$2)",
				"COALESCE(c.class_type, 'UNKNOWN') IN ($3)",
				"COALESCE(c.brand_name, 'UNKNOWN') IN ($4)",
			},
			wantArgs: []any{"France", "UNKNOWN", "TABLE RED WINE", "OLD TOM"},
		},
		{
			name: "Violation group uses EXISTS",
			filters: ColaFilters{
				ViolationGroups: []string{"labeling", "health"},
			},
			wantParts: []string{
				"EXISTS (",
				"cola_images.vw_cola_violations_list v",
				"v.violation_group IN ($1,$2)",
			},
			wantArgs: []any{"labeling", "health"},
		},
		{
			name: "Search term binds eight lowered patterns",
			filters: ColaFilters{
				Search: "Stout",
			},
			wantParts: []string{
				"LOWER(CAST(c.cola_id AS VARCHAR)) LIKE $1",
				"LOWER(COALESCE(c.brand_name, '')) LIKE $2",
				"LOWER(COALESCE(c.fanciful_name, '')) LIKE $3",
				"LOWER(COALESCE(c.permit_num, '')) LIKE $4",
				"LOWER(COALESCE(c.serial_num, '')) LIKE $5",
				"LOWER(COALESCE(iai.text, '')) LIKE $6",
				"LOWER(CAST(ca.response AS VARCHAR)) LIKE $7",
				"LOWER(CAST(ca.metadata AS VARCHAR)) LIKE $8",
			},
			wantArgs: []any{
				"%stout%", "%stout%", "%stout%", "%stout%",
				"%stout%", "%stout%", "%stout%", "%stout%",
			},
		},
		{
			name: "Exclude term is negated",
			filters: ColaFilters{
				Exclude: "cider",
			},
			wantParts: []string{
				"AND NOT (",
				"LOWER(CAST(c.cola_id AS VARCHAR)) LIKE $1",
			},
			wantArgs: []any{
				"%cider%", "%cider%", "%cider%", "%cider%",
				"%cider%", "%cider%", "%cider%", "%cider%",
			},
		},
		{
			name: "ID list overrides every other filter",
			filters: ColaFilters{
				Search:          "12345678901234,98765432109876",
				Exclude:         "cider",
				StartDate:       "2024-01-01",
				EndDate:         "2024-01-31",
				Origins:         []string{"France"},
				ClassTypes:      []string{"ALE"},
				Brands:          []string{"OLD TOM"},
				Commodities:     []string{"beer"},
				ViolationGroups: []string{"labeling"},
			},
			wantParts: []string{
				"c.cola_id IN ($1,$2)",
			},
			wantArgs: []any{"12345678901234", "98765432109876"},
		},
		{
			name: "Non-ID search keeps normal filtering",
			filters: ColaFilters{
				Search:      "12345678901234,stout",
				Commodities: []string{"beer"},
			},
			wantParts: []string{
				"c.ct_commodity IN ($1)",
				"LOWER(CAST(c.cola_id AS VARCHAR)) LIKE $2",
			},
			wantArgs: []any{
				"beer",
				"%12345678901234,stout%", "%12345678901234,stout%", "%12345678901234,stout%",
				"%12345678901234,stout%", "%12345678901234,stout%", "%12345678901234,stout%",
				"%12345678901234,stout%", "%12345678901234,stout%",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			whereClause, args := buildColaFilters(tt.filters)
			for _, part := range tt.wantParts {
				if !strings.Contains(whereClause, part) {
					t.Fatalf("where clause missing %q in %q", part, whereClause)
				}
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("args length mismatch: got %d want %d", len(args), len(tt.wantArgs))
			}
			for i := range tt.wantArgs {
				if args[i] != tt.wantArgs[i] {
					t.Fatalf("arg %d mismatch: got %v want %v", i, args[i], tt.wantArgs[i])
				}
			}
		})
	}
}

func TestBuildColaFiltersIDListIgnoresBadToken(t *testing.T) {
	whereClause, _ := buildColaFilters(ColaFilters{Search: "12345678901234x"})
	if strings.Contains(whereClause, "c.cola_id IN (") {
		t.Fatalf("fast path must not trigger for non-14-digit token, got %q", whereClause)
	}
	if !strings.Contains(whereClause, "LIKE $1") {
		t.Fatalf("expected substring search predicate, got %q", whereClause)
	}
}

func TestBuildColaFiltersIdempotent(t *testing.T) {
	filters := ColaFilters{
		Search:          "stout",
		Exclude:         "cider",
		StartDate:       "2024-01-01",
		EndDate:         "2024-06-30",
		Origins:         []string{"France", "Italy"},
		ClassTypes:      []string{"ALE"},
		Brands:          []string{"OLD TOM"},
		Commodities:     []string{"beer", "wine"},
		ViolationGroups: []string{"labeling"},
	}

	firstSQL, firstArgs := buildColaFilters(filters)
	secondSQL, secondArgs := buildColaFilters(filters)

	if firstSQL != secondSQL {
		t.Fatalf("predicate not byte-identical across runs:\n%q\n%q", firstSQL, secondSQL)
	}
	if !reflect.DeepEqual(firstArgs, secondArgs) {
		t.Fatalf("args differ across runs: %v vs %v", firstArgs, secondArgs)
	}
}
