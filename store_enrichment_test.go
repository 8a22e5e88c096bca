package main

import "testing"

func TestParseImageAggregate(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantLen   int
		wantError bool
	}{
		{
			name:    "Valid aggregate",
			raw:     `[{"public_url":"https://example.com/a.jpg","img_type":"front","file_name":"a.jpg","dimensions_txt":"800x600","analysis_items":[]}]`,
			wantLen: 1,
		},
		{
			name:    "Empty array",
			raw:     `[]`,
			wantLen: 0,
		},
		{
			name:    "JSON null becomes empty list",
			raw:     `null`,
			wantLen: 0,
		},
		{
			name:      "Corrupt JSON degrades to empty list",
			raw:       `[{"public_url":`,
			wantLen:   0,
			wantError: true,
		},
		{
			name:      "Wrong shape degrades to empty list",
			raw:       `{"not":"a list"}`,
			wantLen:   0,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := parseImageAggregate([]byte(tt.raw))
			if (err != nil) != tt.wantError {
				t.Fatalf("error mismatch: %v", err)
			}
			if parsed == nil {
				t.Fatal("parsed list must never be nil")
			}
			if len(parsed) != tt.wantLen {
				t.Fatalf("expected %d images, got %d", tt.wantLen, len(parsed))
			}
		})
	}
}

func TestParseViolationAggregate(t *testing.T) {
	parsed, err := parseViolationAggregate([]byte(`[{"violation_comment":"type size too small","violation_group":"labeling"}]`))
	if err != nil {
		t.Fatalf("valid aggregate must parse: %v", err)
	}
	if len(parsed) != 1 || parsed[0].Group != "labeling" {
		t.Fatalf("unexpected violations: %+v", parsed)
	}

	parsed, err = parseViolationAggregate([]byte(`not json`))
	if err == nil {
		t.Fatal("corrupt aggregate must report an error")
	}
	if parsed == nil || len(parsed) != 0 {
		t.Fatalf("corrupt aggregate must degrade to an empty list, got %+v", parsed)
	}
}

func TestAttachRelatedMergesByColaID(t *testing.T) {
	colas := []Cola{
		{ColaID: "11111111111111"},
		{ColaID: "22222222222222"},
	}
	url := "https://example.com/label.jpg"
	images := map[string][]ColaImage{
		"11111111111111": {{PublicURL: &url, FileName: "label.jpg"}},
	}
	violations := map[string][]Violation{
		"11111111111111": {{Comment: "missing warning", Group: "labeling"}},
	}

	attachRelated(colas, images, violations)

	if len(colas[0].Images) != 1 || colas[0].Images[0].FileName != "label.jpg" {
		t.Fatalf("images not attached to first record: %+v", colas[0].Images)
	}
	if len(colas[0].Violations) != 1 || colas[0].Violations[0].Group != "labeling" {
		t.Fatalf("violations not attached to first record: %+v", colas[0].Violations)
	}
}

func TestAttachRelatedAbsentIDGetsEmptyLists(t *testing.T) {
	colas := []Cola{{ColaID: "33333333333333"}}

	attachRelated(colas, map[string][]ColaImage{}, map[string][]Violation{})

	if colas[0].Images == nil {
		t.Fatal("images must be an empty list, not nil")
	}
	if len(colas[0].Images) != 0 {
		t.Fatalf("expected no images, got %d", len(colas[0].Images))
	}
	if colas[0].Violations == nil {
		t.Fatal("violations must be an empty list, not nil")
	}
	if len(colas[0].Violations) != 0 {
		t.Fatalf("expected no violations, got %d", len(colas[0].Violations))
	}
}

func TestAttachRelatedNilBatchValueBecomesEmpty(t *testing.T) {
	colas := []Cola{{ColaID: "44444444444444"}}
	images := map[string][]ColaImage{"44444444444444": nil}
	violations := map[string][]Violation{"44444444444444": nil}

	attachRelated(colas, images, violations)

	if colas[0].Images == nil || colas[0].Violations == nil {
		t.Fatal("nil batch values must degrade to empty lists")
	}
}
