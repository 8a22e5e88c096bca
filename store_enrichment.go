package main

import (
	"context"
	"encoding/json"
	"fmt"
)

// storeFetchColaImages fetches label images plus their analysis items for
// a batch of COLA IDs in a single query, one JSON-aggregated row per ID.
func (a *App) storeFetchColaImages(ctx context.Context, colaIDs []string) (map[string][]ColaImage, error) {
	images := make(map[string][]ColaImage)
	if len(colaIDs) == 0 {
		return images, nil
	}

	query := fmt.Sprintf(`
		SELECT
			ci.cola_id,
			json_agg(
				json_build_object(
					'public_url', ci.public_url,
					'img_type', ci.img_type,
					'file_name', ci.file_name,
					'dimensions_txt', ci.dimensions_txt,
					'analysis_items', COALESCE(
						(
							SELECT json_agg(json_build_object(
								'analysis_item_type', iai.analysis_item_type,
								'text', iai.text,
								'model_confidence', iai.model_confidence,
								'bounding_box', iai.bounding_box
							))
							FROM cola_images.image_analysis_items iai
							WHERE iai.cola_id = ci.cola_id AND iai.file_name = ci.file_name
						),
						'[]'::json
					)
				)
			) AS images_json
		FROM cola_images.vw_cola_images ci
		WHERE ci.cola_id IN (%s)
		AND ci.public_url IS NOT NULL
		GROUP BY ci.cola_id
	`, placeholders(1, len(colaIDs)))

	rows, err := a.db.QueryContext(ctx, query, appendStrings(nil, colaIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var colaID string
		var raw []byte
		if err := rows.Scan(&colaID, &raw); err != nil {
			return nil, err
		}
		parsed, err := parseImageAggregate(raw)
		if err != nil {
			// a malformed aggregate degrades that record to an empty list
			a.log.Warn("malformed image aggregate", "cola_id", colaID, "err", err)
		}
		images[colaID] = parsed
	}
	return images, rows.Err()
}

// storeFetchColaViolations fetches review warnings for a batch of COLA IDs
// in a single JSON-aggregated query.
func (a *App) storeFetchColaViolations(ctx context.Context, colaIDs []string) (map[string][]Violation, error) {
	violations := make(map[string][]Violation)
	if len(colaIDs) == 0 {
		return violations, nil
	}

	query := fmt.Sprintf(`
		SELECT
			cola_id,
			json_agg(
				json_build_object(
					'violation_comment', violation_comment,
					'violation_type', violation_type,
					'violation_group', violation_group,
					'violation_subgroup', violation_subgroup,
					'cfr_ref', cfr_ref
				)
			) AS violations_json
		FROM cola_images.vw_cola_violations_list
		WHERE cola_id IN (%s)
		GROUP BY cola_id
	`, placeholders(1, len(colaIDs)))

	rows, err := a.db.QueryContext(ctx, query, appendStrings(nil, colaIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var colaID string
		var raw []byte
		if err := rows.Scan(&colaID, &raw); err != nil {
			return nil, err
		}
		parsed, err := parseViolationAggregate(raw)
		if err != nil {
			a.log.Warn("malformed violation aggregate", "cola_id", colaID, "err", err)
		}
		violations[colaID] = parsed
	}
	return violations, rows.Err()
}

// parseImageAggregate decodes one json_agg row of images. Malformed JSON
// returns an empty list alongside the error so the record degrades instead
// of failing the whole batch.
func parseImageAggregate(raw []byte) ([]ColaImage, error) {
	var parsed []ColaImage
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return []ColaImage{}, err
	}
	if parsed == nil {
		parsed = []ColaImage{}
	}
	return parsed, nil
}

// parseViolationAggregate decodes one json_agg row of violations with the
// same degrade-to-empty behavior as parseImageAggregate.
func parseViolationAggregate(raw []byte) ([]Violation, error) {
	var parsed []Violation
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return []Violation{}, err
	}
	if parsed == nil {
		parsed = []Violation{}
	}
	return parsed, nil
}

// attachRelated merges the batched auxiliary results onto each record by
// COLA ID. An ID absent from a batch gets an empty list, never a nil one.
func attachRelated(colas []Cola, images map[string][]ColaImage, violations map[string][]Violation) {
	for i := range colas {
		imgs, ok := images[colas[i].ColaID]
		if !ok || imgs == nil {
			imgs = []ColaImage{}
		}
		colas[i].Images = imgs

		viols, ok := violations[colas[i].ColaID]
		if !ok || viols == nil {
			viols = []Violation{}
		}
		colas[i].Violations = viols
	}
}
