package main

import (
	"context"
	"database/sql"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// storeQueryColas runs the primary filtered select against the pre-joined
// analytical view. Results come back newest completion date first; display
// order is randomized later, in memory.
func (a *App) storeQueryColas(ctx context.Context, filters ColaFilters) ([]Cola, error) {
	whereClause, args := buildColaFilters(filters)
	query := `
		SELECT
			c.cola_id, c.brand_name, c.fanciful_name, c.origin, c.class_type,
			c.ct_commodity, c.ct_source, c.permit_num, c.serial_num, c.completed_date,
			c.image_count, c.cola_analysis_count, c.cola_analysis_with_violations_count,
			c.cola_details_url, c.cola_form_url, c.cola_internal_url
		FROM cola_images.vw_colas c
		WHERE 1=1` + whereClause + `
		ORDER BY c.completed_date DESC`

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	colas := make([]Cola, 0)
	for rows.Next() {
		cola, err := scanCola(rows)
		if err != nil {
			return nil, err
		}
		colas = append(colas, cola)
	}
	return colas, rows.Err()
}

func scanCola(scanner rowScanner) (Cola, error) {
	var cola Cola
	var brand, fanciful, origin, classType, commodity, source sql.NullString
	var permit, serial sql.NullString
	var completed sql.NullTime
	var imageCount, analysisCount, violationCount sql.NullInt64
	var detailsURL, formURL, internalURL sql.NullString

	err := scanner.Scan(
		&cola.ColaID, &brand, &fanciful, &origin, &classType,
		&commodity, &source, &permit, &serial, &completed,
		&imageCount, &analysisCount, &violationCount,
		&detailsURL, &formURL, &internalURL,
	)
	if err != nil {
		return Cola{}, err
	}

	if brand.Valid {
		cola.BrandName = &brand.String
	}
	if fanciful.Valid {
		cola.FancifulName = &fanciful.String
	}
	if origin.Valid {
		cola.Origin = &origin.String
	}
	if classType.Valid {
		cola.ClassType = &classType.String
	}
	cola.Commodity = "unknown"
	if commodity.Valid && commodity.String != "" {
		cola.Commodity = commodity.String
	}
	if source.Valid {
		cola.Source = &source.String
	}
	if permit.Valid {
		cola.PermitNum = &permit.String
	}
	if serial.Valid {
		cola.SerialNum = &serial.String
	}
	if completed.Valid {
		formatted := completed.Time.UTC().Format("2006-01-02")
		cola.CompletedDate = &formatted
	}
	cola.ImageCount = int(imageCount.Int64)
	cola.AnalysisCount = int(analysisCount.Int64)
	cola.ViolationCount = int(violationCount.Int64)
	if detailsURL.Valid {
		cola.DetailsURL = &detailsURL.String
	}
	if formURL.Valid {
		cola.FormURL = &formURL.String
	}
	if internalURL.Valid {
		cola.InternalURL = &internalURL.String
	}

	cola.Images = []ColaImage{}
	cola.Violations = []Violation{}
	return cola, nil
}
