package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// parseColaFiltersFromQuery mirrors the URL query parameters into a filter
// struct. Absent parameters mean "no filter"; multi-valued parameters are
// comma-separated.
func parseColaFiltersFromQuery(c *gin.Context) ColaFilters {
	return ColaFilters{
		Search:          strings.TrimSpace(c.Query("search")),
		Exclude:         strings.TrimSpace(c.Query("exclude")),
		StartDate:       parseDateParam(c.Query("start_date")),
		EndDate:         parseDateParam(c.Query("end_date")),
		Origins:         parseListParam(c.Query("origin")),
		ClassTypes:      parseListParam(c.Query("class_type")),
		Brands:          parseListParam(c.Query("brand")),
		Commodities:     parseListParam(c.Query("commodity")),
		ViolationGroups: parseListParam(c.Query("violation_group")),
	}
}

func parseListParam(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	values := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

// parseDateParam accepts only YYYY-MM-DD; anything else counts as absent.
func parseDateParam(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if _, err := time.Parse("2006-01-02", trimmed); err != nil {
		return ""
	}
	return trimmed
}

func (a *App) searchColasHandler(c *gin.Context) {
	filters := parseColaFiltersFromQuery(c)

	result, err := a.runColaSearch(c.Request.Context(), filters)
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (a *App) filterOptionsHandler(c *gin.Context) {
	options, err := a.loadFilterOptions(c.Request.Context())
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

// exportColasHandler streams the full filtered set (no shuffle, no display
// cap) as CSV or a PDF summary.
func (a *App) exportColasHandler(c *gin.Context) {
	format := strings.TrimSpace(c.Query("format"))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "pdf" {
		writeAPIError(c, &apiError{Status: http.StatusBadRequest, Code: "invalid_format", Message: "Format must be csv or pdf"})
		return
	}

	filters := parseColaFiltersFromQuery(c)
	colas, err := a.loadFilteredColas(c.Request.Context(), filters)
	if err != nil {
		writeAPIError(c, err)
		return
	}

	stamp := time.Now().UTC().Format("20060102")
	switch format {
	case "pdf":
		payload, err := buildColaPDF(colas, buildResultsMessage(filters, len(colas), false))
		if err != nil {
			writeAPIError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=cola_export_%s.pdf", stamp))
		c.Data(http.StatusOK, "application/pdf", payload)
	default:
		payload, err := buildColaCSV(colas)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=cola_export_%s.csv", stamp))
		c.Data(http.StatusOK, "text/csv", []byte(payload))
	}
}
