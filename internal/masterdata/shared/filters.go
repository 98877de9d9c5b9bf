// Package shared holds list filtering helpers common to master-data modules.
package shared

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListFilters represents standard list filters parsed from the query string.
type ListFilters struct {
	Page     int
	Limit    int
	Search   string
	Status   *shared.Status
	DateFrom *time.Time
	DateTo   *time.Time
	SortBy   string
	SortDir  string
}

// ParseListFilters reads the conventional filter parameters from a request.
func ParseListFilters(r *http.Request) ListFilters {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = shared.DefaultPage
	}
	limit, _ := strconv.Atoi(q.Get("per_page"))
	if limit < 1 {
		limit = shared.DefaultPerPage
	}
	if limit > shared.MaxPerPage {
		limit = shared.MaxPerPage
	}

	return ListFilters{
		Page:     page,
		Limit:    limit,
		Search:   q.Get("search"),
		Status:   shared.ParseStatus(q.Get("status")),
		DateFrom: parseDate(q.Get("date_from")),
		DateTo:   parseDate(q.Get("date_to")),
		SortBy:   q.Get("sort"),
		SortDir:  q.Get("dir"),
	}
}

// Offset returns the row offset implied by Page and Limit.
func (f ListFilters) Offset() int {
	offset := (f.Page - 1) * f.Limit
	if offset < 0 {
		return 0
	}
	return offset
}

func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}
