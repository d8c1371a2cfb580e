package pagination

import (
	"errors"
	"strconv"
)

var (
	ErrInvalidPage  = errors.New("page must be a positive integer")
	ErrInvalidLimit = errors.New("limit must be a non-negative integer")
)

// Params describes a 1-based page request. Limit 0 means "return all
// matching rows in a single page".
type Params struct {
	Page  int
	Limit int
}

// Parse validates the raw query values. Empty page defaults to 1, empty
// limit to unbounded. Non-numeric values, page < 1 and limit < 0 are
// rejected rather than clamped.
func Parse(pageStr, limitStr string) (Params, error) {
	p := Params{Page: 1}

	if pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return Params{}, ErrInvalidPage
		}
		p.Page = page
	}

	if limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			return Params{}, ErrInvalidLimit
		}
		p.Limit = limit
	}

	return p, nil
}

// Bounded reports whether a page size was requested.
func (p Params) Bounded() bool {
	return p.Limit > 0
}

// Offset is (page-1)*limit for bounded requests and 0 otherwise.
func (p Params) Offset() int {
	if !p.Bounded() {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Envelope is the pagination metadata returned alongside a page of results.
type Envelope struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// NewEnvelope computes the envelope for a result set of total matching rows.
// Without a limit the whole set is one page: pageSize equals total and
// totalPages is 1.
func NewEnvelope(p Params, total int) Envelope {
	if !p.Bounded() {
		return Envelope{
			Total:      total,
			Page:       p.Page,
			PageSize:   total,
			TotalPages: 1,
		}
	}

	totalPages := (total + p.Limit - 1) / p.Limit
	if totalPages < 1 {
		totalPages = 1
	}

	return Envelope{
		Total:      total,
		Page:       p.Page,
		PageSize:   p.Limit,
		TotalPages: totalPages,
	}
}
