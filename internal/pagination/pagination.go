package pagination

import "strconv"

// Params describes a bounded page of a collection read. Page is 1-based.
type Params struct {
	Page  int
	Limit int
}

// FromQuery parses page/limit query strings. Non-numeric, missing or
// non-positive values fall back to page 1 and the route's default limit
// rather than erroring.
func FromQuery(pageStr, limitStr string, defaultLimit int) Params {
	p := Params{Page: 1, Limit: defaultLimit}
	if n, err := strconv.Atoi(pageStr); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
		p.Limit = n
	}
	return p
}

// Skip returns the number of records to skip before the requested page.
func (p Params) Skip() int {
	return (p.Page - 1) * p.Limit
}

// Envelope is the response shape shared by every paginated list endpoint.
type Envelope struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	TotalPages int         `json:"totalPages"`
}

// NewEnvelope wraps a page of data with its metadata.
// TotalPages is ceil(total/limit).
func NewEnvelope(data interface{}, total int64, p Params) Envelope {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Envelope{
		Data:       data,
		Total:      total,
		Page:       p.Page,
		TotalPages: totalPages,
	}
}
