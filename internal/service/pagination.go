package service

import "fmt"

const (
	DefaultSkip  = 0
	DefaultLimit = 10
	MinLimit     = 10
	MaxLimit     = 100
)

// Pagination is the raw ?skip=&limit= query. gin fills the defaults and rejects
// non-integers; NewPagination enforces the bounds.
type Pagination struct {
	Skip  int `form:"skip,default=0"`
	Limit int `form:"limit,default=10"`
}

// Page is a validated window. Limit never exceeds MaxLimit.
type Page struct {
	Skip  int
	Limit int
}

// NewPagination validates skip >= 0 and limit >= MinLimit, then caps limit at MaxLimit.
func NewPagination(skip, limit int) (Page, error) {
	verr := &ValidationError{}
	if skip < 0 {
		verr.add("ensure this value is greater than or equal to 0", "value_error.number.not_ge", "query", "skip")
	}
	if limit < MinLimit {
		verr.add(fmt.Sprintf("ensure this value is greater than or equal to %d", MinLimit), "value_error.number.not_ge", "query", "limit")
	}
	if err := verr.orNil(); err != nil {
		return Page{}, err
	}
	return Page{Skip: skip, Limit: min(limit, MaxLimit)}, nil
}

func (p Pagination) Page() (Page, error) {
	return NewPagination(p.Skip, p.Limit)
}
