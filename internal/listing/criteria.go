// Package listing turns raw query-string input into validated, sorted,
// filtered and paginated relational queries, and runs them with their total
// count and parent-existence checks.
package listing

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/HerbHall/newsroom/internal/apperr"
)

// Order is a sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Query parameter names.
const (
	ParamTopic  = "topic"
	ParamSortBy = "sort_by"
	ParamOrder  = "order"
	ParamLimit  = "limit"
	ParamPage   = "p"
)

// Pagination defaults and caps.
const (
	DefaultLimit = 10
	DefaultPage  = 1
	MaxLimit     = 1000
	// MaxPage keeps (Page-1)*Limit within int. Any page this far out is
	// past the end of every table, so clamping does not change the result.
	MaxPage = math.MaxInt / MaxLimit
)

// Criteria is the validated form of a listing request.
type Criteria struct {
	Topic  string // empty means no topic filter
	SortBy string // always a key of the Source's sort whitelist
	Order  Order
	Limit  int
	Page   int
}

// Offset is the number of rows skipped before the requested page.
func (c Criteria) Offset() int {
	return (c.Page - 1) * c.Limit
}

// Validate checks params against the whitelist and returns typed criteria.
// Every failure is a validation error with the "Invalid search query" message.
func Validate(params url.Values, sorts Whitelist) (Criteria, error) {
	c := Criteria{
		Topic:  params.Get(ParamTopic),
		SortBy: sorts.Default,
		Order:  Desc,
		Limit:  DefaultLimit,
		Page:   DefaultPage,
	}

	if params.Has(ParamSortBy) {
		v := params.Get(ParamSortBy)
		if !sorts.Allows(v) {
			return Criteria{}, invalid(ParamSortBy, v)
		}
		c.SortBy = v
	}

	if params.Has(ParamOrder) {
		switch v := Order(params.Get(ParamOrder)); v {
		case Asc, Desc:
			c.Order = v
		default:
			return Criteria{}, invalid(ParamOrder, string(v))
		}
	}

	var err error
	if c.Limit, err = positiveInt(params, ParamLimit, DefaultLimit); err != nil {
		return Criteria{}, err
	}
	if c.Limit > MaxLimit {
		c.Limit = MaxLimit
	}
	if c.Page, err = positiveInt(params, ParamPage, DefaultPage); err != nil {
		return Criteria{}, err
	}
	if c.Page > MaxPage {
		c.Page = MaxPage
	}

	return c, nil
}

func positiveInt(params url.Values, key string, def int) (int, error) {
	if !params.Has(key) {
		return def, nil
	}
	raw := params.Get(key)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, invalid(key, raw)
	}
	return n, nil
}

func invalid(key, value string) error {
	return apperr.Validation(apperr.MsgInvalidQuery).
		Wrap(fmt.Errorf("%s=%q is not allowed", key, value))
}
