package activecampaign

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/activecampaign/internal/constants"
)

// FlexInt decodes integers the API sends either as numbers or as numeric
// strings ("total": "42").
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0

		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding string integer: %w", err)
		}

		if s == "" {
			*f = 0

			return nil
		}

		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("decoding string integer %q: %w", s, err)
		}

		*f = FlexInt(n)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding integer: %w", err)
	}

	i, err := n.Int64()
	if err != nil {
		return fmt.Errorf("decoding integer %s: %w", n, err)
	}

	*f = FlexInt(i)

	return nil
}

// Int returns the value as an int.
func (f FlexInt) Int() int {
	return int(f)
}

// Links holds the related-resource URLs attached to most records.
type Links map[string]string

// Meta is the metadata block of list responses.
type Meta struct {
	Total FlexInt `json:"total" yaml:"total"`
}

// Page is one decoded page of a list endpoint.
type Page[T any] struct {
	Items []T
	Meta  Meta
}

// ListParams holds the query of a list call. Filters are passed verbatim,
// e.g. Filters.Set("email", "a@b.com") or Filters.Set("filters[name]", "x").
type ListParams struct {
	Limit   int
	Offset  int
	Filters url.Values
}

// NewListParams creates list parameters with the API's default limit.
func NewListParams() *ListParams {
	return &ListParams{
		Limit:   constants.DefaultListLimit,
		Filters: url.Values{},
	}
}

// WithLimit sets the page size.
func (p *ListParams) WithLimit(limit int) *ListParams {
	p.Limit = limit

	return p
}

// WithOffset sets the offset of the first record.
func (p *ListParams) WithOffset(offset int) *ListParams {
	p.Offset = offset

	return p
}

// WithFilter adds a query parameter.
func (p *ListParams) WithFilter(key, value string) *ListParams {
	if p.Filters == nil {
		p.Filters = url.Values{}
	}

	p.Filters.Add(key, value)

	return p
}

// ToValues converts the parameters to a query string. Limit and offset are
// emitted together when a limit is set.
func (p *ListParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	for key, vals := range p.Filters {
		for _, v := range vals {
			values.Add(key, v)
		}
	}

	if p.Limit > 0 || p.Offset > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
		values.Set("offset", strconv.Itoa(p.Offset))
	}

	return values
}

// Clone returns a deep copy.
func (p *ListParams) Clone() *ListParams {
	if p == nil {
		return NewListParams()
	}

	clone := &ListParams{
		Limit:   p.Limit,
		Offset:  p.Offset,
		Filters: url.Values{},
	}

	for key, vals := range p.Filters {
		clone.Filters[key] = append([]string(nil), vals...)
	}

	return clone
}

// PageOptions tunes ListAll-style calls that walk every page.
type PageOptions struct {
	// PageSize is the limit of each request. Zero uses 100.
	PageSize int
	// Debug logs progress after each page.
	Debug bool
}
