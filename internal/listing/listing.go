// Package listing builds the query parameters every list page sends: the
// filter fields plus page-number pagination with a fixed page size.
package listing

import (
	"net/url"
	"strconv"
)

// PageSize is fixed for every list endpoint.
const PageSize = 20

// Filter is the local filter state of a list page. Empty fields are omitted
// from the query.
type Filter struct {
	Status    string `json:"status,omitempty" yaml:"status,omitempty"`
	Severity  string `json:"severity,omitempty" yaml:"severity,omitempty"`
	Cloud     string `json:"cloud,omitempty" yaml:"cloud,omitempty"`
	Framework string `json:"framework,omitempty" yaml:"framework,omitempty"`
	Search    string `json:"search,omitempty" yaml:"search,omitempty"`
	Tag       string `json:"tag,omitempty" yaml:"tag,omitempty"`
	Type      string `json:"type,omitempty" yaml:"type,omitempty"`
	Env       string `json:"env,omitempty" yaml:"env,omitempty"`
}

// Values encodes the non-empty filter fields.
func (f Filter) Values() url.Values {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("status", f.Status)
	set("severity", f.Severity)
	set("cloud", f.Cloud)
	set("framework", f.Framework)
	set("search", f.Search)
	set("tag", f.Tag)
	set("type", f.Type)
	set("env", f.Env)
	return v
}

// IsZero reports whether no filter field is set.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Query is a filter plus a page number.
type Query struct {
	Filter
	Page int
}

// NewQuery starts at page 1.
func NewQuery(f Filter) Query {
	return Query{Filter: f, Page: 1}
}

// Values encodes the filter, page and page_size.
func (q Query) Values() url.Values {
	v := q.Filter.Values()
	page := q.Page
	if page < 1 {
		page = 1
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("page_size", strconv.Itoa(PageSize))
	return v
}

// Pager is the page-number navigation state. Next is always available since
// list endpoints return no total count.
type Pager struct {
	Page int
}

// NewPager starts at page 1.
func NewPager() Pager {
	return Pager{Page: 1}
}

// PrevDisabled is true exactly on the first page.
func (p Pager) PrevDisabled() bool {
	return p.Page <= 1
}

// Next returns the pager for the following page.
func (p Pager) Next() Pager {
	if p.Page < 1 {
		return Pager{Page: 2}
	}
	return Pager{Page: p.Page + 1}
}

// Prev returns the pager for the previous page, floored at 1.
func (p Pager) Prev() Pager {
	if p.PrevDisabled() {
		return Pager{Page: 1}
	}
	return Pager{Page: p.Page - 1}
}
