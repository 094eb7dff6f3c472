// Package query translates caller-supplied filter parameters into
// MongoDB queries with sorting and pagination. It is shared by the
// place, festival, and review collections.
package query

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// DefaultLimit is the page size applied when the caller omits one.
	DefaultLimit = 20
	// DefaultPage is the 1-indexed page applied when the caller omits one.
	DefaultPage = 1
)

// Defaults carries the per-resource sort defaults: places and reviews
// list newest first, festivals list by start date ascending.
type Defaults struct {
	Sort  string
	Order string // "asc" or "desc"
}

// PlaceDefaults sorts places newest first.
var PlaceDefaults = Defaults{Sort: "createdAt", Order: "desc"}

// FestivalDefaults sorts festivals by start date, soonest first.
var FestivalDefaults = Defaults{Sort: "date.start", Order: "asc"}

// ReviewDefaults sorts reviews newest first.
var ReviewDefaults = Defaults{Sort: "createdAt", Order: "desc"}

// BadParamError reports a query-string parameter that failed to parse.
// Handlers map it to a 400.
type BadParamError struct {
	Param string
	Value string
}

func (e *BadParamError) Error() string {
	return fmt.Sprintf("invalid value %q for parameter %q", e.Value, e.Param)
}

// ListParams is the parsed, validated set of list-endpoint parameters.
type ListParams struct {
	Category string
	District string
	Search   string
	Featured bool
	Upcoming bool

	// Review-specific filters; ignored by the catalog collections.
	Place    string
	Festival string
	User     string
	Rating   int

	Limit int
	Page  int
	Sort  string
	Order string
}

// Parse reads list parameters from a query string. Non-numeric or
// non-positive limit/page/rating values are rejected rather than
// coerced, so a bad value can never turn into a NaN-style skip.
func Parse(values url.Values, d Defaults) (ListParams, error) {
	p := ListParams{
		Category: values.Get("category"),
		District: values.Get("district"),
		Search:   values.Get("search"),
		Featured: values.Get("featured") == "true",
		Upcoming: values.Get("upcoming") == "true",
		Place:    values.Get("place"),
		Festival: values.Get("festival"),
		User:     values.Get("user"),
		Limit:    DefaultLimit,
		Page:     DefaultPage,
		Sort:     d.Sort,
		Order:    d.Order,
	}

	var err error
	if p.Limit, err = parsePositiveInt(values, "limit", DefaultLimit); err != nil {
		return ListParams{}, err
	}
	if p.Page, err = parsePositiveInt(values, "page", DefaultPage); err != nil {
		return ListParams{}, err
	}
	if raw := values.Get("rating"); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil || n < 1 || n > 5 {
			return ListParams{}, &BadParamError{Param: "rating", Value: raw}
		}
		p.Rating = n
	}
	if raw := values.Get("sort"); raw != "" {
		p.Sort = raw
	}
	if raw := values.Get("order"); raw != "" {
		if raw != "asc" && raw != "desc" {
			return ListParams{}, &BadParamError{Param: "order", Value: raw}
		}
		p.Order = raw
	}
	return p, nil
}

func parsePositiveInt(values url.Values, name string, def int) (int, error) {
	raw := values.Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, &BadParamError{Param: name, Value: raw}
	}
	return n, nil
}

// CatalogFilter builds the store filter for places and festivals. The
// isActive clause is always present and cannot be overridden by the
// caller. Upcoming filtering compares date.start against now.
func (p ListParams) CatalogFilter(now time.Time) bson.M {
	filter := bson.M{"isActive": true}
	if p.Category != "" {
		filter["category"] = p.Category
	}
	if p.District != "" {
		filter["location.district"] = p.District
	}
	if p.Featured {
		filter["featured"] = true
	}
	if p.Upcoming {
		filter["date.start"] = bson.M{"$gte": now}
	}
	if p.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(p.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
			bson.M{"location.district": re},
		}
	}
	return filter
}

// ReviewFilter builds the store filter for the review collection.
// Malformed target ids produce an impossible filter rather than an
// error, matching a lookup of a nonexistent id.
func (p ListParams) ReviewFilter() bson.M {
	filter := bson.M{"isActive": true}
	if p.Place != "" {
		filter["place"] = objectIDOrNil(p.Place)
	}
	if p.Festival != "" {
		filter["festival"] = objectIDOrNil(p.Festival)
	}
	if p.User != "" {
		filter["user"] = objectIDOrNil(p.User)
	}
	if p.Rating != 0 {
		filter["rating"] = p.Rating
	}
	return filter
}

func objectIDOrNil(hex string) interface{} {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID
	}
	return id
}

// FindOptions returns the sort/skip/limit options for the current page.
func (p ListParams) FindOptions() *options.FindOptions {
	order := 1
	if p.Order == "desc" {
		order = -1
	}
	return options.Find().
		SetSort(bson.D{{Key: p.Sort, Value: order}}).
		SetSkip(int64(p.Page-1) * int64(p.Limit)).
		SetLimit(int64(p.Limit))
}

// Pagination describes one page of a result set. Current echoes the
// requested page without clamping; a page past the end simply carries
// no items.
type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
}

// NewPagination derives the pagination envelope from the requested
// params and the total count of matching records.
func NewPagination(p ListParams, total int64) Pagination {
	return Pagination{
		Current: p.Page,
		Pages:   int(math.Ceil(float64(total) / float64(p.Limit))),
		Total:   total,
		Limit:   p.Limit,
	}
}

// Page is one page of results plus its pagination envelope.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}
