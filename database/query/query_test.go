package query

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseDefaults(t *testing.T) {
	p, err := Parse(url.Values{}, PlaceDefaults)
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, "createdAt", p.Sort)
	assert.Equal(t, "desc", p.Order)

	p, err = Parse(url.Values{}, FestivalDefaults)
	require.NoError(t, err)
	assert.Equal(t, "date.start", p.Sort)
	assert.Equal(t, "asc", p.Order)
}

func TestParseRejectsBadPagination(t *testing.T) {
	cases := []struct {
		name   string
		values url.Values
	}{
		{"non-numeric limit", url.Values{"limit": {"abc"}}},
		{"zero limit", url.Values{"limit": {"0"}}},
		{"negative limit", url.Values{"limit": {"-5"}}},
		{"non-numeric page", url.Values{"page": {"two"}}},
		{"zero page", url.Values{"page": {"0"}}},
		{"float limit", url.Values{"limit": {"2.5"}}},
		{"rating out of range", url.Values{"rating": {"6"}}},
		{"rating non-numeric", url.Values{"rating": {"five"}}},
		{"bad order", url.Values{"order": {"sideways"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.values, PlaceDefaults)
			var badParam *BadParamError
			require.ErrorAs(t, err, &badParam)
		})
	}
}

func TestParseAcceptsValidValues(t *testing.T) {
	values := url.Values{
		"limit":    {"50"},
		"page":     {"3"},
		"rating":   {"4"},
		"category": {"temple"},
		"district": {"Warangal"},
		"featured": {"true"},
		"sort":     {"name"},
		"order":    {"asc"},
	}
	p, err := Parse(values, PlaceDefaults)
	require.NoError(t, err)
	assert.Equal(t, 50, p.Limit)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 4, p.Rating)
	assert.Equal(t, "temple", p.Category)
	assert.Equal(t, "Warangal", p.District)
	assert.True(t, p.Featured)
	assert.Equal(t, "name", p.Sort)
	assert.Equal(t, "asc", p.Order)
}

func TestParseFeaturedOnlyLiteralTrue(t *testing.T) {
	p, err := Parse(url.Values{"featured": {"1"}}, PlaceDefaults)
	require.NoError(t, err)
	assert.False(t, p.Featured)

	p, err = Parse(url.Values{"featured": {"false"}}, PlaceDefaults)
	require.NoError(t, err)
	assert.False(t, p.Featured)
}

func TestCatalogFilterAlwaysActive(t *testing.T) {
	p, err := Parse(url.Values{}, PlaceDefaults)
	require.NoError(t, err)
	filter := p.CatalogFilter(time.Now())
	assert.Equal(t, bson.M{"isActive": true}, filter)
}

func TestCatalogFilterShapes(t *testing.T) {
	now := time.Now()
	p, err := Parse(url.Values{
		"category": {"historical"},
		"district": {"Hyderabad"},
		"featured": {"true"},
		"upcoming": {"true"},
		"search":   {"fort (old)"},
	}, PlaceDefaults)
	require.NoError(t, err)

	filter := p.CatalogFilter(now)
	assert.Equal(t, "historical", filter["category"])
	assert.Equal(t, "Hyderabad", filter["location.district"])
	assert.Equal(t, true, filter["featured"])
	assert.Equal(t, bson.M{"$gte": now}, filter["date.start"])

	or, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 3)
	re := or[0].(bson.M)["name"].(primitive.Regex)
	assert.Equal(t, "i", re.Options)
	// Regex metacharacters in the search term are escaped.
	assert.Equal(t, `fort \(old\)`, re.Pattern)
}

func TestReviewFilterTargets(t *testing.T) {
	placeID := primitive.NewObjectID()
	p, err := Parse(url.Values{
		"place":  {placeID.Hex()},
		"rating": {"5"},
	}, ReviewDefaults)
	require.NoError(t, err)

	filter := p.ReviewFilter()
	assert.Equal(t, placeID, filter["place"])
	assert.Equal(t, 5, filter["rating"])
	assert.Equal(t, true, filter["isActive"])
}

func TestReviewFilterBadHexMatchesNothing(t *testing.T) {
	p, err := Parse(url.Values{"place": {"not-a-hex-id"}}, ReviewDefaults)
	require.NoError(t, err)
	filter := p.ReviewFilter()
	assert.Equal(t, primitive.NilObjectID, filter["place"])
}

func TestFindOptionsSkipAndSort(t *testing.T) {
	p, err := Parse(url.Values{"limit": {"10"}, "page": {"3"}}, PlaceDefaults)
	require.NoError(t, err)

	opts := p.FindOptions()
	assert.Equal(t, int64(20), *opts.Skip)
	assert.Equal(t, int64(10), *opts.Limit)
	sort := opts.Sort.(bson.D)
	require.Len(t, sort, 1)
	assert.Equal(t, "createdAt", sort[0].Key)
	assert.Equal(t, -1, sort[0].Value)
}

func TestNewPaginationCeil(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		pages int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{45, 10, 5},
	}
	for _, tc := range cases {
		p := ListParams{Limit: tc.limit, Page: 1}
		pg := NewPagination(p, tc.total)
		assert.Equal(t, tc.pages, pg.Pages, "total=%d limit=%d", tc.total, tc.limit)
		assert.Equal(t, tc.total, pg.Total)
	}
}

func TestPaginationCurrentNotClamped(t *testing.T) {
	p := ListParams{Limit: 20, Page: 99}
	pg := NewPagination(p, 5)
	assert.Equal(t, 99, pg.Current)
	assert.Equal(t, 1, pg.Pages)
}
