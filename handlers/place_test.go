package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telatour/database/query"
	"telatour/database/repository"
	"telatour/models"
	placeSvc "telatour/services/place"
)

type stubPlaceService struct {
	listParams query.ListParams
	nearbyArgs []float64
}

func (s *stubPlaceService) List(params query.ListParams) (*query.Page[models.Place], error) {
	s.listParams = params
	return &query.Page[models.Place]{
		Items:      []models.Place{},
		Pagination: query.NewPagination(params, 0),
	}, nil
}

func (s *stubPlaceService) Get(id string) (*placeSvc.Detail, error) {
	return nil, repository.ErrNotFound
}

func (s *stubPlaceService) Nearby(lat, lng, radiusKm float64, limit int) ([]models.NearbyPlace, error) {
	s.nearbyArgs = []float64{lat, lng, radiusKm, float64(limit)}
	return []models.NearbyPlace{}, nil
}

func (s *stubPlaceService) Create(place *models.Place) error {
	return place.Validate()
}

func (s *stubPlaceService) Update(id string, patch map[string]interface{}) (*models.Place, error) {
	return nil, repository.ErrNotFound
}

func (s *stubPlaceService) Delete(id string) error {
	return repository.ErrNotFound
}

func newPlaceRouter(stub *stubPlaceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPlaceHandler(stub)
	r.GET("/api/places", h.ListPlacesHandler)
	r.GET("/api/places/nearby", h.NearbyPlacesHandler)
	r.GET("/api/places/:id", h.GetPlaceHandler)
	r.POST("/api/places", h.CreatePlaceHandler)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListPlacesBadLimitIs400(t *testing.T) {
	r := newPlaceRouter(&stubPlaceService{})
	for _, target := range []string{
		"/api/places?limit=abc",
		"/api/places?limit=0",
		"/api/places?limit=-3",
		"/api/places?page=x",
		"/api/places?order=sideways",
	} {
		w := doRequest(t, r, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestListPlacesPassesParams(t *testing.T) {
	stub := &stubPlaceService{}
	r := newPlaceRouter(stub)
	w := doRequest(t, r, http.MethodGet, "/api/places?category=temple&limit=5&page=2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "temple", stub.listParams.Category)
	assert.Equal(t, 5, stub.listParams.Limit)
	assert.Equal(t, 2, stub.listParams.Page)

	var page query.Page[models.Place]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 2, page.Pagination.Current)
}

func TestNearbyRequiresCoordinates(t *testing.T) {
	r := newPlaceRouter(&stubPlaceService{})
	for _, target := range []string{
		"/api/places/nearby",
		"/api/places/nearby?lat=17.36",
		"/api/places/nearby?lng=78.47",
	} {
		w := doRequest(t, r, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestNearbyDefaultsRadiusAndLimit(t *testing.T) {
	stub := &stubPlaceService{}
	r := newPlaceRouter(stub)
	w := doRequest(t, r, http.MethodGet, "/api/places/nearby?lat=17.36&lng=78.47")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, stub.nearbyArgs, 4)
	assert.Equal(t, 17.36, stub.nearbyArgs[0])
	assert.Equal(t, 78.47, stub.nearbyArgs[1])
	assert.Equal(t, float64(defaultNearbyRadiusKm), stub.nearbyArgs[2])
	assert.Equal(t, float64(defaultNearbyLimit), stub.nearbyArgs[3])
}

func TestNearbyRejectsBadRadius(t *testing.T) {
	r := newPlaceRouter(&stubPlaceService{})
	w := doRequest(t, r, http.MethodGet, "/api/places/nearby?lat=17.36&lng=78.47&radius=-2")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPlaceNotFoundIs404(t *testing.T) {
	r := newPlaceRouter(&stubPlaceService{})
	w := doRequest(t, r, http.MethodGet, "/api/places/64faa0b2c9e77c0012345678")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
