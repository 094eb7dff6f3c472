package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"telatour/database/query"
	"telatour/models"
	placeSvc "telatour/services/place"
	"telatour/utils"
)

const (
	defaultNearbyRadiusKm = 50
	defaultNearbyLimit    = 10
)

type PlaceHandler struct {
	Service placeSvc.PlaceService
}

func NewPlaceHandler(svc placeSvc.PlaceService) *PlaceHandler {
	return &PlaceHandler{Service: svc}
}

// ListPlacesHandler handles GET /api/places.
func (h *PlaceHandler) ListPlacesHandler(c *gin.Context) {
	params, err := query.Parse(c.Request.URL.Query(), query.PlaceDefaults)
	if err != nil {
		respondError(c, err)
		return
	}
	page, err := h.Service.List(params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetPlaceHandler handles GET /api/places/:id.
func (h *PlaceHandler) GetPlaceHandler(c *gin.Context) {
	detail, err := h.Service.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// NearbyPlacesHandler handles GET /api/places/nearby.
func (h *PlaceHandler) NearbyPlacesHandler(c *gin.Context) {
	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr == "" || lngStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Latitude and longitude are required"})
		return
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		respondError(c, &query.BadParamError{Param: "lat", Value: latStr})
		return
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		respondError(c, &query.BadParamError{Param: "lng", Value: lngStr})
		return
	}

	radiusKm := float64(defaultNearbyRadiusKm)
	if raw := c.Query("radius"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil || radiusKm <= 0 {
			respondError(c, &query.BadParamError{Param: "radius", Value: raw})
			return
		}
	}
	limit := defaultNearbyLimit
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			respondError(c, &query.BadParamError{Param: "limit", Value: raw})
			return
		}
	}

	places, err := h.Service.Nearby(lat, lng, radiusKm, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(places), "places": places})
}

// CreatePlaceHandler handles POST /api/places (admin).
func (h *PlaceHandler) CreatePlaceHandler(c *gin.Context) {
	var place models.Place
	if err := c.ShouldBindJSON(&place); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.Service.Create(&place); err != nil {
		respondError(c, err)
		return
	}
	utils.GetLogger().Info("place created", zap.String("placeID", place.ID.Hex()))
	c.JSON(http.StatusCreated, place)
}

// UpdatePlaceHandler handles PUT /api/places/:id (admin).
func (h *PlaceHandler) UpdatePlaceHandler(c *gin.Context) {
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	updated, err := h.Service.Update(c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeletePlaceHandler handles DELETE /api/places/:id (admin, soft).
func (h *PlaceHandler) DeletePlaceHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Place deleted"})
}
