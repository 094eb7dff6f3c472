package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"telatour/database/query"
	"telatour/models"
	festivalSvc "telatour/services/festival"
	"telatour/utils"
)

const defaultUpcomingLimit = 5

type FestivalHandler struct {
	Service festivalSvc.FestivalService
}

func NewFestivalHandler(svc festivalSvc.FestivalService) *FestivalHandler {
	return &FestivalHandler{Service: svc}
}

// ListFestivalsHandler handles GET /api/festivals.
func (h *FestivalHandler) ListFestivalsHandler(c *gin.Context) {
	params, err := query.Parse(c.Request.URL.Query(), query.FestivalDefaults)
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

// UpcomingFestivalsHandler handles GET /api/festivals/upcoming.
func (h *FestivalHandler) UpcomingFestivalsHandler(c *gin.Context) {
	limit := defaultUpcomingLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(c, &query.BadParamError{Param: "limit", Value: raw})
			return
		}
		limit = n
	}
	festivals, err := h.Service.Upcoming(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(festivals), "festivals": festivals})
}

// GetFestivalHandler handles GET /api/festivals/:id.
func (h *FestivalHandler) GetFestivalHandler(c *gin.Context) {
	festival, err := h.Service.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, festival)
}

// CreateFestivalHandler handles POST /api/festivals (admin).
func (h *FestivalHandler) CreateFestivalHandler(c *gin.Context) {
	var festival models.Festival
	if err := c.ShouldBindJSON(&festival); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.Service.Create(&festival); err != nil {
		respondError(c, err)
		return
	}
	utils.GetLogger().Info("festival created", zap.String("festivalID", festival.ID.Hex()))
	c.JSON(http.StatusCreated, festival)
}

// UpdateFestivalHandler handles PUT /api/festivals/:id (admin).
func (h *FestivalHandler) UpdateFestivalHandler(c *gin.Context) {
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

// DeleteFestivalHandler handles DELETE /api/festivals/:id (admin, soft).
func (h *FestivalHandler) DeleteFestivalHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Festival deleted"})
}
