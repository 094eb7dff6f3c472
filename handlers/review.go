package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"telatour/database/query"
	"telatour/middleware"
	"telatour/models"
	reviewSvc "telatour/services/review"
)

type ReviewHandler struct {
	Service reviewSvc.ReviewService
}

func NewReviewHandler(svc reviewSvc.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: svc}
}

// ListReviewsHandler handles GET /api/reviews.
func (h *ReviewHandler) ListReviewsHandler(c *gin.Context) {
	params, err := query.Parse(c.Request.URL.Query(), query.ReviewDefaults)
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

// GetReviewHandler handles GET /api/reviews/:id.
func (h *ReviewHandler) GetReviewHandler(c *gin.Context) {
	rev, err := h.Service.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rev)
}

// CreateReviewHandler handles POST /api/reviews (authenticated).
func (h *ReviewHandler) CreateReviewHandler(c *gin.Context) {
	var rev models.Review
	if err := c.ShouldBindJSON(&rev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	reviewer := contextString(c, middleware.CtxUserID)
	if err := h.Service.Create(&rev, reviewer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rev)
}

// CreatePublicReviewHandler handles POST /api/reviews/public.
func (h *ReviewHandler) CreatePublicReviewHandler(c *gin.Context) {
	var sub reviewSvc.PublicSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	rev, err := h.Service.CreatePublic(sub)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rev)
}

// UpdateReviewHandler handles PUT /api/reviews/:id (owner or admin).
func (h *ReviewHandler) UpdateReviewHandler(c *gin.Context) {
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	actorID := contextString(c, middleware.CtxUserID)
	actorRole := contextString(c, middleware.CtxRole)
	updated, err := h.Service.Update(c.Param("id"), actorID, actorRole, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteReviewHandler handles DELETE /api/reviews/:id (owner or admin, soft).
func (h *ReviewHandler) DeleteReviewHandler(c *gin.Context) {
	actorID := contextString(c, middleware.CtxUserID)
	actorRole := contextString(c, middleware.CtxRole)
	if err := h.Service.Delete(c.Param("id"), actorID, actorRole); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

// MarkHelpfulHandler handles POST /api/reviews/:id/helpful. Anonymous
// voters get a one-off identity, so repeat votes from them still count.
func (h *ReviewHandler) MarkHelpfulHandler(c *gin.Context) {
	voter := contextString(c, middleware.CtxUserID)
	if voter == "" {
		voter = uuid.New().String()
	}
	rev, err := h.Service.MarkHelpful(c.Param("id"), voter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rev)
}
