package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"telatour/handlers"
	"telatour/middleware"
	"telatour/utils"
)

// HandlerBundle groups the endpoint handlers and the auth dependencies
// route registration needs.
type HandlerBundle struct {
	Places    *handlers.PlaceHandler
	Festivals *handlers.FestivalHandler
	Reviews   *handlers.ReviewHandler
	Users     *handlers.UserHandler

	JWT      *utils.JWTManager
	Sessions *utils.SessionStore
}

// SetupCORS applies the cross-origin policy for the configured frontends.
func SetupCORS(r *gin.Engine, origins []string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

// RegisterPlaceRoutes registers the place catalog endpoints. Reads are
// public; mutations require an admin session.
func RegisterPlaceRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/places")
	{
		api.GET("", hb.Places.ListPlacesHandler)
		api.GET("/nearby", hb.Places.NearbyPlacesHandler)
		api.GET("/:id", hb.Places.GetPlaceHandler)

		admin := api.Group("")
		admin.Use(middleware.AuthRequired(hb.JWT, hb.Sessions), middleware.AdminRequired())
		admin.POST("", hb.Places.CreatePlaceHandler)
		admin.PUT("/:id", hb.Places.UpdatePlaceHandler)
		admin.DELETE("/:id", hb.Places.DeletePlaceHandler)
	}
}

// RegisterFestivalRoutes registers the festival catalog endpoints.
func RegisterFestivalRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/festivals")
	{
		api.GET("", hb.Festivals.ListFestivalsHandler)
		api.GET("/upcoming", hb.Festivals.UpcomingFestivalsHandler)
		api.GET("/:id", hb.Festivals.GetFestivalHandler)

		admin := api.Group("")
		admin.Use(middleware.AuthRequired(hb.JWT, hb.Sessions), middleware.AdminRequired())
		admin.POST("", hb.Festivals.CreateFestivalHandler)
		admin.PUT("/:id", hb.Festivals.UpdateFestivalHandler)
		admin.DELETE("/:id", hb.Festivals.DeleteFestivalHandler)
	}
}

// RegisterReviewRoutes registers the review endpoints. The anonymous
// submission and helpful-vote routes stay public.
func RegisterReviewRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		api.GET("", hb.Reviews.ListReviewsHandler)
		api.GET("/:id", hb.Reviews.GetReviewHandler)
		api.POST("/public", hb.Reviews.CreatePublicReviewHandler)
		api.POST("/:id/helpful", hb.Reviews.MarkHelpfulHandler)

		protected := api.Group("")
		protected.Use(middleware.AuthRequired(hb.JWT, hb.Sessions))
		protected.POST("", hb.Reviews.CreateReviewHandler)
		protected.PUT("/:id", hb.Reviews.UpdateReviewHandler)
		protected.DELETE("/:id", hb.Reviews.DeleteReviewHandler)
	}
}

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.Users.RegisterUserHandler)
		api.POST("/login", hb.Users.AuthenticateUserHandler)

		api.Use(middleware.AuthRequired(hb.JWT, hb.Sessions))
		api.GET("/me", hb.Users.GetProfileHandler)
		api.DELETE("/revoke", hb.Users.RevokeTokenHandler)
	}
}

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})
}

// RegisterAll wires every route group onto the engine.
func RegisterAll(r *gin.Engine, hb *HandlerBundle) {
	RegisterHealthRoute(r)
	RegisterPlaceRoutes(r, hb)
	RegisterFestivalRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterUserRoutes(r, hb)
}
