package routes

import (
	"net/http"
	"time"

	"handyhub/config"
	"handyhub/handlers"
	"handyhub/middleware"
	"handyhub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Guards are the prebuilt auth middlewares the route groups attach.
type Guards struct {
	User         gin.HandlerFunc
	UserOptional gin.HandlerFunc
	Provider     gin.HandlerFunc
	Admin        gin.HandlerFunc
	Any          gin.HandlerFunc
	AnyOptional  gin.HandlerFunc
}

// SetupRouter assembles the engine: CORS, rate limiting, panic recovery,
// and every route group under /api/v1.
func SetupRouter(cfg *config.Config, hb *handlers.HandlerBundle, guards Guards) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(utils.ErrorHandler())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	registerHealthRoute(r)

	api := r.Group("/api/v1")
	registerAuthRoutes(api, hb)
	registerServiceRoutes(api, hb, guards)
	registerBookingRoutes(api, hb, guards)
	registerReviewRoutes(api, hb, guards)
	registerProviderRoutes(api, hb, guards)
	registerUserRoutes(api, hb, guards)
	registerAdminRoutes(api, hb, guards)

	return r
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	auth := api.Group("/auth")
	{
		auth.POST("/users/register", hb.Auth.RegisterUser)
		auth.POST("/users/login", hb.Auth.LoginUser)
		auth.POST("/providers/register", hb.Auth.RegisterProvider)
		auth.POST("/providers/login", hb.Auth.LoginProvider)
		auth.POST("/admins/login", hb.Auth.LoginAdmin)
	}
}

func registerServiceRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, guards Guards) {
	services := api.Group("/services")
	{
		services.GET("", hb.Service.Search)
		services.GET("/:id", hb.Service.Get)

		services.POST("", guards.Provider, hb.Service.Create)
		services.POST("/:id/images", guards.Provider, hb.Service.UploadImage)

		// owner provider or admin
		services.PUT("/:id", guards.Any, hb.Service.Update)
		services.DELETE("/:id", guards.Any, hb.Service.Delete)
	}
}

func registerBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, guards Guards) {
	bookings := api.Group("/bookings")
	{
		bookings.POST("", guards.User, hb.Booking.Create)
		bookings.GET("", guards.Any, hb.Booking.List)
		bookings.GET("/:id", guards.Any, hb.Booking.Get)
		bookings.PUT("/:id", guards.Any, hb.Booking.Update)
		bookings.PUT("/:id/status", guards.Any, hb.Booking.UpdateStatus)
		bookings.PUT("/:id/cancel", guards.Any, hb.Booking.Cancel)
		bookings.POST("/:id/messages", guards.Any, hb.Booking.AddMessage)
	}
}

func registerReviewRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, guards Guards) {
	reviews := api.Group("/reviews")
	{
		reviews.GET("", guards.AnyOptional, hb.Review.List)
		reviews.POST("", guards.User, hb.Review.Create)
		reviews.PUT("/:id/helpful", guards.User, hb.Review.ToggleHelpful)
		reviews.PUT("/:id/moderate", guards.Admin, hb.Review.Moderate)
	}
}

func registerProviderRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, guards Guards) {
	providers := api.Group("/providers")
	{
		providers.GET("/:id", guards.AnyOptional, hb.Provider.Get)
		providers.PUT("/:id", guards.Any, hb.Provider.Update)
	}
}

func registerUserRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, guards Guards) {
	users := api.Group("/users")
	users.Use(guards.User)
	{
		users.GET("/me", hb.User.Me)
		users.PUT("/me", hb.User.UpdateMe)
	}
}

func registerAdminRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, guards Guards) {
	admin := api.Group("/admin")
	admin.Use(guards.Admin)
	{
		admin.GET("/users", hb.Admin.ListUsers)
		admin.GET("/providers", hb.Admin.ListProviders)
		admin.PUT("/providers/:id/verification", hb.Admin.SetVerification)
		admin.GET("/stats", hb.Admin.Stats)
	}
}
