package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"shelter-backend/controllers"
	"shelter-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controller instances onto the API surface.
func SetupRouter(
	lc *controllers.LodgingController,
	sc *controllers.ServiceReservationController,
	hc *controllers.HostelController,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		hostels := api.Group("/hostels")
		{
			hostels.GET("", hc.GetHostels)
			hostels.POST("", hc.CreateHostel)
			hostels.GET("/:id", hc.GetHostelByID)
			hostels.PATCH("/:id", hc.UpdateHostel)
			hostels.PUT("/:id", hc.UpdateHostel)
			hostels.DELETE("/:id", hc.DeleteHostel)
			hostels.GET("/:id/availability", lc.GetAvailability)
		}

		lodging := api.Group("/lodging-reservations")
		{
			lodging.GET("", lc.GetReservations)
			lodging.POST("", lc.CreateReservation)
			lodging.GET("/:id", lc.GetReservationByID)
			lodging.PATCH("/:id/status", lc.ChangeStatus)
			lodging.DELETE("/:id", lc.DeleteReservation)
		}

		serviceRes := api.Group("/service-reservations")
		{
			// /expired must stay ahead of /:id
			serviceRes.GET("/expired", sc.GetExpired)
			serviceRes.GET("", sc.GetReservations)
			serviceRes.POST("", sc.CreateReservation)
			serviceRes.GET("/:id", sc.GetReservationByID)
			serviceRes.PATCH("/:id/status", sc.ChangeStatus)
		}

		servicesCatalog := api.Group("/services")
		{
			servicesCatalog.GET("", controllers.GetServices)
			servicesCatalog.POST("", controllers.CreateService)
			servicesCatalog.PATCH("/:id", controllers.UpdateService)
			servicesCatalog.DELETE("/:id", controllers.DeleteService)
		}

		schedules := api.Group("/schedules")
		{
			schedules.GET("", controllers.GetSchedules)
			schedules.POST("", controllers.CreateSchedule)
			schedules.DELETE("/:id", controllers.DeleteSchedule)
		}

		hostelServices := api.Group("/hostel-services")
		{
			hostelServices.GET("", controllers.GetHostelServices)
			hostelServices.POST("", controllers.CreateHostelService)
			hostelServices.PATCH("/:id", controllers.UpdateHostelService)
		}

		users := api.Group("/users")
		{
			users.GET("", controllers.GetUsers)
			users.POST("", controllers.CreateUser)
			users.GET("/:id", controllers.GetUserByID)
		}
	}

	return r
}
