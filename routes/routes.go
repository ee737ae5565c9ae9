package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"flexitrip-backend/controllers"
	"flexitrip-backend/middleware"
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

// SetupRouter wires the controllers onto the API surface.
func SetupRouter(
	pc *controllers.PlannerController,
	tc *controllers.TripController,
	bc *controllers.BookingController,
	cc *controllers.ChatController,
	dc *controllers.DashboardController,
	ac *controllers.AdvisoryController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

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
		trips := api.Group("/trips")
		{
			trips.POST("/plan", pc.PlanTrip)
			trips.GET("", tc.GetTrips)
			trips.GET("/:id", tc.GetTrip)
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("", bc.InitiateBooking)
			bookings.GET("/:id", bc.GetBooking)
			bookings.GET("/:id/breakdown", bc.GetBreakdown)
			bookings.POST("/:id/payment", bc.ProcessPayment)
			bookings.POST("/item-details", bc.GetItemDetails)
		}

		chat := api.Group("/chat")
		{
			chat.POST("", cc.Chat)
			chat.GET("/history", cc.History)
		}

		api.GET("/dashboard", dc.GetDashboard)
		api.GET("/destinations", dc.GetDestinations)

		advisory := api.Group("/advisory")
		{
			advisory.GET("/weather", ac.GetWeather)
			advisory.GET("/events", ac.GetEvents)
			advisory.POST("/route", ac.OptimizeRoute)
		}
	}

	return r
}
