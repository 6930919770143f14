package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Jose888-pixe/Web-hotel-sub000/controllers"
	"github.com/Jose888-pixe/Web-hotel-sub000/middleware"
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

// SetupRouter wires controllers onto the gin engine.
func SetupRouter(
	rc *controllers.RoomController,
	resc *controllers.ReservationController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
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
		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.POST("", rc.CreateRoom)
			rooms.GET("/:id", rc.GetRoom)
			rooms.PATCH("/:id", rc.UpdateRoom)
			rooms.PUT("/:id", rc.UpdateRoom)
			rooms.DELETE("/:id", rc.DeleteRoom)

			rooms.GET("/:id/occupied-dates", rc.GetOccupiedDates)
			rooms.PATCH("/:id/status", rc.UpdateRoomStatus)
		}

		reservations := api.Group("/reservations")
		{
			reservations.GET("", resc.GetReservations)
			reservations.POST("", resc.CreateReservation)
			reservations.GET("/:id", resc.GetReservationDetails)
			reservations.PATCH("/:id/status", resc.UpdateReservationStatus)
			reservations.DELETE("/:id", resc.CancelReservation)
		}

		payments := api.Group("/payments")
		{
			payments.POST("/callback", resc.PaymentCallback)
		}
	}

	return r
}
