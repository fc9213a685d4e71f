package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"hotel-frontdesk/controllers"
	"hotel-frontdesk/middleware"
)

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
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

// SetupRouter mounts the backend API and the front-desk flow on one engine.
// A nil controller leaves its surface out.
func SetupRouter(
	rc *controllers.RoomController,
	rtc *controllers.RoomTypeController,
	wc *controllers.WalkInController,
	fc *controllers.FrontDeskController,
	corsOrigins string,
	logger zerolog.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Terminal())
	r.Use(middleware.Logger(logger))

	origins := parseCorsOrigins(corsOrigins)
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With", middleware.TerminalHeader},
		ExposeHeaders:    []string{"Content-Length", "Location", middleware.TerminalHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		if rc != nil {
			rooms := api.Group("/rooms")
			{
				rooms.GET("/available-now", rc.AvailableNow)
				rooms.PATCH("/:id/status", rc.UpdateStatus)
			}
		}
		if rtc != nil {
			api.GET("/room-types", rtc.GetRoomTypes)
		}
		if wc != nil {
			walkin := api.Group("/walkin")
			{
				walkin.POST("/checkin", wc.CheckIn)
				walkin.GET("/booking/:reference", wc.GetBooking)
			}
		}
	}

	if fc != nil {
		r.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusSeeOther, "/walk-in-dashboard")
		})

		dashboard := r.Group("/walk-in-dashboard")
		{
			dashboard.GET("", fc.Dashboard)
			dashboard.POST("/start", fc.StartBooking)
		}

		flow := r.Group("/walk-in")
		{
			selection := flow.Group("/room-selection")
			{
				selection.GET("/:roomType", fc.RoomMap)
				selection.GET("/:roomType/tooltip", fc.Tooltip)
				selection.POST("/:roomType/select", fc.SelectRoom)
				selection.POST("/:roomType/breakfast", fc.SetBreakfast)
				selection.POST("/:roomType/back", fc.RoomSelectionBack)
			}

			guest := flow.Group("/guest-form")
			{
				guest.GET("", fc.GuestForm)
				guest.POST("/quote", fc.Quote)
				guest.POST("/breakfast", fc.SetBreakfast)
				guest.POST("/submit", fc.Submit)
				guest.POST("/cancel", fc.CancelGuestForm)
			}

			success := flow.Group("/booking-success")
			{
				success.GET("", fc.Receipt)
				success.POST("/new", fc.NewBooking)
				success.POST("/dashboard", fc.BackToDashboard)
			}
		}
	}

	return r
}
