package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ouestimmo/agency-booking-backend/internal/agenda"
	agendaHttp "github.com/ouestimmo/agency-booking-backend/internal/agenda/http"
	"github.com/ouestimmo/agency-booking-backend/internal/appointment"
	apptHttp "github.com/ouestimmo/agency-booking-backend/internal/appointment/http"
	"github.com/ouestimmo/agency-booking-backend/internal/property"
	propHttp "github.com/ouestimmo/agency-booking-backend/internal/property/http"
	"github.com/ouestimmo/agency-booking-backend/internal/scheduling"
	schedHttp "github.com/ouestimmo/agency-booking-backend/internal/scheduling/http"
)

// Config holds the services the router needs.
type Config struct {
	IsProduction       bool
	ProdOrigins        string
	PropertyService    property.Service
	AgendaService      agenda.Service
	AppointmentService appointment.Service
	SlotService        *scheduling.Service
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, Recovery) and registers routes for
// the domain modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // Booking UI dev server
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	propHandler := propHttp.NewHandler(cfg.PropertyService)
	agendaHandler := agendaHttp.NewHandler(cfg.AgendaService)
	apptHandler := apptHttp.NewHandler(cfg.AppointmentService)
	slotHandler := schedHttp.NewHandler(cfg.SlotService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		propHttp.RegisterRoutes(v1, propHandler)
		agendaHttp.RegisterRoutes(v1, agendaHandler)
		apptHttp.RegisterRoutes(v1, apptHandler)
		schedHttp.RegisterRoutes(v1, slotHandler)
	}

	return r
}
