package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ouestimmo/agency-booking-backend/internal/agenda"
	"github.com/ouestimmo/agency-booking-backend/internal/api"
	"github.com/ouestimmo/agency-booking-backend/internal/appointment"
	"github.com/ouestimmo/agency-booking-backend/internal/mailer"
	"github.com/ouestimmo/agency-booking-backend/internal/property"
	"github.com/ouestimmo/agency-booking-backend/internal/routing"
	"github.com/ouestimmo/agency-booking-backend/internal/scheduling"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Oracle       routing.Oracle
	Mailer       mailer.Sender
	Logger       *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Property Module
	propRepo := property.NewPgxRepository(cfg.DBPool)
	propService := property.NewService(propRepo)

	// Agenda Module (weekly availability rules)
	agendaRepo := agenda.NewPgxRepository(cfg.DBPool)
	agendaService := agenda.NewService(agendaRepo)

	// Appointment Module
	apptRepo := appointment.NewPgxRepository(cfg.DBPool)
	apptService := appointment.NewService(apptRepo, propService, agendaService, cfg.Mailer, cfg.Logger)

	// Scheduling Module (available-slots computation)
	slotService := scheduling.NewService(agendaService, apptService, propService, cfg.Oracle, cfg.Logger)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		PropertyService:    propService,
		AgendaService:      agendaService,
		AppointmentService: apptService,
		SlotService:        slotService,
	})

	return &Container{
		Router: router,
	}
}
