package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/tmweiss/volunteer-booking-go/pkg/handlers"
	"github.com/tmweiss/volunteer-booking-go/pkg/store"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	log := newLogger()

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	repo, err := store.Open(dataDir)
	if err != nil {
		log.Fatal().Err(err).Str("data_dir", dataDir).Msg("could not load booking data")
	}
	log.Info().
		Str("data_dir", dataDir).
		Int("volunteers", len(repo.Volunteers())).
		Int("events", len(repo.Events())).
		Int("assignments", len(repo.Assignments())).
		Msg("booking data loaded")

	h := &handlers.Handler{Repo: repo, Log: log}

	r := gin.New()
	r.Use(gin.Recovery())

	// Routes
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Volunteer Booking API",
			"version": "1.0.0",
		})
	})

	api := r.Group("/api")
	{
		api.GET("/schedule", h.GetSchedule)
		api.GET("/conflicts", h.GetConflicts)
		api.GET("/summary", h.GetSummary)
		api.GET("/events", h.ListEvents)
		api.GET("/events/:id", h.GetEventDetails)
		api.POST("/events", h.AddEvent)
		api.POST("/assignments", h.AddAssignment)
		api.GET("/volunteers", h.ListVolunteers)
		api.GET("/timeslots", h.ListTimeslots)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Info().Str("port", port).Msg("server starting")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("could not run server")
	}
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
