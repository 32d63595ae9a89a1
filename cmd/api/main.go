package main

import (
	"log"
	"os"
	"time"

	"github.com/kenmaca/frrand-api/internal/auth"
	"github.com/kenmaca/frrand-api/internal/db"
	"github.com/kenmaca/frrand-api/internal/grid"
	"github.com/kenmaca/frrand-api/internal/location"
	"github.com/kenmaca/frrand-api/internal/middleware"
	"github.com/kenmaca/frrand-api/internal/route"
	"github.com/kenmaca/frrand-api/internal/users"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── REPOS ─────────────────────────
	directory := users.NewPostgresDirectory(pgDB)
	locationRepo := location.NewPostgresRepository(pgDB)
	gridRepo := grid.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES (ORDER MATTERS) ─────────────────────────
	gridService := grid.NewService(gridRepo, directory)
	locationService := location.NewService(locationRepo, directory, gridService)
	routeBuilder := route.NewBuilder(locationService)
	authService := auth.NewService(directory)

	// ───────────────────────── HANDLERS ─────────────────────────
	authHandler := auth.NewHandler(authService)
	locationHandler := location.NewHandler(locationService)
	gridHandler := grid.NewHandler(gridService)
	routeHandler := route.NewHandler(routeBuilder)

	// ───────────────────────── AUTH ─────────────────────────
	r.POST("/auth/login", authHandler.Login)

	// ───────────────────────── LOCATION ROUTES ─────────────────────────
	userGroup := r.Group("/users/:username")
	userGroup.Use(
		middleware.AuthMiddleware(),
		middleware.RequireOwnership(),
	)
	{
		userGroup.POST("/location", locationHandler.Report)
		userGroup.GET("/location", locationHandler.History)
		userGroup.GET("/location/grid", gridHandler.Get)
		userGroup.GET("/location/grid/:weekday/:hour", gridHandler.LocationsReportedAt)
		userGroup.GET("/location/routes", routeHandler.Build)
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Println("API running on :" + port)
	r.Run(":" + port)
}
