// @title ModeFilter API
// @version 1.0
// @description Sellable / catalog-only product grid API
// @host localhost:8081
// @BasePath /api/v1
// @schemes http
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Technizer/ModeFilter-Pro/config"
	"github.com/Technizer/ModeFilter-Pro/controllers/adminapi/settings_controller"
	"github.com/Technizer/ModeFilter-Pro/controllers/storefront/grid_controller"
	"github.com/Technizer/ModeFilter-Pro/routes/admin_routes"
	"github.com/Technizer/ModeFilter-Pro/routes/storefront_routes"
	"github.com/Technizer/ModeFilter-Pro/services"
	"github.com/Technizer/ModeFilter-Pro/store"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	// Connect to DB
	config.InitDB()
	// Redis connection (rate limiter)
	config.ConnectRedis()

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("❌ JWT_SECRET environment variable not set")
	}

	corsCfg := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:3001"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token", "X-Requested-With", "X-Widget-Token"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	entryStore := store.New(config.StoreGorm)
	renderer := services.NewRenderer()

	gridHandler := grid_controller.NewHandler(entryStore, renderer, config.MaxPoolSize())
	settingsHandler := settings_controller.NewHandler(entryStore)

	router := gin.Default()
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := config.WithTimeout(2 * time.Second)
		defer cancel()
		if err := config.StoreDB.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unreachable"})
			return
		}
		if err := config.RedisClient.Ping(config.Ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "redis unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Register API routes
	api := router.Group("/api/v1")

	storefront_routes.SetupGridRoutes(api, gridHandler)
	log.Println("✅ Storefront routes registered")

	admin_routes.SetupSettingsRoutes(api, settingsHandler)
	log.Println("✅ Admin routes registered")

	fmt.Println("🚀 Server is running on http://localhost:8081")
	router.Run(":8081")
}
