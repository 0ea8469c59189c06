package main

import (
	"log"
	"net/http"
	"time"

	"game-service/internal/cache"
	"game-service/internal/config"
	"game-service/internal/db"
	"game-service/internal/event"
	"game-service/internal/handlers"
	"game-service/internal/repository"
	"game-service/internal/service"
	"game-service/pkg/discovery"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.Load()

	db.InitMongo(cfg.MongoDB.URI)
	database := db.Client.Database(cfg.MongoDB.Database)

	// RabbitMQ event publisher. A nil publisher drops events silently.
	var publisher *event.Publisher
	if cfg.RabbitMQ.Enabled {
		var err error
		publisher, err = event.NewPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, progression events will not be published")
	}

	// Redis leaderboard cache, optional.
	var leaderboardCache service.LeaderboardCache
	if cfg.Redis.Enabled {
		redisCache := cache.NewLeaderboardCache(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.CacheTTL)
		defer redisCache.Close()
		leaderboardCache = redisCache
	}

	// Consul registration, optional.
	if cfg.Consul.Enabled {
		registry, err := discovery.NewServiceRegistry(cfg)
		if err != nil {
			log.Fatalf("Service discovery init failed: %v", err)
		}
		if err := registry.Register(); err != nil {
			log.Fatalf("Service registration failed: %v", err)
		}
		defer registry.Deregister()
	}

	quizRepo := repository.NewQuizRepository(database)
	userRepo := repository.NewUserRepository(database)

	quizService := service.NewQuizService(quizRepo)
	profileService := service.NewProfileService(userRepo, quizRepo, nil, leaderboardCache)

	quizHandler := handlers.NewQuizHandler(quizService, profileService, publisher)
	speedTypeHandler := handlers.NewSpeedTypeHandler(profileService, publisher)
	profileHandler := handlers.NewProfileHandler(profileService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID", "X-Username"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.Server.ServiceName})
	})

	// Public routes - quiz catalog and leaderboards
	publicGames := r.Group("/public/games")
	{
		publicGames.GET("/quiz", quizHandler.ListQuizzes)
		publicGames.GET("/speedtype/leaderboard", func(c *gin.Context) {
			speedTypeHandler.GetLeaderboard(c)
			publisher.Publish("game.leaderboard.viewed", gin.H{
				"difficulty": c.Query("difficulty"),
				"timestamp":  time.Now(),
			})
		})
	}

	// Protected routes - everything keyed to the authenticated user
	protectedGames := r.Group("/protected/games")
	protectedGames.Use(func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Next()
	})
	{
		protectedGames.GET("/profile", profileHandler.GetProfile)
		protectedGames.GET("/profile/subjects", profileHandler.GetAllSubjectStats)
		protectedGames.GET("/profile/subjects/:subject", profileHandler.GetSubjectStats)

		protectedGames.GET("/quiz/:id", quizHandler.GetQuiz)
		protectedGames.POST("/quiz", quizHandler.CreateQuiz)
		protectedGames.DELETE("/quiz/:id", quizHandler.DeleteQuiz)
		protectedGames.POST("/quiz/submit", quizHandler.SubmitQuiz)

		protectedGames.GET("/speedtype/stats", speedTypeHandler.GetStats)
		protectedGames.POST("/speedtype/submit", speedTypeHandler.SubmitGame)
	}

	if err := r.Run(cfg.Server.Host + ":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
