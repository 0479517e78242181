package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	goredis "github.com/go-redis/redis/v8"

	"github.com/yourusername/assessment-portal/internal/config"
	"github.com/yourusername/assessment-portal/internal/domain/repository"
	"github.com/yourusername/assessment-portal/internal/handler"
	"github.com/yourusername/assessment-portal/internal/middleware"
	mediaRepo "github.com/yourusername/assessment-portal/internal/repository/media"
	mongoRepo "github.com/yourusername/assessment-portal/internal/repository/mongo"
	pgRepo "github.com/yourusername/assessment-portal/internal/repository/postgres"
	redisRepo "github.com/yourusername/assessment-portal/internal/repository/redis"
	"github.com/yourusername/assessment-portal/internal/service"
	"github.com/yourusername/assessment-portal/pkg/database"
)

// stores объединяет репозитории выбранного драйвера и функцию закрытия соединения
type stores struct {
	users   repository.UserRepository
	results repository.TestResultRepository
	close   func()
}

func openStores(cfg *config.Config) (*stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := database.NewPostgresDB(cfg.Postgres.PostgresConnectionString())
		if err != nil {
			return nil, err
		}
		if err := database.MigrateDB(db, "migrations"); err != nil {
			return nil, err
		}
		return &stores{
			users:   pgRepo.NewUserRepo(db),
			results: pgRepo.NewTestResultRepo(db),
			close: func() {
				if sqlDB, err := database.GetSQLDB(db); err == nil {
					sqlDB.Close()
				}
			},
		}, nil
	default:
		client, db, err := database.NewMongoDB(cfg.Credentials.URI, cfg.Credentials.Database)
		if err != nil {
			return nil, err
		}
		return &stores{
			users:   mongoRepo.NewUserRepo(db),
			results: mongoRepo.NewTestResultRepo(db),
			close: func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := client.Disconnect(ctx); err != nil {
					log.Printf("Error disconnecting MongoDB: %v", err)
				}
			},
		}, nil
	}
}

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	isProduction := cfg.Server.GinMode == "release"
	gin.SetMode(cfg.Server.GinMode)

	// Инициализируем хранилище документов
	st, err := openStores(cfg)
	if err != nil {
		log.Printf("Failed to connect to %s store: %v", cfg.Store.Driver, err)
		os.Exit(1)
	}
	defer st.close()
	log.Printf("Successfully connected to %s store", cfg.Store.Driver)

	// Redis опционален: блокировки и rate limiting работают только с ним
	var redisClient goredis.UniversalClient
	var lockRepo repository.LockRepository = redisRepo.NoOpLockRepo{}
	if cfg.Redis.Enabled() {
		redisClient, err = database.NewUniversalRedisClient(cfg.Redis)
		if err != nil {
			log.Printf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		log.Println("Successfully connected to Redis")

		redisLocks, err := redisRepo.NewLockRepo(redisClient, "lock:")
		if err != nil {
			log.Printf("Failed to initialize LockRepo: %v", err)
			os.Exit(1)
		}
		lockRepo = redisLocks
	} else {
		log.Println("Redis is not configured: submission locks and rate limiting are disabled")
	}

	// Медиа-хостинг
	var media repository.MediaRepository = mediaRepo.UnconfiguredRepo{}
	if cfg.Media.Enabled() {
		cld, err := mediaRepo.NewCloudinaryRepo(cfg.Media.CloudName, cfg.Media.APIKey, cfg.Media.APISecret)
		if err != nil {
			log.Printf("Failed to initialize Cloudinary: %v", err)
			os.Exit(1)
		}
		media = cld
	}

	// Инициализируем сервисы
	resultService := service.NewResultService(st.users, st.results, lockRepo)
	userService := service.NewUserService(st.users, media, service.UserServiceConfig{
		MediaFolder:       cfg.Media.Folder,
		AvatarMaxSide:     cfg.Media.AvatarMaxSide,
		DefaultProfilePic: cfg.Leaderboard.DefaultProfilePic,
		LeaderboardSize:   cfg.Leaderboard.DefaultSize,
		LeaderboardMax:    cfg.Leaderboard.MaxSize,
	})
	chatbotService := service.NewChatbotService()

	// Инициализируем обработчики
	if err := handler.RegisterValidators(); err != nil {
		log.Printf("Failed to register validators: %v", err)
		os.Exit(1)
	}
	userHandler := handler.NewUserHandler(userService, resultService)
	assessmentHandler := handler.NewAssessmentHandler(resultService)
	chatbotHandler := handler.NewChatbotHandler(chatbotService)

	// Инициализируем middleware
	rateLimiter := middleware.NewRateLimiter(redisClient)
	writeLimit := middleware.DefaultRateLimitConfig()
	writeLimit.MaxRequests = cfg.RateLimit.MaxRequests
	writeLimit.Window = cfg.RateLimit.Window
	chatLimit := middleware.ChatbotRateLimitConfig()
	opTimeout := middleware.RequestTimeout(time.Duration(cfg.Store.OpTimeout) * time.Second)

	// Инициализируем роутер Gin
	router := gin.Default()
	router.MaxMultipartMemory = handler.MaxProfileImageSize

	// В production не доверяем прокси-заголовкам, в development доверяем localhost
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	origins := cfg.Server.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5000", "http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/register", rateLimiter.Limit(writeLimit), opTimeout, userHandler.Register)

	// Настраиваем маршруты API
	api := router.Group("/api")
	api.Use(opTimeout)
	{
		// Пользователь
		user := api.Group("/user/:id")
		user.Use(middleware.ExtractUserID("id", "userID"))
		{
			user.GET("", userHandler.GetUser)
			user.POST("/update", userHandler.UpdateUser)
			user.POST("/upload_image", rateLimiter.Limit(writeLimit), userHandler.UploadImage)
			user.POST("/submit_test", rateLimiter.Limit(writeLimit), assessmentHandler.SubmitTest)
		}

		// Лидерборд (публичный маршрут)
		api.GET("/leaderboard", userHandler.GetLeaderboard)
		api.GET("/leaderboard/export", userHandler.ExportLeaderboard)

		// Каталог тем
		api.GET("/topics", assessmentHandler.ListTopics)
		api.GET("/topics/:key", assessmentHandler.GetTopic)

		api.POST("/chatbot", rateLimiter.Limit(chatLimit), chatbotHandler.Chat)
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		return
	}

	log.Println("Server exited properly")
}
