package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"campusvoice/backend/internal/api/handler"
	"campusvoice/backend/internal/complaint"
	"campusvoice/backend/internal/livefeed"
	"campusvoice/backend/internal/logger"
	"campusvoice/backend/internal/models"
	"campusvoice/backend/internal/notify"
	"campusvoice/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(log *logger.Logger) (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	// Перевірка з'єднання Redis
	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Міграції (Створення таблиць)
	err = db.AutoMigrate(
		&models.User{},
		&models.Complaint{},
		&models.Response{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Info("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log := logger.NewLogger("campusvoice-api")
	log.Info("Starting CampusVoice Backend...")

	if err := godotenv.Load(); err != nil {
		log.Warn("Error loading .env file")
	}

	// 1. Ініціалізація залежностей
	db, rdb := setupDependencies(log)
	s := storage.NewStorageService(db, rdb)

	// 2. Core service та live feed hub
	svc := complaint.NewService(s)
	hub := livefeed.NewHub(s)

	// 3. Telegram staff notifications (optional)
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if botToken != "" {
		staffChatID, err := strconv.ParseInt(os.Getenv("TELEGRAM_STAFF_CHAT_ID"), 10, 64)
		if err != nil {
			log.Fatalf("TELEGRAM_STAFF_CHAT_ID must be a chat ID: %v", err)
		}
		botService, err := notify.NewBotService(botToken, staffChatID, svc, log)
		if err != nil {
			log.Fatalf("Не вдалося запустити Telegram-бота: %v", err)
		}
		svc.SetNotifier(botService)
		go botService.Run()
	} else {
		log.Warn("TELEGRAM_BOT_TOKEN not set, staff notifications disabled")
	}

	go hub.Run() // Головний диспетчер live feed

	// 4. Налаштування Gin та роутингу
	r := gin.Default()
	r.Use(logger.RequestLogger(log))
	h := handler.NewHandler(svc, s, hub, log)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
			auth.POST("/logout", h.RequireSession(), h.Logout)
		}

		complaints := api.Group("/complaints")
		{
			// Публічний пошук за Tracking ID
			complaints.GET("/track/:trackingId", h.TrackComplaint)

			complaints.POST("", h.RequireSession(), h.CreateComplaint)
			complaints.GET("", h.RequireSession(), h.ListComplaints)
			complaints.GET("/stats", h.RequireSession(), h.RequireAdmin(), h.Stats)
			complaints.GET("/:id", h.RequireSession(), h.GetComplaint)
			complaints.PATCH("/:id/status", h.RequireSession(), h.RequireAdmin(), h.UpdateStatus)
			complaints.POST("/:id/responses", h.RequireSession(), h.AddResponse)
		}
	}

	r.GET("/ws", h.ServeLiveFeed) // WebSocket live feed

	// Запуск HTTP-сервера
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:           addr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
