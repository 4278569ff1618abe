package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"group-chat-backend/internal/database"
	"group-chat-backend/internal/handlers"
	"group-chat-backend/internal/session"
	ws "group-chat-backend/internal/websocket"
)

type Server struct {
	Router   *gin.Engine
	DB       *database.Database
	Redis    *redis.Client
	Hub      *ws.Hub
	Registry *session.Registry
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	// Redis не обязателен: без него сессии просто не зеркалируются
	var rdb *redis.Client
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		redisOpts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		rdb = redis.NewClient(redisOpts)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Redis connect failed: %v", err)
		}
	} else {
		log.Println("REDIS_URL not set, session mirroring disabled")
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		log.Fatal("ADMIN_PASSWORD is not set")
	}

	hub := ws.NewHub()
	registry := session.NewRegistry()
	mirror := session.NewRedisMirror(rdb)

	chatH := handlers.NewChatHandler(dbConn, dbConn, hub, registry, mirror)
	wsH := handlers.NewWebSocketHandler(hub, chatH)
	groupH := handlers.NewGroupHandler(dbConn, hub, chatH)

	router := gin.Default()
	APIEndpoints(router, groupH, wsH, adminPassword)

	return &Server{
		Router:   router,
		DB:       dbConn,
		Redis:    rdb,
		Hub:      hub,
		Registry: registry,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
