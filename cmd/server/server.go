package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/thereayou/dmrooms/internal/chat"
	"github.com/thereayou/dmrooms/internal/database"
	"github.com/thereayou/dmrooms/internal/handlers"
	"github.com/thereayou/dmrooms/internal/presence"
	"github.com/thereayou/dmrooms/pkg/auth"
)

const presenceTTL = 5 * time.Minute

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	db := database.NewDatabase(nil)
	if err := db.Connect(); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		24*time.Hour,
	)

	registry := chat.NewRegistry()
	dispatcher := chat.NewDispatcher()
	rooms := chat.NewRoomService(db)
	directives := chat.NewDirectiveService(db, registry, dispatcher)
	tracker := presence.NewTracker(rdb, db, registry, dispatcher, presenceTTL)

	authH := handlers.NewAuthHandler(db, jwtMgr, rdb)
	userH := handlers.NewUserHandler(db, tracker)
	roomH := handlers.NewRoomHandler(rooms, tracker)
	directiveH := handlers.NewDirectiveHandler(rooms, directives)
	wsH := handlers.NewWSHandler(registry, tracker, directives)

	router := gin.Default()
	APIEndpoints(router, jwtMgr, rdb, authH, userH, roomH, directiveH, wsH)

	return &Server{
		Router:     router,
		DB:         db,
		Redis:      rdb,
		JWTManager: jwtMgr,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
