package main

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/thereayou/dmrooms/internal/handlers"
	"github.com/thereayou/dmrooms/internal/middleware"
	"github.com/thereayou/dmrooms/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	jwtMgr *auth.JWTManager,
	rdb *redis.Client,
	authH *handlers.AuthHandler,
	userH *handlers.UserHandler,
	roomH *handlers.RoomHandler,
	directiveH *handlers.DirectiveHandler,
	wsH *handlers.WSHandler,
) {
	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
		authGroup.POST("/logout", authH.Logout)
	}

	// Chat endpoints
	chatGroup := r.Group("/chat", middleware.AuthMiddleware(jwtMgr, rdb))
	{
		chatGroup.POST("/room", roomH.CreateRoom)
		chatGroup.GET("/rooms", roomH.GetMyRooms)
		chatGroup.GET("/room/:uniqueid", roomH.GetRoom)
		chatGroup.POST("/room/:uniqueid/participants", roomH.AttachParticipants)
		chatGroup.GET("/room/:uniqueid/participants", roomH.GetParticipants)

		chatGroup.POST("/room/:uniqueid/directives", directiveH.PostDirective)
		chatGroup.GET("/room/:uniqueid/directives", directiveH.GetRoomDirectives)
		chatGroup.GET("/directives", directiveH.GetMyDirectives)
		chatGroup.PUT("/directives/:id/seen", directiveH.MarkSeen)
	}

	// User endpoints
	userGroup := r.Group("/users", middleware.AuthMiddleware(jwtMgr, rdb))
	{
		userGroup.GET("/me", userH.GetMe)
		userGroup.PUT("/me/status", userH.SetStatus)
		userGroup.GET("/:id", userH.GetUser)
	}

	// WebSocket endpoint
	r.GET("/ws", middleware.WSAuthMiddleware(jwtMgr, rdb), wsH.Connect)
}
