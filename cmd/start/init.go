package start

import (
	"fmt"
	"log"
	"time"

	"github.com/Faus21/wander-wave-sub000/config"
	"github.com/Faus21/wander-wave-sub000/internal/handler"
	"github.com/Faus21/wander-wave-sub000/internal/middleware"
	"github.com/Faus21/wander-wave-sub000/internal/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func SetRoute(r *gin.Engine, httpHandler *handler.Handler, repos *repository.Repositories, rdb *redis.Client) {
	// CORS 配置 - 允许前端跨域请求
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	publicGroup := r.Group("")
	{
		publicGroup.POST("/register", httpHandler.Register)
		publicGroup.POST("/login", httpHandler.Login)
		publicGroup.GET("/posts/ranking", httpHandler.GetLeaderboard)
		publicGroup.GET("/posts/:id", httpHandler.GetPostDetail)
	}
	usersGroup := r.Group("/users")
	{
		usersGroup.GET("/:id/profile", httpHandler.GetUserProfile)
		usersGroup.GET("/:id/posts", httpHandler.GetUserPosts)
	}
	authGroup := r.Group("/user")
	authGroup.Use(middleware.AuthMiddleware())
	// 限频要读 user_id，只能排在鉴权后面
	authGroup.Use(middleware.RateLimit(rdb, config.Cfg.RateLimit.RequestsPerMinute))
	authGroup.Use(middleware.CheckStatus(repos.User))
	{
		//订阅流和推荐流
		authGroup.GET("/flow", httpHandler.GetPersonalFlow)
		authGroup.GET("/flow/recommendations", httpHandler.GetRecommendationFlow)
		authGroup.GET("/recommendations/users", httpHandler.GetRecommendedUsers)
		//用户信息
		authGroup.PUT("/profile", httpHandler.UpdateProfile)
		//游记操作
		authGroup.POST("/posts", httpHandler.CreatePost)
		authGroup.DELETE("/posts/:id", httpHandler.DeletePost)
		//点赞收藏
		authGroup.POST("/like/:id", httpHandler.ToggleLike)
		authGroup.POST("/save/:id", httpHandler.ToggleSave)
		authGroup.GET("/likes", httpHandler.GetLikedPosts)
		authGroup.GET("/saves", httpHandler.GetSavedPosts)
		//订阅关系
		authGroup.POST("/subscribe/:id", httpHandler.Subscribe)
		authGroup.POST("/unsubscribe/:id", httpHandler.Unsubscribe)
		authGroup.GET("/subscriptions", httpHandler.GetSubscriptions)
		authGroup.GET("/subscribers", httpHandler.GetSubscribers)
		//通知中心
		authGroup.GET("/notifications", httpHandler.GetNotifications)
		authGroup.GET("/notifications/unread", httpHandler.GetUnreadCount)
		authGroup.PUT("/notifications/read/:id", httpHandler.MarkNotificationRead)
		authGroup.PUT("/notifications/read_all", httpHandler.MarkAllRead)
	}
	//administer
	adminGroup := authGroup.Group("/admin")
	adminGroup.Use(middleware.AdminMiddleware())
	{
		adminGroup.POST("/ban/:id", httpHandler.BanUser)
		adminGroup.POST("/unban/:id", httpHandler.UnbanUser)
	}
	addr := fmt.Sprintf(":%d", config.Cfg.Server.Port)
	fmt.Println("start service on", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start service:", err)
	}
}
