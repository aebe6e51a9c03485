package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis"

	"blogapp/controllers"
	"blogapp/middlewares"
	"blogapp/repository"
	"blogapp/services"
	"blogapp/utils"
)

// Setup 组装路由。公开接口不挂鉴权中间件，写操作统一走 Bearer 校验。
func Setup(repo *repository.Repository, tokens *utils.TokenIssuer, rdb *redis.Client, events *services.EventPublisher) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	auth := controllers.NewAuthController(repo, tokens)
	posts := controllers.NewPostController(repo, events)
	likes := controllers.NewLikeController(repo, rdb, events)
	comments := controllers.NewCommentController(repo, events)

	api := r.Group("/api")
	{
		api.POST("/register", auth.Register)
		api.POST("/login", auth.Login)
		api.GET("/posts", posts.ListPosts)
		api.GET("/posts/top", likes.GetTopPosts)
		api.GET("/posts/:id", posts.GetPost)
		api.GET("/posts/:id/comments", comments.ListComments)
		api.GET("/posts/:id/likes", likes.GetPostLikes)
	}

	protected := api.Group("", middlewares.AuthMiddleware(repo, tokens))
	{
		protected.POST("/posts", posts.CreatePost)
		protected.PUT("/posts/:id", posts.UpdatePost)
		protected.DELETE("/posts/:id", posts.DeletePost)
		protected.POST("/posts/:id/like", likes.LikePost)
		protected.POST("/posts/:id/comment", comments.CommentPost)
	}

	return r
}
