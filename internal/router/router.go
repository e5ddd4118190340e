package router

import (
	"os"
	"strconv"

	"Group_Hub/internal/handler"
	"Group_Hub/internal/middleware"
	"Group_Hub/internal/pkg"

	"github.com/gin-gonic/gin"
)

func InitRouter() *gin.Engine {
	r := gin.Default()

	smtpPort, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if smtpPort == 0 {
		smtpPort = 587
	}
	emailCfg := pkg.SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     smtpPort,
		Username: os.Getenv("SMTP_USER"),
		Password: os.Getenv("SMTP_PASS"),
		From:     os.Getenv("SMTP_FROM"),
	}

	user := handler.NewUserHandler()
	email := handler.NewEmailHandler(emailCfg)
	group := handler.NewGroupHandler()
	application := handler.NewApplicationHandler()
	comment := handler.NewCommentHandler()
	like := handler.NewCommentLikeHandler()

	// 邮件验证码
	emailGroup := r.Group("/api/email")
	{
		emailGroup.POST("/:scope/code", email.SendCode)
	}

	// 用户
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
		userGroup.POST("/reset", user.ResetPassword)
	}

	// token
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// 登录态
	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.POST("/logout", user.Logout)
		authGroup.POST("/change-password", user.ChangePassword)
	}

	// 小组
	groupGroup := r.Group("/api/group")
	groupGroup.Use(middleware.AuthMiddleware())
	{
		groupGroup.POST("/create", group.Create)
		groupGroup.GET("/list", group.List)
		groupGroup.GET("/:id", group.Get)
		groupGroup.DELETE("/:id", group.Delete)
		groupGroup.GET("/:id/membership", group.Membership)
		groupGroup.GET("/:id/applications", application.ListByGroup)
		groupGroup.GET("/:id/comments", comment.ListByGroup)
	}

	// 入组申请
	applicationGroup := r.Group("/api/application")
	applicationGroup.Use(middleware.AuthMiddleware())
	{
		applicationGroup.POST("/apply", application.Apply)
		applicationGroup.DELETE("/:id", application.Cancel)
		applicationGroup.POST("/:id/approve", application.Approve)
		applicationGroup.POST("/:id/reject", application.Reject)
	}

	// 评论
	commentGroup := r.Group("/api/comment")
	commentGroup.Use(middleware.AuthMiddleware())
	{
		commentGroup.POST("/create", comment.Create)
		commentGroup.PUT("/:id", comment.Update)
		commentGroup.DELETE("/:id", comment.Delete)
		commentGroup.POST("/:id/like", like.Like)
		commentGroup.DELETE("/:id/like", like.Unlike)
		commentGroup.GET("/:id/liked", like.IsLiked)
		commentGroup.GET("/:id/like-count", like.Count)
	}

	return r
}
