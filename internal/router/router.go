package router

import (
	"Civic_Tracker/internal/handler"
	"Civic_Tracker/internal/middleware"
	"Civic_Tracker/internal/pkg"
	"Civic_Tracker/internal/service"

	"github.com/gin-gonic/gin"
)

func InitRouter() *gin.Engine {
	r := gin.Default()

	// 配置邮件环境
	emailCfg := pkg.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "no-reply@example.com",
		Password: "smtp-password",
		From:     "NoReply <no-reply@example.com>",
	}

	emailSvc := service.NewEmailService(emailCfg)
	user := handler.NewUserHandler(service.NewUserService(emailSvc))
	email := handler.NewEmailHandler(emailSvc)
	complaint := handler.NewComplaintHandler()
	vote := handler.NewVoteHandler()
	comment := handler.NewCommentHandler()
	admin := handler.NewAdminHandler()

	// 邮件相关接口
	emailGroup := r.Group("/api/email")
	{
		emailGroup.POST("/:scope/code", email.SendCode)
	}

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
		userGroup.POST("/reset", user.ResetPassword)
	}

	// token相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// 登录态用户接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.POST("/logout", user.Logout)
		authGroup.GET("/me", user.Me)
		authGroup.PUT("/profile", user.UpdateProfile)
		authGroup.POST("/change-password", user.ChangePassword)
	}

	// 投诉相关接口：列表和详情公开，写操作要登录
	complaintGroup := r.Group("/api/complaints")
	{
		complaintGroup.GET("", complaint.List)
		complaintGroup.GET("/:id", complaint.Get)
		complaintGroup.GET("/:id/votes", vote.Counts)
	}
	complaintAuth := r.Group("/api/complaints")
	complaintAuth.Use(middleware.AuthMiddleware())
	{
		complaintAuth.POST("", complaint.Create)
		complaintAuth.GET("/my", complaint.ListMine)
		complaintAuth.GET("/stats", complaint.Stats)
		complaintAuth.PUT("/:id", complaint.Update)
		complaintAuth.DELETE("/:id", complaint.Delete)
		complaintAuth.PUT("/:id/vote", vote.Cast)
		complaintAuth.GET("/:id/vote", vote.Current)
		complaintAuth.POST("/:id/comment", comment.Add)
	}

	// 管理端接口
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		adminGroup.GET("/users", admin.ListUsers)
		adminGroup.DELETE("/users/:id", admin.DeleteUser)
		adminGroup.GET("/stats", admin.Stats)
		adminGroup.GET("/logs", admin.Logs)
	}

	return r
}
