package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/mediashelf/internal/handler"
	"github.com/user/mediashelf/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 头像等上传文件
	r.Static("/uploads", "./uploads")

	// ==================== 认证 ====================
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
		auth.GET("/me", middleware.RequireAuth(h.Config), h.Me)
	}

	// ==================== 内容 ====================
	contents := r.Group("/api/contents")
	contents.Use(middleware.OptionalAuth(h.Config))
	{
		contents.GET("/search", h.SearchContent)
		contents.GET("/popular/movies", h.PopularMovies)
		contents.GET("/top-rated-books", h.TopRatedBooks)
		contents.GET("/top-rated", h.TopRatedContent)
		contents.GET("/:type/:externalId", h.GetContent)
	}

	// ==================== 评分 ====================
	ratings := r.Group("/api/ratings")
	ratings.Use(middleware.RequireAuth(h.Config))
	{
		ratings.POST("", h.RateContent)
		ratings.GET("/content/:contentId", h.ListContentRatings)
		ratings.GET("/:contentId", h.GetMyRating)
		ratings.DELETE("/:contentId", h.DeleteRating)
	}

	// ==================== 评论 ====================
	reviews := r.Group("/api/reviews")
	{
		reviews.GET("/content/:contentId", h.ListContentReviews)
		reviews.GET("/user/:id", h.ListUserReviews)

		authed := reviews.Group("")
		authed.Use(middleware.RequireAuth(h.Config))
		{
			authed.POST("", h.CreateReview)
			authed.GET("/me", h.ListMyReviews)
			authed.PUT("/:id", h.UpdateReview)
			authed.DELETE("/:id", h.DeleteReview)
		}
	}

	// ==================== 书架 ====================
	library := r.Group("/api/library")
	{
		library.GET("/user/:id", h.ListUserLibrary)

		authed := library.Group("")
		authed.Use(middleware.RequireAuth(h.Config))
		{
			authed.POST("", h.AddToLibrary)
			authed.GET("", h.ListLibrary)
			authed.GET("/stats", h.LibraryStats)
			authed.GET("/status/:contentId", h.LibraryStatusOf)
			authed.PUT("/:id", h.UpdateLibraryEntry)
			authed.DELETE("/:id", h.RemoveFromLibrary)
		}
	}

	// ==================== 关注 ====================
	follows := r.Group("/api/follows")
	{
		follows.GET("/:id/followers", h.ListFollowers)
		follows.GET("/:id/following", h.ListFollowing)

		authed := follows.Group("")
		authed.Use(middleware.RequireAuth(h.Config))
		{
			authed.POST("/:id", h.FollowUser)
			authed.DELETE("/:id", h.UnfollowUser)
			authed.GET("/:id/status", h.FollowStatus)
		}
	}

	// ==================== 点赞 ====================
	likes := r.Group("/api/likes")
	likes.Use(middleware.RequireAuth(h.Config))
	{
		likes.POST("/toggle", h.ToggleLike)
		likes.GET("/status/:activityId", h.LikeStatus)
	}

	// ==================== 动态 ====================
	activities := r.Group("/api/activities")
	{
		activities.GET("/feed", middleware.RequireAuth(h.Config), h.Feed)
		activities.GET("/user/:id", middleware.OptionalAuth(h.Config), h.UserTimeline)
	}

	// ==================== 用户 ====================
	users := r.Group("/api/users")
	{
		users.GET("/:id", middleware.OptionalAuth(h.Config), h.GetProfile)
		users.GET("/:id/stats", h.GetUserStats)

		authed := users.Group("")
		authed.Use(middleware.RequireAuth(h.Config))
		{
			authed.GET("/suggestions/list", h.SuggestedUsers)
			authed.GET("/search", h.SearchUsers)
			authed.PUT("/profile", h.UpdateProfile)
			authed.POST("/avatar", h.UploadAvatar)
		}
	}

	// ==================== 片单 ====================
	lists := r.Group("/api/lists")
	{
		lists.GET("/:id", middleware.OptionalAuth(h.Config), h.GetList)
		lists.GET("/user/:userId", middleware.OptionalAuth(h.Config), h.ListUserLists)

		authed := lists.Group("")
		authed.Use(middleware.RequireAuth(h.Config))
		{
			authed.POST("", h.CreateList)
			authed.GET("", h.ListMyLists)
			authed.POST("/:id/items", h.AddListItem)
			authed.DELETE("/:id/items/:contentId", h.RemoveListItem)
			authed.DELETE("/:id", h.DeleteList)
		}
	}
}
