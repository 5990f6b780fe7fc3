package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/animew/internal/handler"
	"github.com/user/animew/internal/middleware"
	"github.com/user/animew/internal/utils"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	secret := h.Config.AppSecret

	v1 := r.Group("/api/v1")

	// ==================== 认证 ====================
	auth := v1.Group("/auth")
	{
		auth.GET("/", middleware.OptionalAuth(secret), h.GetCurrentUser)
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.DELETE("/delete/:userId", middleware.OptionalAuth(secret), h.DeleteUser)
	}

	// ==================== 管理端 ====================
	admin := v1.Group("/admin")
	admin.Use(middleware.RequireAuth(secret))
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, "🤪Welcome to AnimeW API Admin!")
		})

		admin.GET("/auth/users", h.ListUsers)

		admin.POST("/anime", h.CreateAnime)
		admin.PUT("/anime/:animeId", h.UpdateAnime)
		admin.DELETE("/anime/:animeId", h.DeleteAnime)

		admin.POST("/anime/:animeId/episodes", h.CreateEpisode)
		admin.PUT("/anime/:animeId/episodes/:episodeId", h.UpdateEpisode)
		admin.DELETE("/anime/:animeId/episodes/:episodeId", h.DeleteEpisode)
	}

	// ==================== 目录 / 历史 / 追番 ====================
	anime := v1.Group("/anime")
	{
		anime.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, "🤪Welcome to AnimeW API!")
		})

		anime.GET("/anime-list", h.GetAnimeList)
		anime.GET("/search", h.SearchAnimes)
		anime.GET("/popular", h.PopularAnimes)
		anime.GET("/top-anime", h.TopAnimes)

		anime.GET("/details/:animeId", h.GetAnimeDetails)
		anime.GET("/details/:animeId/episodes",
			middleware.OptionalAuth(secret), middleware.Guest(), h.GetEpisodes)

		anime.GET("/history", middleware.OptionalAuth(secret), h.GetHistory)
		anime.PUT("/history/:animeHistoryId", h.UpdateWatchedMinutes)
		anime.DELETE("/history/:animeHistoryId", h.RemoveHistory)

		anime.GET("/watch-list", middleware.OptionalAuth(secret), h.GetWatchList)
		anime.POST("/watch-list/:animeId", middleware.OptionalAuth(secret), h.AddToWatchList)
		anime.DELETE("/watch-list/:animeWatchListId", h.RemoveFromWatchList)
	}

	// ==================== 评论 ====================
	comments := v1.Group("/comments")
	comments.Use(middleware.OptionalAuth(secret))
	{
		comments.POST("/", h.CreateComment)
		comments.GET("/anime/:animeId", h.GetCommentsByAnime)
		comments.PUT("/:commentId", h.UpdateComment)
		comments.DELETE("/:commentId", h.DeleteComment)
	}

	// ==================== 个人资料 ====================
	profile := v1.Group("/profile")
	profile.Use(middleware.OptionalAuth(secret))
	{
		profile.GET("/", h.GetProfile)
		profile.POST("/create", h.CreateProfile)
		profile.PUT("/update", h.UpdateProfile)
		profile.POST("/avatar", h.UpdateAvatar)
	}

	// 兜底 404
	r.NoRoute(func(c *gin.Context) {
		utils.Fail(c, http.StatusNotFound, "The route can not be found!")
	})
}
