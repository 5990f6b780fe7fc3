package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/animew/internal/middleware"
	"github.com/user/animew/internal/utils"
)

type commentRequest struct {
	AnimeID int    `json:"animeId" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type commentUpdateRequest struct {
	Content string `json:"content" binding:"required"`
}

// GetCommentsByAnime 番剧评论列表，最新在前
func (h *Handler) GetCommentsByAnime(c *gin.Context) {
	animeID, err := strconv.Atoi(c.Param("animeId"))
	if err != nil {
		c.Error(err)
		return
	}

	comments, err := h.Repos.Comment.ListByAnime(animeID)
	if err != nil {
		c.Error(err)
		return
	}

	utils.Success(c, gin.H{"comments": comments})
}

// CreateComment 发表评论，需要登录
func (h *Handler) CreateComment(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		c.Error(utils.NewAppError(400, "User ID not found"))
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	anime, err := h.Repos.Anime.FindByID(req.AnimeID)
	if err != nil {
		c.Error(err)
		return
	}
	if anime == nil {
		c.Error(utils.NewAppError(404, "Anime not found!"))
		return
	}

	comment, err := h.Repos.Comment.Create(userID, req.AnimeID, req.Content)
	if err != nil {
		c.Error(err)
		return
	}

	utils.Created(c, gin.H{"newComment": comment})
}

// UpdateComment 更新评论内容，需要登录
func (h *Handler) UpdateComment(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		c.Error(utils.NewAppError(400, "User ID not found"))
		return
	}

	commentID, err := strconv.Atoi(c.Param("commentId"))
	if err != nil {
		c.Error(err)
		return
	}

	var req commentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	comment, err := h.Repos.Comment.UpdateContent(commentID, req.Content)
	if err != nil {
		c.Error(err)
		return
	}
	if comment == nil {
		c.Error(utils.NewAppError(404, "Comment not found"))
		return
	}

	utils.Created(c, gin.H{"newComment": comment})
}

// DeleteComment 删除评论
func (h *Handler) DeleteComment(c *gin.Context) {
	commentID, err := strconv.Atoi(c.Param("commentId"))
	if err != nil {
		c.Error(err)
		return
	}

	deleted, err := h.Repos.Comment.Delete(commentID)
	if err != nil {
		c.Error(err)
		return
	}
	if !deleted {
		c.Error(utils.NewAppError(404, "Comment not found"))
		return
	}

	utils.SuccessWithMessage(c, "Comment has been deleted", nil)
}
