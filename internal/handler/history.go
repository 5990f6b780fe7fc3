package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/animew/internal/middleware"
	"github.com/user/animew/internal/repository"
	"github.com/user/animew/internal/utils"
)

type watchedMinutesRequest struct {
	WatchedMinutes *int `json:"watchedMinutes" binding:"required,gte=0"`
}

// GetHistory 当前用户的观看历史
func (h *Handler) GetHistory(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		c.Error(utils.NewAppError(400, "User ID not found"))
		return
	}

	user, err := h.Repos.User.FindByID(userID)
	if err != nil {
		c.Error(err)
		return
	}
	if user == nil {
		c.Error(utils.NewAppError(404, "User not found!"))
		return
	}

	histories, err := h.Repos.History.ListByOwner(repository.UserOwnerID(userID))
	if err != nil {
		c.Error(err)
		return
	}

	utils.Success(c, gin.H{
		"username":     user.Username,
		"animeHistory": histories,
	})
}

// UpdateWatchedMinutes 更新某条历史的观看时长
func (h *Handler) UpdateWatchedMinutes(c *gin.Context) {
	historyID, err := strconv.Atoi(c.Param("animeHistoryId"))
	if err != nil {
		c.Error(err)
		return
	}

	var req watchedMinutesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	history, err := h.Repos.History.UpdateWatchedMinutes(historyID, *req.WatchedMinutes)
	if err != nil {
		c.Error(err)
		return
	}
	if history == nil {
		c.Error(utils.NewAppError(404, "Anime history not found!"))
		return
	}

	utils.Created(c, gin.H{"updatedHistory": history})
}

// RemoveHistory 删除一条观看历史
func (h *Handler) RemoveHistory(c *gin.Context) {
	historyID, err := strconv.Atoi(c.Param("animeHistoryId"))
	if err != nil {
		c.Error(err)
		return
	}

	deleted, err := h.Repos.History.Delete(historyID)
	if err != nil {
		c.Error(err)
		return
	}
	if !deleted {
		c.Error(utils.NewAppError(404, "Anime history not found!"))
		return
	}

	utils.SuccessWithMessage(c, "Anime history has been deleted", nil)
}
