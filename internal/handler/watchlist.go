package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/animew/internal/middleware"
	"github.com/user/animew/internal/utils"
)

// GetWatchList 当前用户的追番列表
func (h *Handler) GetWatchList(c *gin.Context) {
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

	entries, err := h.Repos.WatchList.ListByUser(userID)
	if err != nil {
		c.Error(err)
		return
	}

	utils.Success(c, gin.H{
		"username":       user.Username,
		"animeWatchList": entries,
	})
}

// AddToWatchList 把番剧加入追番列表，同一番剧只允许加一次
func (h *Handler) AddToWatchList(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		c.Error(utils.NewAppError(400, "User ID not found"))
		return
	}

	animeID, err := strconv.Atoi(c.Param("animeId"))
	if err != nil {
		c.Error(err)
		return
	}

	anime, err := h.Repos.Anime.FindByID(animeID)
	if err != nil {
		c.Error(err)
		return
	}
	if anime == nil {
		c.Error(utils.NewAppError(404, "Anime not found!"))
		return
	}

	entry, created, err := h.Repos.WatchList.Add(userID, animeID)
	if err != nil {
		c.Error(err)
		return
	}
	if !created {
		c.Error(utils.NewAppError(400, "Anime watch list already exists!"))
		return
	}

	utils.Created(c, gin.H{"animeWatchList": entry})
}

// RemoveFromWatchList 从追番列表移除
func (h *Handler) RemoveFromWatchList(c *gin.Context) {
	entryID, err := strconv.Atoi(c.Param("animeWatchListId"))
	if err != nil {
		c.Error(err)
		return
	}

	deleted, err := h.Repos.WatchList.Delete(entryID)
	if err != nil {
		c.Error(err)
		return
	}
	if !deleted {
		c.Error(utils.NewAppError(404, "Anime watch list not found!"))
		return
	}

	utils.SuccessWithMessage(c, "Anime watch list has been deleted", nil)
}
