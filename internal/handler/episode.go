package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/animew/internal/middleware"
	"github.com/user/animew/internal/model"
	"github.com/user/animew/internal/repository"
	"github.com/user/animew/internal/utils"
)

// GetEpisodes 剧集列表。
// 带 ep 参数时只返回该集，并把这次观看记入当前身份（用户或游客）的历史。
func (h *Handler) GetEpisodes(c *gin.Context) {
	animeID, err := strconv.Atoi(c.Param("animeId"))
	if err != nil {
		c.Error(err)
		return
	}

	anime, err := h.Repos.Anime.FindByIDWithEpisodes(animeID)
	if err != nil {
		c.Error(err)
		return
	}
	if anime == nil {
		c.Error(utils.NewAppError(404, "Anime not found!"))
		return
	}

	episodes := anime.Episodes

	if epParam := c.Query("ep"); epParam != "" {
		episodeNumber, parseErr := strconv.Atoi(epParam)
		if parseErr != nil {
			c.Error(utils.NewAppError(400, "Invalid episode for the specified anime!"))
			return
		}

		var match *model.Episode
		for i := range anime.Episodes {
			if anime.Episodes[i].EpisodeNumber == episodeNumber {
				match = &anime.Episodes[i]
				break
			}
		}
		if match == nil {
			c.Error(utils.NewAppError(400, "Invalid episode for the specified anime!"))
			return
		}

		episodes = []model.Episode{*match}

		// 观看事件：身份+番剧 作为键的原子 upsert，集数按集合并入
		ownerID := middleware.GuestID(c)
		if userID := middleware.CurrentUserID(c); userID > 0 {
			ownerID = repository.UserOwnerID(userID)
		}
		if ownerID != "" {
			if err := h.Repos.History.RecordEpisode(ownerID, animeID, episodeNumber); err != nil {
				c.Error(err)
				return
			}
		}
	}

	utils.Success(c, gin.H{
		"animeId":      anime.ID,
		"title":        anime.Title,
		"episodeCount": anime.EpisodeCount,
		"episodes":     episodes,
	})
}

// ==================== 管理端 ====================

type episodeRequest struct {
	Title         string `json:"title" binding:"required"`
	VideoURL      string `json:"videoUrl" binding:"required"`
	EpisodeNumber int    `json:"episodeNumber" binding:"required,gte=1"`
}

type episodeUpdateRequest struct {
	Title         *string `json:"title"`
	VideoURL      *string `json:"videoUrl"`
	EpisodeNumber *int    `json:"episodeNumber" binding:"omitempty,gte=1"`
}

// CreateEpisode 给番剧添加剧集，标题带上番剧名前缀
func (h *Handler) CreateEpisode(c *gin.Context) {
	animeID, err := strconv.Atoi(c.Param("animeId"))
	if err != nil {
		c.Error(err)
		return
	}

	var req episodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
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

	episode := &model.Episode{
		AnimeID:       anime.ID,
		Title:         anime.Title + " || " + req.Title,
		VideoURL:      req.VideoURL,
		EpisodeNumber: req.EpisodeNumber,
	}

	if err := h.Repos.Episode.Create(episode); err != nil {
		c.Error(err)
		return
	}

	h.flushCatalogCaches()

	utils.Created(c, gin.H{"episode": episode})
}

// UpdateEpisode 按字段更新剧集
func (h *Handler) UpdateEpisode(c *gin.Context) {
	episodeID, err := strconv.Atoi(c.Param("episodeId"))
	if err != nil {
		c.Error(err)
		return
	}

	var req episodeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.VideoURL != nil {
		updates["video_url"] = *req.VideoURL
	}
	if req.EpisodeNumber != nil {
		updates["episode_number"] = *req.EpisodeNumber
	}

	episode, err := h.Repos.Episode.Update(episodeID, updates)
	if err != nil {
		c.Error(err)
		return
	}
	if episode == nil {
		c.Error(utils.NewAppError(404, "Episode not found!"))
		return
	}

	h.flushCatalogCaches()

	utils.Success(c, gin.H{"episode": episode})
}

// DeleteEpisode 删除剧集
func (h *Handler) DeleteEpisode(c *gin.Context) {
	episodeID, err := strconv.Atoi(c.Param("episodeId"))
	if err != nil {
		c.Error(err)
		return
	}

	deleted, err := h.Repos.Episode.Delete(episodeID)
	if err != nil {
		c.Error(err)
		return
	}
	if !deleted {
		c.Error(utils.NewAppError(404, "Episode not found!"))
		return
	}

	h.flushCatalogCaches()

	utils.SuccessWithMessage(c, "Episode has been deleted", nil)
}
