package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/animew/internal/config"
	"github.com/user/animew/internal/repository"
	"github.com/user/animew/internal/utils"
	"golang.org/x/sync/singleflight"
)

// Handler HTTP 处理器
type Handler struct {
	Repos       *repository.Repositories
	Config      *config.Config
	SearchCache *utils.SearchCache[gin.H]

	// 合并相同搜索条件的并发未命中
	searchGroup singleflight.Group
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Repos:       repos,
		Config:      cfg,
		SearchCache: utils.NewSearchCache[gin.H](512, time.Hour),
	}
}

// flushCatalogCaches 管理端改动目录后清掉列表和搜索缓存
func (h *Handler) flushCatalogCaches() {
	utils.CacheClear()
	h.SearchCache.Clear()
}

// pageParams 解析分页参数，默认第 1 页、每页 15 条
func pageParams(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "15"))
	if limit < 1 {
		limit = 15
	}

	return page, limit, (page - 1) * limit
}

// paginationData 组装分页信息
func paginationData(page, limit, total int) gin.H {
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return gin.H{
		"page":        page,
		"limit":       limit,
		"totalPages":  totalPages,
		"totalAnimes": total,
	}
}
