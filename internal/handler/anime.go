package handler

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/user/animew/internal/model"
	"github.com/user/animew/internal/repository"
	"github.com/user/animew/internal/utils"
)

// 榜单的评分门槛
const (
	popularMinRating = 8
	topMinRating     = 9
)

const listingCacheTTL = 5 * time.Minute

// GetAnimeList 分页列表
func (h *Handler) GetAnimeList(c *gin.Context) {
	page, limit, offset := pageParams(c)

	cacheKey := fmt.Sprintf("anime-list:%d:%d", page, limit)
	if cached, ok := utils.CacheGet(cacheKey); ok {
		utils.Success(c, cached)
		return
	}

	animes, total, err := h.Repos.Anime.ListPage(limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	data := gin.H{
		"pagination": paginationData(page, limit, total),
		"animes":     animes,
	}
	utils.CacheSet(cacheKey, data, listingCacheTTL)

	utils.Success(c, data)
}

// SearchAnimes 组合条件搜索，结果进 LRU 缓存。
// 缓存未命中时相同查询的并发请求合并成一次数据库查询
func (h *Handler) SearchAnimes(c *gin.Context) {
	cacheKey := c.Request.URL.RawQuery
	if cached, ok := h.SearchCache.Get(cacheKey); ok {
		utils.Success(c, cached)
		return
	}

	result, err, _ := h.searchGroup.Do(cacheKey, func() (interface{}, error) {
		animes, err := h.Repos.Anime.Search(parseSearchFilters(c.Request.URL.Query()))
		if err != nil {
			return nil, err
		}

		data := gin.H{"animes": animes}
		h.SearchCache.Set(cacheKey, data)
		return data, nil
	})
	if err != nil {
		c.Error(err)
		return
	}

	utils.Success(c, result.(gin.H))
}

// parseSearchFilters 把查询参数转成搜索条件，非法数字按未指定处理
func parseSearchFilters(q url.Values) repository.AnimeSearchFilters {
	year, _ := strconv.Atoi(q.Get("year"))
	episodeCount, _ := strconv.Atoi(q.Get("episodeCount"))
	rating, _ := strconv.ParseFloat(q.Get("rating"), 64)
	gte, _ := strconv.ParseBool(q.Get("gte"))

	return repository.AnimeSearchFilters{
		Title:        q.Get("title"),
		Type:         q.Get("type"),
		Genres:       strings.Fields(q.Get("genre")),
		Year:         year,
		EpisodeCount: episodeCount,
		Rating:       rating,
		GTE:          gte,
	}
}

// PopularAnimes 热门榜：评分不低于 8，分页
func (h *Handler) PopularAnimes(c *gin.Context) {
	page, limit, offset := pageParams(c)

	cacheKey := fmt.Sprintf("popular:%d:%d", page, limit)
	if cached, ok := utils.CacheGet(cacheKey); ok {
		utils.Success(c, cached)
		return
	}

	animes, total, err := h.Repos.Anime.ListByRatingPage(popularMinRating, limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	data := gin.H{
		"pagination": paginationData(page, limit, total),
		"animes":     animes,
	}
	utils.CacheSet(cacheKey, data, listingCacheTTL)

	utils.Success(c, data)
}

// TopAnimes 月度榜：上个自然月上映、评分不低于 9，分页
func (h *Handler) TopAnimes(c *gin.Context) {
	page, limit, offset := pageParams(c)

	cacheKey := fmt.Sprintf("top-anime:%d:%d", page, limit)
	if cached, ok := utils.CacheGet(cacheKey); ok {
		utils.Success(c, cached)
		return
	}

	start, end := previousMonthRange(time.Now())
	animes, total, err := h.Repos.Anime.ListReleasedBetween(topMinRating, start, end, limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	data := gin.H{
		"pagination": paginationData(page, limit, total),
		"animes":     animes,
	}
	utils.CacheSet(cacheKey, data, listingCacheTTL)

	utils.Success(c, data)
}

// previousMonthRange 上个自然月的首日和末日
func previousMonthRange(now time.Time) (start, end time.Time) {
	firstOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = firstOfThisMonth.AddDate(0, 0, -1)
	start = time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, end
}

// GetAnimeDetails 番剧详情
func (h *Handler) GetAnimeDetails(c *gin.Context) {
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

	utils.Success(c, gin.H{"anime": anime})
}

// ==================== 管理端 ====================

type animeRequest struct {
	Title        string   `json:"title" binding:"required"`
	Type         string   `json:"type" binding:"required,oneof=Series OVA"`
	ImageURL     string   `json:"imageUrl" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	ReleaseDate  string   `json:"releaseDate" binding:"required,datetime=2006-01-02"`
	EpisodeCount int      `json:"episodeCount" binding:"required,gte=1"`
	Rating       float64  `json:"rating" binding:"required,gte=1,lte=10"`
	Genres       []string `json:"genres" binding:"required,min=1"`
}

type animeUpdateRequest struct {
	Title        *string  `json:"title"`
	Type         *string  `json:"type" binding:"omitempty,oneof=Series OVA"`
	ImageURL     *string  `json:"imageUrl"`
	Description  *string  `json:"description"`
	ReleaseDate  *string  `json:"releaseDate" binding:"omitempty,datetime=2006-01-02"`
	EpisodeCount *int     `json:"episodeCount" binding:"omitempty,gte=1"`
	Rating       *float64 `json:"rating" binding:"omitempty,gte=1,lte=10"`
	Genres       []string `json:"genres" binding:"omitempty,min=1"`
}

// CreateAnime 创建番剧（标题唯一性由数据库约束兜底）
func (h *Handler) CreateAnime(c *gin.Context) {
	var req animeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		c.Error(utils.NewAppError(400, fmt.Sprintf("Invalid date format: %s. Expected format: YYYY-MM-DD", req.ReleaseDate)))
		return
	}

	anime := &model.Anime{
		Title:        req.Title,
		Type:         req.Type,
		ImageURL:     req.ImageURL,
		Description:  req.Description,
		ReleaseDate:  releaseDate,
		EpisodeCount: req.EpisodeCount,
		Rating:       req.Rating,
		Genres:       req.Genres,
	}

	if err := h.Repos.Anime.Create(anime); err != nil {
		c.Error(err)
		return
	}

	h.flushCatalogCaches()

	utils.Success(c, gin.H{"createdAnime": anime})
}

// UpdateAnime 按字段更新番剧
func (h *Handler) UpdateAnime(c *gin.Context) {
	animeID, err := strconv.Atoi(c.Param("animeId"))
	if err != nil {
		c.Error(err)
		return
	}

	var req animeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ReleaseDate != nil {
		releaseDate, parseErr := time.Parse("2006-01-02", *req.ReleaseDate)
		if parseErr != nil {
			c.Error(utils.NewAppError(400, fmt.Sprintf("Invalid date format: %s. Expected format: YYYY-MM-DD", *req.ReleaseDate)))
			return
		}
		updates["release_date"] = releaseDate
	}
	if req.EpisodeCount != nil {
		updates["episode_count"] = *req.EpisodeCount
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if req.Genres != nil {
		updates["genres"] = pq.StringArray(req.Genres)
	}

	anime, err := h.Repos.Anime.Update(animeID, updates)
	if err != nil {
		c.Error(err)
		return
	}
	if anime == nil {
		c.Error(utils.NewAppError(404, "Anime not found!"))
		return
	}

	h.flushCatalogCaches()

	utils.Success(c, gin.H{"anime": anime})
}

// DeleteAnime 删除番剧及其剧集
func (h *Handler) DeleteAnime(c *gin.Context) {
	animeID, err := strconv.Atoi(c.Param("animeId"))
	if err != nil {
		c.Error(err)
		return
	}

	anime, err := h.Repos.Anime.Delete(animeID)
	if err != nil {
		c.Error(err)
		return
	}
	if anime == nil {
		c.Error(utils.NewAppError(404, "Anime not found!"))
		return
	}

	h.flushCatalogCaches()

	utils.SuccessWithMessage(c,
		fmt.Sprintf("Anime (%s) has been deleted", strings.ToUpper(anime.Title)), nil)
}
