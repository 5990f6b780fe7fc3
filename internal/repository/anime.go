package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/user/animew/internal/model"
	"gorm.io/gorm"
)

type AnimeRepository struct {
	db *gorm.DB
}

func NewAnimeRepository(db *gorm.DB) *AnimeRepository {
	return &AnimeRepository{db: db}
}

// AnimeSearchFilters 搜索条件，零值字段不参与过滤
type AnimeSearchFilters struct {
	Title        string
	Type         string
	Genres       []string
	Year         int
	EpisodeCount int
	Rating       float64
	GTE          bool // 年份 / 集数按 >= 匹配而不是精确匹配
}

// Create 创建番剧
func (r *AnimeRepository) Create(anime *model.Anime) error {
	anime.CreatedAt = time.Now()
	anime.UpdatedAt = time.Now()
	return r.db.Create(anime).Error
}

// FindByID 根据 ID 查找番剧
func (r *AnimeRepository) FindByID(id int) (*model.Anime, error) {
	var anime model.Anime
	err := r.db.First(&anime, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &anime, nil
}

// FindByIDWithEpisodes 根据 ID 查找番剧并带出剧集（按集数排序）
func (r *AnimeRepository) FindByIDWithEpisodes(id int) (*model.Anime, error) {
	var anime model.Anime
	err := r.db.Preload("Episodes", func(db *gorm.DB) *gorm.DB {
		return db.Order("episode_number ASC")
	}).First(&anime, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &anime, nil
}

// ListPage 分页列表
func (r *AnimeRepository) ListPage(limit, offset int) ([]*model.Anime, int, error) {
	var total int64
	if err := r.db.Model(&model.Anime{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var animes []*model.Anime
	err := r.db.Order("id ASC").Limit(limit).Offset(offset).Find(&animes).Error
	return animes, int(total), err
}

// ListByRatingPage 评分阈值分页列表（热门榜）
func (r *AnimeRepository) ListByRatingPage(minRating float64, limit, offset int) ([]*model.Anime, int, error) {
	q := r.db.Model(&model.Anime{}).Where("rating >= ?", minRating)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var animes []*model.Anime
	err := q.Order("rating DESC, id ASC").Limit(limit).Offset(offset).Find(&animes).Error
	return animes, int(total), err
}

// ListReleasedBetween 评分阈值 + 上映区间分页列表（月度榜）
func (r *AnimeRepository) ListReleasedBetween(minRating float64, start, end time.Time, limit, offset int) ([]*model.Anime, int, error) {
	q := r.db.Model(&model.Anime{}).
		Where("rating >= ?", minRating).
		Where("release_date >= ? AND release_date <= ?", start, end)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var animes []*model.Anime
	err := q.Order("rating DESC, id ASC").Limit(limit).Offset(offset).Find(&animes).Error
	return animes, int(total), err
}

// Search 组合条件搜索
func (r *AnimeRepository) Search(filters AnimeSearchFilters) ([]*model.Anime, error) {
	q := r.db.Model(&model.Anime{})

	if filters.Title != "" {
		q = q.Where("title ILIKE ?", "%"+escapeLike(filters.Title)+"%")
	}

	if filters.Type != "" {
		q = q.Where("type ILIKE ?", "%"+escapeLike(filters.Type)+"%")
	}

	// 所有指定的分类都必须命中，忽略大小写
	for _, genre := range filters.Genres {
		q = q.Where("EXISTS (SELECT 1 FROM unnest(genres) AS g WHERE lower(g) = lower(?))", genre)
	}

	if filters.Year > 0 {
		start := time.Date(filters.Year, 1, 1, 0, 0, 0, 0, time.UTC)
		q = q.Where("release_date >= ?", start)
		if !filters.GTE {
			q = q.Where("release_date < ?", start.AddDate(1, 0, 0))
		}
	}

	if filters.EpisodeCount > 0 {
		if filters.GTE {
			q = q.Where("episode_count >= ?", filters.EpisodeCount)
		} else {
			q = q.Where("episode_count = ?", filters.EpisodeCount)
		}
	}

	if filters.Rating > 0 {
		q = q.Where("rating >= ?", filters.Rating)
	}

	var animes []*model.Anime
	err := q.Order("id ASC").Find(&animes).Error
	return animes, err
}

// Update 按字段更新番剧，返回更新后的番剧，不存在时返回 nil
func (r *AnimeRepository) Update(id int, updates map[string]interface{}) (*model.Anime, error) {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&model.Anime{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return r.FindByID(id)
}

// Delete 删除番剧及其剧集，返回被删除的番剧
func (r *AnimeRepository) Delete(id int) (*model.Anime, error) {
	anime, err := r.FindByID(id)
	if err != nil || anime == nil {
		return nil, err
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("anime_id = ?", id).Delete(&model.Episode{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Anime{}, id).Error
	})
	if err != nil {
		return nil, err
	}

	return anime, nil
}

// escapeLike 转义 LIKE 通配符，用户输入按字面匹配
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
