package repository

import (
	"errors"
	"time"

	"github.com/user/animew/internal/model"
	"gorm.io/gorm"
)

type EpisodeRepository struct {
	db *gorm.DB
}

func NewEpisodeRepository(db *gorm.DB) *EpisodeRepository {
	return &EpisodeRepository{db: db}
}

// Create 创建剧集
func (r *EpisodeRepository) Create(episode *model.Episode) error {
	episode.CreatedAt = time.Now()
	return r.db.Create(episode).Error
}

// FindByID 根据 ID 查找剧集
func (r *EpisodeRepository) FindByID(id int) (*model.Episode, error) {
	var episode model.Episode
	err := r.db.First(&episode, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &episode, nil
}

// Update 按字段更新剧集，返回更新后的剧集，不存在时返回 nil
func (r *EpisodeRepository) Update(id int, updates map[string]interface{}) (*model.Episode, error) {
	result := r.db.Model(&model.Episode{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return r.FindByID(id)
}

// Delete 删除剧集，不存在时返回 false
func (r *EpisodeRepository) Delete(id int) (bool, error) {
	result := r.db.Delete(&model.Episode{}, id)
	return result.RowsAffected > 0, result.Error
}
