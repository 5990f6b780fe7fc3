package repository

import (
	"time"

	"github.com/user/animew/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WatchListRepository struct {
	db *gorm.DB
}

func NewWatchListRepository(db *gorm.DB) *WatchListRepository {
	return &WatchListRepository{db: db}
}

// Add 加入追番列表。
// 唯一键 (user_id, anime_id) 由数据库保证，冲突时什么都不做，
// 返回值标记本次是否真的插入了新记录。
func (r *WatchListRepository) Add(userID, animeID int) (*model.WatchList, bool, error) {
	entry := &model.WatchList{
		UserID:    userID,
		AnimeID:   animeID,
		CreatedAt: time.Now(),
	}

	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(entry)
	if result.Error != nil {
		return nil, false, result.Error
	}

	return entry, result.RowsAffected > 0, nil
}

// ListByUser 获取用户的追番列表，带出番剧信息
func (r *WatchListRepository) ListByUser(userID int) ([]*model.WatchList, error) {
	var entries []*model.WatchList
	err := r.db.Preload("Anime").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// Delete 从追番列表移除，不存在时返回 false
func (r *WatchListRepository) Delete(id int) (bool, error) {
	result := r.db.Delete(&model.WatchList{}, id)
	return result.RowsAffected > 0, result.Error
}
