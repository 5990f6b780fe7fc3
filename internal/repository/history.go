package repository

import (
	"errors"
	"strconv"

	"github.com/user/animew/internal/model"
	"gorm.io/gorm"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// UserOwnerID 已登录用户在历史表中的持有者标识
func UserOwnerID(userID int) string {
	return strconv.Itoa(userID)
}

// RecordEpisode 记录一次观看事件。
// 以 (owner_id, anime_id) 为键的原子 upsert：首次观看插入新记录，
// 之后把集数并入剧集集合，重复观看同一集不会产生重复元素。
func (r *HistoryRepository) RecordEpisode(ownerID string, animeID, episodeNumber int) error {
	return r.db.Exec(`
		INSERT INTO histories (owner_id, anime_id, episodes, watched_minutes, created_at, updated_at)
		VALUES (?, ?, ARRAY[?]::integer[], 0, now(), now())
		ON CONFLICT (owner_id, anime_id) DO UPDATE SET
			episodes = (
				SELECT ARRAY(SELECT DISTINCT e FROM unnest(histories.episodes || EXCLUDED.episodes) AS e ORDER BY e)
			),
			updated_at = now()
	`, ownerID, animeID, episodeNumber).Error
}

// ListByOwner 获取持有者的观看历史，最近更新在前
func (r *HistoryRepository) ListByOwner(ownerID string) ([]*model.History, error) {
	var histories []*model.History
	err := r.db.Preload("Anime").
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&histories).Error
	return histories, err
}

// UpdateWatchedMinutes 更新观看时长，返回更新后的记录，不存在时返回 nil
func (r *HistoryRepository) UpdateWatchedMinutes(id, watchedMinutes int) (*model.History, error) {
	result := r.db.Model(&model.History{}).Where("id = ?", id).
		Update("watched_minutes", watchedMinutes)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	var history model.History
	err := r.db.First(&history, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &history, nil
}

// Delete 删除历史记录，不存在时返回 false
func (r *HistoryRepository) Delete(id int) (bool, error) {
	result := r.db.Delete(&model.History{}, id)
	return result.RowsAffected > 0, result.Error
}

// ReassignGuest 登录时把游客的历史归到用户名下。
// 同一事务内分三步：先把用户已有同番剧记录与游客记录合并（剧集并集、时长累加），
// 再删掉已合并的游客记录，最后把剩余游客记录改挂到用户。重复执行时找不到
// 游客记录，自然是幂等的。
func (r *HistoryRepository) ReassignGuest(guestID string, userID int) error {
	ownerID := UserOwnerID(userID)

	// 游客标识与用户自身标识相同时不存在独立的游客历史，自合并会删光
	// 用户的记录，直接视为无事可做
	if guestID == ownerID {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`
			UPDATE histories AS u SET
				episodes = (
					SELECT ARRAY(SELECT DISTINCT e FROM unnest(u.episodes || g.episodes) AS e ORDER BY e)
				),
				watched_minutes = u.watched_minutes + g.watched_minutes,
				updated_at = now()
			FROM histories AS g
			WHERE u.owner_id = ? AND g.owner_id = ? AND g.anime_id = u.anime_id
		`, ownerID, guestID).Error; err != nil {
			return err
		}

		if err := tx.Exec(`
			DELETE FROM histories
			WHERE owner_id = ? AND anime_id IN (
				SELECT anime_id FROM histories WHERE owner_id = ?
			)
		`, guestID, ownerID).Error; err != nil {
			return err
		}

		return tx.Exec(`
			UPDATE histories SET owner_id = ?, updated_at = now() WHERE owner_id = ?
		`, ownerID, guestID).Error
	})
}
