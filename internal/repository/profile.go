package repository

import (
	"errors"
	"time"

	"github.com/user/animew/internal/model"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create 创建用户资料
func (r *ProfileRepository) Create(profile *model.Profile) error {
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()
	return r.db.Create(profile).Error
}

// FindByUserID 根据用户 ID 查找资料
func (r *ProfileRepository) FindByUserID(userID int) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

// UpdateByUserID 按字段更新资料，返回更新后的资料
func (r *ProfileRepository) UpdateByUserID(userID int, updates map[string]interface{}) (*model.Profile, error) {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&model.Profile{}).Where("user_id = ?", userID).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return r.FindByUserID(userID)
}

// UpdateAvatar 更新头像
func (r *ProfileRepository) UpdateAvatar(userID int, avatar string) (*model.Profile, error) {
	return r.UpdateByUserID(userID, map[string]interface{}{"avatar": avatar})
}
