package repository

import (
	"time"

	"github.com/user/animew/internal/model"
	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 创建评论
func (r *CommentRepository) Create(authorID, animeID int, content string) (*model.Comment, error) {
	comment := &model.Comment{
		AuthorID:  authorID,
		AnimeID:   animeID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := r.db.Create(comment).Error; err != nil {
		return nil, err
	}

	return comment, nil
}

// ListByAnime 获取番剧评论，最新在前，带出作者（含资料）与番剧
func (r *CommentRepository) ListByAnime(animeID int) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.Preload("Author.Profile").
		Preload("Author").
		Preload("Anime").
		Where("anime_id = ?", animeID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// UpdateContent 更新评论内容，返回更新后的评论，不存在时返回 nil
func (r *CommentRepository) UpdateContent(id int, content string) (*model.Comment, error) {
	result := r.db.Model(&model.Comment{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	var comment model.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete 删除评论，不存在时返回 false
func (r *CommentRepository) Delete(id int) (bool, error) {
	result := r.db.Delete(&model.Comment{}, id)
	return result.RowsAffected > 0, result.Error
}
