package repository

import (
	"e_learn_backend/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

func (r *CommentRepository) FindByID(id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.Where("id = ?", id).First(&comment).Error
	return &comment, err
}

// FindByContent 软删除的评论自动排除；子评论通过 parent_id 弱引用挂在父评论下
func (r *CommentRepository) FindByContent(contentID uint) ([]model.Comment, error) {
	comments := []model.Comment{}
	err := r.DB.Preload("Author").
		Where("content_id = ?", contentID).
		Order("created_at").
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) Update(comment *model.Comment) error {
	return r.DB.Save(comment).Error
}

// SoftDelete 只标记自身，不级联子评论
func (r *CommentRepository) SoftDelete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.Comment{}).Error
}
