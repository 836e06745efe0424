package repository

import (
	"e_learn_backend/internal/model"

	"gorm.io/gorm"
)

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) Create(content *model.Content) error {
	return r.DB.Create(content).Error
}

func (r *ContentRepository) FindByID(id uint) (*model.Content, error) {
	var content model.Content
	err := r.DB.First(&content, id).Error
	return &content, err
}

// FindByLevelAndType 软删除的内容由 gorm.DeletedAt 自动排除，按插入顺序返回
func (r *ContentRepository) FindByLevelAndType(level model.Level, contentType model.ContentType) ([]model.Content, error) {
	var contents []model.Content
	err := r.DB.Where("level = ? AND content_type = ?", level, contentType).
		Order("id").
		Find(&contents).Error
	return contents, err
}

func (r *ContentRepository) SoftDelete(id uint) error {
	return r.DB.Delete(&model.Content{}, id).Error
}
