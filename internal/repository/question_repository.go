package repository

import (
	"e_learn_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) FindByContent(contentID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Preload("Options").
		Where("content_id = ?", contentID).
		Order("id").
		Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindOption(optionID uint) (*model.Option, error) {
	var option model.Option
	err := r.DB.First(&option, optionID).Error
	return &option, err
}
