package repository

import (
	"e_learn_backend/internal/model"

	"gorm.io/gorm"
)

type TokenRepository struct {
	DB *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{DB: db}
}

func (r *TokenRepository) Create(token *model.ActivationToken) error {
	return r.DB.Create(token).Error
}

func (r *TokenRepository) FindByToken(token string) (*model.ActivationToken, error) {
	var record model.ActivationToken
	err := r.DB.Where("token = ?", token).First(&record).Error
	return &record, err
}

func (r *TokenRepository) MarkUsed(token *model.ActivationToken) error {
	token.Used = true
	return r.DB.Save(token).Error
}
