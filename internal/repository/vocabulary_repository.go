package repository

import (
	"e_learn_backend/internal/model"

	"gorm.io/gorm"
)

type VocabularyRepository struct {
	DB *gorm.DB
}

func NewVocabularyRepository(db *gorm.DB) *VocabularyRepository {
	return &VocabularyRepository{DB: db}
}

// CreateBatch 整批原子写入，任一条失败则回滚
func (r *VocabularyRepository) CreateBatch(entries []model.VocabularyEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(entries, len(entries)).Error
	})
}

func (r *VocabularyRepository) FindByUserAndContent(userID, contentID uint) ([]model.VocabularyEntry, error) {
	entries := []model.VocabularyEntry{}
	err := r.DB.Where("user_id = ? AND content_id = ?", userID, contentID).
		Order("id").
		Find(&entries).Error
	return entries, err
}
