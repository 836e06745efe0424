package repository

import (
	"e_learn_backend/internal/model"

	"gorm.io/gorm"
)

type ImageRepository struct {
	DB *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{DB: db}
}

func (r *ImageRepository) Create(image *model.Image) error {
	return r.DB.Create(image).Error
}

func (r *ImageRepository) FindByID(id uint) (*model.Image, error) {
	var image model.Image
	err := r.DB.First(&image, id).Error
	return &image, err
}
