package repository

import (
	"e_learn_backend/internal/model"
	"strings"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}
	if user.LastLogin.IsZero() {
		user.LastLogin = now
	}
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.Preload("Image").First(&user, id).Error
	return &user, err
}

// FindByUsername 用户名统一小写存储，查询前归一化
func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", strings.ToLower(username)).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", strings.ToLower(email)).First(&user).Error
	return &user, err
}

// FindAll 软删除的账户由 gorm.DeletedAt 自动排除
func (r *UserRepository) FindAll() ([]model.User, error) {
	var users []model.User
	err := r.DB.Order("id").Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateStatus(userID uint, status model.UserStatus) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("status", status).
		Error
}

func (r *UserRepository) UpdateLevel(userID uint, level model.Level) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("level", level).
		Error
}

func (r *UserRepository) TouchLastLogin(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login", time.Now()).
		Error
}

// FindInactiveSince 查找最后登录早于给定时间的活跃用户，用于提醒邮件
func (r *UserRepository) FindInactiveSince(cutoff time.Time) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("last_login < ? AND status = ?", cutoff, model.StatusActive).
		Find(&users).Error
	return users, err
}
