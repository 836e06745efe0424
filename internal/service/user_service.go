package service

import (
	"e_learn_backend/internal/model"
	"e_learn_backend/internal/repository"
	"e_learn_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetUser(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUserByUsername(username string) (*model.User, error) {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListUsers 管理端用户列表，软删除的账户不返回
func (s *UserService) ListUsers() ([]model.User, error) {
	return s.UserRepo.FindAll()
}

// ToggleStatus blocked 与 active 互切（管理端封禁/解封）
func (s *UserService) ToggleStatus(id uint) (*model.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	next := model.StatusBlocked
	if user.Status == model.StatusBlocked {
		next = model.StatusActive
	}
	if err := s.UserRepo.UpdateStatus(user.ID, next); err != nil {
		return nil, err
	}
	user.Status = next
	return user, nil
}

// SubmitPlacementTest 按分级测试得分落定用户等级
func (s *UserService) SubmitPlacementTest(userID uint, score int) (model.Level, error) {
	if score < 0 {
		return model.LevelDefault, util.NewValidationError("score", "must not be negative")
	}
	level := model.LevelFromScore(score)
	if err := s.UserRepo.UpdateLevel(userID, level); err != nil {
		return model.LevelDefault, err
	}
	return level, nil
}

// AccessibleLevels 用户可浏览的等级：自身等级及以下的阶梯前缀
func (s *UserService) AccessibleLevels(userID uint) ([]model.Level, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	levels, err := model.LevelsUpTo(user.Level)
	if err != nil {
		return nil, util.ErrInvalidArgument
	}
	return levels, nil
}

type ProfileUpdate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (s *UserService) UpdateProfile(userID uint, update ProfileUpdate) (*model.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	user.FirstName = update.FirstName
	user.LastName = update.LastName
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
