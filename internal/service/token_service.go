package service

import (
	"e_learn_backend/internal/model"
	"e_learn_backend/internal/repository"
	"e_learn_backend/internal/util"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TokenService struct {
	TokenRepo *repository.TokenRepository
	TTL       time.Duration
}

func NewTokenService(tokenRepo *repository.TokenRepository, ttlMinutes int) *TokenService {
	return &TokenService{
		TokenRepo: tokenRepo,
		TTL:       time.Duration(ttlMinutes) * time.Minute,
	}
}

// GenerateToken 生成不带连字符的随机令牌串
func (s *TokenService) GenerateToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// Issue 为用户签发一次性激活令牌并落库
func (s *TokenService) Issue(user *model.User) (*model.ActivationToken, error) {
	token := &model.ActivationToken{
		Token:     s.GenerateToken(),
		UserID:    user.ID,
		ValidTill: time.Now().Add(s.TTL),
	}
	if err := s.TokenRepo.Create(token); err != nil {
		return nil, err
	}
	return token, nil
}

// Consume 校验并消费令牌：未知、已用、过期分别返回类型化错误。
// 过期只在消费时判定，没有后台定时器。
func (s *TokenService) Consume(tokenValue string) (*model.ActivationToken, error) {
	record, err := s.TokenRepo.FindByToken(tokenValue)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	if record.Used {
		return nil, util.ErrTokenUsed
	}
	if record.Expired(time.Now()) {
		return nil, util.ErrTokenExpired
	}
	if err := s.TokenRepo.MarkUsed(record); err != nil {
		return nil, err
	}
	return record, nil
}
