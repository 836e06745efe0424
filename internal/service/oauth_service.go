package service

import (
	"context"
	"e_learn_backend/internal/model"
	"e_learn_backend/internal/repository"
	"e_learn_backend/internal/util"
	"e_learn_backend/pkg/logger"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OAuthProvider string

const (
	ProviderGoogle   OAuthProvider = "google"
	ProviderFacebook OAuthProvider = "facebook"
	ProviderLinkedIn OAuthProvider = "linkedin"
)

// federatedIdentity 各提供方payload解析后的统一身份
type federatedIdentity struct {
	Subject    string
	Email      string
	FirstName  string
	LastName   string
	PictureURL string
}

type googleUserInfo struct {
	Sub        string `json:"sub"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

type facebookUserInfo struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Picture   struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

type linkedInUserInfo struct {
	Sub        string `json:"sub"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

type OAuthService struct {
	UserRepo       *repository.UserRepository
	ImageRepo      *repository.ImageRepository
	StorageService *StorageService
}

func NewOAuthService(userRepo *repository.UserRepository, imageRepo *repository.ImageRepository, storageService *StorageService) *OAuthService {
	return &OAuthService{
		UserRepo:       userRepo,
		ImageRepo:      imageRepo,
		StorageService: storageService,
	}
}

func parseIdentity(provider OAuthProvider, payload []byte) (*federatedIdentity, error) {
	switch provider {
	case ProviderGoogle:
		var info googleUserInfo
		if err := json.Unmarshal(payload, &info); err != nil {
			return nil, err
		}
		return &federatedIdentity{
			Subject:    info.Sub,
			Email:      info.Email,
			FirstName:  info.GivenName,
			LastName:   info.FamilyName,
			PictureURL: info.Picture,
		}, nil
	case ProviderFacebook:
		var info facebookUserInfo
		if err := json.Unmarshal(payload, &info); err != nil {
			return nil, err
		}
		return &federatedIdentity{
			Subject:    info.ID,
			Email:      info.Email,
			FirstName:  info.FirstName,
			LastName:   info.LastName,
			PictureURL: info.Picture.Data.URL,
		}, nil
	case ProviderLinkedIn:
		var info linkedInUserInfo
		if err := json.Unmarshal(payload, &info); err != nil {
			return nil, err
		}
		return &federatedIdentity{
			Subject:    info.Sub,
			Email:      info.Email,
			FirstName:  info.GivenName,
			LastName:   info.FamilyName,
			PictureURL: info.Picture,
		}, nil
	}
	return nil, util.ErrInvalidArgument
}

// ResolveFederatedUser 联邦身份落地：提供方subject作为本地用户名。
// 已存在只刷新 last_login；否则尽力导入头像后创建预激活账户。
// OAuth账户不设本地口令（Password为空串），也不发激活邮件。
func (s *OAuthService) ResolveFederatedUser(ctx context.Context, provider OAuthProvider, payload []byte) (*model.User, error) {
	identity, err := parseIdentity(provider, payload)
	if err != nil {
		return nil, err
	}
	if identity.Subject == "" {
		return nil, util.ErrInvalidArgument
	}

	if user, err := s.UserRepo.FindByUsername(identity.Subject); err == nil {
		if err := s.UserRepo.TouchLastLogin(user.ID); err != nil {
			return nil, err
		}
		return user, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &model.User{
		Username:    identity.Subject,
		Email:       identity.Email,
		Password:    "", // 纯OAuth账户，无本地凭据
		FirstName:   identity.FirstName,
		LastName:    identity.LastName,
		Role:        model.RoleUser,
		Status:      model.StatusActive,
		IsOAuthUser: true,
		LastLogin:   time.Now(),
	}

	if identity.PictureURL != "" {
		if image := s.importAvatar(ctx, provider, identity); image != nil {
			user.ImageID = &image.ID
			user.Image = image
		}
	}

	if err := s.UserRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 并发首登：另一请求已建号，退化为刷新登录时间
			existing, ferr := s.UserRepo.FindByUsername(identity.Subject)
			if ferr != nil {
				return nil, ferr
			}
			if terr := s.UserRepo.TouchLastLogin(existing.ID); terr != nil {
				return nil, terr
			}
			return existing, nil
		}
		return nil, err
	}
	return user, nil
}

// importAvatar 尽力而为：任何失败都只打日志，不阻断建号
func (s *OAuthService) importAvatar(ctx context.Context, provider OAuthProvider, identity *federatedIdentity) *model.Image {
	name := fmt.Sprintf("%s_%s", provider, identity.Subject)
	url, contentType, size, err := s.StorageService.ImportFromURL(ctx, identity.PictureURL, name)
	if err != nil {
		logger.Log.Warn("avatar import failed, continuing without image",
			zap.String("provider", string(provider)),
			zap.String("subject", identity.Subject),
			zap.Error(err))
		return nil
	}

	image := &model.Image{
		Name:        name,
		URL:         url,
		ContentType: contentType,
		Size:        size,
	}
	if err := s.ImageRepo.Create(image); err != nil {
		logger.Log.Warn("avatar record save failed, continuing without image",
			zap.String("provider", string(provider)),
			zap.Error(err))
		return nil
	}
	return image
}
