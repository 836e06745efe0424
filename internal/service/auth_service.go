package service

import (
	"e_learn_backend/internal/config"
	"e_learn_backend/internal/model"
	"e_learn_backend/internal/repository"
	"e_learn_backend/internal/util"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo     *repository.UserRepository
	TokenService *TokenService
	MailService  *MailService
	Cfg          *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, tokenService *TokenService, mailService *MailService, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:     userRepo,
		TokenService: tokenService,
		MailService:  mailService,
		Cfg:          cfg,
	}
}

type Registration struct {
	Username string
	Email    string
	Password string
}

// Register 本地注册：用户名/邮箱小写归一后查重，密码bcrypt哈希，
// 账户以 inactive 状态落库，激活邮件异步投递（投递失败不影响注册）。
func (s *AuthService) Register(reg *Registration) (*model.User, error) {
	username := strings.ToLower(reg.Username)
	email := strings.ToLower(reg.Email)

	if _, err := s.UserRepo.FindByUsername(username); err == nil {
		return nil, util.ErrDuplicateUser
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.UserRepo.FindByEmail(email); err == nil {
		return nil, util.ErrDuplicateUser
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Role:     model.RoleUser,
		Status:   model.StatusInactive,
	}
	if err := s.UserRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrDuplicateUser
		}
		return nil, err
	}

	if err := s.SendActivationEmail(user); err != nil {
		// 令牌签发失败不回滚注册，用户可以重新请求激活邮件
		return user, nil
	}
	return user, nil
}

// SendActivationEmail 签发令牌并把激活邮件交给邮件队列（fire-and-forget）
func (s *AuthService) SendActivationEmail(user *model.User) error {
	token, err := s.TokenService.Issue(user)
	if err != nil {
		return err
	}
	body := activationEmailBody(user.Username, s.Cfg.Server.BaseURL, token.Token)
	s.MailService.Enqueue(user.Email, "Activate Your Account", body)
	return nil
}

// Activate 消费激活令牌并把账户置为 active
func (s *AuthService) Activate(tokenValue string) (*model.User, error) {
	token, err := s.TokenService.Consume(tokenValue)
	if err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByID(token.UserID)
	if err != nil {
		return nil, err
	}
	if user.Status == model.StatusInactive {
		if err := s.UserRepo.UpdateStatus(user.ID, model.StatusActive); err != nil {
			return nil, err
		}
		user.Status = model.StatusActive
	}
	return user, nil
}

// Login 本地登录。纯OAuth账户没有本地口令，直接拒绝。
func (s *AuthService) Login(username, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if !user.HasLocalCredential() {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	switch user.Status {
	case model.StatusBlocked:
		return "", nil, util.ErrUserBlocked
	case model.StatusInactive:
		return "", nil, util.ErrUserNotActivated
	}

	if err := s.UserRepo.TouchLastLogin(user.ID); err != nil {
		return "", nil, err
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(claims.UserID)
	return user
}
