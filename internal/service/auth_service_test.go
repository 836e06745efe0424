package service

import (
	"testing"
	"time"

	"e_learn_backend/internal/model"
	"e_learn_backend/internal/repository"
	"e_learn_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthFixture(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	cfg := newTestConfig()
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	tokenService := NewTokenService(tokenRepo, cfg.Activation.TokenTTLMinutes)
	mailService := newMailServiceWithMailer(&LogMailer{}, 16, 1, 1)
	t.Cleanup(mailService.Stop)
	return NewAuthService(userRepo, tokenService, mailService, cfg), db
}

func TestRegister(t *testing.T) {
	svc, _ := newAuthFixture(t)

	user, err := svc.Register(&Registration{
		Username: "Alice",
		Email:    "Alice@Example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)

	// 用户名和邮箱小写归一
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, model.StatusInactive, user.Status)
	assert.Equal(t, model.RoleUser, user.Role)

	// 密码落库为bcrypt哈希
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret-password")))
}

func TestRegisterDuplicates(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Register(&Registration{Username: "alice", Email: "alice@example.com", Password: "secret-password"})
	require.NoError(t, err)

	tests := []struct {
		name string
		reg  Registration
	}{
		{"用户名重复（大小写不同）", Registration{Username: "ALICE", Email: "other@example.com", Password: "secret-password"}},
		{"邮箱重复（大小写不同）", Registration{Username: "bob", Email: "Alice@Example.COM", Password: "secret-password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(&tt.reg)
			assert.ErrorIs(t, err, util.ErrDuplicateUser)
		})
	}
}

func TestActivate(t *testing.T) {
	svc, _ := newAuthFixture(t)

	user, err := svc.Register(&Registration{Username: "alice", Email: "alice@example.com", Password: "secret-password"})
	require.NoError(t, err)

	token, err := svc.TokenService.Issue(user)
	require.NoError(t, err)

	activated, err := svc.Activate(token.Token)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, activated.Status)

	// 令牌只能消费一次
	_, err = svc.Activate(token.Token)
	assert.ErrorIs(t, err, util.ErrTokenUsed)
}

func TestActivateExpiredToken(t *testing.T) {
	svc, db := newAuthFixture(t)

	user, err := svc.Register(&Registration{Username: "alice", Email: "alice@example.com", Password: "secret-password"})
	require.NoError(t, err)

	expired := &model.ActivationToken{
		Token:     "expiredtoken",
		UserID:    user.ID,
		ValidTill: time.Now().Add(-time.Minute),
	}
	require.NoError(t, db.Create(expired).Error)

	_, err = svc.Activate("expiredtoken")
	assert.ErrorIs(t, err, util.ErrTokenExpired)

	_, err = svc.Activate("nosuchtoken")
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestLogin(t *testing.T) {
	svc, db := newAuthFixture(t)

	user, err := svc.Register(&Registration{Username: "alice", Email: "alice@example.com", Password: "secret-password"})
	require.NoError(t, err)
	require.NoError(t, db.Model(user).Update("status", model.StatusActive).Error)

	token, loggedIn, err := svc.Login("alice", "secret-password")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestLoginRejections(t *testing.T) {
	svc, db := newAuthFixture(t)

	_, err := svc.Register(&Registration{Username: "inactive", Email: "inactive@example.com", Password: "secret-password"})
	require.NoError(t, err)

	blocked, err := svc.Register(&Registration{Username: "blocked", Email: "blocked@example.com", Password: "secret-password"})
	require.NoError(t, err)
	require.NoError(t, db.Model(blocked).Update("status", model.StatusBlocked).Error)

	// 纯OAuth账户没有本地口令
	oauthUser := &model.User{
		Username:    "google-sub-123",
		Email:       "federated@example.com",
		Password:    "",
		Status:      model.StatusActive,
		IsOAuthUser: true,
	}
	require.NoError(t, db.Create(oauthUser).Error)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"未知用户", "nobody", "whatever", util.ErrInvalidCredentials},
		{"密码错误", "inactive", "wrong-password", util.ErrInvalidCredentials},
		{"未激活账户", "inactive", "secret-password", util.ErrUserNotActivated},
		{"已封禁账户", "blocked", "secret-password", util.ErrUserBlocked},
		{"OAuth账户无本地口令", "google-sub-123", "", util.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(tt.username, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
