package service

import (
	"context"
	"testing"
	"time"

	"e_learn_backend/internal/model"
	"e_learn_backend/internal/repository"
	"e_learn_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOAuthFixture(t *testing.T) (*OAuthService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	cfg := newTestConfig()
	svc := NewOAuthService(
		repository.NewUserRepository(db),
		repository.NewImageRepository(db),
		NewStorageService(cfg),
	)
	return svc, db
}

func TestResolveFederatedUserCreates(t *testing.T) {
	svc, db := newOAuthFixture(t)
	ctx := context.Background()

	payload := []byte(`{"sub":"108234567890","email":"alice@gmail.com","given_name":"Alice","family_name":"Smith"}`)
	user, err := svc.ResolveFederatedUser(ctx, ProviderGoogle, payload)
	require.NoError(t, err)

	// 提供方subject即本地用户名，账户免激活且无本地口令
	assert.Equal(t, "108234567890", user.Username)
	assert.Equal(t, "alice@gmail.com", user.Email)
	assert.Equal(t, "Alice", user.FirstName)
	assert.Equal(t, model.StatusActive, user.Status)
	assert.True(t, user.IsOAuthUser)
	assert.False(t, user.HasLocalCredential())

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolveFederatedUserIdempotent(t *testing.T) {
	svc, db := newOAuthFixture(t)
	ctx := context.Background()

	payload := []byte(`{"sub":"108234567890","email":"alice@gmail.com"}`)
	first, err := svc.ResolveFederatedUser(ctx, ProviderGoogle, payload)
	require.NoError(t, err)

	// 登录时间回拨后二次落地应只刷新 last_login，不建新号
	stale := time.Now().Add(-24 * time.Hour)
	require.NoError(t, db.Model(first).Update("last_login", stale).Error)

	second, err := svc.ResolveFederatedUser(ctx, ProviderGoogle, payload)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var reloaded model.User
	require.NoError(t, db.First(&reloaded, first.ID).Error)
	assert.True(t, reloaded.LastLogin.After(stale))

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolveFederatedUserProviders(t *testing.T) {
	svc, _ := newOAuthFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		provider OAuthProvider
		payload  string
		wantUser string
	}{
		{"facebook id作为subject", ProviderFacebook, `{"id":"fb-777","email":"bob@fb.com","first_name":"Bob"}`, "fb-777"},
		{"linkedin sub作为subject", ProviderLinkedIn, `{"sub":"li-888","email":"carol@li.com"}`, "li-888"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.ResolveFederatedUser(ctx, tt.provider, []byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, user.Username)
		})
	}
}

func TestResolveFederatedUserRejects(t *testing.T) {
	svc, _ := newOAuthFixture(t)
	ctx := context.Background()

	// subject缺失
	_, err := svc.ResolveFederatedUser(ctx, ProviderGoogle, []byte(`{"email":"x@y.com"}`))
	assert.ErrorIs(t, err, util.ErrInvalidArgument)

	// 未知提供方
	_, err = svc.ResolveFederatedUser(ctx, OAuthProvider("github"), []byte(`{"sub":"1"}`))
	assert.ErrorIs(t, err, util.ErrInvalidArgument)

	// 坏payload
	_, err = svc.ResolveFederatedUser(ctx, ProviderGoogle, []byte(`not-json`))
	assert.Error(t, err)
}
