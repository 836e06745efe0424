package service

import (
	"testing"

	"e_learn_backend/internal/model"
	"e_learn_backend/internal/repository"
	"e_learn_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserFixture(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewUserService(repository.NewUserRepository(db)), db
}

func TestSubmitPlacementTest(t *testing.T) {
	svc, db := newUserFixture(t)
	user := seedUser(t, db, "alice")

	level, err := svc.SubmitPlacementTest(user.ID, 18)
	require.NoError(t, err)
	assert.Equal(t, model.LevelIntermediate, level)

	reloaded, err := svc.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.LevelIntermediate, reloaded.Level)

	_, err = svc.SubmitPlacementTest(user.ID, -1)
	assert.True(t, util.IsValidationError(err))
}

func TestAccessibleLevels(t *testing.T) {
	svc, db := newUserFixture(t)
	user := seedUser(t, db, "alice") // seedUser 置 intermediate

	levels, err := svc.AccessibleLevels(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.Level{
		model.LevelBeginner,
		model.LevelElementary,
		model.LevelPreIntermediate,
		model.LevelIntermediate,
	}, levels)

	// 未做分级测试的用户没有可浏览等级
	fresh := &model.User{Username: "fresh", Email: "fresh@example.com", Password: "hash", Status: model.StatusActive}
	require.NoError(t, db.Create(fresh).Error)
	levels, err = svc.AccessibleLevels(fresh.ID)
	require.NoError(t, err)
	assert.Empty(t, levels)

	_, err = svc.AccessibleLevels(9999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestToggleStatus(t *testing.T) {
	svc, db := newUserFixture(t)
	user := seedUser(t, db, "alice")

	toggled, err := svc.ToggleStatus(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusBlocked, toggled.Status)

	toggled, err = svc.ToggleStatus(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, toggled.Status)

	_, err = svc.ToggleStatus(9999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	svc, db := newUserFixture(t)
	user := seedUser(t, db, "alice")

	updated, err := svc.UpdateProfile(user.ID, ProfileUpdate{FirstName: "Alice", LastName: "Smith"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.FirstName)
	assert.Equal(t, "Smith", updated.LastName)
}
