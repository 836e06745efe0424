package service

import (
	"context"
	"sync"
	"testing"

	"e_learn_backend/internal/model"
	"e_learn_backend/internal/repository"
	"e_learn_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newContentFixture(t *testing.T) (*ContentService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewContentService(
		repository.NewContentRepository(db),
		repository.NewProgressRepository(db),
		repository.NewQuestionRepository(db),
		newTestConfig(),
		nil, // 测试不挂redis，目录走直查
	)
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hash",
		Status:   model.StatusActive,
		Level:    model.LevelIntermediate,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedContent(t *testing.T, db *gorm.DB, title string, level model.Level, ct model.ContentType) *model.Content {
	t.Helper()
	content := &model.Content{Title: title, Body: "body", Level: level, ContentType: ct}
	require.NoError(t, db.Create(content).Error)
	return content
}

func seedQuestion(t *testing.T, db *gorm.DB, contentID uint, correctIdx int) *model.Question {
	t.Helper()
	q := &model.Question{ContentID: contentID, Text: "q?"}
	require.NoError(t, db.Create(q).Error)
	for i := 0; i < 3; i++ {
		opt := &model.Option{QuestionID: q.ID, Text: "opt", IsCorrect: i == correctIdx}
		require.NoError(t, db.Create(opt).Error)
		q.Options = append(q.Options, *opt)
	}
	return q
}

func TestListAvailableContent(t *testing.T) {
	svc, db := newContentFixture(t)
	ctx := context.Background()
	user := seedUser(t, db, "alice")

	story := seedContent(t, db, "Story A", model.LevelBeginner, model.ContentStory)
	seedContent(t, db, "Story B", model.LevelBeginner, model.ContentGrammar)
	seedContent(t, db, "Story C", model.LevelIntermediate, model.ContentStory)

	contents, err := svc.ListAvailableContent(ctx, user.ID, model.LevelBeginner, model.ContentStory)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, story.ID, contents[0].ID)
}

func TestListAvailableContentInvalidLevel(t *testing.T) {
	svc, db := newContentFixture(t)
	user := seedUser(t, db, "alice")

	_, err := svc.ListAvailableContent(context.Background(), user.ID, model.LevelDefault, model.ContentStory)
	assert.ErrorIs(t, err, util.ErrInvalidArgument)

	_, err = svc.ListAvailableContent(context.Background(), user.ID, model.Level("bogus"), model.ContentStory)
	assert.ErrorIs(t, err, util.ErrInvalidArgument)
}

func TestListAvailableContentBlocked(t *testing.T) {
	svc, db := newContentFixture(t)
	ctx := context.Background()
	user := seedUser(t, db, "alice")
	content := seedContent(t, db, "Blocked Story", model.LevelBeginner, model.ContentStory)

	_, err := svc.StartContent(ctx, user.ID, content.ID)
	require.NoError(t, err)

	_, err = svc.ListAvailableContent(ctx, user.ID, model.LevelBeginner, model.ContentStory)
	blocked, ok := util.AsContentInProgress(err)
	require.True(t, ok, "expected ContentInProgressError, got %v", err)
	assert.Equal(t, content.ID, blocked.ContentID)
	assert.Equal(t, "Blocked Story", blocked.ContentTitle)
}

func TestStartContentConflict(t *testing.T) {
	svc, db := newContentFixture(t)
	ctx := context.Background()
	user := seedUser(t, db, "alice")
	first := seedContent(t, db, "First", model.LevelBeginner, model.ContentStory)
	second := seedContent(t, db, "Second", model.LevelBeginner, model.ContentStory)

	_, err := svc.StartContent(ctx, user.ID, first.ID)
	require.NoError(t, err)

	_, err = svc.StartContent(ctx, user.ID, second.ID)
	blocked, ok := util.AsContentInProgress(err)
	require.True(t, ok, "expected ContentInProgressError, got %v", err)
	assert.Equal(t, first.ID, blocked.ContentID)
	assert.Equal(t, "First", blocked.ContentTitle)

	_, err = svc.StartContent(ctx, user.ID, 9999)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestStartContentConcurrent(t *testing.T) {
	svc, db := newContentFixture(t)
	ctx := context.Background()
	user := seedUser(t, db, "alice")

	var contents []*model.Content
	for i := 0; i < 4; i++ {
		contents = append(contents, seedContent(t, db, "Race", model.LevelBeginner, model.ContentStory))
	}

	var wg sync.WaitGroup
	errs := make([]error, len(contents))
	for i, c := range contents {
		wg.Add(1)
		go func(i int, contentID uint) {
			defer wg.Done()
			_, errs[i] = svc.StartContent(ctx, user.ID, contentID)
		}(i, c.ID)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		_, ok := util.AsContentInProgress(err)
		assert.True(t, ok, "loser must get ContentInProgressError, got %v", err)
	}
	assert.Equal(t, 1, succeeded, "exactly one concurrent start may win")

	var count int64
	require.NoError(t, db.Model(&model.UserContent{}).
		Where("user_id = ? AND progress IN ?", user.ID, []model.Progress{model.ProgressInProgress, model.ProgressTakeTest}).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestContentWorkflow(t *testing.T) {
	svc, db := newContentFixture(t)
	ctx := context.Background()
	user := seedUser(t, db, "alice")
	content := seedContent(t, db, "Story", model.LevelBeginner, model.ContentStory)
	q1 := seedQuestion(t, db, content.ID, 0)
	q2 := seedQuestion(t, db, content.ID, 1)

	record, err := svc.StartContent(ctx, user.ID, content.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ProgressInProgress, record.Progress)

	// 阅读阶段不可见测验
	_, err = svc.GetTest(user.ID, content.ID)
	assert.ErrorIs(t, err, util.ErrProgressTransition)

	record, err = svc.FinishReading(user.ID, content.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ProgressTakeTest, record.Progress)

	questions, err := svc.GetTest(user.ID, content.ID)
	require.NoError(t, err)
	assert.Len(t, questions, 2)

	// 一对一错
	answers := map[uint]uint{
		q1.ID: q1.Options[0].ID,
		q2.ID: q2.Options[0].ID,
	}
	result, err := svc.SubmitTest(user.ID, content.ID, answers)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 2, result.Total)
	assert.True(t, result.Passed)

	// 完成后阻塞解除，可开始新内容
	next := seedContent(t, db, "Next", model.LevelBeginner, model.ContentStory)
	_, err = svc.StartContent(ctx, user.ID, next.ID)
	require.NoError(t, err)

	// 重复提交被拒
	_, err = svc.SubmitTest(user.ID, content.ID, answers)
	assert.ErrorIs(t, err, util.ErrProgressTransition)
}

func TestResolveInProgressRedirect(t *testing.T) {
	svc, db := newContentFixture(t)
	content := seedContent(t, db, "Story", model.LevelBeginner, model.ContentStory)

	redirect, err := svc.ResolveInProgressRedirect(&util.ContentInProgressError{
		ContentID:    content.ID,
		ContentTitle: content.Title,
	})
	require.NoError(t, err)
	assert.Equal(t, "Continue studying", redirect.InProgressLabel)
	assert.Equal(t, content.ID, redirect.Content.ID)

	_, err = svc.ResolveInProgressRedirect(&util.ContentInProgressError{ContentID: 9999})
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, err = svc.ResolveInProgressRedirect(nil)
	assert.ErrorIs(t, err, util.ErrInvalidArgument)
}
