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

func newVocabularyFixture(t *testing.T) (*VocabularyService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewVocabularyService(
		repository.NewVocabularyRepository(db),
		repository.NewContentRepository(db),
	)
	return svc, db
}

func TestBuildSubmission(t *testing.T) {
	svc, db := newVocabularyFixture(t)
	user := seedUser(t, db, "alice")
	content := seedContent(t, db, "Story", model.LevelBeginner, model.ContentStory)

	entries, err := svc.BuildSubmission(user.ID, content.ID, VocabularySubmission{
		Words:        []string{"umbrella", "rain", "bus"},
		Translations: []string{"зонт", "дождь", "автобус"},
		Definitions:  []string{"a device for rain"}, // 后两个缺省
	})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "a device for rain", entries[0].Definition)
	assert.Equal(t, "", entries[1].Definition)
	assert.Equal(t, "", entries[2].Definition)

	var count int64
	require.NoError(t, db.Model(&model.VocabularyEntry{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestBuildSubmissionValidation(t *testing.T) {
	svc, db := newVocabularyFixture(t)
	user := seedUser(t, db, "alice")
	content := seedContent(t, db, "Story", model.LevelBeginner, model.ContentStory)

	many := make([]string, util.MaxVocabularyBatch+1)
	for i := range many {
		many[i] = "word"
	}

	tests := []struct {
		name string
		sub  VocabularySubmission
	}{
		{"words为空", VocabularySubmission{Translations: []string{"a"}}},
		{"translations为空", VocabularySubmission{Words: []string{"a"}}},
		{"长度不一致", VocabularySubmission{Words: []string{"a", "b", "c"}, Translations: []string{"x", "y"}}},
		{"超出单次上限", VocabularySubmission{Words: many, Translations: many}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.BuildSubmission(user.ID, content.ID, tt.sub)
			assert.True(t, util.IsValidationError(err), "expected validation error, got %v", err)

			// 校验失败时不得有部分写入
			var count int64
			require.NoError(t, db.Model(&model.VocabularyEntry{}).Count(&count).Error)
			assert.EqualValues(t, 0, count)
		})
	}

	_, err := svc.BuildSubmission(user.ID, 9999, VocabularySubmission{
		Words:        []string{"a"},
		Translations: []string{"x"},
	})
	assert.ErrorIs(t, err, util.ErrNotFound)
}
