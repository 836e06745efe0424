package service

import (
	"e_learn_backend/internal/model"
	"e_learn_backend/internal/repository"
	"e_learn_backend/internal/util"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type VocabularyService struct {
	VocabularyRepo *repository.VocabularyRepository
	ContentRepo    *repository.ContentRepository
}

func NewVocabularyService(vocabularyRepo *repository.VocabularyRepository, contentRepo *repository.ContentRepository) *VocabularyService {
	return &VocabularyService{
		VocabularyRepo: vocabularyRepo,
		ContentRepo:    contentRepo,
	}
}

type VocabularySubmission struct {
	Words        []string `json:"words"`
	Translations []string `json:"translations"`
	Definitions  []string `json:"definitions"`
}

// BuildSubmission 校验平行数组并组装词条。
// words 与 translations 必须非空且等长；definitions 可整体缺省或比前两者短，
// 缺的释义一律补空串。校验通过后整批原子写入。
func (s *VocabularyService) BuildSubmission(userID, contentID uint, sub VocabularySubmission) ([]model.VocabularyEntry, error) {
	if len(sub.Words) == 0 {
		return nil, util.NewValidationError("words", "must not be empty")
	}
	if len(sub.Translations) == 0 {
		return nil, util.NewValidationError("translations", "must not be empty")
	}
	if len(sub.Words) != len(sub.Translations) {
		return nil, util.NewValidationError("translations",
			fmt.Sprintf("length %d does not match words length %d", len(sub.Translations), len(sub.Words)))
	}
	if len(sub.Words) > util.MaxVocabularyBatch {
		return nil, util.NewValidationError("words",
			fmt.Sprintf("at most %d entries per submission", util.MaxVocabularyBatch))
	}

	if _, err := s.ContentRepo.FindByID(contentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}

	entries := make([]model.VocabularyEntry, len(sub.Words))
	for i := range sub.Words {
		definition := ""
		if i < len(sub.Definitions) {
			definition = sub.Definitions[i]
		}
		entries[i] = model.VocabularyEntry{
			UserID:      userID,
			ContentID:   contentID,
			Word:        sub.Words[i],
			Translation: sub.Translations[i],
			Definition:  definition,
		}
	}

	if err := s.VocabularyRepo.CreateBatch(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *VocabularyService) ListEntries(userID, contentID uint) ([]model.VocabularyEntry, error) {
	return s.VocabularyRepo.FindByUserAndContent(userID, contentID)
}
