package service

import (
	"context"
	"e_learn_backend/internal/config"
	"e_learn_backend/internal/model"
	"e_learn_backend/internal/repository"
	"e_learn_backend/internal/util"
	"e_learn_backend/pkg/logger"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	contentCacheKeyFormat = "contents:%s:%s" // level, type
	contentCacheTTL       = 5 * time.Minute
)

// InProgressRedirect 阻塞时返回给展示层的跳转视图数据
type InProgressRedirect struct {
	InProgressLabel string         `json:"inProgressLabel"`
	Content         *model.Content `json:"content"`
}

// TestResult 内容测验判分结果
type TestResult struct {
	Score   int  `json:"score"`
	Total   int  `json:"total"`
	Passed  bool `json:"passed"`
	Content uint `json:"contentId"`
}

// ContentService 内容访问工作流：
// 有阻塞进度（in_progress/take_test）时不允许开始新内容，
// 列表请求直接失败并携带阻塞内容的结构化信息。
type ContentService struct {
	ContentRepo  *repository.ContentRepository
	ProgressRepo *repository.ProgressRepository
	QuestionRepo *repository.QuestionRepository
	Cfg          *config.Config
	Redis        *redis.Client
}

func NewContentService(
	contentRepo *repository.ContentRepository,
	progressRepo *repository.ProgressRepository,
	questionRepo *repository.QuestionRepository,
	cfg *config.Config,
	rdb *redis.Client,
) *ContentService {
	return &ContentService{
		ContentRepo:  contentRepo,
		ProgressRepo: progressRepo,
		QuestionRepo: questionRepo,
		Cfg:          cfg,
		Redis:        rdb,
	}
}

// ListAvailableContent 列出某等级、某类型下可开始的内容。
// 先查阻塞进度：存在则返回 ContentInProgressError（带内容ID和标题），
// 不存在则按 (level, type, 未删除) 查目录，结果经redis缓存。
func (s *ContentService) ListAvailableContent(ctx context.Context, userID uint, level model.Level, contentType model.ContentType) ([]model.Content, error) {
	if level == model.LevelDefault || level.Ordinal() < 0 {
		return nil, util.ErrInvalidArgument
	}

	blocking, err := s.ProgressRepo.FindBlocking(userID)
	if err != nil {
		return nil, err
	}
	if blocking != nil {
		return nil, &util.ContentInProgressError{
			ContentID:    blocking.ContentID,
			ContentTitle: blocking.Content.Title,
		}
	}

	return s.catalogByLevelAndType(ctx, level, contentType)
}

func (s *ContentService) catalogByLevelAndType(ctx context.Context, level model.Level, contentType model.ContentType) ([]model.Content, error) {
	key := fmt.Sprintf(contentCacheKeyFormat, level, contentType)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var contents []model.Content
			if err := json.Unmarshal([]byte(cached), &contents); err == nil {
				return contents, nil
			}
		}
	}

	contents, err := s.ContentRepo.FindByLevelAndType(level, contentType)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(contents); err == nil {
			if err := s.Redis.Set(ctx, key, data, contentCacheTTL).Err(); err != nil {
				logger.Log.Warn("content cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return contents, nil
}

// ResolveInProgressRedirect 根据阻塞错误取回被阻塞的内容，供展示层跳转。
// 内容在报错之后被删除属于可容忍的竞争，映射为 ErrNotFound 而非崩溃。
func (s *ContentService) ResolveInProgressRedirect(e *util.ContentInProgressError) (*InProgressRedirect, error) {
	if e == nil {
		return nil, util.ErrInvalidArgument
	}
	content, err := s.ContentRepo.FindByID(e.ContentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	return &InProgressRedirect{
		InProgressLabel: "Continue studying",
		Content:         content,
	}, nil
}

// StartContent 为用户开始一条内容。并发下由进度仓储的闸门唯一索引保证
// 同一用户最多一条阻塞记录；输掉竞争的请求同样收到 ContentInProgressError。
func (s *ContentService) StartContent(ctx context.Context, userID, contentID uint) (*model.UserContent, error) {
	content, err := s.ContentRepo.FindByID(contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}

	record, err := s.ProgressRepo.Start(userID, content.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.blockingError(userID, content)
		}
		return nil, err
	}
	record.Content = *content
	return record, nil
}

// blockingError 把并发/既有阻塞统一还原成结构化错误
func (s *ContentService) blockingError(userID uint, fallback *model.Content) error {
	blocking, err := s.ProgressRepo.FindBlocking(userID)
	if err == nil && blocking != nil {
		return &util.ContentInProgressError{
			ContentID:    blocking.ContentID,
			ContentTitle: blocking.Content.Title,
		}
	}
	return &util.ContentInProgressError{
		ContentID:    fallback.ID,
		ContentTitle: fallback.Title,
	}
}

// FinishReading 阅读完成，进入测验阶段（in_progress -> take_test）
func (s *ContentService) FinishReading(userID, contentID uint) (*model.UserContent, error) {
	record, err := s.ProgressRepo.FindByUserAndContent(userID, contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	if err := s.ProgressRepo.Advance(record, model.ProgressTakeTest); err != nil {
		return nil, util.ErrProgressTransition
	}
	return record, nil
}

// GetTest 返回测验题目，仅在 take_test 阶段可见
func (s *ContentService) GetTest(userID, contentID uint) ([]model.Question, error) {
	record, err := s.ProgressRepo.FindByUserAndContent(userID, contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	if record.Progress != model.ProgressTakeTest {
		return nil, util.ErrProgressTransition
	}
	return s.QuestionRepo.FindByContent(contentID)
}

// SubmitTest 判分并完成内容（take_test -> completed），释放阻塞闸门
func (s *ContentService) SubmitTest(userID, contentID uint, answers map[uint]uint) (*TestResult, error) {
	record, err := s.ProgressRepo.FindByUserAndContent(userID, contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	if record.Progress != model.ProgressTakeTest {
		return nil, util.ErrProgressTransition
	}

	questions, err := s.QuestionRepo.FindByContent(contentID)
	if err != nil {
		return nil, err
	}

	score := 0
	for _, q := range questions {
		chosen, ok := answers[q.ID]
		if !ok {
			continue
		}
		for _, opt := range q.Options {
			if opt.ID == chosen && opt.IsCorrect {
				score++
				break
			}
		}
	}

	if err := s.ProgressRepo.Complete(record, score); err != nil {
		return nil, err
	}

	return &TestResult{
		Score:   score,
		Total:   len(questions),
		Passed:  len(questions) == 0 || score*2 >= len(questions),
		Content: contentID,
	}, nil
}

// CreateContent 管理端新增内容，同时失效对应目录缓存
func (s *ContentService) CreateContent(ctx context.Context, content *model.Content) error {
	if !content.Level.Valid() || content.Level == model.LevelDefault {
		return util.ErrInvalidArgument
	}
	if err := s.ContentRepo.Create(content); err != nil {
		return err
	}
	s.invalidateCache(ctx, content.Level, content.ContentType)
	return nil
}

// DeleteContent 软删除内容，历史引用（进度、评论）保持可解析
func (s *ContentService) DeleteContent(ctx context.Context, id uint) error {
	content, err := s.ContentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotFound
		}
		return err
	}
	if err := s.ContentRepo.SoftDelete(id); err != nil {
		return err
	}
	s.invalidateCache(ctx, content.Level, content.ContentType)
	return nil
}

func (s *ContentService) invalidateCache(ctx context.Context, level model.Level, contentType model.ContentType) {
	if s.Redis == nil {
		return
	}
	key := fmt.Sprintf(contentCacheKeyFormat, level, contentType)
	if err := s.Redis.Del(ctx, key).Err(); err != nil {
		logger.Log.Warn("content cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}
