package repository

import (
	"e_learn_backend/internal/model"
	"e_learn_backend/pkg/logger"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var blockingStates = []model.Progress{model.ProgressInProgress, model.ProgressTakeTest}

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// FindBlocking 返回该用户当前的阻塞进度记录，没有则返回 (nil, nil)。
// 约定同一用户最多一条阻塞记录；若数据异常出现多条，取 id 最小的一条并告警。
func (r *ProgressRepository) FindBlocking(userID uint) (*model.UserContent, error) {
	var records []model.UserContent
	err := r.DB.Preload("Content").
		Where("user_id = ? AND progress IN ?", userID, blockingStates).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	if len(records) > 1 {
		logger.Log.Warn("user has more than one blocking progress record",
			zap.Uint("user_id", userID),
			zap.Int("count", len(records)))
	}
	return &records[0], nil
}

// Start 创建 in_progress 记录。事务内先锁定检查再插入；
// gate_key 唯一索引兜底并发下的先检查后写入竞争，输掉的一方拿到 gorm.ErrDuplicatedKey。
func (r *ProgressRepository) Start(userID, contentID uint) (*model.UserContent, error) {
	gate := userID
	record := &model.UserContent{
		UserID:    userID,
		ContentID: contentID,
		Progress:  model.ProgressInProgress,
		GateKey:   &gate,
	}

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.UserContent{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND progress IN ?", userID, blockingStates).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return gorm.ErrDuplicatedKey
		}
		return tx.Create(record).Error
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *ProgressRepository) FindByUserAndContent(userID, contentID uint) (*model.UserContent, error) {
	var record model.UserContent
	err := r.DB.Preload("Content").
		Where("user_id = ? AND content_id = ?", userID, contentID).
		First(&record).Error
	return &record, err
}

// Advance 单向推进进度状态，禁止回退
func (r *ProgressRepository) Advance(record *model.UserContent, next model.Progress) error {
	if !record.Progress.CanAdvanceTo(next) {
		return errors.New("illegal progress transition")
	}
	record.Progress = next
	return r.DB.Save(record).Error
}

// Complete 进入终态并释放闸门（gate_key 置 NULL）
func (r *ProgressRepository) Complete(record *model.UserContent, score int) error {
	if record.Progress == model.ProgressCompleted {
		return nil
	}
	record.Progress = model.ProgressCompleted
	record.GateKey = nil
	record.Score = &score
	return r.DB.Save(record).Error
}

func (r *ProgressRepository) FindCompleted(userID uint) ([]model.UserContent, error) {
	var records []model.UserContent
	err := r.DB.Preload("Content").
		Where("user_id = ? AND progress = ?", userID, model.ProgressCompleted).
		Order("id").
		Find(&records).Error
	return records, err
}
