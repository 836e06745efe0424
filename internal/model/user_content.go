package model

type Progress string

const (
	ProgressInProgress Progress = "in_progress"
	ProgressTakeTest   Progress = "take_test"
	ProgressCompleted  Progress = "completed"
)

// Blocking 处于该状态的进度记录会阻止用户开始新内容
func (p Progress) Blocking() bool {
	return p == ProgressInProgress || p == ProgressTakeTest
}

// ordinal 状态只允许向前推进
func (p Progress) ordinal() int {
	switch p {
	case ProgressInProgress:
		return 0
	case ProgressTakeTest:
		return 1
	case ProgressCompleted:
		return 2
	}
	return -1
}

func (p Progress) CanAdvanceTo(next Progress) bool {
	return next.ordinal() == p.ordinal()+1
}

// UserContent 用户-内容进度记录。
// GateKey 在阻塞状态下等于 UserID，完成后置 NULL；
// 唯一索引保证同一用户同时最多只有一条阻塞记录（MySQL 唯一索引允许多个 NULL）。
type UserContent struct {
	BaseModel
	UserID    uint     `gorm:"index;not null" json:"userId"`
	ContentID uint     `gorm:"index;not null" json:"contentId"`
	Content   Content  `gorm:"foreignKey:ContentID" json:"content,omitempty"`
	Progress  Progress `gorm:"size:20;default:'in_progress'" json:"progress"`
	GateKey   *uint    `gorm:"uniqueIndex" json:"-"`
	Score     *int     `json:"score,omitempty"` // 内容测验得分，完成后写入
}

func (UserContent) TableName() string {
	return "user_contents"
}
