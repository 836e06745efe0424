package model

// VocabularyEntry 用户在某内容下收集的生词
type VocabularyEntry struct {
	BaseModel
	UserID      uint   `gorm:"index;not null" json:"userId"`
	ContentID   uint   `gorm:"index;not null" json:"contentId"`
	Word        string `gorm:"size:255;not null" json:"word"`
	Translation string `gorm:"size:255;not null" json:"translation"`
	Definition  string `gorm:"size:512" json:"definition"` // 缺省为空串，不允许 NULL
}

func (VocabularyEntry) TableName() string {
	return "vocabulary_entries"
}
