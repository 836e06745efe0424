package model

// Question 内容理解测验题目
type Question struct {
	BaseModel
	ContentID uint     `gorm:"index;not null" json:"contentId"`
	Text      string   `gorm:"type:text;not null" json:"text"`
	Options   []Option `gorm:"foreignKey:QuestionID" json:"options"`
}

func (Question) TableName() string {
	return "questions"
}

type Option struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"size:512;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"-"`
}

func (Option) TableName() string {
	return "options"
}
