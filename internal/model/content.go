package model

type ContentType string

const (
	ContentStory   ContentType = "story"
	ContentGrammar ContentType = "grammar"
)

// swagger:model Content
type Content struct {
	BaseModel
	Title       string      `gorm:"size:255;not null" json:"title"`
	Body        string      `gorm:"type:text" json:"body"`
	Level       Level       `gorm:"size:30;index:idx_level_type;not null" json:"level"`
	ContentType ContentType `gorm:"size:20;index:idx_level_type" json:"contentType"`
}

func (Content) TableName() string {
	return "contents"
}
