package model

// Comment 内容下的评论，ParentID 为空表示一级评论。
// 父子只是弱引用：删除父评论不会级联删除子评论，只软删除自身。
type Comment struct {
	UUIDBase
	ContentID uint    `gorm:"index;not null" json:"contentId"`
	AuthorID  uint    `gorm:"index;not null" json:"authorId"`
	Author    User    `gorm:"foreignKey:AuthorID" json:"author"`
	ParentID  *string `gorm:"index;type:varchar(36)" json:"parentId"`
	Body      string  `gorm:"type:text;not null" json:"body"`
}

func (Comment) TableName() string {
	return "comments"
}
