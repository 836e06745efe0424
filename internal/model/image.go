package model

// Image 用户头像等图片的存储引用
type Image struct {
	BaseModel
	Name        string `gorm:"size:255;not null" json:"name"`
	URL         string `gorm:"size:512;not null" json:"url"`
	ContentType string `gorm:"size:100" json:"contentType"`
	Size        int64  `json:"size"`
}

func (Image) TableName() string {
	return "images"
}
