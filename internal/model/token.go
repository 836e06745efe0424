package model

import "time"

// ActivationToken 激活令牌，一次性使用，过期时间固定
type ActivationToken struct {
	BaseModel
	Token     string    `gorm:"size:64;uniqueIndex;not null" json:"-"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	ValidTill time.Time `gorm:"not null" json:"validTill"`
	Used      bool      `gorm:"default:false" json:"used"`
}

func (ActivationToken) TableName() string {
	return "activation_tokens"
}

func (t *ActivationToken) Expired(now time.Time) bool {
	return now.After(t.ValidTill)
}
