package model

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type UserStatus string

const (
	StatusInactive UserStatus = "inactive" // 注册后待激活
	StatusActive   UserStatus = "active"
	StatusBlocked  UserStatus = "blocked"
)

// swagger:model User
type User struct {
	BaseModel
	Username    string     `gorm:"size:100;uniqueIndex;not null" json:"username"` // 本地注册为小写用户名，OAuth用户为提供方subject
	Email       string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"size:100" json:"-"` // bcrypt哈希；纯OAuth账户为空串，不可用于本地登录
	FirstName   string     `gorm:"size:100" json:"firstName"`
	LastName    string     `gorm:"size:100" json:"lastName"`
	Role        UserRole   `gorm:"size:20;default:'user'" json:"role"`
	Status      UserStatus `gorm:"size:20;default:'inactive'" json:"status"`
	Level       Level      `gorm:"size:30;default:''" json:"level"`
	IsOAuthUser bool       `gorm:"default:false" json:"isOAuthUser"`
	ImageID     *uint      `gorm:"index" json:"imageId,omitempty"`
	Image       *Image     `gorm:"foreignKey:ImageID" json:"image,omitempty"`
	LastLogin   time.Time  `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// HasLocalCredential OAuth账户没有本地口令，不允许走本地登录
func (u *User) HasLocalCredential() bool {
	return u.Password != ""
}
