package model

import (
	"time"
)

// 用户角色
const (
	RolePublic = "public"
	RoleAdmin  = "admin"
)

// User 用户模型
type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username" gorm:"unique"`
	Email        string    `json:"email" db:"email" gorm:"unique"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
	Profile      *Profile  `json:"profile,omitempty"` // 关联查询时填充
}

// Profile 用户资料，注册时随用户一起创建
type Profile struct {
	ID          int       `json:"id" db:"id"`
	UserID      int       `json:"userId" db:"user_id" gorm:"uniqueIndex"`
	Avatar      string    `json:"avatar" db:"avatar"`
	FullName    string    `json:"fullName" db:"full_name"`
	Age         int       `json:"age" db:"age"`
	Address     string    `json:"address" db:"address"`
	Description string    `json:"description" db:"description"`
	Level       int       `json:"level" db:"level"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"-" db:"updated_at"`
}
