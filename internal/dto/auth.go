package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Username   string `json:"username"    binding:"required"`
	Password   string `json:"password"    binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RegisterStudentRequest 学生注册请求（账号 + 学生档案一次提交）
type RegisterStudentRequest struct {
	Username string               `json:"username" binding:"required,min=3,max=50"`
	Password string               `json:"password" binding:"required,min=8,max=64"`
	Student  CreateStudentRequest `json:"student"  binding:"required"`
}

// RegisterTeacherRequest 教师注册请求（账号 + 教师档案一次提交）
type RegisterTeacherRequest struct {
	Username string               `json:"username" binding:"required,min=3,max=50"`
	Password string               `json:"password" binding:"required,min=8,max=64"`
	Teacher  CreateTeacherRequest `json:"teacher"  binding:"required"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=64"`
}

// ── 响应 ──

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// UserResponse 账号信息响应（脱敏，不含密码哈希）
type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	StudentID *int64 `json:"student_id,omitempty"`
	TeacherID *int64 `json:"teacher_id,omitempty"`
}

// RegisterStudentResponse 学生注册成功响应
type RegisterStudentResponse struct {
	User    UserResponse    `json:"user"`
	Student StudentResponse `json:"student"`
}

// RegisterTeacherResponse 教师注册成功响应
type RegisterTeacherResponse struct {
	User    UserResponse    `json:"user"`
	Teacher TeacherResponse `json:"teacher"`
}

// [自证通过] internal/dto/auth.go
