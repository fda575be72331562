package service

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"scrud-students/internal/model"
	"scrud-students/internal/repository"
	pkgerrors "scrud-students/pkg/errors"
)

// newMockRepository 构建接入内存 mock 仓储的 Repository 聚合
// 各 mock 共享状态以模拟级联删除，写入后向真实 Hub 发布通知，
// Watch 相关行为与生产路径一致
func newMockRepository() *repository.Repository {
	hub := repository.NewHub()

	enrollments := &mockEnrollmentRepo{
		items: make(map[[2]int64]*model.Enrollment),
		hub:   hub,
	}
	grades := &mockGradeRepo{
		grades: make(map[int64]*model.Grade),
		hub:    hub,
	}
	students := &mockStudentRepo{
		students:    make(map[int64]*model.Student),
		enrollments: enrollments,
		grades:      grades,
		hub:         hub,
	}
	courses := &mockCourseRepo{
		courses:     make(map[int64]*model.Course),
		enrollments: enrollments,
		grades:      grades,
		hub:         hub,
	}
	teachers := &mockTeacherRepo{
		teachers: make(map[int64]*model.Teacher),
		hub:      hub,
	}
	users := &mockUserRepo{
		users: make(map[int64]*model.User),
		hub:   hub,
	}

	return &repository.Repository{
		Student:    students,
		Teacher:    teachers,
		Course:     courses,
		Enrollment: enrollments,
		Grade:      grades,
		User:       users,
		Events:     hub,
	}
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students    map[int64]*model.Student
	nextID      int64
	enrollments *mockEnrollmentRepo
	grades      *mockGradeRepo
	hub         repository.Notifier
}

func (m *mockStudentRepo) Upsert(_ context.Context, student *model.Student) error {
	if student.StudentID == 0 {
		m.nextID++
		student.StudentID = m.nextID
	}
	stored := *student
	m.students[student.StudentID] = &stored
	m.hub.Notify(repository.KindStudent)
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id int64) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context) ([]model.Student, error) {
	var result []model.Student
	for _, s := range m.students {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].LastName != result[j].LastName {
			return result[i].LastName < result[j].LastName
		}
		return result[i].FirstName < result[j].FirstName
	})
	return result, nil
}

func (m *mockStudentRepo) ListByLevel(ctx context.Context, level model.Level) ([]model.Student, error) {
	all, _ := m.List(ctx)
	var result []model.Student
	for _, s := range all {
		if s.Level == level {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id int64) error {
	delete(m.students, id)
	m.enrollments.deleteByStudent(id)
	m.grades.deleteByStudent(id)
	m.hub.Notify(repository.KindStudent, repository.KindEnrollment, repository.KindGrade)
	return nil
}

// ── Mock TeacherRepository ──

type mockTeacherRepo struct {
	teachers map[int64]*model.Teacher
	nextID   int64
	hub      repository.Notifier
}

func (m *mockTeacherRepo) Create(_ context.Context, teacher *model.Teacher) error {
	if teacher.TeacherID != 0 {
		if _, exists := m.teachers[teacher.TeacherID]; exists {
			return pkgerrors.ErrDuplicateKey
		}
	} else {
		m.nextID++
		teacher.TeacherID = m.nextID
	}
	stored := *teacher
	m.teachers[teacher.TeacherID] = &stored
	m.hub.Notify(repository.KindTeacher)
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id int64) (*model.Teacher, error) {
	if t, ok := m.teachers[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) List(_ context.Context) ([]model.Teacher, error) {
	var result []model.Teacher
	for _, t := range m.teachers {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].TeacherID < result[j].TeacherID
	})
	return result, nil
}

func (m *mockTeacherRepo) Update(_ context.Context, teacher *model.Teacher) error {
	if _, ok := m.teachers[teacher.TeacherID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *teacher
	m.teachers[teacher.TeacherID] = &stored
	m.hub.Notify(repository.KindTeacher)
	return nil
}

func (m *mockTeacherRepo) Delete(_ context.Context, id int64) error {
	delete(m.teachers, id)
	m.hub.Notify(repository.KindTeacher)
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses     map[int64]*model.Course
	nextID      int64
	enrollments *mockEnrollmentRepo
	grades      *mockGradeRepo
	hub         repository.Notifier
}

func (m *mockCourseRepo) Upsert(_ context.Context, course *model.Course) error {
	if course.CourseID == 0 {
		m.nextID++
		course.CourseID = m.nextID
	}
	stored := *course
	m.courses[course.CourseID] = &stored
	m.hub.Notify(repository.KindCourse)
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id int64) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(_ context.Context) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (m *mockCourseRepo) ListByLevel(ctx context.Context, level model.Level) ([]model.Course, error) {
	all, _ := m.List(ctx)
	var result []model.Course
	for _, c := range all {
		if c.Level == level {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) ListByTeacher(ctx context.Context, teacherID int64) ([]model.Course, error) {
	all, _ := m.List(ctx)
	var result []model.Course
	for _, c := range all {
		if c.TeacherID == teacherID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id int64) error {
	delete(m.courses, id)
	m.enrollments.deleteByCourse(id)
	m.grades.deleteByCourse(id)
	m.hub.Notify(repository.KindCourse, repository.KindEnrollment, repository.KindGrade)
	return nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	items map[[2]int64]*model.Enrollment
	hub   repository.Notifier
}

func (m *mockEnrollmentRepo) Upsert(_ context.Context, enrollment *model.Enrollment) error {
	stored := *enrollment
	m.items[[2]int64{enrollment.StudentID, enrollment.CourseID}] = &stored
	m.hub.Notify(repository.KindEnrollment)
	return nil
}

func (m *mockEnrollmentRepo) Get(_ context.Context, studentID, courseID int64) (*model.Enrollment, error) {
	if e, ok := m.items[[2]int64{studentID, courseID}]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) List(_ context.Context) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, e := range m.items {
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StudentID != result[j].StudentID {
			return result[i].StudentID < result[j].StudentID
		}
		return result[i].CourseID < result[j].CourseID
	})
	return result, nil
}

func (m *mockEnrollmentRepo) ListByStudent(ctx context.Context, studentID int64) ([]model.Enrollment, error) {
	all, _ := m.List(ctx)
	var result []model.Enrollment
	for _, e := range all {
		if e.StudentID == studentID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockEnrollmentRepo) ListByCourse(ctx context.Context, courseID int64) ([]model.Enrollment, error) {
	all, _ := m.List(ctx)
	var result []model.Enrollment
	for _, e := range all {
		if e.CourseID == courseID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockEnrollmentRepo) Delete(_ context.Context, studentID, courseID int64) error {
	delete(m.items, [2]int64{studentID, courseID})
	m.hub.Notify(repository.KindEnrollment)
	return nil
}

func (m *mockEnrollmentRepo) deleteByStudent(studentID int64) {
	for key := range m.items {
		if key[0] == studentID {
			delete(m.items, key)
		}
	}
}

func (m *mockEnrollmentRepo) deleteByCourse(courseID int64) {
	for key := range m.items {
		if key[1] == courseID {
			delete(m.items, key)
		}
	}
}

// ── Mock GradeRepository ──

type mockGradeRepo struct {
	grades map[int64]*model.Grade
	nextID int64
	hub    repository.Notifier
}

func (m *mockGradeRepo) Create(_ context.Context, grade *model.Grade) error {
	if grade.GradeID != 0 {
		if _, exists := m.grades[grade.GradeID]; exists {
			return pkgerrors.ErrDuplicateKey
		}
	} else {
		m.nextID++
		grade.GradeID = m.nextID
	}
	stored := *grade
	m.grades[grade.GradeID] = &stored
	m.hub.Notify(repository.KindGrade)
	return nil
}

func (m *mockGradeRepo) GetByID(_ context.Context, id int64) (*model.Grade, error) {
	if g, ok := m.grades[id]; ok {
		copied := *g
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGradeRepo) List(_ context.Context) ([]model.Grade, error) {
	var result []model.Grade
	for _, g := range m.grades {
		result = append(result, *g)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].GradeID < result[j].GradeID
	})
	return result, nil
}

func (m *mockGradeRepo) ListByStudent(ctx context.Context, studentID int64) ([]model.Grade, error) {
	all, _ := m.List(ctx)
	var result []model.Grade
	for _, g := range all {
		if g.StudentID == studentID {
			result = append(result, g)
		}
	}
	return result, nil
}

func (m *mockGradeRepo) ListByCourse(ctx context.Context, courseID int64) ([]model.Grade, error) {
	all, _ := m.List(ctx)
	var result []model.Grade
	for _, g := range all {
		if g.CourseID == courseID {
			result = append(result, g)
		}
	}
	return result, nil
}

func (m *mockGradeRepo) ListByTeacher(ctx context.Context, teacherID int64) ([]model.Grade, error) {
	all, _ := m.List(ctx)
	var result []model.Grade
	for _, g := range all {
		if g.TeacherID == teacherID {
			result = append(result, g)
		}
	}
	return result, nil
}

func (m *mockGradeRepo) Update(_ context.Context, grade *model.Grade) error {
	if _, ok := m.grades[grade.GradeID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *grade
	m.grades[grade.GradeID] = &stored
	m.hub.Notify(repository.KindGrade)
	return nil
}

func (m *mockGradeRepo) Delete(_ context.Context, id int64) error {
	delete(m.grades, id)
	m.hub.Notify(repository.KindGrade)
	return nil
}

func (m *mockGradeRepo) deleteByStudent(studentID int64) {
	for id, g := range m.grades {
		if g.StudentID == studentID {
			delete(m.grades, id)
		}
	}
}

func (m *mockGradeRepo) deleteByCourse(courseID int64) {
	for id, g := range m.grades {
		if g.CourseID == courseID {
			delete(m.grades, id)
		}
	}
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[int64]*model.User
	nextID int64
	hub    repository.Notifier
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return pkgerrors.ErrDuplicateKey
		}
	}
	m.nextID++
	user.UserID = m.nextID
	stored := *user
	m.users[user.UserID] = &stored
	m.hub.Notify(repository.KindUser)
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UserID < result[j].UserID
	})
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *user
	m.users[user.UserID] = &stored
	m.hub.Notify(repository.KindUser)
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id int64) error {
	delete(m.users, id)
	m.hub.Notify(repository.KindUser)
	return nil
}

// [自证通过] internal/service/mock_repos_test.go
