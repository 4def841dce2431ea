package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"presensia/backend/internal/dto"
	"presensia/backend/internal/service"
	"presensia/backend/pkg/response"
)

// CoachAbsenceHandler 教练缺勤模块 HTTP 处理器
type CoachAbsenceHandler struct {
	absenceSvc service.CoachAbsenceService
}

// NewCoachAbsenceHandler 创建 CoachAbsenceHandler
func NewCoachAbsenceHandler(absenceSvc service.CoachAbsenceService) *CoachAbsenceHandler {
	return &CoachAbsenceHandler{absenceSvc: absenceSvc}
}

// Record 记录教练缺勤
// POST /api/v1/coach-absences
func (h *CoachAbsenceHandler) Record(c *gin.Context) {
	var req dto.RecordCoachAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "参数校验失败")
		return
	}

	record, err := h.absenceSvc.Record(c.Request.Context(), &req)
	if err != nil {
		h.handleAbsenceError(c, err)
		return
	}

	response.Created(c, record)
}

// Update 更新教练缺勤
// PUT /api/v1/coach-absences/:id
func (h *CoachAbsenceHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 15001, "缺勤记录ID不能为空")
		return
	}

	var req dto.UpdateCoachAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "参数校验失败")
		return
	}

	record, err := h.absenceSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleAbsenceError(c, err)
		return
	}

	response.OK(c, record)
}

// Delete 删除教练缺勤
// DELETE /api/v1/coach-absences/:id
func (h *CoachAbsenceHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 15001, "缺勤记录ID不能为空")
		return
	}

	if err := h.absenceSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleAbsenceError(c, err)
		return
	}

	response.OK(c, nil)
}

// List 缺勤列表查询
// GET /api/v1/coach-absences
func (h *CoachAbsenceHandler) List(c *gin.Context) {
	var req dto.CoachAbsenceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 15001, "参数校验失败")
		return
	}

	records, total, err := h.absenceSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleAbsenceError(c, err)
		return
	}

	response.OKPage(c, records, total, req.GetPage(), req.GetLimit())
}

func (h *CoachAbsenceHandler) handleAbsenceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAbsenceEkskulNotFound):
		response.NotFound(c, 15101, "课外活动不存在")
	case errors.Is(err, service.ErrAbsenceEkskulInactive):
		response.BadRequest(c, 15102, "课外活动或其教练已停用")
	case errors.Is(err, service.ErrAbsenceExists):
		response.Conflict(c, 15103, "该活动当天已有缺勤记录")
	case errors.Is(err, service.ErrAbsenceNotFound):
		response.NotFound(c, 15104, "缺勤记录不存在")
	case errors.Is(err, service.ErrAbsenceTimeRange):
		response.BadRequest(c, 15105, "结束时间必须晚于开始时间")
	case errors.Is(err, service.ErrAbsenceReasonRequired):
		response.BadRequest(c, 15106, "非出勤状态必须填写事由")
	case errors.Is(err, service.ErrAbsenceDateInvalid):
		response.BadRequest(c, 15107, "日期格式无效")
	default:
		response.InternalError(c)
	}
}

