package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"presensia/backend/internal/dto"
	"presensia/backend/internal/service"
	"presensia/backend/pkg/response"
)

// AttendanceHandler 教师考勤模块 HTTP 处理器
// 签到/签退/周视图是教师自助操作，操作对象始终是当前登录教师
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// CheckIn 教师签到
// POST /api/v1/attendance/check-in
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	record, err := h.attendanceSvc.CheckIn(c.Request.Context(), userID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.Created(c, record)
}

// CheckOut 教师签退
// POST /api/v1/attendance/check-out
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	record, err := h.attendanceSvc.CheckOut(c.Request.Context(), userID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, record)
}

// WeeklyView 教师周视图
// GET /api/v1/attendance/weekly?week_offset=0
func (h *AttendanceHandler) WeeklyView(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.WeeklyViewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	view, err := h.attendanceSvc.WeeklyView(c.Request.Context(), userID, req.WeekOffset)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, view)
}

// RecordManual 管理员手工录入考勤
// POST /api/v1/attendance/manual
func (h *AttendanceHandler) RecordManual(c *gin.Context) {
	var req dto.RecordManualAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	record, err := h.attendanceSvc.RecordManual(c.Request.Context(), &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.Created(c, record)
}

// List 考勤列表查询
// GET /api/v1/attendance
func (h *AttendanceHandler) List(c *gin.Context) {
	var req dto.AttendanceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	records, total, err := h.attendanceSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OKPage(c, records, total, req.GetPage(), req.GetLimit())
}

func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAttendanceTeacherNotFound):
		response.NotFound(c, 13101, "教师不存在")
	case errors.Is(err, service.ErrAlreadyCheckedIn):
		response.Conflict(c, 13102, "今天已签到")
	case errors.Is(err, service.ErrAlreadyCheckedOut):
		response.Conflict(c, 13103, "今天已签退")
	case errors.Is(err, service.ErrMustCheckInFirst):
		response.BadRequest(c, 13104, "请先签到再签退")
	case errors.Is(err, service.ErrAttendanceExists):
		response.Conflict(c, 13105, "该教师当天已有考勤记录")
	case errors.Is(err, service.ErrAttendanceDateInvalid):
		response.BadRequest(c, 13106, "日期格式无效")
	default:
		response.InternalError(c)
	}
}

