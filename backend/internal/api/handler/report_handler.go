package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"presensia/backend/internal/dto"
	"presensia/backend/internal/service"
	"presensia/backend/pkg/response"
)

// ReportHandler 汇总报表模块 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// AttendanceSummary 考勤汇总
// GET /api/v1/reports/attendance-summary?date_from=...&date_to=...
func (h *ReportHandler) AttendanceSummary(c *gin.Context) {
	var req dto.AttendanceSummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 17001, "参数校验失败")
		return
	}

	summary, err := h.reportSvc.AttendanceSummary(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrAttendanceDateInvalid) {
			response.BadRequest(c, 17002, "日期格式无效")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, summary)
}

