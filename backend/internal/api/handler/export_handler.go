package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"presensia/backend/internal/dto"
	"presensia/backend/internal/service"
	"presensia/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportAttendanceRecap 导出月度考勤汇总
// GET /api/v1/export/attendance-recap?year=2024&month=9
func (h *ExportHandler) ExportAttendanceRecap(c *gin.Context) {
	var req dto.ExportRecapRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 17001, "year 和 month 为必填参数")
		return
	}

	buf, filename, err := h.exportSvc.ExportMonthlyRecap(c.Request.Context(), &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoTeachers):
		response.NotFound(c, 17101, "没有可导出的在职教师")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}

