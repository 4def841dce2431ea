package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"presensia/backend/internal/dto"
	"presensia/backend/internal/service"
	"presensia/backend/pkg/response"
)

// CardScanHandler 刷卡模块 HTTP 处理器
type CardScanHandler struct {
	scanSvc service.CardScanService
}

// NewCardScanHandler 创建 CardScanHandler
func NewCardScanHandler(scanSvc service.CardScanService) *CardScanHandler {
	return &CardScanHandler{scanSvc: scanSvc}
}

// Scan 记录一次刷卡
// POST /api/v1/card-scans
func (h *CardScanHandler) Scan(c *gin.Context) {
	var req dto.CardScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 16001, "参数校验失败")
		return
	}

	scan, err := h.scanSvc.Scan(c.Request.Context(), &req)
	if err != nil {
		h.handleScanError(c, err)
		return
	}

	response.Created(c, scan)
}

// List 刷卡流水查询
// GET /api/v1/card-scans
func (h *CardScanHandler) List(c *gin.Context) {
	var req dto.CardScanListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 16001, "参数校验失败")
		return
	}

	scans, total, err := h.scanSvc.Query(c.Request.Context(), &req)
	if err != nil {
		h.handleScanError(c, err)
		return
	}

	response.OKPage(c, scans, total, req.GetPage(), req.GetLimit())
}

// Statistics 刷卡统计
// GET /api/v1/card-scans/statistics?period=today
func (h *CardScanHandler) Statistics(c *gin.Context) {
	var req dto.CardScanStatisticsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 16001, "参数校验失败")
		return
	}

	stats, err := h.scanSvc.Statistics(c.Request.Context(), req.Period)
	if err != nil {
		h.handleScanError(c, err)
		return
	}

	response.OK(c, stats)
}

// Report 刷卡报表
// GET /api/v1/card-scans/report?type=daily&date_from=...&date_to=...
func (h *CardScanHandler) Report(c *gin.Context) {
	var req dto.CardScanReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 16001, "参数校验失败")
		return
	}

	report, err := h.scanSvc.Report(c.Request.Context(), &req)
	if err != nil {
		h.handleScanError(c, err)
		return
	}

	response.OK(c, report)
}

func (h *CardScanHandler) handleScanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCardNotFound):
		response.NotFound(c, 16101, "卡号未绑定任何用户")
	case errors.Is(err, service.ErrCardUserInactive):
		response.BadRequest(c, 16102, "该卡对应的用户已停用")
	case errors.Is(err, service.ErrScanDateInvalid):
		response.BadRequest(c, 16103, "日期格式无效")
	default:
		response.InternalError(c)
	}
}

