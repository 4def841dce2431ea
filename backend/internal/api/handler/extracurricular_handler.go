package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"presensia/backend/internal/dto"
	"presensia/backend/internal/service"
	"presensia/backend/pkg/response"
)

// ExtracurricularHandler 课外活动模块 HTTP 处理器
type ExtracurricularHandler struct {
	ekskulSvc service.ExtracurricularService
}

// NewExtracurricularHandler 创建 ExtracurricularHandler
func NewExtracurricularHandler(ekskulSvc service.ExtracurricularService) *ExtracurricularHandler {
	return &ExtracurricularHandler{ekskulSvc: ekskulSvc}
}

// Create 创建课外活动
// POST /api/v1/extracurriculars
func (h *ExtracurricularHandler) Create(c *gin.Context) {
	var req dto.CreateExtracurricularRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	ekskul, err := h.ekskulSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleEkskulError(c, err)
		return
	}

	response.Created(c, ekskul)
}

// List 课外活动列表
// GET /api/v1/extracurriculars?include_inactive=true
func (h *ExtracurricularHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	ekskuls, err := h.ekskulSvc.List(c.Request.Context(), includeInactive)
	if err != nil {
		h.handleEkskulError(c, err)
		return
	}

	response.OK(c, gin.H{"list": ekskuls})
}

// Get 课外活动详情（含成员）
// GET /api/v1/extracurriculars/:id
func (h *ExtracurricularHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "活动ID不能为空")
		return
	}

	ekskul, members, err := h.ekskulSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleEkskulError(c, err)
		return
	}

	response.OK(c, gin.H{"extracurricular": ekskul, "members": members})
}

// Update 更新课外活动
// PUT /api/v1/extracurriculars/:id
func (h *ExtracurricularHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "活动ID不能为空")
		return
	}

	var req dto.UpdateExtracurricularRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	ekskul, err := h.ekskulSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleEkskulError(c, err)
		return
	}

	response.OK(c, ekskul)
}

// AddMember 学生加入课外活动
// POST /api/v1/extracurriculars/:id/members
func (h *ExtracurricularHandler) AddMember(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "活动ID不能为空")
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	member, err := h.ekskulSvc.AddMember(c.Request.Context(), id, &req)
	if err != nil {
		h.handleEkskulError(c, err)
		return
	}

	response.Created(c, member)
}

// RemoveMember 学生退出课外活动
// DELETE /api/v1/extracurriculars/:id/members/:studentId
func (h *ExtracurricularHandler) RemoveMember(c *gin.Context) {
	id := c.Param("id")
	studentID := c.Param("studentId")
	if id == "" || studentID == "" {
		response.BadRequest(c, 14001, "活动ID和学生ID不能为空")
		return
	}

	if err := h.ekskulSvc.RemoveMember(c.Request.Context(), id, studentID); err != nil {
		h.handleEkskulError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *ExtracurricularHandler) handleEkskulError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEkskulNotFound):
		response.NotFound(c, 14101, "课外活动不存在")
	case errors.Is(err, service.ErrEkskulCoachNotFound):
		response.NotFound(c, 14102, "教练不存在")
	case errors.Is(err, service.ErrEkskulCoachInvalid):
		response.BadRequest(c, 14103, "教练必须是在职教师或职工")
	case errors.Is(err, service.ErrEkskulStudentNotFound):
		response.NotFound(c, 14104, "学生不存在")
	case errors.Is(err, service.ErrEkskulNotStudent):
		response.BadRequest(c, 14105, "只有学生可以加入课外活动")
	case errors.Is(err, service.ErrEkskulFull):
		response.Conflict(c, 14106, "该活动成员已满")
	case errors.Is(err, service.ErrEkskulAlreadyMember):
		response.Conflict(c, 14107, "该学生已加入此活动")
	case errors.Is(err, service.ErrEkskulOfficerTaken):
		response.Conflict(c, 14108, "该职务已有人担任")
	case errors.Is(err, service.ErrEkskulMemberNotFound):
		response.NotFound(c, 14109, "该学生不是此活动的成员")
	default:
		response.InternalError(c)
	}
}

