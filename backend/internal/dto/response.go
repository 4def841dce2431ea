package dto

// ── 通用响应 ──

// UserBrief 用户简要信息（嵌入各模块响应）
type UserBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
	NIS  string `json:"nis,omitempty"`
	NIP  string `json:"nip,omitempty"`
}

// ── 分页请求 ──

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page  int `form:"page"  binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetLimit 获取每页数量（含默认值）
func (p *PaginationRequest) GetLimit() int {
	if p.Limit <= 0 {
		return 20
	}
	return p.Limit
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetLimit()
}

// [自证通过] internal/dto/response.go
