package dto

// ── 课外活动模块 DTO ──

// CreateExtracurricularRequest 创建课外活动
type CreateExtracurricularRequest struct {
	Name       string  `json:"name"        binding:"required,min=2,max=100"`
	CoachID    string  `json:"coach_id"    binding:"required,uuid"`
	Schedule   *string `json:"schedule"    binding:"omitempty,max=200"`
	Venue      *string `json:"venue"       binding:"omitempty,max=100"`
	MaxMembers int     `json:"max_members" binding:"omitempty,min=1,max=500"`
}

// UpdateExtracurricularRequest 更新课外活动
type UpdateExtracurricularRequest struct {
	Name       *string `json:"name"        binding:"omitempty,min=2,max=100"`
	CoachID    *string `json:"coach_id"    binding:"omitempty,uuid"`
	Schedule   *string `json:"schedule"    binding:"omitempty,max=200"`
	Venue      *string `json:"venue"       binding:"omitempty,max=100"`
	MaxMembers *int    `json:"max_members" binding:"omitempty,min=1,max=500"`
	IsActive   *bool   `json:"is_active"`
}

// AddMemberRequest 学生加入课外活动
type AddMemberRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	Role      string `json:"role"       binding:"omitempty,oneof=KETUA SEKRETARIS ANGGOTA"`
}

// ExtracurricularResponse 课外活动响应
type ExtracurricularResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	CoachID     string     `json:"coach_id"`
	Coach       *UserBrief `json:"coach,omitempty"`
	Schedule    *string    `json:"schedule,omitempty"`
	Venue       *string    `json:"venue,omitempty"`
	MaxMembers  int        `json:"max_members"`
	MemberCount int        `json:"member_count"`
	IsActive    bool       `json:"is_active"`
}

// MemberResponse 成员响应
type MemberResponse struct {
	ID        string     `json:"id"`
	StudentID string     `json:"student_id"`
	Student   *UserBrief `json:"student,omitempty"`
	Role      string     `json:"role"`
}
