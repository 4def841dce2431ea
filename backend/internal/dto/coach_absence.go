package dto

// ── 教练缺勤模块 DTO ──

// RecordCoachAbsenceRequest 记录教练缺勤
// coach_id 不可指定：写入时由课外活动当前的教练分配派生
type RecordCoachAbsenceRequest struct {
	ExtracurricularID string  `json:"extracurricular_id" binding:"required,uuid"`
	Date              string  `json:"date"               binding:"required"` // "2024-09-02"
	Status            string  `json:"status"             binding:"required,oneof=HADIR SAKIT IZIN ALPHA"`
	Reason            *string `json:"reason"             binding:"omitempty,max=500"`
	Notes             *string `json:"notes"              binding:"omitempty,max=500"`
	StartTime         *string `json:"start_time"         binding:"omitempty,len=5"`
	EndTime           *string `json:"end_time"           binding:"omitempty,len=5"`
	ParticipantCount  *int    `json:"participant_count"  binding:"omitempty,min=0"`
}

// UpdateCoachAbsenceRequest 更新教练缺勤（合并后整体重新校验）
type UpdateCoachAbsenceRequest struct {
	ExtracurricularID *string `json:"extracurricular_id" binding:"omitempty,uuid"`
	Date              *string `json:"date"`
	Status            *string `json:"status"             binding:"omitempty,oneof=HADIR SAKIT IZIN ALPHA"`
	Reason            *string `json:"reason"             binding:"omitempty,max=500"`
	Notes             *string `json:"notes"              binding:"omitempty,max=500"`
	StartTime         *string `json:"start_time"         binding:"omitempty,len=5"`
	EndTime           *string `json:"end_time"           binding:"omitempty,len=5"`
	ParticipantCount  *int    `json:"participant_count"  binding:"omitempty,min=0"`
}

// CoachAbsenceListRequest 缺勤列表查询参数
type CoachAbsenceListRequest struct {
	PaginationRequest
	ExtracurricularID string `form:"extracurricular_id" binding:"omitempty,uuid"`
	Status            string `form:"status"             binding:"omitempty,oneof=HADIR SAKIT IZIN ALPHA"`
	Coach             string `form:"coach"` // 教练姓名或 NIP 子串
	Date              string `form:"date"`
	DateFrom          string `form:"date_from"`
	DateTo            string `form:"date_to"`
}

// CoachAbsenceResponse 缺勤记录响应
type CoachAbsenceResponse struct {
	ID                string     `json:"id"`
	CoachID           string     `json:"coach_id"`
	Coach             *UserBrief `json:"coach,omitempty"`
	ExtracurricularID string     `json:"extracurricular_id"`
	Extracurricular   string     `json:"extracurricular,omitempty"`
	Date              string     `json:"date"`
	Status            string     `json:"status"`
	Reason            *string    `json:"reason,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
	StartTime         *string    `json:"start_time,omitempty"`
	EndTime           *string    `json:"end_time,omitempty"`
	ParticipantCount  *int       `json:"participant_count,omitempty"`
}
