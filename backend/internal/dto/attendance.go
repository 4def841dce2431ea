package dto

// ── 教师考勤模块 DTO ──

// RecordManualAttendanceRequest 管理员手工录入考勤
type RecordManualAttendanceRequest struct {
	TeacherID    string  `json:"teacher_id"     binding:"required,uuid"`
	Date         string  `json:"date"           binding:"required"` // "2024-09-02"
	Status       string  `json:"status"         binding:"required,oneof=HADIR SAKIT IZIN ALPHA TERLAMBAT"`
	CheckInTime  *string `json:"check_in_time"  binding:"omitempty"` // RFC3339
	CheckOutTime *string `json:"check_out_time" binding:"omitempty"`
	Notes        *string `json:"notes"          binding:"omitempty,max=500"`
}

// AttendanceListRequest 考勤列表查询参数
type AttendanceListRequest struct {
	PaginationRequest
	TeacherID string `form:"teacher_id" binding:"omitempty,uuid"`
	Status    string `form:"status"     binding:"omitempty,oneof=HADIR SAKIT IZIN ALPHA TERLAMBAT"`
	DateFrom  string `form:"date_from"  binding:"omitempty"`
	DateTo    string `form:"date_to"    binding:"omitempty"`
}

// WeeklyViewRequest 周视图查询参数
type WeeklyViewRequest struct {
	WeekOffset int `form:"week_offset"` // 0=本周，-1=上周，1=下周
}

// AttendanceResponse 考勤记录响应
type AttendanceResponse struct {
	ID            string     `json:"id"`
	TeacherID     string     `json:"teacher_id"`
	Teacher       *UserBrief `json:"teacher,omitempty"`
	Date          string     `json:"date"` // "2024-09-02"
	CheckInTime   *string    `json:"check_in_time,omitempty"`
	CheckOutTime  *string    `json:"check_out_time,omitempty"`
	Status        string     `json:"status"`
	Notes         *string    `json:"notes,omitempty"`
	IsScheduled   bool       `json:"is_scheduled"`
	OvertimeHours float64    `json:"overtime_hours"`
}

// WeeklyDayResponse 周视图中的一天
type WeeklyDayResponse struct {
	Date       string                 `json:"date"`
	DayOfWeek  int                    `json:"day_of_week"`
	Schedule   *ScheduleEntryResponse `json:"schedule,omitempty"`
	Attendance *AttendanceResponse    `json:"attendance,omitempty"`
	IsToday    bool                   `json:"is_today"`
}

// WeeklyViewResponse 周视图响应（周一为第一天，连续7天）
type WeeklyViewResponse struct {
	WeekStart string              `json:"week_start"`
	WeekEnd   string              `json:"week_end"`
	Days      []WeeklyDayResponse `json:"days"`
}
