package dto

// ── 汇总报表模块 DTO ──

// AttendanceSummaryRequest 考勤汇总查询参数
type AttendanceSummaryRequest struct {
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

// StatusCount 按状态聚合的记录数
type StatusCount struct {
	Hadir     int64 `json:"hadir"`
	Sakit     int64 `json:"sakit"`
	Izin      int64 `json:"izin"`
	Alpha     int64 `json:"alpha"`
	Terlambat int64 `json:"terlambat"`
}

// DailyAttendanceCount 按天聚合的考勤数
type DailyAttendanceCount struct {
	Date   string      `json:"date"`
	Total  int64       `json:"total"`
	Status StatusCount `json:"status"`
}

// AttendanceSummaryResponse 考勤汇总响应（空区间返回全零结构）
type AttendanceSummaryResponse struct {
	DateFrom       string                 `json:"date_from"`
	DateTo         string                 `json:"date_to"`
	TotalRecords   int64                  `json:"total_records"`
	Status         StatusCount            `json:"status"`
	DailyBreakdown []DailyAttendanceCount `json:"daily_breakdown"`
}

// ExportRecapRequest 考勤月度汇总导出参数
type ExportRecapRequest struct {
	Year  int `form:"year"  binding:"required,min=2000,max=2100"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}
