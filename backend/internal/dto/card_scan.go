package dto

// ── 刷卡模块 DTO ──

// CardScanRequest 记录一次刷卡
type CardScanRequest struct {
	CardID     string  `json:"card_id"     binding:"required,max=50"`
	ScanType   string  `json:"scan_type"   binding:"required,oneof=CHECK_IN CHECK_OUT"`
	Location   *string `json:"location"    binding:"omitempty,max=100"`
	DeviceInfo *string `json:"device_info" binding:"omitempty,max=200"`
	Notes      *string `json:"notes"       binding:"omitempty,max=500"`
}

// CardScanListRequest 刷卡流水查询参数
type CardScanListRequest struct {
	PaginationRequest
	UserID   string `form:"user_id"   binding:"omitempty,uuid"`
	ScanType string `form:"scan_type" binding:"omitempty,oneof=CHECK_IN CHECK_OUT"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

// CardScanStatisticsRequest 刷卡统计查询参数
type CardScanStatisticsRequest struct {
	Period string `form:"period" binding:"omitempty,oneof=today week month"`
}

// CardScanReportRequest 刷卡报表查询参数
type CardScanReportRequest struct {
	Type     string `form:"type"      binding:"omitempty,oneof=daily weekly monthly"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

// CardScanResponse 刷卡记录响应
type CardScanResponse struct {
	ID         string     `json:"id"`
	CardID     string     `json:"card_id"`
	UserID     string     `json:"user_id"`
	User       *UserBrief `json:"user,omitempty"`
	ScanType   string     `json:"scan_type"`
	ScanTime   string     `json:"scan_time"`
	Location   *string    `json:"location,omitempty"`
	DeviceInfo *string    `json:"device_info,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
	IsValid    bool       `json:"is_valid"`
}

// CardScanNotification 实时推送给管理端的刷卡事件
type CardScanNotification struct {
	CardID   string  `json:"card_id"`
	UserID   string  `json:"user_id"`
	UserName string  `json:"user_name"`
	UserRole string  `json:"user_role"`
	ScanType string  `json:"scan_type"`
	Location *string `json:"location,omitempty"`
	ScanTime string  `json:"scan_time"`
	Message  string  `json:"message"`
}

// ScannerCount 按用户聚合的刷卡次数
type ScannerCount struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Count    int64  `json:"count"`
}

// CardScanStatisticsResponse 刷卡统计响应
type CardScanStatisticsResponse struct {
	Period        string             `json:"period"`
	TotalScans    int64              `json:"total_scans"`
	CheckInCount  int64              `json:"check_in_count"`
	CheckOutCount int64              `json:"check_out_count"`
	UniqueUsers   int64              `json:"unique_users"`
	RecentScans   []CardScanResponse `json:"recent_scans"`
	TopScanners   []ScannerCount     `json:"top_scanners"`
}

// DailyScanCount 按天聚合的刷卡次数
type DailyScanCount struct {
	Date          string `json:"date"`
	TotalScans    int64  `json:"total_scans"`
	CheckInCount  int64  `json:"check_in_count"`
	CheckOutCount int64  `json:"check_out_count"`
}

// HourlyScanCount 按小时聚合的刷卡次数（0..23）
type HourlyScanCount struct {
	Hour          int   `json:"hour"`
	CheckInCount  int64 `json:"check_in_count"`
	CheckOutCount int64 `json:"check_out_count"`
}

// LocationCount 按地点聚合的刷卡次数
type LocationCount struct {
	Location string `json:"location"`
	Count    int64  `json:"count"`
}

// CardScanReportResponse 刷卡报表响应
type CardScanReportResponse struct {
	Type               string            `json:"type"`
	DateFrom           string            `json:"date_from"`
	DateTo             string            `json:"date_to"`
	TotalScans         int64             `json:"total_scans"`
	AverageScansPerDay int64             `json:"average_scans_per_day"`
	DailyBreakdown     []DailyScanCount  `json:"daily_breakdown"`
	HourlyHistogram    []HourlyScanCount `json:"hourly_histogram"`
	TopUsers           []ScannerCount    `json:"top_users"`
	TopLocations       []LocationCount   `json:"top_locations"`
}
