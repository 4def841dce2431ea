package dto

// ── 教师课表模块 DTO ──

// SetScheduleDayRequest 设置某个星期几的课表
type SetScheduleDayRequest struct {
	DayOfWeek int     `json:"day_of_week" binding:"required,min=1,max=7"` // 1=周一..7=周日
	Subject   *string `json:"subject"     binding:"omitempty,max=100"`
	Room      *string `json:"room"        binding:"omitempty,max=50"`
	StartTime *string `json:"start_time"  binding:"omitempty,len=5"` // "07:00"
	EndTime   *string `json:"end_time"    binding:"omitempty,len=5"`
}

// UpdateScheduleDayRequest 更新某个星期几的课表（不改变 teacher/day 身份字段）
type UpdateScheduleDayRequest struct {
	Subject   *string `json:"subject"    binding:"omitempty,max=100"`
	Room      *string `json:"room"       binding:"omitempty,max=50"`
	StartTime *string `json:"start_time" binding:"omitempty,len=5"`
	EndTime   *string `json:"end_time"   binding:"omitempty,len=5"`
	IsActive  *bool   `json:"is_active"`
}

// ScheduleEntryResponse 课表条目响应
type ScheduleEntryResponse struct {
	ID        string  `json:"id"`
	TeacherID string  `json:"teacher_id"`
	DayOfWeek int     `json:"day_of_week"`
	Subject   *string `json:"subject,omitempty"`
	Room      *string `json:"room,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	IsActive  bool    `json:"is_active"`
}
