package model

// User 用户表 — 对应 users
// NIS 为学生学号，NIP 为教职工编号，CardID 为实体卡唯一标识
type User struct {
	UserID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Username     string  `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	Email        string  `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string  `gorm:"type:varchar(10);not null"                      json:"role"` // ADMIN | GURU | STAFF | TU | SISWA
	NIS          *string `gorm:"type:varchar(20)"                               json:"nis,omitempty"`
	NIP          *string `gorm:"type:varchar(30)"                               json:"nip,omitempty"`
	CardID       *string `gorm:"type:varchar(50)"                               json:"card_id,omitempty"`
	IsActive     bool    `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
