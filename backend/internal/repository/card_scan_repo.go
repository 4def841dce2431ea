package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"presensia/backend/internal/model"
)

// CardScanFilter 刷卡流水过滤条件
type CardScanFilter struct {
	UserID   string
	ScanType string
	DateFrom *time.Time
	DateTo   *time.Time
}

// CardScanRepository 刷卡流水数据访问接口（仅追加）
type CardScanRepository interface {
	Create(ctx context.Context, scan *model.CardScan) error
	List(ctx context.Context, filter CardScanFilter, offset, limit int) ([]model.CardScan, int64, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]model.CardScan, error)
}

type cardScanRepo struct {
	db *gorm.DB
}

// NewCardScanRepo 创建 CardScanRepository 实现
func NewCardScanRepo(db *gorm.DB) CardScanRepository {
	return &cardScanRepo{db: db}
}

func (r *cardScanRepo) Create(ctx context.Context, scan *model.CardScan) error {
	return r.db.WithContext(ctx).Create(scan).Error
}

func (r *cardScanRepo) List(ctx context.Context, filter CardScanFilter, offset, limit int) ([]model.CardScan, int64, error) {
	var scans []model.CardScan
	var total int64

	db := r.db.WithContext(ctx).Model(&model.CardScan{})
	if filter.UserID != "" {
		db = db.Where("user_id = ?", filter.UserID)
	}
	if filter.ScanType != "" {
		db = db.Where("scan_type = ?", filter.ScanType)
	}
	if filter.DateFrom != nil {
		db = db.Where("scan_time >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		db = db.Where("scan_time <= ?", *filter.DateTo)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("User").
		Offset(offset).Limit(limit).
		Order("scan_time DESC").
		Find(&scans).Error
	return scans, total, err
}

// ListByRange 按时间区间取全部流水，统计与报表在 Service 层聚合
func (r *cardScanRepo) ListByRange(ctx context.Context, from, to time.Time) ([]model.CardScan, error) {
	var scans []model.CardScan
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("scan_time >= ? AND scan_time <= ?", from, to).
		Order("scan_time DESC").
		Find(&scans).Error
	return scans, err
}
