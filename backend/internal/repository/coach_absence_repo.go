package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"presensia/backend/internal/model"
)

// CoachAbsenceFilter 教练缺勤列表过滤条件
type CoachAbsenceFilter struct {
	ExtracurricularID string
	Status            string
	Coach             string // 教练姓名或 NIP 子串
	Date              *time.Time
	DateFrom          *time.Time
	DateTo            *time.Time
}

// CoachAbsenceRepository 教练缺勤数据访问接口
type CoachAbsenceRepository interface {
	Create(ctx context.Context, record *model.CoachAbsence) error
	GetByID(ctx context.Context, id string) (*model.CoachAbsence, error)
	GetByExtracurricularAndDate(ctx context.Context, ekskulID string, date time.Time) (*model.CoachAbsence, error)
	Update(ctx context.Context, record *model.CoachAbsence) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter CoachAbsenceFilter, offset, limit int) ([]model.CoachAbsence, int64, error)
}

type coachAbsenceRepo struct {
	db *gorm.DB
}

// NewCoachAbsenceRepo 创建 CoachAbsenceRepository 实现
func NewCoachAbsenceRepo(db *gorm.DB) CoachAbsenceRepository {
	return &coachAbsenceRepo{db: db}
}

func (r *coachAbsenceRepo) Create(ctx context.Context, record *model.CoachAbsence) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *coachAbsenceRepo) GetByID(ctx context.Context, id string) (*model.CoachAbsence, error) {
	var record model.CoachAbsence
	err := r.db.WithContext(ctx).
		Preload("Coach").
		Preload("Extracurricular").
		Where("absence_id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *coachAbsenceRepo) GetByExtracurricularAndDate(ctx context.Context, ekskulID string, date time.Time) (*model.CoachAbsence, error) {
	var record model.CoachAbsence
	err := r.db.WithContext(ctx).
		Where("extracurricular_id = ? AND date = ?", ekskulID, date).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *coachAbsenceRepo) Update(ctx context.Context, record *model.CoachAbsence) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Delete 硬删除，无级联副作用
func (r *coachAbsenceRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("absence_id = ?", id).
		Delete(&model.CoachAbsence{}).Error
}

func (r *coachAbsenceRepo) List(ctx context.Context, filter CoachAbsenceFilter, offset, limit int) ([]model.CoachAbsence, int64, error) {
	var records []model.CoachAbsence
	var total int64

	db := r.db.WithContext(ctx).Model(&model.CoachAbsence{})
	if filter.ExtracurricularID != "" {
		db = db.Where("extracurricular_id = ?", filter.ExtracurricularID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Coach != "" {
		// 按教练姓名或 NIP 子串过滤
		db = db.Joins("JOIN users ON users.user_id = coach_absences.coach_id").
			Where("users.name ILIKE ? OR users.nip ILIKE ?", "%"+filter.Coach+"%", "%"+filter.Coach+"%")
	}
	if filter.Date != nil {
		db = db.Where("date = ?", *filter.Date)
	}
	if filter.DateFrom != nil {
		db = db.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		db = db.Where("date <= ?", *filter.DateTo)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Coach").Preload("Extracurricular").
		Offset(offset).Limit(limit).
		Order("date DESC").
		Find(&records).Error
	return records, total, err
}
