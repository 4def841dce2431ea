package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"presensia/backend/internal/model"
)

// AttendanceFilter 考勤列表过滤条件
type AttendanceFilter struct {
	TeacherID string
	Status    string
	DateFrom  *time.Time
	DateTo    *time.Time
}

// AttendanceRepository 教师考勤数据访问接口
type AttendanceRepository interface {
	Create(ctx context.Context, record *model.TeacherAttendance) error
	GetByTeacherAndDate(ctx context.Context, teacherID string, date time.Time) (*model.TeacherAttendance, error)
	Update(ctx context.Context, record *model.TeacherAttendance) error
	List(ctx context.Context, filter AttendanceFilter, offset, limit int) ([]model.TeacherAttendance, int64, error)
	ListByTeacherAndRange(ctx context.Context, teacherID string, from, to time.Time) ([]model.TeacherAttendance, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]model.TeacherAttendance, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实现
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, record *model.TeacherAttendance) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// GetByTeacherAndDate 查询某教师某天的考勤；date 需已归一化到当日 12:00
func (r *attendanceRepo) GetByTeacherAndDate(ctx context.Context, teacherID string, date time.Time) (*model.TeacherAttendance, error) {
	var record model.TeacherAttendance
	err := r.db.WithContext(ctx).
		Where("teacher_id = ? AND date = ?", teacherID, date).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepo) Update(ctx context.Context, record *model.TeacherAttendance) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *attendanceRepo) List(ctx context.Context, filter AttendanceFilter, offset, limit int) ([]model.TeacherAttendance, int64, error) {
	var records []model.TeacherAttendance
	var total int64

	db := r.db.WithContext(ctx).Model(&model.TeacherAttendance{})
	if filter.TeacherID != "" {
		db = db.Where("teacher_id = ?", filter.TeacherID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
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

	err := db.Preload("Teacher").
		Offset(offset).Limit(limit).
		Order("date DESC").
		Find(&records).Error
	return records, total, err
}

func (r *attendanceRepo) ListByTeacherAndRange(ctx context.Context, teacherID string, from, to time.Time) ([]model.TeacherAttendance, error) {
	var records []model.TeacherAttendance
	err := r.db.WithContext(ctx).
		Where("teacher_id = ? AND date >= ? AND date <= ?", teacherID, from, to).
		Order("date ASC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) ListByRange(ctx context.Context, from, to time.Time) ([]model.TeacherAttendance, error) {
	var records []model.TeacherAttendance
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC").
		Find(&records).Error
	return records, err
}
