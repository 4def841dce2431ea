package repository

import (
	"context"

	"gorm.io/gorm"

	"presensia/backend/internal/model"
)

// ScheduleRepository 教师课表数据访问接口
type ScheduleRepository interface {
	Create(ctx context.Context, entry *model.TeacherSchedule) error
	ListByTeacher(ctx context.Context, teacherID string) ([]model.TeacherSchedule, error)
	GetByTeacherAndDay(ctx context.Context, teacherID string, dayOfWeek int) (*model.TeacherSchedule, error)
	Update(ctx context.Context, entry *model.TeacherSchedule) error
	DeleteByTeacherAndDay(ctx context.Context, teacherID string, dayOfWeek int) error
}

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo 创建 ScheduleRepository 实现
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, entry *model.TeacherSchedule) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *scheduleRepo) ListByTeacher(ctx context.Context, teacherID string) ([]model.TeacherSchedule, error) {
	var entries []model.TeacherSchedule
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("day_of_week ASC").
		Find(&entries).Error
	return entries, err
}

func (r *scheduleRepo) GetByTeacherAndDay(ctx context.Context, teacherID string, dayOfWeek int) (*model.TeacherSchedule, error) {
	var entry model.TeacherSchedule
	err := r.db.WithContext(ctx).
		Where("teacher_id = ? AND day_of_week = ?", teacherID, dayOfWeek).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *scheduleRepo) Update(ctx context.Context, entry *model.TeacherSchedule) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// DeleteByTeacherAndDay 删除某天的课表；记录不存在时静默成功
func (r *scheduleRepo) DeleteByTeacherAndDay(ctx context.Context, teacherID string, dayOfWeek int) error {
	return r.db.WithContext(ctx).
		Where("teacher_id = ? AND day_of_week = ?", teacherID, dayOfWeek).
		Delete(&model.TeacherSchedule{}).Error
}
