package repository

import (
	"context"

	"gorm.io/gorm"

	"presensia/backend/internal/model"
)

// ExtracurricularRepository 课外活动数据访问接口
type ExtracurricularRepository interface {
	Create(ctx context.Context, ekskul *model.Extracurricular) error
	GetByID(ctx context.Context, id string) (*model.Extracurricular, error)
	List(ctx context.Context, includeInactive bool) ([]model.Extracurricular, error)
	Update(ctx context.Context, ekskul *model.Extracurricular) error
	CountMembers(ctx context.Context, ekskulID string) (int64, error)
	HasOfficer(ctx context.Context, ekskulID, role string) (bool, error)
	AddMember(ctx context.Context, member *model.ExtracurricularMember) error
	RemoveMember(ctx context.Context, ekskulID, studentID string) error
}

type extracurricularRepo struct {
	db *gorm.DB
}

// NewExtracurricularRepo 创建 ExtracurricularRepository 实现
func NewExtracurricularRepo(db *gorm.DB) ExtracurricularRepository {
	return &extracurricularRepo{db: db}
}

func (r *extracurricularRepo) Create(ctx context.Context, ekskul *model.Extracurricular) error {
	return r.db.WithContext(ctx).Create(ekskul).Error
}

func (r *extracurricularRepo) GetByID(ctx context.Context, id string) (*model.Extracurricular, error) {
	var ekskul model.Extracurricular
	err := r.db.WithContext(ctx).
		Preload("Coach").
		Preload("Members").Preload("Members.Student").
		Where("extracurricular_id = ?", id).
		First(&ekskul).Error
	if err != nil {
		return nil, err
	}
	return &ekskul, nil
}

func (r *extracurricularRepo) List(ctx context.Context, includeInactive bool) ([]model.Extracurricular, error) {
	var ekskuls []model.Extracurricular
	db := r.db.WithContext(ctx).Preload("Coach").Preload("Members")
	if !includeInactive {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("name ASC").Find(&ekskuls).Error
	return ekskuls, err
}

func (r *extracurricularRepo) Update(ctx context.Context, ekskul *model.Extracurricular) error {
	return r.db.WithContext(ctx).Save(ekskul).Error
}

func (r *extracurricularRepo) CountMembers(ctx context.Context, ekskulID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ExtracurricularMember{}).
		Where("extracurricular_id = ?", ekskulID).
		Count(&count).Error
	return count, err
}

// HasOfficer 检查活动内是否已有指定职务（KETUA/SEKRETARIS）的成员
func (r *extracurricularRepo) HasOfficer(ctx context.Context, ekskulID, role string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ExtracurricularMember{}).
		Where("extracurricular_id = ? AND role = ?", ekskulID, role).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *extracurricularRepo) AddMember(ctx context.Context, member *model.ExtracurricularMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *extracurricularRepo) RemoveMember(ctx context.Context, ekskulID, studentID string) error {
	return r.db.WithContext(ctx).
		Where("extracurricular_id = ? AND student_id = ?", ekskulID, studentID).
		Delete(&model.ExtracurricularMember{}).Error
}
