package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"presensia/backend/internal/dto"
	"presensia/backend/internal/model"
	"presensia/backend/internal/repository"
	pkgerrors "presensia/backend/pkg/errors"
)

var (
	ErrAbsenceEkskulNotFound = errors.New("课外活动不存在")
	ErrAbsenceEkskulInactive = errors.New("课外活动或其教练已停用")
	ErrAbsenceExists         = errors.New("该活动当天已有教练缺勤记录")
	ErrAbsenceNotFound       = errors.New("缺勤记录不存在")
	ErrAbsenceTimeRange      = errors.New("结束时间必须晚于开始时间")
	ErrAbsenceReasonRequired = errors.New("非出勤状态必须填写事由")
	ErrAbsenceDateInvalid    = errors.New("日期格式无效，应为 YYYY-MM-DD")
)

// CoachAbsenceService 教练缺勤服务
// coach_id 始终由活动当前的教练分配派生，调用方不可指定
type CoachAbsenceService interface {
	Record(ctx context.Context, req *dto.RecordCoachAbsenceRequest) (*dto.CoachAbsenceResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCoachAbsenceRequest) (*dto.CoachAbsenceResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, req *dto.CoachAbsenceListRequest) ([]dto.CoachAbsenceResponse, int64, error)
}

type coachAbsenceService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewCoachAbsenceService 创建教练缺勤服务
func NewCoachAbsenceService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) CoachAbsenceService {
	return &coachAbsenceService{repo: repo, loc: loc, logger: logger}
}

func (s *coachAbsenceService) Record(ctx context.Context, req *dto.RecordCoachAbsenceRequest) (*dto.CoachAbsenceResponse, error) {
	date, err := parseDate(req.Date, s.loc)
	if err != nil {
		return nil, ErrAbsenceDateInvalid
	}

	record := &model.CoachAbsence{
		ExtracurricularID: req.ExtracurricularID,
		Date:              date,
		Status:            req.Status,
		Reason:            req.Reason,
		Notes:             req.Notes,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		ParticipantCount:  req.ParticipantCount,
	}

	if err := s.validate(ctx, record, ""); err != nil {
		return nil, err
	}

	if err := s.repo.CoachAbsence.Create(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, pkgerrors.ErrConflict) {
			return nil, ErrAbsenceExists
		}
		return nil, err
	}

	s.logger.Info("教练缺勤已记录",
		zap.String("extracurricular_id", req.ExtracurricularID),
		zap.String("date", req.Date),
		zap.String("status", req.Status))

	resp := s.toResponse(record)
	return &resp, nil
}

// Update 部分字段更新；合并后的完整记录重新走一遍全部校验
func (s *coachAbsenceService) Update(ctx context.Context, id string, req *dto.UpdateCoachAbsenceRequest) (*dto.CoachAbsenceResponse, error) {
	record, err := s.repo.CoachAbsence.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAbsenceNotFound
		}
		return nil, err
	}

	if req.ExtracurricularID != nil {
		record.ExtracurricularID = *req.ExtracurricularID
		record.Extracurricular = nil
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date, s.loc)
		if err != nil {
			return nil, ErrAbsenceDateInvalid
		}
		record.Date = date
	}
	if req.Status != nil {
		record.Status = *req.Status
	}
	if req.Reason != nil {
		record.Reason = req.Reason
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}
	if req.StartTime != nil {
		record.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		record.EndTime = req.EndTime
	}
	if req.ParticipantCount != nil {
		record.ParticipantCount = req.ParticipantCount
	}

	if err := s.validate(ctx, record, record.AbsenceID); err != nil {
		return nil, err
	}

	if err := s.repo.CoachAbsence.Update(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, pkgerrors.ErrConflict) {
			return nil, ErrAbsenceExists
		}
		return nil, err
	}

	resp := s.toResponse(record)
	return &resp, nil
}

// Delete 硬删除；无级联副作用
func (s *coachAbsenceService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.CoachAbsence.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAbsenceNotFound
		}
		return err
	}
	return s.repo.CoachAbsence.Delete(ctx, id)
}

func (s *coachAbsenceService) List(ctx context.Context, req *dto.CoachAbsenceListRequest) ([]dto.CoachAbsenceResponse, int64, error) {
	filter := repository.CoachAbsenceFilter{
		ExtracurricularID: req.ExtracurricularID,
		Status:            req.Status,
		Coach:             req.Coach,
	}
	if req.Date != "" {
		date, err := parseDate(req.Date, s.loc)
		if err != nil {
			return nil, 0, ErrAbsenceDateInvalid
		}
		filter.Date = &date
	}
	if req.DateFrom != "" {
		from, err := parseDate(req.DateFrom, s.loc)
		if err != nil {
			return nil, 0, ErrAbsenceDateInvalid
		}
		filter.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := parseDate(req.DateTo, s.loc)
		if err != nil {
			return nil, 0, ErrAbsenceDateInvalid
		}
		filter.DateTo = &to
	}

	records, total, err := s.repo.CoachAbsence.List(ctx, filter, req.GetOffset(), req.GetLimit())
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.CoachAbsenceResponse, 0, len(records))
	for i := range records {
		result = append(result, s.toResponse(&records[i]))
	}
	return result, total, nil
}

// validate 完整性校验，顺序固定：
// 活动存在 → 活动与教练启用 → 派生 coach_id → 日期冲突 → 时间区间 → 事由必填
// excludeID 非空时日期冲突检查放过自身（更新场景）
func (s *coachAbsenceService) validate(ctx context.Context, record *model.CoachAbsence, excludeID string) error {
	ekskul, err := s.repo.Extracurricular.GetByID(ctx, record.ExtracurricularID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAbsenceEkskulNotFound
		}
		return err
	}
	if !ekskul.IsActive {
		return ErrAbsenceEkskulInactive
	}
	if ekskul.Coach != nil && !ekskul.Coach.IsActive {
		return ErrAbsenceEkskulInactive
	}

	record.CoachID = ekskul.CoachID

	existing, err := s.repo.CoachAbsence.GetByExtracurricularAndDate(ctx, record.ExtracurricularID, record.Date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil && existing.AbsenceID != excludeID {
		return ErrAbsenceExists
	}

	if record.StartTime != nil && record.EndTime != nil {
		after, err := clockAfter(*record.EndTime, *record.StartTime)
		if err != nil || !after {
			return ErrAbsenceTimeRange
		}
	}

	if record.Status != model.StatusHadir {
		if record.Reason == nil || strings.TrimSpace(*record.Reason) == "" {
			return ErrAbsenceReasonRequired
		}
	}

	return nil
}

func (s *coachAbsenceService) toResponse(record *model.CoachAbsence) dto.CoachAbsenceResponse {
	resp := dto.CoachAbsenceResponse{
		ID:                record.AbsenceID,
		CoachID:           record.CoachID,
		ExtracurricularID: record.ExtracurricularID,
		Date:              formatDate(record.Date),
		Status:            record.Status,
		Reason:            record.Reason,
		Notes:             record.Notes,
		StartTime:         record.StartTime,
		EndTime:           record.EndTime,
		ParticipantCount:  record.ParticipantCount,
	}
	if record.Coach != nil {
		resp.Coach = toUserBrief(record.Coach)
	}
	if record.Extracurricular != nil {
		resp.Extracurricular = record.Extracurricular.Name
	}
	return resp
}

