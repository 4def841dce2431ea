package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"presensia/backend/internal/dto"
	"presensia/backend/internal/model"
	"presensia/backend/internal/repository"
)

// ReportService 考勤汇总报表服务（纯读侧投影，无独立状态）
// 空区间返回全零结构，不报错
type ReportService interface {
	AttendanceSummary(ctx context.Context, req *dto.AttendanceSummaryRequest) (*dto.AttendanceSummaryResponse, error)
}

type reportService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time // 可在测试中替换
}

// NewReportService 创建报表服务
func NewReportService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, loc: loc, logger: logger, now: time.Now}
}

func (s *reportService) AttendanceSummary(ctx context.Context, req *dto.AttendanceSummaryRequest) (*dto.AttendanceSummaryResponse, error) {
	today := normalizeDate(s.now(), s.loc)

	from := today.AddDate(0, 0, -29)
	if req.DateFrom != "" {
		parsed, err := parseDate(req.DateFrom, s.loc)
		if err != nil {
			return nil, ErrAttendanceDateInvalid
		}
		from = parsed
	}
	to := today
	if req.DateTo != "" {
		parsed, err := parseDate(req.DateTo, s.loc)
		if err != nil {
			return nil, ErrAttendanceDateInvalid
		}
		to = parsed
	}
	if to.Before(from) {
		return nil, ErrAttendanceDateInvalid
	}

	records, err := s.repo.Attendance.ListByRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	resp := &dto.AttendanceSummaryResponse{
		DateFrom:       formatDate(from),
		DateTo:         formatDate(to),
		TotalRecords:   int64(len(records)),
		DailyBreakdown: []dto.DailyAttendanceCount{},
	}

	dailyIndex := make(map[string]int)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		dailyIndex[formatDate(day)] = len(resp.DailyBreakdown)
		resp.DailyBreakdown = append(resp.DailyBreakdown, dto.DailyAttendanceCount{Date: formatDate(day)})
	}

	for i := range records {
		record := &records[i]
		addStatus(&resp.Status, record.Status)
		if idx, ok := dailyIndex[formatDate(record.Date)]; ok {
			resp.DailyBreakdown[idx].Total++
			addStatus(&resp.DailyBreakdown[idx].Status, record.Status)
		}
	}

	return resp, nil
}

func addStatus(counts *dto.StatusCount, status string) {
	switch status {
	case model.StatusHadir:
		counts.Hadir++
	case model.StatusSakit:
		counts.Sakit++
	case model.StatusIzin:
		counts.Izin++
	case model.StatusAlpha:
		counts.Alpha++
	case model.StatusTerlambat:
		counts.Terlambat++
	}
}

