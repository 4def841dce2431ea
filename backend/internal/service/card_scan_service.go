package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"presensia/backend/internal/dto"
	"presensia/backend/internal/model"
	"presensia/backend/internal/repository"
	"presensia/backend/pkg/realtime"
)

var (
	ErrCardNotFound     = errors.New("卡号未绑定任何用户")
	ErrCardUserInactive = errors.New("该卡对应的用户已停用")
	ErrScanDateInvalid  = errors.New("日期格式无效，应为 YYYY-MM-DD")
)

// CardScanService 刷卡流水服务
// 刷卡流水仅追加：接受即留痕，异常（如重复签到）靠审计复查而非写入前拦截
type CardScanService interface {
	Scan(ctx context.Context, req *dto.CardScanRequest) (*dto.CardScanResponse, error)
	Query(ctx context.Context, req *dto.CardScanListRequest) ([]dto.CardScanResponse, int64, error)
	Statistics(ctx context.Context, period string) (*dto.CardScanStatisticsResponse, error)
	Report(ctx context.Context, req *dto.CardScanReportRequest) (*dto.CardScanReportResponse, error)
}

type cardScanService struct {
	repo   *repository.Repository
	pub    Publisher
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time // 可在测试中替换
}

// NewCardScanService 创建刷卡服务
func NewCardScanService(repo *repository.Repository, pub Publisher, loc *time.Location, logger *zap.Logger) CardScanService {
	return &cardScanService{repo: repo, pub: pub, loc: loc, logger: logger, now: time.Now}
}

func (s *cardScanService) Scan(ctx context.Context, req *dto.CardScanRequest) (*dto.CardScanResponse, error) {
	user, err := s.repo.User.GetByCardID(ctx, req.CardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrCardUserInactive
	}

	scan := &model.CardScan{
		CardID:     req.CardID,
		UserID:     user.UserID,
		ScanType:   req.ScanType,
		ScanTime:   s.now().In(s.loc),
		Location:   req.Location,
		DeviceInfo: req.DeviceInfo,
		Notes:      req.Notes,
		IsValid:    true,
	}

	if err := s.repo.CardScan.Create(ctx, scan); err != nil {
		return nil, err
	}
	scan.User = user

	// 写入成功后才广播；广播是尽力而为的，失败不影响结果
	s.notifyAdmins(user, scan)

	resp := toCardScanResponse(scan)
	return &resp, nil
}

func (s *cardScanService) notifyAdmins(user *model.User, scan *model.CardScan) {
	action := "签到"
	if scan.ScanType == model.ScanTypeCheckOut {
		action = "签退"
	}
	s.pub.Publish(realtime.RoomAdmin, "card-scan-notification", dto.CardScanNotification{
		CardID:   scan.CardID,
		UserID:   user.UserID,
		UserName: user.Name,
		UserRole: user.Role,
		ScanType: scan.ScanType,
		Location: scan.Location,
		ScanTime: scan.ScanTime.Format(time.RFC3339),
		Message:  fmt.Sprintf("%s %s", user.Name, action),
	})
}

func (s *cardScanService) Query(ctx context.Context, req *dto.CardScanListRequest) ([]dto.CardScanResponse, int64, error) {
	filter := repository.CardScanFilter{
		UserID:   req.UserID,
		ScanType: req.ScanType,
	}
	if req.DateFrom != "" {
		from, err := parseDate(req.DateFrom, s.loc)
		if err != nil {
			return nil, 0, ErrScanDateInvalid
		}
		start := startOfDay(from, s.loc)
		filter.DateFrom = &start
	}
	if req.DateTo != "" {
		to, err := parseDate(req.DateTo, s.loc)
		if err != nil {
			return nil, 0, ErrScanDateInvalid
		}
		end := endOfDay(to, s.loc)
		filter.DateTo = &end
	}

	scans, total, err := s.repo.CardScan.List(ctx, filter, req.GetOffset(), req.GetLimit())
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.CardScanResponse, 0, len(scans))
	for i := range scans {
		result = append(result, toCardScanResponse(&scans[i]))
	}
	return result, total, nil
}

// Statistics 统计窗口：today=当天零点至今，week/month=从当前时刻向前滚动 7/30 天
func (s *cardScanService) Statistics(ctx context.Context, period string) (*dto.CardScanStatisticsResponse, error) {
	now := s.now().In(s.loc)

	var from time.Time
	switch period {
	case "week":
		from = now.AddDate(0, 0, -7)
	case "month":
		from = now.AddDate(0, 0, -30)
	default:
		period = "today"
		from = startOfDay(now, s.loc)
	}

	scans, err := s.repo.CardScan.ListByRange(ctx, from, now)
	if err != nil {
		return nil, err
	}

	resp := &dto.CardScanStatisticsResponse{
		Period:      period,
		TotalScans:  int64(len(scans)),
		RecentScans: []dto.CardScanResponse{},
		TopScanners: []dto.ScannerCount{},
	}

	users := make(map[string]string) // user_id -> name
	countByUser := make(map[string]int64)
	for i := range scans {
		scan := &scans[i]
		switch scan.ScanType {
		case model.ScanTypeCheckIn:
			resp.CheckInCount++
		case model.ScanTypeCheckOut:
			resp.CheckOutCount++
		}
		countByUser[scan.UserID]++
		if scan.User != nil {
			users[scan.UserID] = scan.User.Name
		}
	}
	resp.UniqueUsers = int64(len(countByUser))

	// 流水按时间倒序返回，前 10 条即最近 10 次
	for i := 0; i < len(scans) && i < 10; i++ {
		resp.RecentScans = append(resp.RecentScans, toCardScanResponse(&scans[i]))
	}

	for userID, count := range countByUser {
		resp.TopScanners = append(resp.TopScanners, dto.ScannerCount{
			UserID:   userID,
			UserName: users[userID],
			Count:    count,
		})
	}
	sort.Slice(resp.TopScanners, func(i, j int) bool {
		if resp.TopScanners[i].Count != resp.TopScanners[j].Count {
			return resp.TopScanners[i].Count > resp.TopScanners[j].Count
		}
		return resp.TopScanners[i].UserID < resp.TopScanners[j].UserID
	})
	if len(resp.TopScanners) > 10 {
		resp.TopScanners = resp.TopScanners[:10]
	}

	return resp, nil
}

func (s *cardScanService) Report(ctx context.Context, req *dto.CardScanReportRequest) (*dto.CardScanReportResponse, error) {
	now := s.now().In(s.loc)

	reportType := req.Type
	if reportType == "" {
		reportType = "daily"
	}

	var from, to time.Time
	if req.DateFrom != "" {
		parsed, err := parseDate(req.DateFrom, s.loc)
		if err != nil {
			return nil, ErrScanDateInvalid
		}
		from = parsed
	} else {
		switch reportType {
		case "weekly":
			from = normalizeDate(now.AddDate(0, 0, -6), s.loc)
		case "monthly":
			from = normalizeDate(now.AddDate(0, 0, -29), s.loc)
		default:
			from = normalizeDate(now, s.loc)
		}
	}
	if req.DateTo != "" {
		parsed, err := parseDate(req.DateTo, s.loc)
		if err != nil {
			return nil, ErrScanDateInvalid
		}
		to = parsed
	} else {
		to = normalizeDate(now, s.loc)
	}
	if to.Before(from) {
		return nil, ErrScanDateInvalid
	}

	scans, err := s.repo.CardScan.ListByRange(ctx, startOfDay(from, s.loc), endOfDay(to, s.loc))
	if err != nil {
		return nil, err
	}

	resp := &dto.CardScanReportResponse{
		Type:            reportType,
		DateFrom:        formatDate(from),
		DateTo:          formatDate(to),
		TotalScans:      int64(len(scans)),
		DailyBreakdown:  []dto.DailyScanCount{},
		HourlyHistogram: make([]dto.HourlyScanCount, 24),
		TopUsers:        []dto.ScannerCount{},
		TopLocations:    []dto.LocationCount{},
	}
	for h := 0; h < 24; h++ {
		resp.HourlyHistogram[h].Hour = h
	}

	dailyIndex := make(map[string]int)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		dailyIndex[formatDate(day)] = len(resp.DailyBreakdown)
		resp.DailyBreakdown = append(resp.DailyBreakdown, dto.DailyScanCount{Date: formatDate(day)})
	}

	users := make(map[string]string)
	countByUser := make(map[string]int64)
	countByLocation := make(map[string]int64)
	for i := range scans {
		scan := &scans[i]
		local := scan.ScanTime.In(s.loc)

		if idx, ok := dailyIndex[formatDate(local)]; ok {
			resp.DailyBreakdown[idx].TotalScans++
			switch scan.ScanType {
			case model.ScanTypeCheckIn:
				resp.DailyBreakdown[idx].CheckInCount++
			case model.ScanTypeCheckOut:
				resp.DailyBreakdown[idx].CheckOutCount++
			}
		}

		switch scan.ScanType {
		case model.ScanTypeCheckIn:
			resp.HourlyHistogram[local.Hour()].CheckInCount++
		case model.ScanTypeCheckOut:
			resp.HourlyHistogram[local.Hour()].CheckOutCount++
		}

		countByUser[scan.UserID]++
		if scan.User != nil {
			users[scan.UserID] = scan.User.Name
		}
		if scan.Location != nil && *scan.Location != "" {
			countByLocation[*scan.Location]++
		}
	}

	rangeDays := int64(to.Sub(from).Hours()/24) + 1
	if rangeDays > 0 {
		resp.AverageScansPerDay = int64(math.Round(float64(resp.TotalScans) / float64(rangeDays)))
	}

	for userID, count := range countByUser {
		resp.TopUsers = append(resp.TopUsers, dto.ScannerCount{
			UserID:   userID,
			UserName: users[userID],
			Count:    count,
		})
	}
	sort.Slice(resp.TopUsers, func(i, j int) bool {
		if resp.TopUsers[i].Count != resp.TopUsers[j].Count {
			return resp.TopUsers[i].Count > resp.TopUsers[j].Count
		}
		return resp.TopUsers[i].UserID < resp.TopUsers[j].UserID
	})
	if len(resp.TopUsers) > 10 {
		resp.TopUsers = resp.TopUsers[:10]
	}

	for location, count := range countByLocation {
		resp.TopLocations = append(resp.TopLocations, dto.LocationCount{Location: location, Count: count})
	}
	sort.Slice(resp.TopLocations, func(i, j int) bool {
		if resp.TopLocations[i].Count != resp.TopLocations[j].Count {
			return resp.TopLocations[i].Count > resp.TopLocations[j].Count
		}
		return resp.TopLocations[i].Location < resp.TopLocations[j].Location
	})
	if len(resp.TopLocations) > 10 {
		resp.TopLocations = resp.TopLocations[:10]
	}

	return resp, nil
}

func toCardScanResponse(scan *model.CardScan) dto.CardScanResponse {
	resp := dto.CardScanResponse{
		ID:         scan.CardScanID,
		CardID:     scan.CardID,
		UserID:     scan.UserID,
		ScanType:   scan.ScanType,
		ScanTime:   scan.ScanTime.Format(time.RFC3339),
		Location:   scan.Location,
		DeviceInfo: scan.DeviceInfo,
		Notes:      scan.Notes,
		IsValid:    scan.IsValid,
	}
	if scan.User != nil {
		resp.User = toUserBrief(scan.User)
	}
	return resp
}

// [自证通过] internal/service/card_scan_service.go
