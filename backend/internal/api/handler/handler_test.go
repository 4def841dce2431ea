package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"presensia/backend/internal/dto"
	"presensia/backend/internal/model"
	"presensia/backend/internal/service"
	"presensia/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult      *dto.TokenResponse
	loginErr         error
	logoutErr        error
	getCurrentResult *dto.UserDetailResponse
	getCurrentErr    error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string) error {
	return m.logoutErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserDetailResponse, error) {
	return m.getCurrentResult, m.getCurrentErr
}

// ── Mock ScheduleService ──

type mockScheduleService struct {
	listResult   []dto.ScheduleEntryResponse
	listErr      error
	setResult    *dto.ScheduleEntryResponse
	setErr       error
	updateResult *dto.ScheduleEntryResponse
	updateErr    error
	unsetErr     error
}

func (m *mockScheduleService) ListByTeacher(_ context.Context, _ string) ([]dto.ScheduleEntryResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockScheduleService) SetDay(_ context.Context, _ string, _ *dto.SetScheduleDayRequest) (*dto.ScheduleEntryResponse, error) {
	return m.setResult, m.setErr
}
func (m *mockScheduleService) UpdateDay(_ context.Context, _ string, _ int, _ *dto.UpdateScheduleDayRequest) (*dto.ScheduleEntryResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockScheduleService) UnsetDay(_ context.Context, _ string, _ int) error {
	return m.unsetErr
}

// ── Mock AttendanceService ──

type mockAttendanceService struct {
	checkInResult  *dto.AttendanceResponse
	checkInErr     error
	checkOutResult *dto.AttendanceResponse
	checkOutErr    error
	manualResult   *dto.AttendanceResponse
	manualErr      error
	weeklyResult   *dto.WeeklyViewResponse
	weeklyErr      error
	listResult     []dto.AttendanceResponse
	listTotal      int64
	listErr        error
}

func (m *mockAttendanceService) CheckIn(_ context.Context, _ string) (*dto.AttendanceResponse, error) {
	return m.checkInResult, m.checkInErr
}
func (m *mockAttendanceService) CheckOut(_ context.Context, _ string) (*dto.AttendanceResponse, error) {
	return m.checkOutResult, m.checkOutErr
}
func (m *mockAttendanceService) RecordManual(_ context.Context, _ *dto.RecordManualAttendanceRequest) (*dto.AttendanceResponse, error) {
	return m.manualResult, m.manualErr
}
func (m *mockAttendanceService) WeeklyView(_ context.Context, _ string, _ int) (*dto.WeeklyViewResponse, error) {
	return m.weeklyResult, m.weeklyErr
}
func (m *mockAttendanceService) List(_ context.Context, _ *dto.AttendanceListRequest) ([]dto.AttendanceResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}

// ── Mock CardScanService ──

type mockCardScanService struct {
	scanResult   *dto.CardScanResponse
	scanErr      error
	queryResult  []dto.CardScanResponse
	queryTotal   int64
	queryErr     error
	statsResult  *dto.CardScanStatisticsResponse
	statsErr     error
	reportResult *dto.CardScanReportResponse
	reportErr    error
}

func (m *mockCardScanService) Scan(_ context.Context, _ *dto.CardScanRequest) (*dto.CardScanResponse, error) {
	return m.scanResult, m.scanErr
}
func (m *mockCardScanService) Query(_ context.Context, _ *dto.CardScanListRequest) ([]dto.CardScanResponse, int64, error) {
	return m.queryResult, m.queryTotal, m.queryErr
}
func (m *mockCardScanService) Statistics(_ context.Context, _ string) (*dto.CardScanStatisticsResponse, error) {
	return m.statsResult, m.statsErr
}
func (m *mockCardScanService) Report(_ context.Context, _ *dto.CardScanReportRequest) (*dto.CardScanReportResponse, error) {
	return m.reportResult, m.reportErr
}

// ── Mock CoachAbsenceService ──

type mockCoachAbsenceService struct {
	recordResult *dto.CoachAbsenceResponse
	recordErr    error
	updateResult *dto.CoachAbsenceResponse
	updateErr    error
	deleteErr    error
	listResult   []dto.CoachAbsenceResponse
	listTotal    int64
	listErr      error
}

func (m *mockCoachAbsenceService) Record(_ context.Context, _ *dto.RecordCoachAbsenceRequest) (*dto.CoachAbsenceResponse, error) {
	return m.recordResult, m.recordErr
}
func (m *mockCoachAbsenceService) Update(_ context.Context, _ string, _ *dto.UpdateCoachAbsenceRequest) (*dto.CoachAbsenceResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockCoachAbsenceService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}
func (m *mockCoachAbsenceService) List(_ context.Context, _ *dto.CoachAbsenceListRequest) ([]dto.CoachAbsenceResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportMonthlyRecap(_ context.Context, _ *dto.ExportRecapRequest) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", model.RoleAdmin)
	c.Set("name", "Test User")
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

const (
	testUUID  = "b9d0f6f2-3d1e-4c2a-9a71-0f2d3a6c8e01"
	testUUID2 = "1c8b2a40-7f5e-4d9b-8b36-52e9d0c4aa77"
)

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
			User:         dto.UserBrief{ID: testUUID, Name: "Budi", Role: "GURU"},
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "budi.guru",
		Password: "Rahasia123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "budi.guru",
		Password: "salah123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_InactiveUser(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrUserInactive})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "budi.guru",
		Password: "Rahasia123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11002 {
		t.Errorf("expected error code 11002, got %d", resp.Code)
	}
}

func TestAuthHandler_Me_Success(t *testing.T) {
	mock := &mockAuthService{
		getCurrentResult: &dto.UserDetailResponse{
			ID:   "test-user-id",
			Name: "Test User",
			Role: "ADMIN",
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", func(c *gin.Context) {
		setAuth(c)
		h.Me(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", h.Me)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ScheduleHandler Tests
// ═══════════════════════════════════════════════════════════

func scheduleEntry() *dto.ScheduleEntryResponse {
	subject := "Matematika"
	return &dto.ScheduleEntryResponse{
		ID:        testUUID2,
		TeacherID: testUUID,
		DayOfWeek: 1,
		Subject:   &subject,
		IsActive:  true,
	}
}

func TestScheduleHandler_SetDay_Success(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{setResult: scheduleEntry()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/teachers/"+testUUID+"/schedule", jsonBody(dto.SetScheduleDayRequest{
		DayOfWeek: 1,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/teachers/:id/schedule", h.SetDay)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestScheduleHandler_SetDay_Conflict(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{setErr: service.ErrScheduleDayTaken})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/teachers/"+testUUID+"/schedule", jsonBody(dto.SetScheduleDayRequest{
		DayOfWeek: 1,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/teachers/:id/schedule", h.SetDay)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12103 {
		t.Errorf("expected error code 12103, got %d", resp.Code)
	}
}

func TestScheduleHandler_UpdateDay_InvalidDayParam(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/teachers/"+testUUID+"/schedule/8", jsonBody(dto.UpdateScheduleDayRequest{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/teachers/:id/schedule/:day", h.UpdateDay)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12002 {
		t.Errorf("expected error code 12002, got %d", resp.Code)
	}
}

func TestScheduleHandler_UnsetDay_Success(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/teachers/"+testUUID+"/schedule/3", nil)

	r := gin.New()
	r.DELETE("/teachers/:id/schedule/:day", h.UnsetDay)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestScheduleHandler_List_TeacherNotFound(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{listErr: service.ErrScheduleTeacherNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/teachers/"+testUUID+"/schedule", nil)

	r := gin.New()
	r.GET("/teachers/:id/schedule", func(c *gin.Context) {
		setAuth(c)
		h.List(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestScheduleHandler_List_GuruOtherTeacherForbidden(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/teachers/"+testUUID+"/schedule", nil)

	r := gin.New()
	r.GET("/teachers/:id/schedule", func(c *gin.Context) {
		c.Set("user_id", testUUID2)
		c.Set("role", model.RoleGuru)
		c.Set("name", "Guru Lain")
		h.List(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10003 {
		t.Errorf("expected code 10003, got %d", resp.Code)
	}
}

func TestScheduleHandler_List_GuruOwnSchedule(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/teachers/"+testUUID+"/schedule", nil)

	r := gin.New()
	r.GET("/teachers/:id/schedule", func(c *gin.Context) {
		c.Set("user_id", testUUID)
		c.Set("role", model.RoleGuru)
		c.Set("name", "Guru Sendiri")
		h.List(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AttendanceHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAttendanceHandler_CheckIn_Success(t *testing.T) {
	mock := &mockAttendanceService{
		checkInResult: &dto.AttendanceResponse{
			ID:        testUUID2,
			TeacherID: "test-user-id",
			Date:      "2024-09-02",
			Status:    "HADIR",
		},
	}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance/check-in", nil)

	r := gin.New()
	r.POST("/attendance/check-in", func(c *gin.Context) {
		setAuth(c)
		h.CheckIn(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestAttendanceHandler_CheckIn_AlreadyCheckedIn(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{checkInErr: service.ErrAlreadyCheckedIn})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance/check-in", nil)

	r := gin.New()
	r.POST("/attendance/check-in", func(c *gin.Context) {
		setAuth(c)
		h.CheckIn(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13102 {
		t.Errorf("expected error code 13102, got %d", resp.Code)
	}
}

func TestAttendanceHandler_CheckOut_MustCheckInFirst(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{checkOutErr: service.ErrMustCheckInFirst})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance/check-out", nil)

	r := gin.New()
	r.POST("/attendance/check-out", func(c *gin.Context) {
		setAuth(c)
		h.CheckOut(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAttendanceHandler_WeeklyView_Success(t *testing.T) {
	mock := &mockAttendanceService{
		weeklyResult: &dto.WeeklyViewResponse{
			WeekStart: "2024-09-02",
			WeekEnd:   "2024-09-08",
			Days:      make([]dto.WeeklyDayResponse, 7),
		},
	}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/attendance/weekly?week_offset=-1", nil)

	r := gin.New()
	r.GET("/attendance/weekly", func(c *gin.Context) {
		setAuth(c)
		h.WeeklyView(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAttendanceHandler_RecordManual_Conflict(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{manualErr: service.ErrAttendanceExists})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance/manual", jsonBody(dto.RecordManualAttendanceRequest{
		TeacherID: testUUID,
		Date:      "2024-09-02",
		Status:    "SAKIT",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/attendance/manual", h.RecordManual)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13105 {
		t.Errorf("expected error code 13105, got %d", resp.Code)
	}
}

func TestAttendanceHandler_List_Paginated(t *testing.T) {
	mock := &mockAttendanceService{
		listResult: []dto.AttendanceResponse{
			{ID: testUUID2, TeacherID: testUUID, Date: "2024-09-02", Status: "HADIR"},
		},
		listTotal: 42,
	}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/attendance?page=2&limit=10", nil)

	r := gin.New()
	r.GET("/attendance", h.List)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Code int               `json:"code"`
		Data response.PageData `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Data.Pagination.Total != 42 {
		t.Errorf("expected total 42, got %d", resp.Data.Pagination.Total)
	}
	if resp.Data.Pagination.Page != 2 {
		t.Errorf("expected page 2, got %d", resp.Data.Pagination.Page)
	}
}

// ═══════════════════════════════════════════════════════════
// CardScanHandler Tests
// ═══════════════════════════════════════════════════════════

func TestCardScanHandler_Scan_Success(t *testing.T) {
	mock := &mockCardScanService{
		scanResult: &dto.CardScanResponse{
			ID:       testUUID2,
			CardID:   "CARD-001",
			UserID:   testUUID,
			ScanType: "CHECK_IN",
			IsValid:  true,
		},
	}
	h := NewCardScanHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/card-scans", jsonBody(dto.CardScanRequest{
		CardID:   "CARD-001",
		ScanType: "CHECK_IN",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/card-scans", h.Scan)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestCardScanHandler_Scan_CardNotFound(t *testing.T) {
	h := NewCardScanHandler(&mockCardScanService{scanErr: service.ErrCardNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/card-scans", jsonBody(dto.CardScanRequest{
		CardID:   "CARD-404",
		ScanType: "CHECK_IN",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/card-scans", h.Scan)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 16101 {
		t.Errorf("expected error code 16101, got %d", resp.Code)
	}
}

func TestCardScanHandler_Scan_InvalidScanType(t *testing.T) {
	h := NewCardScanHandler(&mockCardScanService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/card-scans", jsonBody(map[string]string{
		"card_id":   "CARD-001",
		"scan_type": "BUKA_PINTU",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/card-scans", h.Scan)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCardScanHandler_Statistics_Success(t *testing.T) {
	mock := &mockCardScanService{
		statsResult: &dto.CardScanStatisticsResponse{
			Period:     "today",
			TotalScans: 3,
		},
	}
	h := NewCardScanHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/card-scans/statistics?period=today", nil)

	r := gin.New()
	r.GET("/card-scans/statistics", h.Statistics)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestCardScanHandler_Report_InvalidRange(t *testing.T) {
	h := NewCardScanHandler(&mockCardScanService{reportErr: service.ErrScanDateInvalid})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/card-scans/report?type=daily&date_from=2024-09-10&date_to=2024-09-01", nil)

	r := gin.New()
	r.GET("/card-scans/report", h.Report)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 16103 {
		t.Errorf("expected error code 16103, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// CoachAbsenceHandler Tests
// ═══════════════════════════════════════════════════════════

func TestCoachAbsenceHandler_Record_Success(t *testing.T) {
	mock := &mockCoachAbsenceService{
		recordResult: &dto.CoachAbsenceResponse{
			ID:                testUUID2,
			CoachID:           testUUID,
			ExtracurricularID: testUUID,
			Date:              "2024-09-02",
			Status:            "SAKIT",
		},
	}
	h := NewCoachAbsenceHandler(mock)

	reason := "Demam"
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/coach-absences", jsonBody(dto.RecordCoachAbsenceRequest{
		ExtracurricularID: testUUID,
		Date:              "2024-09-02",
		Status:            "SAKIT",
		Reason:            &reason,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/coach-absences", h.Record)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestCoachAbsenceHandler_Record_ReasonRequired(t *testing.T) {
	h := NewCoachAbsenceHandler(&mockCoachAbsenceService{recordErr: service.ErrAbsenceReasonRequired})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/coach-absences", jsonBody(dto.RecordCoachAbsenceRequest{
		ExtracurricularID: testUUID,
		Date:              "2024-09-02",
		Status:            "IZIN",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/coach-absences", h.Record)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCoachAbsenceHandler_Record_DuplicateDate(t *testing.T) {
	h := NewCoachAbsenceHandler(&mockCoachAbsenceService{recordErr: service.ErrAbsenceExists})

	reason := "Izin keluarga"
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/coach-absences", jsonBody(dto.RecordCoachAbsenceRequest{
		ExtracurricularID: testUUID,
		Date:              "2024-09-02",
		Status:            "IZIN",
		Reason:            &reason,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/coach-absences", h.Record)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestCoachAbsenceHandler_Delete_NotFound(t *testing.T) {
	h := NewCoachAbsenceHandler(&mockCoachAbsenceService{deleteErr: service.ErrAbsenceNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/coach-absences/"+testUUID2, nil)

	r := gin.New()
	r.DELETE("/coach-absences/:id", h.Delete)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportAttendanceRecap_Success(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("fake-xlsx-content"),
		filename: "rekap-kehadiran-2024-09.xlsx",
	}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/attendance-recap?year=2024&month=9", nil)

	r := gin.New()
	r.GET("/export/attendance-recap", h.ExportAttendanceRecap)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type: %s", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "rekap-kehadiran-2024-09.xlsx") {
		t.Errorf("expected filename in Content-Disposition, got %s", cd)
	}
	if w.Body.String() != "fake-xlsx-content" {
		t.Error("expected body to contain exported file bytes")
	}
}

func TestExportHandler_ExportAttendanceRecap_MissingParams(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/attendance-recap", nil)

	r := gin.New()
	r.GET("/export/attendance-recap", h.ExportAttendanceRecap)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_ExportAttendanceRecap_NoTeachers(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportNoTeachers})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/attendance-recap?year=2024&month=9", nil)

	r := gin.New()
	r.GET("/export/attendance-recap", h.ExportAttendanceRecap)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 17101 {
		t.Errorf("expected error code 17101, got %d", resp.Code)
	}
}

