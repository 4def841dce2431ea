package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"presensia/backend/internal/model"
	"presensia/backend/internal/repository"
	pkgerrors "presensia/backend/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByCardID(_ context.Context, cardID string) (*model.User, error) {
	for _, u := range m.users {
		if u.CardID != nil && *u.CardID == cardID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByRole(_ context.Context, role string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == role && u.IsActive {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	entries   map[string]*model.TeacherSchedule
	idCounter int
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{entries: make(map[string]*model.TeacherSchedule)}
}

func (m *mockScheduleRepo) Create(_ context.Context, entry *model.TeacherSchedule) error {
	for _, e := range m.entries {
		if e.TeacherID == entry.TeacherID && e.DayOfWeek == entry.DayOfWeek {
			return pkgerrors.ErrConflict
		}
	}
	m.idCounter++
	entry.ScheduleID = fmt.Sprintf("sched-%d", m.idCounter)
	m.entries[entry.ScheduleID] = entry
	return nil
}

func (m *mockScheduleRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.TeacherSchedule, error) {
	var result []model.TeacherSchedule
	for _, e := range m.entries {
		if e.TeacherID == teacherID {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DayOfWeek < result[j].DayOfWeek })
	return result, nil
}

func (m *mockScheduleRepo) GetByTeacherAndDay(_ context.Context, teacherID string, dayOfWeek int) (*model.TeacherSchedule, error) {
	for _, e := range m.entries {
		if e.TeacherID == teacherID && e.DayOfWeek == dayOfWeek {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) Update(_ context.Context, entry *model.TeacherSchedule) error {
	m.entries[entry.ScheduleID] = entry
	return nil
}

func (m *mockScheduleRepo) DeleteByTeacherAndDay(_ context.Context, teacherID string, dayOfWeek int) error {
	for id, e := range m.entries {
		if e.TeacherID == teacherID && e.DayOfWeek == dayOfWeek {
			delete(m.entries, id)
		}
	}
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records   map[string]*model.TeacherAttendance
	idCounter int
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[string]*model.TeacherAttendance)}
}

func (m *mockAttendanceRepo) Create(_ context.Context, record *model.TeacherAttendance) error {
	for _, r := range m.records {
		if r.TeacherID == record.TeacherID && r.Date.Equal(record.Date) {
			return pkgerrors.ErrConflict
		}
	}
	m.idCounter++
	record.AttendanceID = fmt.Sprintf("att-%d", m.idCounter)
	m.records[record.AttendanceID] = record
	return nil
}

func (m *mockAttendanceRepo) GetByTeacherAndDate(_ context.Context, teacherID string, date time.Time) (*model.TeacherAttendance, error) {
	for _, r := range m.records {
		if r.TeacherID == teacherID && r.Date.Equal(date) {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) Update(_ context.Context, record *model.TeacherAttendance) error {
	m.records[record.AttendanceID] = record
	return nil
}

func (m *mockAttendanceRepo) List(_ context.Context, filter repository.AttendanceFilter, offset, limit int) ([]model.TeacherAttendance, int64, error) {
	var filtered []model.TeacherAttendance
	for _, r := range m.records {
		if filter.TeacherID != "" && r.TeacherID != filter.TeacherID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.DateFrom != nil && r.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && r.Date.After(*filter.DateTo) {
			continue
		}
		filtered = append(filtered, *r)
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Date.After(filtered[j].Date) })
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockAttendanceRepo) ListByTeacherAndRange(_ context.Context, teacherID string, from, to time.Time) ([]model.TeacherAttendance, error) {
	var result []model.TeacherAttendance
	for _, r := range m.records {
		if r.TeacherID == teacherID && !r.Date.Before(from) && !r.Date.After(to) {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockAttendanceRepo) ListByRange(_ context.Context, from, to time.Time) ([]model.TeacherAttendance, error) {
	var result []model.TeacherAttendance
	for _, r := range m.records {
		if !r.Date.Before(from) && !r.Date.After(to) {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// ── Mock ExtracurricularRepository ──

type mockExtracurricularRepo struct {
	ekskuls   map[string]*model.Extracurricular
	members   map[string]*model.ExtracurricularMember
	idCounter int
}

func newMockExtracurricularRepo() *mockExtracurricularRepo {
	return &mockExtracurricularRepo{
		ekskuls: make(map[string]*model.Extracurricular),
		members: make(map[string]*model.ExtracurricularMember),
	}
}

func (m *mockExtracurricularRepo) Create(_ context.Context, ekskul *model.Extracurricular) error {
	m.idCounter++
	ekskul.ExtracurricularID = fmt.Sprintf("ekskul-%d", m.idCounter)
	m.ekskuls[ekskul.ExtracurricularID] = ekskul
	return nil
}

func (m *mockExtracurricularRepo) GetByID(_ context.Context, id string) (*model.Extracurricular, error) {
	e, ok := m.ekskuls[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	cp.Members = nil
	for _, member := range m.members {
		if member.ExtracurricularID == id {
			cp.Members = append(cp.Members, *member)
		}
	}
	return &cp, nil
}

func (m *mockExtracurricularRepo) List(_ context.Context, includeInactive bool) ([]model.Extracurricular, error) {
	var result []model.Extracurricular
	for _, e := range m.ekskuls {
		if !includeInactive && !e.IsActive {
			continue
		}
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockExtracurricularRepo) Update(_ context.Context, ekskul *model.Extracurricular) error {
	m.ekskuls[ekskul.ExtracurricularID] = ekskul
	return nil
}

func (m *mockExtracurricularRepo) CountMembers(_ context.Context, ekskulID string) (int64, error) {
	var count int64
	for _, member := range m.members {
		if member.ExtracurricularID == ekskulID {
			count++
		}
	}
	return count, nil
}

func (m *mockExtracurricularRepo) HasOfficer(_ context.Context, ekskulID, role string) (bool, error) {
	for _, member := range m.members {
		if member.ExtracurricularID == ekskulID && member.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockExtracurricularRepo) AddMember(_ context.Context, member *model.ExtracurricularMember) error {
	for _, existing := range m.members {
		if existing.ExtracurricularID == member.ExtracurricularID && existing.StudentID == member.StudentID {
			return pkgerrors.ErrConflict
		}
	}
	m.idCounter++
	member.MemberID = fmt.Sprintf("member-%d", m.idCounter)
	m.members[member.MemberID] = member
	return nil
}

func (m *mockExtracurricularRepo) RemoveMember(_ context.Context, ekskulID, studentID string) error {
	for id, member := range m.members {
		if member.ExtracurricularID == ekskulID && member.StudentID == studentID {
			delete(m.members, id)
		}
	}
	return nil
}

// ── Mock CoachAbsenceRepository ──

type mockCoachAbsenceRepo struct {
	records   map[string]*model.CoachAbsence
	idCounter int
}

func newMockCoachAbsenceRepo() *mockCoachAbsenceRepo {
	return &mockCoachAbsenceRepo{records: make(map[string]*model.CoachAbsence)}
}

func (m *mockCoachAbsenceRepo) Create(_ context.Context, record *model.CoachAbsence) error {
	for _, r := range m.records {
		if r.ExtracurricularID == record.ExtracurricularID && r.Date.Equal(record.Date) {
			return pkgerrors.ErrConflict
		}
	}
	m.idCounter++
	record.AbsenceID = fmt.Sprintf("abs-%d", m.idCounter)
	m.records[record.AbsenceID] = record
	return nil
}

func (m *mockCoachAbsenceRepo) GetByID(_ context.Context, id string) (*model.CoachAbsence, error) {
	if r, ok := m.records[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCoachAbsenceRepo) GetByExtracurricularAndDate(_ context.Context, ekskulID string, date time.Time) (*model.CoachAbsence, error) {
	for _, r := range m.records {
		if r.ExtracurricularID == ekskulID && r.Date.Equal(date) {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCoachAbsenceRepo) Update(_ context.Context, record *model.CoachAbsence) error {
	m.records[record.AbsenceID] = record
	return nil
}

func (m *mockCoachAbsenceRepo) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

func (m *mockCoachAbsenceRepo) List(_ context.Context, filter repository.CoachAbsenceFilter, offset, limit int) ([]model.CoachAbsence, int64, error) {
	var filtered []model.CoachAbsence
	for _, r := range m.records {
		if filter.ExtracurricularID != "" && r.ExtracurricularID != filter.ExtracurricularID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.Coach != "" {
			if r.Coach == nil {
				continue
			}
			name := strings.ToLower(r.Coach.Name)
			nip := ""
			if r.Coach.NIP != nil {
				nip = strings.ToLower(*r.Coach.NIP)
			}
			needle := strings.ToLower(filter.Coach)
			if !strings.Contains(name, needle) && !strings.Contains(nip, needle) {
				continue
			}
		}
		if filter.Date != nil && !r.Date.Equal(*filter.Date) {
			continue
		}
		if filter.DateFrom != nil && r.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && r.Date.After(*filter.DateTo) {
			continue
		}
		filtered = append(filtered, *r)
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Date.After(filtered[j].Date) })
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

// ── Mock CardScanRepository ──

type mockCardScanRepo struct {
	scans     []model.CardScan
	idCounter int
	createErr error // 非 nil 时 Create 直接返回该错误
}

func newMockCardScanRepo() *mockCardScanRepo {
	return &mockCardScanRepo{}
}

func (m *mockCardScanRepo) Create(_ context.Context, scan *model.CardScan) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.idCounter++
	scan.CardScanID = fmt.Sprintf("scan-%d", m.idCounter)
	m.scans = append(m.scans, *scan)
	return nil
}

func (m *mockCardScanRepo) List(_ context.Context, filter repository.CardScanFilter, offset, limit int) ([]model.CardScan, int64, error) {
	var filtered []model.CardScan
	for _, s := range m.scans {
		if filter.UserID != "" && s.UserID != filter.UserID {
			continue
		}
		if filter.ScanType != "" && s.ScanType != filter.ScanType {
			continue
		}
		if filter.DateFrom != nil && s.ScanTime.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && s.ScanTime.After(*filter.DateTo) {
			continue
		}
		filtered = append(filtered, s)
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].ScanTime.After(filtered[j].ScanTime) })
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockCardScanRepo) ListByRange(_ context.Context, from, to time.Time) ([]model.CardScan, error) {
	var result []model.CardScan
	for _, s := range m.scans {
		if !s.ScanTime.Before(from) && !s.ScanTime.After(to) {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ScanTime.After(result[j].ScanTime) })
	return result, nil
}

// ── 测试聚合 ──

// testRepos 聚合所有 mock repo 便于 seed 数据
type testRepos struct {
	user         *mockUserRepo
	schedule     *mockScheduleRepo
	attendance   *mockAttendanceRepo
	ekskul       *mockExtracurricularRepo
	coachAbsence *mockCoachAbsenceRepo
	cardScan     *mockCardScanRepo
}

func newTestRepos() *testRepos {
	return &testRepos{
		user:         newMockUserRepo(),
		schedule:     newMockScheduleRepo(),
		attendance:   newMockAttendanceRepo(),
		ekskul:       newMockExtracurricularRepo(),
		coachAbsence: newMockCoachAbsenceRepo(),
		cardScan:     newMockCardScanRepo(),
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		User:            r.user,
		Schedule:        r.schedule,
		Attendance:      r.attendance,
		Extracurricular: r.ekskul,
		CoachAbsence:    r.coachAbsence,
		CardScan:        r.cardScan,
	}
}

// mockPublisher 记录所有发布过的事件
type mockPublisher struct {
	events []publishedEvent
}

type publishedEvent struct {
	room    string
	event   string
	payload interface{}
}

func (p *mockPublisher) Publish(room, event string, payload interface{}) {
	p.events = append(p.events, publishedEvent{room: room, event: event, payload: payload})
}

