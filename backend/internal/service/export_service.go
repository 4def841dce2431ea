package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"presensia/backend/internal/dto"
	"presensia/backend/internal/model"
	"presensia/backend/internal/repository"
)

var (
	ErrExportNoTeachers   = errors.New("没有可导出的在职教师")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// 状态在汇总表单元格中的缩写
var statusLetters = map[string]string{
	model.StatusHadir:     "H",
	model.StatusSakit:     "S",
	model.StatusIzin:      "I",
	model.StatusAlpha:     "A",
	model.StatusTerlambat: "T",
}

// ExportService 导出业务接口
//
// 设计说明：
//   - 月度考勤汇总导出为 Excel (.xlsx)：行=教师，列=当月每一天，单元格=状态缩写
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportMonthlyRecap 导出某年某月的教师考勤汇总
	ExportMonthlyRecap(ctx context.Context, req *dto.ExportRecapRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, loc: loc, logger: logger}
}

func (s *exportService) ExportMonthlyRecap(ctx context.Context, req *dto.ExportRecapRequest) (*bytes.Buffer, string, error) {
	// 1. 在职教师名单（按姓名排序）
	teachers, err := s.repo.User.ListByRole(ctx, model.RoleGuru)
	if err != nil {
		s.logger.Error("查询教师名单失败", zap.Error(err))
		return nil, "", err
	}
	if len(teachers) == 0 {
		return nil, "", ErrExportNoTeachers
	}

	// 2. 当月考勤记录
	monthStart := normalizeDate(time.Date(req.Year, time.Month(req.Month), 1, 12, 0, 0, 0, s.loc), s.loc)
	monthEnd := monthStart.AddDate(0, 1, -1)
	daysInMonth := monthEnd.Day()

	records, err := s.repo.Attendance.ListByRange(ctx, monthStart, monthEnd)
	if err != nil {
		s.logger.Error("查询考勤记录失败", zap.Error(err))
		return nil, "", err
	}

	// 3. 索引: "teacherID:day" → 状态缩写
	statusIndex := make(map[string]string, len(records))
	for i := range records {
		record := &records[i]
		key := fmt.Sprintf("%s:%d", record.TeacherID, record.Date.In(s.loc).Day())
		statusIndex[key] = statusLetters[record.Status]
	}

	// 4. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Rekap Kehadiran"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 6)
	f.SetColWidth(sheetName, "B", "B", 24)
	f.SetColWidth(sheetName, "C", "C", 16)
	for d := 1; d <= daysInMonth; d++ {
		col := recapColName(3 + d)
		f.SetColWidth(sheetName, col, col, 4)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	title := fmt.Sprintf("Rekap Kehadiran Guru %04d-%02d", req.Year, req.Month)
	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", recapCell(recapColName(3+daysInMonth), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头：No / Nama / NIP / 1..31
	row := 2
	f.SetCellValue(sheetName, recapCell("A", row), "No")
	f.SetCellValue(sheetName, recapCell("B", row), "Nama")
	f.SetCellValue(sheetName, recapCell("C", row), "NIP")
	for d := 1; d <= daysInMonth; d++ {
		f.SetCellValue(sheetName, recapCell(recapColName(3+d), row), d)
	}

	// 数据行
	row = 3
	for i := range teachers {
		teacher := &teachers[i]
		f.SetCellValue(sheetName, recapCell("A", row), i+1)
		f.SetCellValue(sheetName, recapCell("B", row), teacher.Name)
		if teacher.NIP != nil {
			f.SetCellValue(sheetName, recapCell("C", row), *teacher.NIP)
		}
		for d := 1; d <= daysInMonth; d++ {
			key := fmt.Sprintf("%s:%d", teacher.UserID, d)
			if letter, ok := statusIndex[key]; ok {
				f.SetCellValue(sheetName, recapCell(recapColName(3+d), row), letter)
			} else {
				f.SetCellValue(sheetName, recapCell(recapColName(3+d), row), "-")
			}
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("rekap-kehadiran-%04d-%02d.xlsx", req.Year, req.Month)
	return buf, filename, nil
}

// ── 辅助函数 ──

func recapColName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx)
	return name
}

func recapCell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

