package planning

import (
	"fmt"
	"time"
)

const (
	monthNameLayout = "January-2006"
	isoDateLayout   = "2006-01-02"
)

// FormatError 月份/日期格式不符合约定
type FormatError struct {
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid target_month %q: expected \"MonthName-YYYY\" (e.g. \"April-2025\") or \"YYYY-MM-DD\"", e.Value)
}

// MonthRange 日历月区间，Start 为月初、End 为月末（含）
type MonthRange struct {
	Start time.Time
	End   time.Time
}

// StartISO 月初 ISO 日期串
func (r MonthRange) StartISO() string {
	return r.Start.Format(isoDateLayout)
}

// EndISO 月末 ISO 日期串
func (r MonthRange) EndISO() string {
	return r.End.Format(isoDateLayout)
}

// ResolveMonth 把 "April-2025" 或 "2025-04-17" 解析为所在日历月的区间
// 两种格式必须严格匹配，其余输入返回 FormatError
func ResolveMonth(raw string) (MonthRange, error) {
	parsed, err := time.Parse(monthNameLayout, raw)
	if err != nil {
		parsed, err = time.Parse(isoDateLayout, raw)
		if err != nil {
			return MonthRange{}, &FormatError{Value: raw}
		}
	}

	start := time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.UTC)
	// 月末 = 下月初减一天，闰年与大小月由日历运算保证
	end := start.AddDate(0, 1, -1)

	return MonthRange{Start: start, End: end}, nil
}

// MonthEndAnchor 返回月末锚点日期
// 月度事实表以每月最后一天作为 item_date，等值比较必须用月末而非月初
func MonthEndAnchor(raw string) (string, error) {
	r, err := ResolveMonth(raw)
	if err != nil {
		return "", err
	}
	return r.EndISO(), nil
}
