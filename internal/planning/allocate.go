package planning

import (
	"sort"
	"time"
)

// Week 月内匹配到的一个周桶
type Week struct {
	Name      string
	StartDate time.Time
}

// WeekValue 某周分得的共识预测值
type WeekValue struct {
	Name  string `json:"week_name"`
	Value int64  `json:"value"`
}

// Distribution 月度总量在各周上的确定性拆分结果
// FirstWeek + Base*(len(Weeks)-1) == Total 恒成立
type Distribution struct {
	Total     int64
	Base      int64
	FirstWeek int64
	Remainder int64
	Weeks     []WeekValue
}

// Distribute 把月度总量按整除拆分到各周
// base = floor(total/n)，余数全部计入 week_start_date 最早的一周，
// 保证各周之和与输入总量严格相等，无浮点漂移
func Distribute(total int64, weeks []Week) Distribution {
	if len(weeks) == 0 {
		return Distribution{Total: total}
	}

	ordered := make([]Week, len(weeks))
	copy(ordered, weeks)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].StartDate.Equal(ordered[j].StartDate) {
			return ordered[i].Name < ordered[j].Name
		}
		return ordered[i].StartDate.Before(ordered[j].StartDate)
	})

	n := int64(len(ordered))
	base := total / n
	remainder := total % n
	// 负总量时 Go 的整除向零截断，修正为向下取整以保持余数非负
	if remainder < 0 {
		base--
		remainder += n
	}

	dist := Distribution{
		Total:     total,
		Base:      base,
		FirstWeek: base + remainder,
		Remainder: remainder,
		Weeks:     make([]WeekValue, 0, len(ordered)),
	}
	for i, w := range ordered {
		value := base
		if i == 0 {
			value = dist.FirstWeek
		}
		dist.Weeks = append(dist.Weeks, WeekValue{Name: w.Name, Value: value})
	}
	return dist
}
