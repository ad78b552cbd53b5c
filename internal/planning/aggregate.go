package planning

import "strings"

// Grain 事实表时间粒度
type Grain string

const (
	GrainMonthly Grain = "monthly"
	GrainWeekly  Grain = "weekly"
)

// measureColumns 聚合度量列，可加度量求和、比率度量求平均
// 顺序即 SELECT 列顺序，扫描端依赖该顺序
var measureColumns = []struct {
	name string
	agg  string
}{
	{"actual_units", "SUM"},
	{"baseline_forecast", "SUM"},
	{"ml_forecast", "SUM"},
	{"sales_units", "SUM"},
	{"promotion_marketing", "SUM"},
	{"consensus_forecast", "SUM"},
	{"revenue_forecast_lakhs", "SUM"},
	{"inventory_level_pct", "AVG"},
	{"stock_out_days", "AVG"},
	{"on_hand_units", "SUM"},
	{"mape", "AVG"},
}

// AggregateQuery 编译好的聚合查询
type AggregateQuery struct {
	SQL   string
	Args  []any
	Grain Grain
}

// BuildAggregateQuery 构造按期间分组的聚合查询
// 固定谓词（model_name 等值、期间范围）先行编号，过滤条件随后，
// 月度按 month_name 的日历序排序（月名加年份的字符串字典序不正确），
// 周度假定 week_name 字典序单调，直接按标签排序
func BuildAggregateQuery(f Filter, modelName, startDate, endDate string, grain Grain) AggregateQuery {
	b := NewWhereBuilder()
	b.Eq("model_name", modelName)

	table := "demand_forecast"
	label := "month_name"
	orderBy := "TO_DATE(month_name, 'FMMonth YYYY')"
	if grain == GrainWeekly {
		table = "demand_forecast_weekly"
		label = "week_name"
		orderBy = "week_name"
		// 周度行以周界键入，范围取完整落在窗口内的周
		b.Gte("week_start_date", startDate)
		b.Lte("week_end_date", endDate)
	} else {
		b.Between("item_date", startDate, endDate)
	}

	CompileFilter(f, b)

	selects := make([]string, 0, len(measureColumns)+1)
	for _, m := range measureColumns {
		selects = append(selects, "COALESCE("+m.agg+"("+m.name+"), 0) AS "+m.name)
	}
	selects = append(selects, label)

	sql := "SELECT " + strings.Join(selects, ", ") +
		" FROM " + table +
		" WHERE " + b.SQL() +
		" GROUP BY " + label +
		" ORDER BY " + orderBy

	return AggregateQuery{SQL: sql, Args: b.Args(), Grain: grain}
}
