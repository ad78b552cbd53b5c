package planning

import (
	"strings"
	"testing"
)

func TestBuildAggregateQuery_Monthly(t *testing.T) {
	t.Parallel()

	q := BuildAggregateQuery(Filter{Country: StringList{"India"}}, "XGBoost", "2025-04-05", "2025-09-01", GrainMonthly)

	for _, want := range []string{
		"FROM demand_forecast ",
		"model_name = $1",
		"item_date BETWEEN $2 AND $3",
		"country_name = $4",
		"GROUP BY month_name",
		"ORDER BY TO_DATE(month_name, 'FMMonth YYYY')",
		"COALESCE(SUM(consensus_forecast), 0) AS consensus_forecast",
		"COALESCE(AVG(stock_out_days), 0) AS stock_out_days",
		"COALESCE(AVG(inventory_level_pct), 0) AS inventory_level_pct",
		"COALESCE(AVG(mape), 0) AS mape",
	} {
		if !strings.Contains(q.SQL, want) {
			t.Fatalf("monthly SQL missing %q:\n%s", want, q.SQL)
		}
	}
	if strings.Contains(q.SQL, "demand_forecast_weekly") {
		t.Fatalf("monthly query must not target the weekly table:\n%s", q.SQL)
	}

	wantArgs := []any{"XGBoost", "2025-04-05", "2025-09-01", "India"}
	if len(q.Args) != len(wantArgs) {
		t.Fatalf("args want=%v got=%v", wantArgs, q.Args)
	}
	for i := range wantArgs {
		if q.Args[i] != wantArgs[i] {
			t.Fatalf("arg %d want=%v got=%v", i+1, wantArgs[i], q.Args[i])
		}
	}
}

func TestBuildAggregateQuery_Weekly(t *testing.T) {
	t.Parallel()

	q := BuildAggregateQuery(Filter{}, "XGBoost", "2025-04-01", "2025-04-30", GrainWeekly)

	for _, want := range []string{
		"FROM demand_forecast_weekly",
		"week_start_date >= $2",
		"week_end_date <= $3",
		"GROUP BY week_name",
		"ORDER BY week_name",
	} {
		if !strings.Contains(q.SQL, want) {
			t.Fatalf("weekly SQL missing %q:\n%s", want, q.SQL)
		}
	}
	if strings.Contains(q.SQL, "TO_DATE") {
		t.Fatalf("weekly ordering must use the label directly:\n%s", q.SQL)
	}
}
