package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/model"
	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/planning"
)

func TestGetForecast_DefaultsApplied(t *testing.T) {
	t.Parallel()

	var got planning.AggregateQuery
	st := &stubStore{
		aggregateFn: func(_ context.Context, q planning.AggregateQuery) ([]model.AggregateRow, error) {
			got = q
			return []model.AggregateRow{}, nil
		},
	}
	router := newTestRouter(st)

	w := doJSON(t, router, http.MethodGet, "/api/forecast", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status want=200 got=%d body=%s", w.Code, w.Body.String())
	}

	if got.Grain != planning.GrainMonthly {
		t.Fatalf("grain want=monthly got=%s", got.Grain)
	}
	if !strings.Contains(got.SQL, "FROM demand_forecast ") {
		t.Fatalf("monthly query must read the monthly fact table: %s", got.SQL)
	}
	// 参数顺序：模型、期间下界、期间上界
	if len(got.Args) != 3 {
		t.Fatalf("args want=3 got=%v", got.Args)
	}
	if got.Args[0] != "XGBoost" || got.Args[1] != "2025-04-05" || got.Args[2] != "2025-09-01" {
		t.Fatalf("defaults not applied: %v", got.Args)
	}
}

func TestGetForecast_RepeatedParamsBecomeAnyClause(t *testing.T) {
	t.Parallel()

	var got planning.AggregateQuery
	st := &stubStore{
		aggregateFn: func(_ context.Context, q planning.AggregateQuery) ([]model.AggregateRow, error) {
			got = q
			return nil, nil
		},
	}
	router := newTestRouter(st)

	w := doJSON(t, router, http.MethodGet, "/api/forecast?cities=Ahmedabad&cities=Surat&country=India", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status want=200 got=%d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(got.SQL, "city_name = ANY(") {
		t.Fatalf("repeated params should compile to ANY: %s", got.SQL)
	}
	if !strings.Contains(got.SQL, "country_name = ") || strings.Contains(got.SQL, "country_name = ANY(") {
		t.Fatalf("single value should compile to equality: %s", got.SQL)
	}
}

func TestPostForecast_WeeklyGrain(t *testing.T) {
	t.Parallel()

	var got planning.AggregateQuery
	st := &stubStore{
		aggregateFn: func(_ context.Context, q planning.AggregateQuery) ([]model.AggregateRow, error) {
			got = q
			return nil, nil
		},
	}
	router := newTestRouter(st)

	body := `{"country": "India", "skus": ["SKU-TEA", "SKU-COFFEE"], "grain": "weekly", "startDate": "2025-04-01", "endDate": "2025-04-30"}`
	w := doJSON(t, router, http.MethodPost, "/api/forecast", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status want=200 got=%d body=%s", w.Code, w.Body.String())
	}
	if got.Grain != planning.GrainWeekly {
		t.Fatalf("grain want=weekly got=%s", got.Grain)
	}
	if !strings.Contains(got.SQL, "FROM demand_forecast_weekly") {
		t.Fatalf("weekly query must read the weekly fact table: %s", got.SQL)
	}
	if !strings.Contains(got.SQL, "week_start_date >= ") || !strings.Contains(got.SQL, "week_end_date <= ") {
		t.Fatalf("weekly period must bound whole weeks: %s", got.SQL)
	}
	if !strings.Contains(got.SQL, "sku_code = ANY(") {
		t.Fatalf("sku list should compile to ANY: %s", got.SQL)
	}
}

func TestGetForecast_UnknownGrainIs400(t *testing.T) {
	t.Parallel()

	called := false
	st := &stubStore{
		aggregateFn: func(context.Context, planning.AggregateQuery) ([]model.AggregateRow, error) {
			called = true
			return nil, nil
		},
	}
	router := newTestRouter(st)

	w := doJSON(t, router, http.MethodGet, "/api/forecast?grain=daily", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want=400 got=%d body=%s", w.Code, w.Body.String())
	}
	if called {
		t.Fatalf("storage must not be queried for an invalid grain")
	}
}

func TestGetForecast_EmptyResultIsEmptyArray(t *testing.T) {
	t.Parallel()

	st := &stubStore{
		aggregateFn: func(context.Context, planning.AggregateQuery) ([]model.AggregateRow, error) {
			return []model.AggregateRow{}, nil
		},
	}
	router := newTestRouter(st)

	w := doJSON(t, router, http.MethodGet, "/api/forecast", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status want=200 got=%d", w.Code)
	}
	var rows []model.AggregateRow
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows want=0 got=%d", len(rows))
	}
}

func TestGetForecast_StorageFailureIs500(t *testing.T) {
	t.Parallel()

	st := &stubStore{
		aggregateFn: func(context.Context, planning.AggregateQuery) ([]model.AggregateRow, error) {
			return nil, errors.New("pg: relation does not exist")
		},
	}
	router := newTestRouter(st)

	w := doJSON(t, router, http.MethodGet, "/api/forecast", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status want=500 got=%d", w.Code)
	}
	if strings.Contains(w.Body.String(), "relation") {
		t.Fatalf("storage details must not leak to the caller: %s", w.Body.String())
	}
}
