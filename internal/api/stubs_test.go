package api

import (
	"context"

	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/model"
	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/planning"
	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/store"
)

// stubStore 测试用存储桩，预测方法可按用例注入
type stubStore struct {
	aggregateFn func(ctx context.Context, q planning.AggregateQuery) ([]model.AggregateRow, error)
	allocateFn  func(ctx context.Context, f planning.Filter, modelName string, month planning.MonthRange, total int64) (store.WeeklyAllocation, error)
	monthlyFn   func(ctx context.Context, f planning.Filter, modelName, monthEnd string, total int64) (int64, error)
}

func (s *stubStore) Countries(context.Context) ([]model.Country, error) { return nil, nil }
func (s *stubStore) States(context.Context) ([]model.State, error)     { return nil, nil }
func (s *stubStore) StatesByCountries(context.Context, []int64) ([]model.State, error) {
	return nil, nil
}
func (s *stubStore) Cities(context.Context) ([]model.City, error) { return nil, nil }
func (s *stubStore) CitiesByStates(context.Context, []int64) ([]model.City, error) {
	return nil, nil
}
func (s *stubStore) Plants(context.Context) ([]model.Plant, error) { return nil, nil }
func (s *stubStore) PlantsByCities(context.Context, []int64) ([]model.Plant, error) {
	return nil, nil
}
func (s *stubStore) Categories(context.Context) ([]model.Category, error) { return nil, nil }
func (s *stubStore) CategoriesByPlants(context.Context, []int64) ([]model.Category, error) {
	return nil, nil
}
func (s *stubStore) SKUs(context.Context) ([]model.SKU, error) { return nil, nil }
func (s *stubStore) SKUsByCategories(context.Context, []int64) ([]model.SKU, error) {
	return nil, nil
}
func (s *stubStore) Channels(context.Context) ([]model.Channel, error) { return nil, nil }
func (s *stubStore) Models(context.Context) ([]model.ForecastModel, error) {
	return nil, nil
}

func (s *stubStore) AggregateForecast(ctx context.Context, q planning.AggregateQuery) ([]model.AggregateRow, error) {
	if s.aggregateFn == nil {
		return nil, nil
	}
	return s.aggregateFn(ctx, q)
}

func (s *stubStore) AllocateWeeklyConsensus(ctx context.Context, f planning.Filter, modelName string, month planning.MonthRange, total int64) (store.WeeklyAllocation, error) {
	if s.allocateFn == nil {
		return store.WeeklyAllocation{}, nil
	}
	return s.allocateFn(ctx, f, modelName, month, total)
}

func (s *stubStore) UpdateMonthlyConsensus(ctx context.Context, f planning.Filter, modelName, monthEnd string, total int64) (int64, error) {
	if s.monthlyFn == nil {
		return 0, nil
	}
	return s.monthlyFn(ctx, f, modelName, monthEnd, total)
}
