package store

import (
	"context"
	"fmt"

	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/model"
	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/planning"
)

// AggregateForecast 执行编译好的聚合查询
// 扫描顺序与 BuildAggregateQuery 的 SELECT 列顺序一致
func (s *Store) AggregateForecast(ctx context.Context, q planning.AggregateQuery) ([]model.AggregateRow, error) {
	rows, err := s.pool.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query forecast aggregate: %w", err)
	}
	defer rows.Close()

	results := []model.AggregateRow{}
	for rows.Next() {
		var r model.AggregateRow
		err := rows.Scan(
			&r.ActualUnits, &r.BaselineForecast, &r.MLForecast, &r.SalesUnits,
			&r.PromotionMarketing, &r.ConsensusForecast, &r.RevenueForecastLakhs,
			&r.InventoryLevelPct, &r.StockOutDays, &r.OnHandUnits, &r.Mape,
			&r.Period,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan aggregate row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// WeeklyAllocation 周度分摊的执行结果
type WeeklyAllocation struct {
	Distribution planning.Distribution
	RowsUpdated  int64
}

// AllocateWeeklyConsensus 把月度共识总量分摊到整月内的各周
// 周发现与赋值在同一事务内完成，并发的重叠更新不会交错出
// 与刚算出的拆分不一致的状态；跨月界的周不属于本月的匹配集
func (s *Store) AllocateWeeklyConsensus(ctx context.Context, f planning.Filter, modelName string, month planning.MonthRange, total int64) (WeeklyAllocation, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return WeeklyAllocation{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	b := planning.NewWhereBuilder()
	b.Eq("model_name", modelName)
	b.Gte("week_start_date", month.StartISO())
	b.Lte("week_end_date", month.EndISO())
	planning.CompileFilter(f, b)

	selectSQL := "SELECT week_name, MIN(week_start_date) FROM demand_forecast_weekly WHERE " +
		b.SQL() + " GROUP BY week_name"

	rows, err := tx.Query(ctx, selectSQL, b.Args()...)
	if err != nil {
		return WeeklyAllocation{}, fmt.Errorf("failed to query weeks in month: %w", err)
	}

	var weeks []planning.Week
	for rows.Next() {
		var w planning.Week
		if err := rows.Scan(&w.Name, &w.StartDate); err != nil {
			rows.Close()
			return WeeklyAllocation{}, fmt.Errorf("failed to scan week: %w", err)
		}
		weeks = append(weeks, w)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return WeeklyAllocation{}, fmt.Errorf("failed to read weeks: %w", err)
	}

	dist := planning.Distribute(total, weeks)
	if len(dist.Weeks) == 0 {
		// 空匹配集是合法结果，不写任何行
		return WeeklyAllocation{Distribution: dist}, nil
	}

	// 同一 WHERE 复用到 UPDATE，最早一周吸收余数
	first := b.NextIndex()
	updateSQL := fmt.Sprintf(
		"UPDATE demand_forecast_weekly SET consensus_forecast = CASE WHEN week_name = $%d THEN $%d ELSE $%d END WHERE %s",
		first, first+1, first+2, b.SQL(),
	)
	args := append(b.Args(), dist.Weeks[0].Name, dist.FirstWeek, dist.Base)

	tag, err := tx.Exec(ctx, updateSQL, args...)
	if err != nil {
		return WeeklyAllocation{}, fmt.Errorf("failed to update weekly consensus: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return WeeklyAllocation{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return WeeklyAllocation{Distribution: dist, RowsUpdated: tag.RowsAffected()}, nil
}

// UpdateMonthlyConsensus 直接更新月度事实行的共识值
// 月度行以月末日期为键，等值比较必须用月末锚点
func (s *Store) UpdateMonthlyConsensus(ctx context.Context, f planning.Filter, modelName, monthEnd string, total int64) (int64, error) {
	b := planning.NewWhereBuilder()
	b.Eq("model_name", modelName)
	b.Eq("item_date", monthEnd)
	planning.CompileFilter(f, b)

	first := b.NextIndex()
	updateSQL := fmt.Sprintf(
		"UPDATE demand_forecast SET consensus_forecast = $%d WHERE %s",
		first, b.SQL(),
	)
	args := append(b.Args(), total)

	tag, err := s.pool.Exec(ctx, updateSQL, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update monthly consensus: %w", err)
	}
	return tag.RowsAffected(), nil
}
