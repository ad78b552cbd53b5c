package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// 主数据 upsert：冲突键上重复导入保持代理 id 稳定

func (s *Store) upsertReturningID(ctx context.Context, builder sq.InsertBuilder) (int64, error) {
	sqlText, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build upsert: %w", err)
	}
	var id int64
	if err := s.pool.QueryRow(ctx, sqlText, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to upsert: %w", err)
	}
	return id, nil
}

// UpsertCountry 按名称 upsert 国家
func (s *Store) UpsertCountry(ctx context.Context, name string) (int64, error) {
	return s.upsertReturningID(ctx, psql.Insert("dim_country").
		Columns("name").Values(name).
		Suffix("ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id"))
}

// UpsertState 按名称 upsert 州
func (s *Store) UpsertState(ctx context.Context, name string, countryID int64) (int64, error) {
	return s.upsertReturningID(ctx, psql.Insert("dim_state").
		Columns("name", "country_id").Values(name, countryID).
		Suffix("ON CONFLICT (name) DO UPDATE SET country_id = EXCLUDED.country_id RETURNING id"))
}

// UpsertCity 按名称 upsert 城市
func (s *Store) UpsertCity(ctx context.Context, name string, stateID int64) (int64, error) {
	return s.upsertReturningID(ctx, psql.Insert("dim_city").
		Columns("name", "state_id").Values(name, stateID).
		Suffix("ON CONFLICT (name) DO UPDATE SET state_id = EXCLUDED.state_id RETURNING id"))
}

// UpsertPlant 按工厂代码 upsert 工厂
func (s *Store) UpsertPlant(ctx context.Context, plantCode, plantName string, cityID int64) (int64, error) {
	return s.upsertReturningID(ctx, psql.Insert("dim_plant").
		Columns("plant_code", "plant_name", "city_id").Values(plantCode, plantName, cityID).
		Suffix("ON CONFLICT (plant_code) DO UPDATE SET plant_name = EXCLUDED.plant_name, city_id = EXCLUDED.city_id RETURNING id"))
}

// UpsertCategory 按 (名称, 工厂) upsert 品类
func (s *Store) UpsertCategory(ctx context.Context, name string, plantID int64) (int64, error) {
	return s.upsertReturningID(ctx, psql.Insert("dim_category").
		Columns("name", "plant_id").Values(name, plantID).
		Suffix("ON CONFLICT (name, plant_id) DO UPDATE SET name = EXCLUDED.name RETURNING id"))
}

// UpsertSKU 按 SKU 代码 upsert
func (s *Store) UpsertSKU(ctx context.Context, skuCode, skuName string, categoryID int64) (int64, error) {
	return s.upsertReturningID(ctx, psql.Insert("dim_sku").
		Columns("sku_code", "sku_name", "category_id").Values(skuCode, skuName, categoryID).
		Suffix("ON CONFLICT (sku_code) DO UPDATE SET sku_name = EXCLUDED.sku_name, category_id = EXCLUDED.category_id RETURNING id"))
}

// UpsertChannel 按名称 upsert 渠道
func (s *Store) UpsertChannel(ctx context.Context, name string) (int64, error) {
	return s.upsertReturningID(ctx, psql.Insert("dim_channel").
		Columns("name").Values(name).
		Suffix("ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id"))
}

// UpsertModel 按名称 upsert 预测模型
func (s *Store) UpsertModel(ctx context.Context, name string) (int64, error) {
	return s.upsertReturningID(ctx, psql.Insert("dim_model").
		Columns("name").Values(name).
		Suffix("ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id"))
}

// PlantIDByCode 按工厂代码取 id
func (s *Store) PlantIDByCode(ctx context.Context, plantCode string) (int64, bool, error) {
	sqlText, args, err := psql.Select("id").From("dim_plant").
		Where(sq.Eq{"plant_code": plantCode}).ToSql()
	if err != nil {
		return 0, false, fmt.Errorf("failed to build query: %w", err)
	}
	var id int64
	if err := s.pool.QueryRow(ctx, sqlText, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to resolve plant %q: %w", plantCode, err)
	}
	return id, true, nil
}

// CategoryIDByName 按 (名称, 工厂) 取品类 id
func (s *Store) CategoryIDByName(ctx context.Context, name string, plantID int64) (int64, bool, error) {
	sqlText, args, err := psql.Select("id").From("dim_category").
		Where(sq.Eq{"name": name, "plant_id": plantID}).ToSql()
	if err != nil {
		return 0, false, fmt.Errorf("failed to build query: %w", err)
	}
	var id int64
	if err := s.pool.QueryRow(ctx, sqlText, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to resolve category %q: %w", name, err)
	}
	return id, true, nil
}

// CityIDByState 取某州下的任一城市 id（工厂导入时按州落位）
func (s *Store) CityIDByState(ctx context.Context, stateName string) (int64, bool, error) {
	sqlText, args, err := psql.Select("c.id").From("dim_city c").
		Join("dim_state s ON s.id = c.state_id").
		Where(sq.Eq{"s.name": stateName}).
		OrderBy("c.id").Limit(1).ToSql()
	if err != nil {
		return 0, false, fmt.Errorf("failed to build query: %w", err)
	}
	var id int64
	if err := s.pool.QueryRow(ctx, sqlText, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to resolve city for state %q: %w", stateName, err)
	}
	return id, true, nil
}
