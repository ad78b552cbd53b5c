package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/model"
)

// psql Postgres 占位符风格的查询构造器
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (s *Store) queryBuilt(ctx context.Context, builder sq.SelectBuilder) (pgx.Rows, error) {
	sqlText, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := s.pool.Query(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	return rows, nil
}

// Countries 全部国家
func (s *Store) Countries(ctx context.Context) ([]model.Country, error) {
	rows, err := s.queryBuilt(ctx, psql.Select("id", "name").From("dim_country").OrderBy("id"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []model.Country{}
	for rows.Next() {
		var c model.Country
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// States 全部州
func (s *Store) States(ctx context.Context) ([]model.State, error) {
	return s.scanStates(ctx, psql.Select("id", "name", "country_id").From("dim_state").OrderBy("id"))
}

// StatesByCountries 按国家 id 集合查询州
func (s *Store) StatesByCountries(ctx context.Context, countryIDs []int64) ([]model.State, error) {
	return s.scanStates(ctx, psql.Select("id", "name", "country_id").From("dim_state").
		Where(sq.Eq{"country_id": countryIDs}).OrderBy("id"))
}

func (s *Store) scanStates(ctx context.Context, builder sq.SelectBuilder) ([]model.State, error) {
	rows, err := s.queryBuilt(ctx, builder)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []model.State{}
	for rows.Next() {
		var st model.State
		if err := rows.Scan(&st.ID, &st.Name, &st.CountryID); err != nil {
			return nil, fmt.Errorf("failed to scan state: %w", err)
		}
		results = append(results, st)
	}
	return results, rows.Err()
}

// Cities 全部城市
func (s *Store) Cities(ctx context.Context) ([]model.City, error) {
	return s.scanCities(ctx, psql.Select("id", "name", "state_id").From("dim_city").OrderBy("id"))
}

// CitiesByStates 按州 id 集合查询城市
func (s *Store) CitiesByStates(ctx context.Context, stateIDs []int64) ([]model.City, error) {
	return s.scanCities(ctx, psql.Select("id", "name", "state_id").From("dim_city").
		Where(sq.Eq{"state_id": stateIDs}).OrderBy("id"))
}

func (s *Store) scanCities(ctx context.Context, builder sq.SelectBuilder) ([]model.City, error) {
	rows, err := s.queryBuilt(ctx, builder)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []model.City{}
	for rows.Next() {
		var c model.City
		if err := rows.Scan(&c.ID, &c.Name, &c.StateID); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// Plants 全部工厂
func (s *Store) Plants(ctx context.Context) ([]model.Plant, error) {
	return s.scanPlants(ctx, psql.Select("id", "plant_code", "plant_name", "city_id").
		From("dim_plant").OrderBy("id"))
}

// PlantsByCities 按城市 id 集合查询工厂
func (s *Store) PlantsByCities(ctx context.Context, cityIDs []int64) ([]model.Plant, error) {
	return s.scanPlants(ctx, psql.Select("id", "plant_code", "plant_name", "city_id").
		From("dim_plant").Where(sq.Eq{"city_id": cityIDs}).OrderBy("id"))
}

func (s *Store) scanPlants(ctx context.Context, builder sq.SelectBuilder) ([]model.Plant, error) {
	rows, err := s.queryBuilt(ctx, builder)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []model.Plant{}
	for rows.Next() {
		var p model.Plant
		if err := rows.Scan(&p.ID, &p.PlantCode, &p.PlantName, &p.CityID); err != nil {
			return nil, fmt.Errorf("failed to scan plant: %w", err)
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// Categories 全部品类
func (s *Store) Categories(ctx context.Context) ([]model.Category, error) {
	return s.scanCategories(ctx, psql.Select("id", "name", "plant_id").From("dim_category").OrderBy("id"))
}

// CategoriesByPlants 按工厂 id 集合查询品类
func (s *Store) CategoriesByPlants(ctx context.Context, plantIDs []int64) ([]model.Category, error) {
	return s.scanCategories(ctx, psql.Select("id", "name", "plant_id").From("dim_category").
		Where(sq.Eq{"plant_id": plantIDs}).OrderBy("id"))
}

func (s *Store) scanCategories(ctx context.Context, builder sq.SelectBuilder) ([]model.Category, error) {
	rows, err := s.queryBuilt(ctx, builder)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.PlantID); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// SKUs 全部 SKU
func (s *Store) SKUs(ctx context.Context) ([]model.SKU, error) {
	return s.scanSKUs(ctx, psql.Select("id", "sku_code", "sku_name", "category_id").
		From("dim_sku").OrderBy("id"))
}

// SKUsByCategories 按品类 id 集合查询 SKU
func (s *Store) SKUsByCategories(ctx context.Context, categoryIDs []int64) ([]model.SKU, error) {
	return s.scanSKUs(ctx, psql.Select("id", "sku_code", "sku_name", "category_id").
		From("dim_sku").Where(sq.Eq{"category_id": categoryIDs}).OrderBy("id"))
}

func (s *Store) scanSKUs(ctx context.Context, builder sq.SelectBuilder) ([]model.SKU, error) {
	rows, err := s.queryBuilt(ctx, builder)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []model.SKU{}
	for rows.Next() {
		var sk model.SKU
		if err := rows.Scan(&sk.ID, &sk.SkuCode, &sk.SkuName, &sk.CategoryID); err != nil {
			return nil, fmt.Errorf("failed to scan sku: %w", err)
		}
		results = append(results, sk)
	}
	return results, rows.Err()
}

// Channels 全部渠道
func (s *Store) Channels(ctx context.Context) ([]model.Channel, error) {
	rows, err := s.queryBuilt(ctx, psql.Select("id", "name").From("dim_channel").OrderBy("id"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []model.Channel{}
	for rows.Next() {
		var c model.Channel
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// Models 全部预测模型
func (s *Store) Models(ctx context.Context) ([]model.ForecastModel, error) {
	rows, err := s.queryBuilt(ctx, psql.Select("id", "name").From("dim_model").OrderBy("id"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []model.ForecastModel{}
	for rows.Next() {
		var m model.ForecastModel
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan model: %w", err)
		}
		results = append(results, m)
	}
	return results, rows.Err()
}
