package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/config"
	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/model"
	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/planning"
	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/store"
)

// DimensionStore 维度主数据查询
type DimensionStore interface {
	Countries(ctx context.Context) ([]model.Country, error)
	States(ctx context.Context) ([]model.State, error)
	StatesByCountries(ctx context.Context, countryIDs []int64) ([]model.State, error)
	Cities(ctx context.Context) ([]model.City, error)
	CitiesByStates(ctx context.Context, stateIDs []int64) ([]model.City, error)
	Plants(ctx context.Context) ([]model.Plant, error)
	PlantsByCities(ctx context.Context, cityIDs []int64) ([]model.Plant, error)
	Categories(ctx context.Context) ([]model.Category, error)
	CategoriesByPlants(ctx context.Context, plantIDs []int64) ([]model.Category, error)
	SKUs(ctx context.Context) ([]model.SKU, error)
	SKUsByCategories(ctx context.Context, categoryIDs []int64) ([]model.SKU, error)
	Channels(ctx context.Context) ([]model.Channel, error)
	Models(ctx context.Context) ([]model.ForecastModel, error)
}

// ForecastStore 事实表读写
type ForecastStore interface {
	AggregateForecast(ctx context.Context, q planning.AggregateQuery) ([]model.AggregateRow, error)
	AllocateWeeklyConsensus(ctx context.Context, f planning.Filter, modelName string, month planning.MonthRange, total int64) (store.WeeklyAllocation, error)
	UpdateMonthlyConsensus(ctx context.Context, f planning.Filter, modelName, monthEnd string, total int64) (int64, error)
}

// Store API 依赖的存储能力
type Store interface {
	DimensionStore
	ForecastStore
}

// Handler API 处理器
type Handler struct {
	store    Store
	business config.BusinessConfig
}

// NewHandler 创建 API 处理器
func NewHandler(store Store, business config.BusinessConfig) *Handler {
	return &Handler{store: store, business: business}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 维度全量列表
	router.GET("/getAllCountries", h.GetAllCountries)
	router.GET("/getAllState", h.GetAllStates)
	router.GET("/getAllCities", h.GetAllCities)
	router.GET("/getAllPlants", h.GetAllPlants)
	router.GET("/getAllCategories", h.GetAllCategories)
	router.GET("/getAllSkus", h.GetAllSkus)
	router.GET("/getAllChannels", h.GetAllChannels)
	router.GET("/models", h.GetAllModels)

	// 父级单值查询
	router.GET("/states", h.GetStatesByCountry)
	router.GET("/plants", h.GetPlantsByCity)
	router.GET("/categories", h.GetCategoriesByPlant)
	router.GET("/skus", h.GetSkusByCategory)

	// 父级 id 批量查询
	router.POST("/states-by-country", h.StatesByCountry)
	router.POST("/cities-by-states", h.CitiesByStates)
	router.POST("/plants-by-cities", h.PlantsByCities)
	router.POST("/categories-by-plants", h.CategoriesByPlants)
	router.POST("/skus-by-categories", h.SkusByCategories)

	// 预测聚合与共识更新
	router.GET("/forecast", h.GetForecast)
	router.POST("/forecast", h.PostForecast)
	router.PUT("/forecast/consensus", h.UpdateConsensus)
}
