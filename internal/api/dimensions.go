package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func internalError(c *gin.Context, scope string, err error) {
	// 内部错误细节只进日志，不回给调用方
	log.Printf("%s: %v", scope, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}

// GetAllCountries 全部国家
// GET /api/getAllCountries
func (h *Handler) GetAllCountries(c *gin.Context) {
	result, err := h.store.Countries(c.Request.Context())
	if err != nil {
		internalError(c, "country fetch error", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAllStates 全部州
// GET /api/getAllState
func (h *Handler) GetAllStates(c *gin.Context) {
	result, err := h.store.States(c.Request.Context())
	if err != nil {
		internalError(c, "state fetch error", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAllCities 全部城市
// GET /api/getAllCities
func (h *Handler) GetAllCities(c *gin.Context) {
	result, err := h.store.Cities(c.Request.Context())
	if err != nil {
		internalError(c, "city fetch error", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAllPlants 全部工厂
// GET /api/getAllPlants
func (h *Handler) GetAllPlants(c *gin.Context) {
	result, err := h.store.Plants(c.Request.Context())
	if err != nil {
		internalError(c, "plant fetch error", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAllCategories 全部品类
// GET /api/getAllCategories
func (h *Handler) GetAllCategories(c *gin.Context) {
	result, err := h.store.Categories(c.Request.Context())
	if err != nil {
		internalError(c, "category fetch error", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAllSkus 全部 SKU
// GET /api/getAllSkus
func (h *Handler) GetAllSkus(c *gin.Context) {
	result, err := h.store.SKUs(c.Request.Context())
	if err != nil {
		internalError(c, "sku fetch error", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAllChannels 全部渠道
// GET /api/getAllChannels
func (h *Handler) GetAllChannels(c *gin.Context) {
	result, err := h.store.Channels(c.Request.Context())
	if err != nil {
		internalError(c, "channel fetch error", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAllModels 全部预测模型
// GET /api/models
func (h *Handler) GetAllModels(c *gin.Context) {
	result, err := h.store.Models(c.Request.Context())
	if err != nil {
		internalError(c, "model fetch error", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func parentID(c *gin.Context, key string) (int64, bool) {
	id, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": key + " must be an integer"})
		return 0, false
	}
	return id, true
}

// GetStatesByCountry 按国家查询州
// GET /api/states?country_id=1
func (h *Handler) GetStatesByCountry(c *gin.Context) {
	id, ok := parentID(c, "country_id")
	if !ok {
		return
	}
	result, err := h.store.StatesByCountries(c.Request.Context(), []int64{id})
	if err != nil {
		internalError(c, "state fetch error", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetPlantsByCity 按城市查询工厂
// GET /api/plants?city_id=1
func (h *Handler) GetPlantsByCity(c *gin.Context) {
	id, ok := parentID(c, "city_id")
	if !ok {
		return
	}
	result, err := h.store.PlantsByCities(c.Request.Context(), []int64{id})
	if err != nil {
		internalError(c, "plant fetch error", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetCategoriesByPlant 按工厂查询品类
// GET /api/categories?plant_id=1
func (h *Handler) GetCategoriesByPlant(c *gin.Context) {
	id, ok := parentID(c, "plant_id")
	if !ok {
		return
	}
	result, err := h.store.CategoriesByPlants(c.Request.Context(), []int64{id})
	if err != nil {
		internalError(c, "category fetch error", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetSkusByCategory 按品类查询 SKU
// GET /api/skus?category_id=1
func (h *Handler) GetSkusByCategory(c *gin.Context) {
	id, ok := parentID(c, "category_id")
	if !ok {
		return
	}
	result, err := h.store.SKUsByCategories(c.Request.Context(), []int64{id})
	if err != nil {
		internalError(c, "sku fetch error", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type idsRequest struct {
	CountryIDs  []int64 `json:"countryIds"`
	StateIDs    []int64 `json:"stateIds"`
	CityIDs     []int64 `json:"cityIds"`
	PlantIDs    []int64 `json:"plantIds"`
	CategoryIDs []int64 `json:"categoryIds"`
}

func bindIDs(c *gin.Context, pick func(idsRequest) []int64) ([]int64, bool) {
	var req idsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return nil, false
	}
	return pick(req), true
}

// StatesByCountry 按国家 id 集合批量查询州
// POST /api/states-by-country
func (h *Handler) StatesByCountry(c *gin.Context) {
	ids, ok := bindIDs(c, func(r idsRequest) []int64 { return r.CountryIDs })
	if !ok {
		return
	}
	if len(ids) == 0 {
		c.JSON(http.StatusOK, []any{})
		return
	}
	result, err := h.store.StatesByCountries(c.Request.Context(), ids)
	if err != nil {
		internalError(c, "states-by-country error", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CitiesByStates 按州 id 集合批量查询城市
// POST /api/cities-by-states
func (h *Handler) CitiesByStates(c *gin.Context) {
	ids, ok := bindIDs(c, func(r idsRequest) []int64 { return r.StateIDs })
	if !ok {
		return
	}
	if len(ids) == 0 {
		c.JSON(http.StatusOK, []any{})
		return
	}
	result, err := h.store.CitiesByStates(c.Request.Context(), ids)
	if err != nil {
		internalError(c, "cities-by-states error", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PlantsByCities 按城市 id 集合批量查询工厂
// POST /api/plants-by-cities
func (h *Handler) PlantsByCities(c *gin.Context) {
	ids, ok := bindIDs(c, func(r idsRequest) []int64 { return r.CityIDs })
	if !ok {
		return
	}
	if len(ids) == 0 {
		c.JSON(http.StatusOK, []any{})
		return
	}
	result, err := h.store.PlantsByCities(c.Request.Context(), ids)
	if err != nil {
		internalError(c, "plants-by-cities error", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CategoriesByPlants 按工厂 id 集合批量查询品类
// POST /api/categories-by-plants
func (h *Handler) CategoriesByPlants(c *gin.Context) {
	ids, ok := bindIDs(c, func(r idsRequest) []int64 { return r.PlantIDs })
	if !ok {
		return
	}
	if len(ids) == 0 {
		c.JSON(http.StatusOK, []any{})
		return
	}
	result, err := h.store.CategoriesByPlants(c.Request.Context(), ids)
	if err != nil {
		internalError(c, "categories-by-plants error", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SkusByCategories 按品类 id 集合批量查询 SKU
// POST /api/skus-by-categories
func (h *Handler) SkusByCategories(c *gin.Context) {
	ids, ok := bindIDs(c, func(r idsRequest) []int64 { return r.CategoryIDs })
	if !ok {
		return
	}
	if len(ids) == 0 {
		c.JSON(http.StatusOK, []any{})
		return
	}
	result, err := h.store.SKUsByCategories(c.Request.Context(), ids)
	if err != nil {
		internalError(c, "skus-by-categories error", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
