package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/planning"
)

// forecastQuery 聚合查询参数，GET 走 query string、POST 走 JSON body
type forecastQuery struct {
	planning.Filter
	StartDate string         `json:"startDate" form:"startDate"`
	EndDate   string         `json:"endDate" form:"endDate"`
	ModelName string         `json:"model_name" form:"model_name"`
	Grain     planning.Grain `json:"grain" form:"grain"`
}

func (h *Handler) applyForecastDefaults(q *forecastQuery) {
	if q.ModelName == "" {
		q.ModelName = h.business.DefaultModel
	}
	if q.StartDate == "" {
		q.StartDate = h.business.DefaultStartDate
	}
	if q.EndDate == "" {
		q.EndDate = h.business.DefaultEndDate
	}
	if q.Grain == "" {
		q.Grain = planning.GrainMonthly
	}
}

func (h *Handler) runForecast(c *gin.Context, q forecastQuery) {
	if q.Grain != planning.GrainMonthly && q.Grain != planning.GrainWeekly {
		c.JSON(http.StatusBadRequest, gin.H{"error": `grain must be "monthly" or "weekly"`})
		return
	}

	query := planning.BuildAggregateQuery(q.Filter, q.ModelName, q.StartDate, q.EndDate, q.Grain)
	rows, err := h.store.AggregateForecast(c.Request.Context(), query)
	if err != nil {
		internalError(c, "forecast fetch error", err)
		return
	}
	// 空结果是合法输出：该过滤/期间下无数据
	c.JSON(http.StatusOK, rows)
}

// GetForecast 按 query string 过滤的聚合预测
// GET /api/forecast?country=India&cities=Ahmedabad&startDate=...&endDate=...
func (h *Handler) GetForecast(c *gin.Context) {
	var q forecastQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	h.applyForecastDefaults(&q)
	h.runForecast(c, q)
}

// PostForecast 按 JSON body 过滤的聚合预测
// POST /api/forecast
func (h *Handler) PostForecast(c *gin.Context) {
	var q forecastQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.applyForecastDefaults(&q)
	h.runForecast(c, q)
}
