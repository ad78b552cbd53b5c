package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/planning"
)

type monthWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type distributionSummary struct {
	FirstWeek  int64 `json:"firstWeek"`
	OtherWeeks int64 `json:"otherWeeks"`
	Remainder  int64 `json:"remainder"`
}

type consensusResponse struct {
	Success      bool                 `json:"success"`
	Message      string               `json:"message"`
	ModelUsed    string               `json:"modelUsed,omitempty"`
	Month        *monthWindow         `json:"month,omitempty"`
	WeeksInMonth int                  `json:"weeksInMonth"`
	Distribution *distributionSummary `json:"distribution,omitempty"`
	RowsUpdated  int64                `json:"rowsUpdated"`
}

// UpdateConsensus 更新共识预测
// PUT /api/forecast/consensus
// 周度粒度把月度总量分摊到整月内的各周，月度粒度按月末锚点直写；
// 结构校验失败在任何存储交互前返回 400，零匹配按无操作结果上报而非报错
func (h *Handler) UpdateConsensus(c *gin.Context) {
	var req planning.ConsensusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, consensusResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	if req.ModelName == "" {
		req.ModelName = h.business.DefaultModel
	}

	if err := req.Validate(); err != nil {
		var vErr *planning.ValidationError
		message := err.Error()
		if errors.As(err, &vErr) {
			message = fmt.Sprintf("invalid parameter %s: %s", vErr.Field, vErr.Reason)
		}
		c.JSON(http.StatusBadRequest, consensusResponse{
			Success: false,
			Message: message,
		})
		return
	}

	month, err := planning.ResolveMonth(req.TargetMonth)
	if err != nil {
		c.JSON(http.StatusBadRequest, consensusResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	window := &monthWindow{Start: month.StartISO(), End: month.EndISO()}

	if req.TargetGrain() == planning.GrainMonthly {
		rows, err := h.store.UpdateMonthlyConsensus(c.Request.Context(), req.Filter(), req.ModelName, month.EndISO(), req.TotalUnits())
		if err != nil {
			internalConsensusError(c, err)
			return
		}
		resp := consensusResponse{
			Success:     rows > 0,
			Message:     fmt.Sprintf("Updated %d record(s)", rows),
			ModelUsed:   req.ModelName,
			Month:       window,
			RowsUpdated: rows,
		}
		if rows == 0 {
			resp.Message = "No matching rows found for update"
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	alloc, err := h.store.AllocateWeeklyConsensus(c.Request.Context(), req.Filter(), req.ModelName, month, req.TotalUnits())
	if err != nil {
		internalConsensusError(c, err)
		return
	}

	weeks := len(alloc.Distribution.Weeks)
	if weeks == 0 {
		c.JSON(http.StatusOK, consensusResponse{
			Success:      false,
			Message:      "No matching weekly rows found for update",
			ModelUsed:    req.ModelName,
			Month:        window,
			WeeksInMonth: 0,
			RowsUpdated:  0,
		})
		return
	}

	c.JSON(http.StatusOK, consensusResponse{
		Success:      true,
		Message:      fmt.Sprintf("Updated %d record(s) across %d week(s)", alloc.RowsUpdated, weeks),
		ModelUsed:    req.ModelName,
		Month:        window,
		WeeksInMonth: weeks,
		Distribution: &distributionSummary{
			FirstWeek:  alloc.Distribution.FirstWeek,
			OtherWeeks: alloc.Distribution.Base,
			Remainder:  alloc.Distribution.Remainder,
		},
		RowsUpdated: alloc.RowsUpdated,
	})
}

func internalConsensusError(c *gin.Context, err error) {
	// 存储层失败对调用方保持不透明，细节只进日志
	log.Printf("consensus update error: %v", err)
	c.JSON(http.StatusInternalServerError, consensusResponse{
		Success: false,
		Message: "Internal server error",
	})
}
