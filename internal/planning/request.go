package planning

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError 请求结构校验失败，Field 指出出错字段
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ConsensusValue 延迟解析的共识值
// 解码阶段不报错，非数值留到 Validate 按字段定位，避免淹没成泛化的 body 解析失败
type ConsensusValue struct {
	value   decimal.Decimal
	present bool
	valid   bool
}

func (v *ConsensusValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	v.present = true
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return nil
	}
	v.value = d
	v.valid = true
	return nil
}

// ConsensusRequest 共识预测更新请求体
// 七个维度字段均必填，标量与单元素数组等价；model_name 缺省时由调用方填入默认模型
type ConsensusRequest struct {
	CountryName  StringList     `json:"country_name"`
	StateName    StringList     `json:"state_name"`
	CityName     StringList     `json:"city_name"`
	PlantName    StringList     `json:"plant_name"`
	CategoryName StringList     `json:"category_name"`
	SkuCode      StringList     `json:"sku_code"`
	ChannelName  StringList     `json:"channel_name"`
	Consensus    ConsensusValue `json:"consensus_forecast"`
	TargetMonth  string         `json:"target_month"`
	ModelName    string         `json:"model_name"`
	Grain        Grain          `json:"grain"`
}

// Validate 在任何数据库交互前完成结构校验
func (r *ConsensusRequest) Validate() error {
	required := []struct {
		field  string
		values StringList
	}{
		{"country_name", r.CountryName},
		{"state_name", r.StateName},
		{"city_name", r.CityName},
		{"plant_name", r.PlantName},
		{"category_name", r.CategoryName},
		{"sku_code", r.SkuCode},
		{"channel_name", r.ChannelName},
	}
	for _, req := range required {
		if len(req.values) == 0 {
			return &ValidationError{Field: req.field, Reason: "missing required parameter"}
		}
	}

	if !r.Consensus.present {
		return &ValidationError{Field: "consensus_forecast", Reason: "missing required parameter"}
	}
	if !r.Consensus.valid {
		return &ValidationError{Field: "consensus_forecast", Reason: "must be a number"}
	}

	if r.TargetMonth == "" {
		return &ValidationError{Field: "target_month", Reason: "missing required parameter"}
	}
	if _, err := ResolveMonth(r.TargetMonth); err != nil {
		return &ValidationError{Field: "target_month", Reason: err.Error()}
	}

	switch r.Grain {
	case "", GrainWeekly, GrainMonthly:
	default:
		return &ValidationError{Field: "grain", Reason: `must be "weekly" or "monthly"`}
	}

	return nil
}

// Filter 把请求体的维度字段映射为过滤条件
func (r *ConsensusRequest) Filter() Filter {
	return Filter{
		Country:    r.CountryName,
		State:      r.StateName,
		Cities:     r.CityName,
		Plants:     r.PlantName,
		Categories: r.CategoryName,
		Skus:       r.SkuCode,
		Channels:   r.ChannelName,
	}
}

// TotalUnits 共识值按整数量处理，小数部分向零截断
func (r *ConsensusRequest) TotalUnits() int64 {
	return r.Consensus.value.IntPart()
}

// TargetGrain 未指定粒度时默认周度分摊
func (r *ConsensusRequest) TargetGrain() Grain {
	if r.Grain == "" {
		return GrainWeekly
	}
	return r.Grain
}
