package model

// 维度表行结构
// 层级链 country→state→city→plant→category→sku 以代理 id 外键关联，
// channel 与 model 为独立维度；事实表按名称字符串而非 id 关联维度

// Country 国家
type Country struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// State 州/邦
type State struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CountryID int64  `json:"country_id"`
}

// City 城市
type City struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	StateID int64  `json:"state_id"`
}

// Plant 工厂
type Plant struct {
	ID        int64  `json:"id"`
	PlantCode string `json:"plant_code"`
	PlantName string `json:"plant_name"`
	CityID    int64  `json:"city_id"`
}

// Category 品类
type Category struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	PlantID int64  `json:"plant_id"`
}

// SKU 最小库存单元
type SKU struct {
	ID         int64  `json:"id"`
	SkuCode    string `json:"sku_code"`
	SkuName    string `json:"sku_name"`
	CategoryID int64  `json:"category_id"`
}

// Channel 销售渠道
type Channel struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ForecastModel 预测模型
type ForecastModel struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
