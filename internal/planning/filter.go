package planning

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// StringList 接受 JSON 标量或字符串数组的过滤值
// "Gujarat" 和 ["Gujarat"] 等价
type StringList []string

// UnmarshalJSON 标量（字符串/数字）收敛为单元素列表
func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*l = nil
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var items []any
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		out := make(StringList, 0, len(items))
		for _, item := range items {
			s, err := stringify(item)
			if err != nil {
				return err
			}
			out = append(out, s)
		}
		*l = out
		return nil
	}

	var scalar any
	if err := json.Unmarshal(data, &scalar); err != nil {
		return err
	}
	s, err := stringify(scalar)
	if err != nil {
		return err
	}
	*l = StringList{s}
	return nil
}

func stringify(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("filter value must be a string or number, got %T", v)
	}
}

// Filter 多维过滤条件
// 键缺失或空列表不产生谓词（该维度全量扫描），未知键在 JSON 解码阶段即被忽略
type Filter struct {
	Country    StringList `json:"country" form:"country"`
	State      StringList `json:"state" form:"state"`
	Cities     StringList `json:"cities" form:"cities"`
	Plants     StringList `json:"plants" form:"plants"`
	Categories StringList `json:"categories" form:"categories"`
	Skus       StringList `json:"skus" form:"skus"`
	Channels   StringList `json:"channels" form:"channels"`
}

// filterColumns 过滤键到事实表列的映射，顺序即子句生成顺序
var filterColumns = []struct {
	column string
	values func(Filter) StringList
}{
	{"country_name", func(f Filter) StringList { return f.Country }},
	{"state_name", func(f Filter) StringList { return f.State }},
	{"city_name", func(f Filter) StringList { return f.Cities }},
	{"plant_name", func(f Filter) StringList { return f.Plants }},
	{"category_name", func(f Filter) StringList { return f.Categories }},
	{"sku_code", func(f Filter) StringList { return f.Skus }},
	{"channel_name", func(f Filter) StringList { return f.Channels }},
}

// WhereBuilder 按子句生成顺序分配 $n 占位符，参数顺序与子句顺序一致
type WhereBuilder struct {
	clauses []string
	args    []any
}

// NewWhereBuilder 创建 WHERE 构造器
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{}
}

func (b *WhereBuilder) placeholder(value any) string {
	b.args = append(b.args, value)
	return "$" + strconv.Itoa(len(b.args))
}

// Eq 追加 column = $n
func (b *WhereBuilder) Eq(column string, value any) {
	b.clauses = append(b.clauses, column+" = "+b.placeholder(value))
}

// Any 追加 column = ANY($n)，空列表不产生谓词
func (b *WhereBuilder) Any(column string, values []string) {
	if len(values) == 0 {
		return
	}
	b.clauses = append(b.clauses, column+" = ANY("+b.placeholder(values)+")")
}

// Between 追加 column BETWEEN $n AND $n+1
func (b *WhereBuilder) Between(column string, low, high any) {
	b.clauses = append(b.clauses, column+" BETWEEN "+b.placeholder(low)+" AND "+b.placeholder(high))
}

// Gte 追加 column >= $n
func (b *WhereBuilder) Gte(column string, value any) {
	b.clauses = append(b.clauses, column+" >= "+b.placeholder(value))
}

// Lte 追加 column <= $n
func (b *WhereBuilder) Lte(column string, value any) {
	b.clauses = append(b.clauses, column+" <= "+b.placeholder(value))
}

// SQL 返回 AND 连接的 WHERE 子句文本
func (b *WhereBuilder) SQL() string {
	if len(b.clauses) == 0 {
		return "1=1"
	}
	return strings.Join(b.clauses, " AND ")
}

// Args 返回与占位符顺序一致的参数列表
func (b *WhereBuilder) Args() []any {
	return b.args
}

// NextIndex 返回下一个可用的占位符序号，供调用方在 WHERE 之外继续编号
func (b *WhereBuilder) NextIndex() int {
	return len(b.args) + 1
}

// CompileFilter 把过滤条件编译进 WHERE 构造器
// 单值生成 column = $n，多值生成 column = ANY($n)，纯转换无副作用
func CompileFilter(f Filter, b *WhereBuilder) {
	for _, fc := range filterColumns {
		values := fc.values(f)
		switch {
		case len(values) == 0:
			// 无选择，不限制该维度
		case len(values) == 1:
			b.Eq(fc.column, values[0])
		default:
			b.Any(fc.column, values)
		}
	}
}
