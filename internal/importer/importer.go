package importer

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/store"
)

// Importer 主数据工作簿导入器
// 工作簿按 sheet 组织维度：Cities / Plants / Categories / SKUs / Channels / Models，
// 首行为表头，重复导入按冲突键 upsert，代理 id 保持稳定
type Importer struct {
	store *store.Store
}

// New 创建导入器
func New(st *store.Store) *Importer {
	return &Importer{store: st}
}

// Result 导入结果汇总
type Result struct {
	BatchID      string
	TotalRows    int
	ImportedRows int
	ErrorRows    int
	Warnings     []string
}

func (r *Result) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
	r.ErrorRows++
}

// ImportWorkbook 导入一个主数据工作簿
func (imp *Importer) ImportWorkbook(ctx context.Context, path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("unable to stat workbook: %w", err)
	}

	batchID, err := imp.store.CreateImportLog(ctx, info.Name(), info.Size())
	if err != nil {
		return nil, err
	}

	result := &Result{BatchID: batchID}

	file, err := excelize.OpenFile(path)
	if err != nil {
		finishErr := imp.store.FinishImportLog(ctx, batchID, 0, 0, 0, "failed", err.Error())
		if finishErr != nil {
			return nil, fmt.Errorf("unable to open workbook: %w (and failed to record: %v)", err, finishErr)
		}
		return nil, fmt.Errorf("unable to open workbook: %w", err)
	}
	defer file.Close()

	// 层级依赖决定导入顺序：城市链 → 工厂 → 品类 → SKU
	steps := []struct {
		sheet string
		run   func(context.Context, *excelize.File, *Result) error
	}{
		{"Cities", imp.importCities},
		{"Plants", imp.importPlants},
		{"Categories", imp.importCategories},
		{"SKUs", imp.importSKUs},
		{"Channels", imp.importChannels},
		{"Models", imp.importModels},
	}

	for _, step := range steps {
		idx, err := file.GetSheetIndex(step.sheet)
		if err != nil || idx < 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("sheet %q not found, skipped", step.sheet))
			continue
		}
		if err := step.run(ctx, file, result); err != nil {
			_ = imp.store.FinishImportLog(ctx, batchID, result.TotalRows, result.ImportedRows, result.ErrorRows, "failed", err.Error())
			return result, err
		}
	}

	if err := imp.store.FinishImportLog(ctx, batchID, result.TotalRows, result.ImportedRows, result.ErrorRows, "completed", ""); err != nil {
		return result, err
	}
	return result, nil
}

func dataRows(file *excelize.File, sheet string) ([][]string, error) {
	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("unable to read sheet %q: %w", sheet, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// importCities 列: Country | State | City
func (imp *Importer) importCities(ctx context.Context, file *excelize.File, result *Result) error {
	rows, err := dataRows(file, "Cities")
	if err != nil {
		return err
	}
	for i, row := range rows {
		result.TotalRows++
		country, state, city := cell(row, 0), cell(row, 1), cell(row, 2)
		if country == "" || state == "" || city == "" {
			result.warn("Cities row %d: missing country/state/city", i+2)
			continue
		}
		countryID, err := imp.store.UpsertCountry(ctx, country)
		if err != nil {
			return err
		}
		stateID, err := imp.store.UpsertState(ctx, state, countryID)
		if err != nil {
			return err
		}
		if _, err := imp.store.UpsertCity(ctx, city, stateID); err != nil {
			return err
		}
		result.ImportedRows++
	}
	return nil
}

// importPlants 列: State | Plant Codes（形如 ['GUJ123', 'GUJ124']）
func (imp *Importer) importPlants(ctx context.Context, file *excelize.File, result *Result) error {
	rows, err := dataRows(file, "Plants")
	if err != nil {
		return err
	}
	for i, row := range rows {
		result.TotalRows++
		state := cell(row, 0)
		codes := ParseCodeList(cell(row, 1))
		if state == "" || len(codes) == 0 {
			result.warn("Plants row %d: missing state or plant codes", i+2)
			continue
		}
		cityID, found, err := imp.store.CityIDByState(ctx, state)
		if err != nil {
			return err
		}
		if !found {
			result.warn("Plants row %d: no city found for state %q", i+2, state)
			continue
		}
		for _, code := range codes {
			if _, err := imp.store.UpsertPlant(ctx, code, code+" Plant", cityID); err != nil {
				return err
			}
		}
		result.ImportedRows++
	}
	return nil
}

// importCategories 列: Plant Code | Category
func (imp *Importer) importCategories(ctx context.Context, file *excelize.File, result *Result) error {
	rows, err := dataRows(file, "Categories")
	if err != nil {
		return err
	}
	for i, row := range rows {
		result.TotalRows++
		plantCode, category := cell(row, 0), cell(row, 1)
		if plantCode == "" || category == "" {
			result.warn("Categories row %d: missing plant code or category", i+2)
			continue
		}
		plantID, found, err := imp.store.PlantIDByCode(ctx, plantCode)
		if err != nil {
			return err
		}
		if !found {
			result.warn("Categories row %d: unknown plant %q", i+2, plantCode)
			continue
		}
		if _, err := imp.store.UpsertCategory(ctx, category, plantID); err != nil {
			return err
		}
		result.ImportedRows++
	}
	return nil
}

// importSKUs 列: Plant Code | Category | SKU Code | SKU Name
func (imp *Importer) importSKUs(ctx context.Context, file *excelize.File, result *Result) error {
	rows, err := dataRows(file, "SKUs")
	if err != nil {
		return err
	}
	for i, row := range rows {
		result.TotalRows++
		plantCode, category := cell(row, 0), cell(row, 1)
		skuCode, skuName := cell(row, 2), cell(row, 3)
		if plantCode == "" || category == "" || skuCode == "" {
			result.warn("SKUs row %d: missing plant/category/sku code", i+2)
			continue
		}
		if skuName == "" {
			skuName = skuCode
		}
		plantID, found, err := imp.store.PlantIDByCode(ctx, plantCode)
		if err != nil {
			return err
		}
		if !found {
			result.warn("SKUs row %d: unknown plant %q", i+2, plantCode)
			continue
		}
		categoryID, found, err := imp.store.CategoryIDByName(ctx, category, plantID)
		if err != nil {
			return err
		}
		if !found {
			result.warn("SKUs row %d: unknown category %q", i+2, category)
			continue
		}
		if _, err := imp.store.UpsertSKU(ctx, skuCode, skuName, categoryID); err != nil {
			return err
		}
		result.ImportedRows++
	}
	return nil
}

// importChannels 列: Channel
func (imp *Importer) importChannels(ctx context.Context, file *excelize.File, result *Result) error {
	rows, err := dataRows(file, "Channels")
	if err != nil {
		return err
	}
	for i, row := range rows {
		result.TotalRows++
		name := cell(row, 0)
		if name == "" {
			result.warn("Channels row %d: empty channel name", i+2)
			continue
		}
		if _, err := imp.store.UpsertChannel(ctx, name); err != nil {
			return err
		}
		result.ImportedRows++
	}
	return nil
}

// importModels 列: Model
func (imp *Importer) importModels(ctx context.Context, file *excelize.File, result *Result) error {
	rows, err := dataRows(file, "Models")
	if err != nil {
		return err
	}
	for i, row := range rows {
		result.TotalRows++
		name := cell(row, 0)
		if name == "" {
			result.warn("Models row %d: empty model name", i+2)
			continue
		}
		if _, err := imp.store.UpsertModel(ctx, name); err != nil {
			return err
		}
		result.ImportedRows++
	}
	return nil
}

// ParseCodeList 解析形如 ['GUJ123', 'GUJ124'] 或逗号分隔的代码列表
func ParseCodeList(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "[")
	trimmed = strings.TrimSuffix(trimmed, "]")
	if trimmed == "" {
		return nil
	}

	var codes []string
	for _, part := range strings.Split(trimmed, ",") {
		code := strings.TrimSpace(part)
		code = strings.Trim(code, `'"`)
		code = strings.TrimSpace(code)
		if code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}
