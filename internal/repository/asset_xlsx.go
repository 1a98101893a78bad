package repository

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shenikar/sunshade_report_system/internal/models"
	"github.com/xuri/excelize/v2"
)

// Заголовки колонок в исходной таблице. Сравниваются как точные ключи.
const (
	colManageNumber = "관리번호"
	colLatitude     = "위도"
	colLongitude    = "경도"
	colSiteName     = "설치장소명"
	colAddress      = "주소"
)

var requiredColumns = []string{colManageNumber, colLatitude, colLongitude, colSiteName, colAddress}

// XLSXSource читает датасет из первого листа книги Excel
type XLSXSource struct {
	path string
}

func NewXLSXSource(path string) *XLSXSource {
	return &XLSXSource{path: path}
}

// Load читает файл целиком. Строки без широты отбрасываются.
func (s *XLSXSource) Load(ctx context.Context) ([]models.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %w", models.ErrDataUnavailable, s.path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: workbook %s has no sheets", models.ErrDataUnavailable, s.path)
	}

	// Берем сырые значения ячеек: числовой формат не должен округлять координаты
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet %q: %w", models.ErrDataUnavailable, sheet, err)
	}

	assets, err := parseAssetRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", models.ErrDataUnavailable, s.path, err)
	}
	return assets, nil
}

func parseAssetRows(rows [][]string) ([]models.Asset, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet is empty")
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		name = strings.TrimSpace(name)
		if _, exists := columns[name]; !exists {
			columns[name] = i
		}
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	assets := make([]models.Asset, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		cell := func(name string) string {
			idx := columns[name]
			if idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		// строки без широты не попадают в справочник
		if cell(colLatitude) == "" {
			continue
		}

		manageNumber, err := parseManageNumber(cell(colManageNumber))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid %s: %w", line, colManageNumber, err)
		}
		lat, err := strconv.ParseFloat(cell(colLatitude), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid %s: %w", line, colLatitude, err)
		}
		lon, err := strconv.ParseFloat(cell(colLongitude), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid %s: %w", line, colLongitude, err)
		}

		assets = append(assets, models.Asset{
			ManageNumber: manageNumber,
			Latitude:     lat,
			Longitude:    lon,
			SiteName:     cell(colSiteName),
			Address:      cell(colAddress),
		})
	}
	return assets, nil
}

// parseManageNumber принимает "100" и "100.0"
func parseManageNumber(raw string) (int, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not an integer", raw)
	}
	return int(f), nil
}
