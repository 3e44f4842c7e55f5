package service

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/pesabot/pesabot-backend/internal/app/repository"
	"github.com/pesabot/pesabot-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// Export writes all rows matching the query's filters into an xlsx workbook.
// Pagination does not apply: an export always covers the full filtered set.
func (s *tableService) Export(table string, query ListQuery) (*excelize.File, error) {
	desc, ok := repository.LookupTable(table)
	if !ok {
		return nil, ErrUnknownTable
	}

	logger.Info("Exporting table", map[string]interface{}{
		"table":  table,
		"search": query.Search,
	})

	items, total, err := s.tableRepo.List(desc, repository.TableFilter{
		Search:   query.Search,
		DateFrom: query.DateFrom,
		DateTo:   query.DateTo,
	})
	if err != nil {
		return nil, err
	}

	rows, err := rowsAsMaps(items)
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	sheet := file.GetSheetName(0)

	headers := collectHeaders(rows)
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for rowIdx, row := range rows {
		for colIdx, header := range headers {
			value, ok := row[header]
			if !ok || value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := file.SetCellValue(sheet, cell, fmt.Sprint(value)); err != nil {
				return nil, err
			}
		}
	}

	logger.Info("Table exported", map[string]interface{}{
		"table": table,
		"rows":  total,
	})
	return file, nil
}

// rowsAsMaps flattens a typed row slice into maps keyed by JSON field name.
func rowsAsMaps(items interface{}) ([]map[string]interface{}, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	var rows []map[string]interface{}
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// collectHeaders returns the sorted union of field names across all rows,
// with id and created_at pinned to the front when present.
func collectHeaders(rows []map[string]interface{}) []string {
	seen := make(map[string]bool)
	for _, row := range rows {
		for key := range row {
			seen[key] = true
		}
	}

	var headers []string
	for key := range seen {
		if key != "id" && key != "created_at" {
			headers = append(headers, key)
		}
	}
	sort.Strings(headers)

	var pinned []string
	if seen["id"] {
		pinned = append(pinned, "id")
	}
	if seen["created_at"] {
		pinned = append(pinned, "created_at")
	}
	return append(pinned, headers...)
}
