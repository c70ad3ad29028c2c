// Package export renders computed estimates as documents for external
// consumers. The contract is line items in, workbook bytes out; layout is
// intentionally plain.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/signworks/estimator/internal/estimate"
)

const sheetName = "Estimate"

var headers = []string{"Building", "Item", "Material", "Dimensions", "Quantity", "Unit Price", "Total"}

// EstimateWorkbook renders estimate rows and a grand-total line into a
// single-sheet workbook.
func EstimateWorkbook(projectName string, items []estimate.LineItem) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetCellValue(sheetName, "A1", "Project"); err != nil {
		return nil, fmt.Errorf("set title cell: %w", err)
	}
	_ = f.SetCellValue(sheetName, "B1", projectName)

	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 3)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("set header cell: %w", err)
		}
	}

	grandTotal := 0.0
	for row, item := range items {
		values := []any{
			item.Building,
			item.Item,
			item.Material,
			item.Dimensions,
			item.Quantity,
			item.UnitPrice,
			item.Total,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+4)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("set data cell: %w", err)
			}
		}
		grandTotal += item.Total
	}

	totalRow := len(items) + 5
	cell, _ := excelize.CoordinatesToCellName(6, totalRow)
	_ = f.SetCellValue(sheetName, cell, "Grand Total")
	cell, _ = excelize.CoordinatesToCellName(7, totalRow)
	_ = f.SetCellValue(sheetName, cell, grandTotal)

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 3)
	if err := f.SetCellStyle(sheetName, "A3", lastHeader, style); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	return f, nil
}

// WriteEstimate renders the workbook and streams it to w.
func WriteEstimate(w io.Writer, projectName string, items []estimate.LineItem) error {
	f, err := EstimateWorkbook(projectName, items)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
