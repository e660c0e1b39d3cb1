package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/raeesul-erabiz/invoice-extractor/internal/domain"
)

const varianceSheet = "Variance Summary"

// WriteXLSX writes the variance summary workbook to path. One row per
// invoice, same columns as the CSV export.
func WriteXLSX(path string, invoices []domain.Invoice) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), varianceSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, name := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(varianceSheet, cell, name); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i := range invoices {
		row := invoiceToRow(&invoices[i])
		for col, val := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("row %d cell: %w", i+2, err)
			}
			if err := f.SetCellValue(varianceSheet, cell, val); err != nil {
				return fmt.Errorf("write row %d: %w", i+2, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
