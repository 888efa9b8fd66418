// Package export writes the record list as a spreadsheet.
package export

import (
	"fmt"
	"io"

	"cloud.google.com/go/civil"
	"github.com/xuri/excelize/v2"

	"github.com/iho/goreceipts/internal/domain"
)

// SheetName is the worksheet holding the records.
const SheetName = "Recibos"

var headings = []string{"ID", "Departamento", "Inquilino", "Monto", "Desde", "Hasta", "Imprimible"}

// XLSXExporter implements usecase.RecordExporter using excelize.
type XLSXExporter struct{}

// NewXLSXExporter creates a new XLSXExporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// ContentType implements usecase.RecordExporter.
func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension implements usecase.RecordExporter.
func (e *XLSXExporter) Extension() string {
	return ".xlsx"
}

// Export writes one row per record under a header row. Unset amounts and
// dates are left blank.
func (e *XLSXExporter) Export(w io.Writer, records []domain.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	// Built-in format 4 is #,##0.00.
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return err
	}

	for i, h := range headings {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(headings), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, r := range records {
		row := i + 2
		if err := f.SetSheetRow(SheetName, fmt.Sprintf("A%d", row), &[]any{
			r.ID,
			r.Unit,
			r.Tenant,
			amountCell(r),
			dateCell(r.PeriodStart),
			dateCell(r.PeriodEnd),
			yesNo(r.IsPrintable()),
		}); err != nil {
			return fmt.Errorf("row %d: %w", row, err)
		}
	}

	if len(records) > 0 {
		end := fmt.Sprintf("D%d", len(records)+1)
		if err := f.SetCellStyle(SheetName, "D2", end, amountStyle); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 30); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "B", "G", 16); err != nil {
		return err
	}

	return f.Write(w)
}

func amountCell(r domain.Record) any {
	if !r.Amount.Valid {
		return nil
	}
	return r.Amount.Decimal.InexactFloat64()
}

func dateCell(d civil.Date) any {
	if domain.IsZeroDate(d) {
		return nil
	}
	return d.String()
}

func yesNo(b bool) string {
	if b {
		return "sí"
	}
	return "no"
}
