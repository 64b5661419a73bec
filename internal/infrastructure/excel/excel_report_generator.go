// Package excel renderiza el reporte de movimientos como planilla XLSX.
package excel

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/heladeria/balanza-api/internal/application/report"
	"github.com/heladeria/balanza-api/internal/domain/entity"
)

const sheetName = "Movimientos"

var _ report.ExcelGenerator = (*ReportGenerator)(nil)

// ReportGenerator implementa report.ExcelGenerator usando excelize.
type ReportGenerator struct{}

// NewReportGenerator construye el generador.
func NewReportGenerator() *ReportGenerator { return &ReportGenerator{} }

// GenerateMovementsXLSX escribe una fila por movimiento y devuelve los bytes
// del archivo.
func (g *ReportGenerator) GenerateMovementsXLSX(_ context.Context, movements []*entity.Movement) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"Fecha", "Flujo", "Gusto", "Kg", "$/Kg", "Total", "Código", "Estado", "Crudo"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	for row, m := range movements {
		values := []any{
			m.CreatedAt.Format(time.RFC3339),
			m.Flow,
			m.FlavorName,
			decimalCell(m.WeightKg),
			decimalCell(m.PricePerKg),
			decimalCell(m.Total),
			m.Barcode,
			m.Status,
			m.Raw,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir buffer: %w", err)
	}
	return buf.Bytes(), nil
}

// decimalCell devuelve el valor como float para la celda, o "" si es nulo.
// La pérdida de precisión de float64 es aceptable en la planilla (el libro
// sigue guardando decimales exactos).
func decimalCell(d *decimal.Decimal) any {
	if d == nil {
		return ""
	}
	return d.InexactFloat64()
}
