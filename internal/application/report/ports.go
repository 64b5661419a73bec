package report

import (
	"context"

	"github.com/heladeria/balanza-api/internal/domain/entity"
)

// PDFGenerator renderiza el reporte de movimientos en PDF.
type PDFGenerator interface {
	GenerateMovementsPDF(ctx context.Context, title, clientName string, movements []*entity.Movement) ([]byte, error)
}

// ExcelGenerator renderiza el reporte de movimientos en XLSX.
type ExcelGenerator interface {
	GenerateMovementsXLSX(ctx context.Context, movements []*entity.Movement) ([]byte, error)
}
