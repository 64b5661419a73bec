// Package report arma la vista plana del libro para exportación: todos los
// movimientos de ambos flujos, ordenados por fecha de creación. El núcleo no
// formatea nada más allá de CSV; PDF y XLSX delegan en renderers.
package report

import (
	"context"
	"encoding/csv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/heladeria/balanza-api/internal/domain/entity"
	"github.com/heladeria/balanza-api/internal/domain/repository"
)

// UseCase produce los exportables del libro de movimientos.
type UseCase struct {
	movRepo repository.MovementRepository
	pdf     PDFGenerator
	excel   ExcelGenerator
}

// New construye el caso de uso.
func New(movRepo repository.MovementRepository, pdf PDFGenerator, excel ExcelGenerator) *UseCase {
	return &UseCase{movRepo: movRepo, pdf: pdf, excel: excel}
}

// Movements devuelve ambos flujos en orden ascendente de created_at,
// opcionalmente acotado por rango de fechas.
func (uc *UseCase) Movements(ctx context.Context, from, to *time.Time) ([]*entity.Movement, error) {
	return uc.movRepo.ListAll(from, to)
}

// CSV exporta el rango como CSV con el encabezado histórico del sistema.
func (uc *UseCase) CSV(ctx context.Context, from, to *time.Time) (string, error) {
	rows, err := uc.Movements(ctx, from, to)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write([]string{"createdAt", "flow", "flavorName", "weightKg", "pricePerKg", "total", "barcode", "status", "raw"})
	for _, m := range rows {
		_ = w.Write([]string{
			m.CreatedAt.Format(time.RFC3339Nano),
			m.Flow,
			m.FlavorName,
			decimalOrEmpty(m.WeightKg),
			decimalOrEmpty(m.PricePerKg),
			decimalOrEmpty(m.Total),
			m.Barcode,
			m.Status,
			m.Raw,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// PDF exporta el rango como PDF con título y cliente opcional.
func (uc *UseCase) PDF(ctx context.Context, from, to *time.Time, clientName string) ([]byte, error) {
	rows, err := uc.Movements(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateMovementsPDF(ctx, "Reporte de movimientos", clientName, rows)
}

// XLSX exporta el rango como planilla.
func (uc *UseCase) XLSX(ctx context.Context, from, to *time.Time) ([]byte, error) {
	rows, err := uc.Movements(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return uc.excel.GenerateMovementsXLSX(ctx, rows)
}

func decimalOrEmpty(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
