package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/heladeria/balanza-api/internal/domain/entity"
)

// StockSummaryResponse resumen derivado de stock de un gusto.
type StockSummaryResponse struct {
	FlavorName       string           `json:"flavor_name"`
	AvailableKg      decimal.Decimal  `json:"available_kg"`
	TotalInKg        decimal.Decimal  `json:"total_in_kg"`
	TotalOutKg       decimal.Decimal  `json:"total_out_kg"`
	CountIn          int              `json:"count_in"`
	CountOut         int              `json:"count_out"`
	AvgPricePerKgIn  *decimal.Decimal `json:"avg_price_per_kg_in"`
	AvgPricePerKgOut *decimal.Decimal `json:"avg_price_per_kg_out"`
	LastUpdated      *time.Time       `json:"last_updated"`
}

// StockTotalsResponse totales generales del tablero de stock.
type StockTotalsResponse struct {
	TotalUnits    int             `json:"total_units"`
	TotalKg       decimal.Decimal `json:"total_kg"`
	TotalPriceIn  decimal.Decimal `json:"total_price_in"`
	TotalPriceOut decimal.Decimal `json:"total_price_out"`
}

// StockResponse cuerpo de GET /api/stock.
type StockResponse struct {
	Items  []StockSummaryResponse `json:"items"`
	Totals StockTotalsResponse    `json:"totals"`
}

// NewStockSummaryResponse mapea la entidad al DTO.
func NewStockSummaryResponse(s entity.StockSummary) StockSummaryResponse {
	return StockSummaryResponse{
		FlavorName:       s.FlavorName,
		AvailableKg:      s.AvailableKg,
		TotalInKg:        s.TotalInKg,
		TotalOutKg:       s.TotalOutKg,
		CountIn:          s.CountIn,
		CountOut:         s.CountOut,
		AvgPricePerKgIn:  s.AvgPricePerKgIn,
		AvgPricePerKgOut: s.AvgPricePerKgOut,
		LastUpdated:      s.LastUpdated,
	}
}
