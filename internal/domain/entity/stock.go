package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockSummary es el resumen derivado de stock de un gusto. No se persiste:
// se recalcula completo desde el historial de movimientos en cada lectura.
type StockSummary struct {
	FlavorName       string
	AvailableKg      decimal.Decimal // TotalInKg - TotalOutKg; puede ser negativo
	TotalInKg        decimal.Decimal
	TotalOutKg       decimal.Decimal
	CountIn          int // cantidad de baldes entrada (un escaneo = un balde)
	CountOut         int // cantidad de baldes salida
	AvgPricePerKgIn  *decimal.Decimal
	AvgPricePerKgOut *decimal.Decimal
	LastUpdated      *time.Time // nil si no hay movimientos
}

// StockTotals son los totales generales sobre todos los gustos.
type StockTotals struct {
	TotalUnits    int             // Σ (CountIn - CountOut)
	TotalKg       decimal.Decimal // Σ AvailableKg
	TotalPriceIn  decimal.Decimal // valuación del stock disponible a precio promedio de entrada
	TotalPriceOut decimal.Decimal // valuación de lo vendido a precio promedio de salida
}
