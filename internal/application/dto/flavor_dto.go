package dto

import (
	"github.com/shopspring/decimal"

	"github.com/heladeria/balanza-api/internal/domain/entity"
)

// UpsertFlavorRequest body para POST /api/flavors.
type UpsertFlavorRequest struct {
	Name       string           `json:"name"`
	PLU        *string          `json:"plu,omitempty"`
	PricePerKg *decimal.Decimal `json:"price_per_kg,omitempty"`
	SortOrder  int              `json:"sort_order"`
	IsActive   *bool            `json:"is_active,omitempty"` // default true
}

// SetPriceRequest body para PUT /api/flavors/price. NameOrPLU resuelve por
// nombre exacto (ignorando mayúsculas) o por PLU numérico.
type SetPriceRequest struct {
	NameOrPLU  string           `json:"name_or_plu"`
	PricePerKg *decimal.Decimal `json:"price_per_kg"`
}

// FlavorResponse representa una entrada del catálogo.
type FlavorResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	PLU        *string          `json:"plu"`
	PricePerKg *decimal.Decimal `json:"price_per_kg"`
	SortOrder  int              `json:"sort_order"`
	IsActive   bool             `json:"is_active"`
}

// NewFlavorResponse mapea la entidad al DTO.
func NewFlavorResponse(f *entity.Flavor) FlavorResponse {
	return FlavorResponse{
		ID:         f.ID,
		Name:       f.Name,
		PLU:        f.PLU,
		PricePerKg: f.PricePerKg,
		SortOrder:  f.SortOrder,
		IsActive:   f.IsActive,
	}
}
