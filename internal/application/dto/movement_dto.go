package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/heladeria/balanza-api/internal/domain/entity"
)

// RecordMovementRequest body para POST /api/movements.
// Raw es el texto completo que emitió el escáner (ya delimitado por el
// cliente); WeightKg y PricePerKg permiten la carga manual o pisar lo
// decodificado. Si PricePerKg viene vacío se toma el precio del gusto al
// momento de la escritura.
type RecordMovementRequest struct {
	Flow       string           `json:"flow"`
	FlavorName string           `json:"flavor_name"`
	Raw        string           `json:"raw,omitempty"`
	WeightKg   *decimal.Decimal `json:"weight_kg,omitempty"`
	PricePerKg *decimal.Decimal `json:"price_per_kg,omitempty"`
}

// MovementResponse representa un movimiento persistido.
type MovementResponse struct {
	ID         string           `json:"id"`
	CreatedAt  time.Time        `json:"created_at"`
	Flow       string           `json:"flow"`
	FlavorName string           `json:"flavor_name"`
	Barcode    string           `json:"barcode"`
	Raw        string           `json:"raw"`
	WeightKg   *decimal.Decimal `json:"weight_kg"`
	PricePerKg *decimal.Decimal `json:"price_per_kg"`
	Total      *decimal.Decimal `json:"total"`
	Status     string           `json:"status"`
}

// NewMovementResponse mapea la entidad al DTO.
func NewMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:         m.ID,
		CreatedAt:  m.CreatedAt,
		Flow:       m.Flow,
		FlavorName: m.FlavorName,
		Barcode:    m.Barcode,
		Raw:        m.Raw,
		WeightKg:   m.WeightKg,
		PricePerKg: m.PricePerKg,
		Total:      m.Total,
		Status:     m.Status,
	}
}

// DeleteFlavorMovementsResponse respuesta del reseteo de stock de un gusto.
type DeleteFlavorMovementsResponse struct {
	Deleted int `json:"deleted"`
}
