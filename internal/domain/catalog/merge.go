// Package catalog implementa las reglas de fusión del upsert de gustos.
// Las precedencias son sutiles y fáciles de invertir, por eso viven en una
// función con nombre y casos de tabla en el test, no en condicionales sueltos.
package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heladeria/balanza-api/internal/domain/entity"
)

// Input son los campos que trae un upsert de catálogo (alta explícita o
// bootstrap). PricePerKg acá es un precio por defecto: nunca pisa uno ya
// cargado (el precio solo se cambia por la vía dedicada de actualización).
type Input struct {
	Name       string
	PLU        *string
	PricePerKg *decimal.Decimal
	SortOrder  int
	IsActive   bool
}

// SameName compara nombres de gustos ignorando mayúsculas/minúsculas.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// NameKey es la clave de identidad de un gusto (nombre normalizado).
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Merge resuelve un upsert contra una entrada existente (nil = alta nueva).
//
// Precedencias con entrada existente:
//   - ID y Name exactos se conservan siempre.
//   - SortOrder e IsActive entrantes pisan a los existentes.
//   - El PLU entrante solo completa un PLU previamente nulo.
//   - El precio existente se conserva; el entrante solo completa uno nulo.
func Merge(existing *entity.Flavor, in Input) entity.Flavor {
	if existing == nil {
		return entity.Flavor{
			ID:         uuid.New().String(),
			Name:       strings.TrimSpace(in.Name),
			PLU:        in.PLU,
			PricePerKg: in.PricePerKg,
			SortOrder:  in.SortOrder,
			IsActive:   in.IsActive,
		}
	}

	merged := *existing
	merged.SortOrder = in.SortOrder
	merged.IsActive = in.IsActive
	if merged.PLU == nil {
		merged.PLU = in.PLU
	}
	if merged.PricePerKg == nil {
		merged.PricePerKg = in.PricePerKg
	}
	return merged
}
