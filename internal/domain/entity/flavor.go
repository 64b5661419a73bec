package entity

import "github.com/shopspring/decimal"

// Flavor es una entrada del catálogo de gustos. La identidad es el nombre
// (único ignorando mayúsculas/minúsculas); el PLU se guarda como string para
// conservar ceros a la izquierda.
type Flavor struct {
	ID         string
	Name       string
	PLU        *string
	PricePerKg *decimal.Decimal
	SortOrder  int
	IsActive   bool
}
