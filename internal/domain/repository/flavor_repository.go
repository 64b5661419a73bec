package repository

import (
	"github.com/shopspring/decimal"

	"github.com/heladeria/balanza-api/internal/domain/entity"
)

// FlavorRepository define el puerto de persistencia del catálogo de gustos.
type FlavorRepository interface {
	// Put inserta o reemplaza la entrada (la fusión de campos es
	// responsabilidad del caso de uso, vía catalog.Merge).
	Put(flavor *entity.Flavor) error
	// GetByName busca por nombre ignorando mayúsculas/minúsculas.
	GetByName(name string) (*entity.Flavor, error)
	// List devuelve el catálogo sin duplicados por nombre (gana la primera
	// aparición), ordenado por sort_order y luego nombre.
	List(activeOnly bool) ([]*entity.Flavor, error)
	// UpdatePrice es la vía dedicada de cambio de precio.
	UpdatePrice(id string, price *decimal.Decimal) error
}
