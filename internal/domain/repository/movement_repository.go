package repository

import (
	"time"

	"github.com/heladeria/balanza-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del libro de
// movimientos. Cada operación es atómica respecto de su propio registro.
type MovementRepository interface {
	Create(m *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// Delete elimina en forma definitiva; idempotente si el id no existe.
	Delete(id string) error
	// ListByFlow devuelve movimientos de un flujo, del más nuevo al más
	// viejo por created_at, hasta limit.
	ListByFlow(flow string, limit int) ([]*entity.Movement, error)
	// LatestByBarcode devuelve el movimiento más reciente con ese código de
	// barras exacto, o nil. Soporta el chequeo anti doble-escaneo.
	LatestByBarcode(barcode string) (*entity.Movement, error)
	// DeleteByFlavor borra todos los movimientos (ambos flujos) cuyo nombre
	// de gusto coincide exactamente; devuelve cuántos borró.
	DeleteByFlavor(flavorName string) (int, error)
	// ListAll devuelve ambos flujos en orden ascendente de created_at,
	// opcionalmente acotado por rango de fechas (alimenta los reportes).
	ListAll(from, to *time.Time) ([]*entity.Movement, error)
}
