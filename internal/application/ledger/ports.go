package ledger

import (
	"context"

	"github.com/heladeria/balanza-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de movimientos atado a esa tx. Mantiene atómica cada operación
// del libro respecto de sus propios registros; no hay lock de aplicación
// entre el chequeo anti doble-escaneo y la escritura (hay un solo operador
// escaneando).
type TxRunner interface {
	Run(ctx context.Context, fn func(movRepo repository.MovementRepository) error) error
}
