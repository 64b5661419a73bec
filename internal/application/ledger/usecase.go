// Package ledger implementa el libro de movimientos: la única vía de
// escritura de pesadas (escaneo auto-confirmado, escaneo pendiente
// confirmado o carga manual) con supresión de escaneos duplicados.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heladeria/balanza-api/internal/domain"
	"github.com/heladeria/balanza-api/internal/domain/entity"
	"github.com/heladeria/balanza-api/internal/domain/repository"
)

// DefaultDuplicateWindow es la ventana anti doble-escaneo histórica. Es una
// heurística, no una prueba de corrección: dos tickets idénticos genuinos
// dentro de la ventana se fusionan.
const DefaultDuplicateWindow = 2 * time.Second

// UseCase registra, lista y anula movimientos del libro.
type UseCase struct {
	txRunner   TxRunner
	movRepo    repository.MovementRepository
	flavorRepo repository.FlavorRepository
	window     time.Duration
	now        func() time.Time
}

// New construye el caso de uso. window <= 0 usa DefaultDuplicateWindow.
func New(txRunner TxRunner, movRepo repository.MovementRepository, flavorRepo repository.FlavorRepository, window time.Duration) *UseCase {
	if window <= 0 {
		window = DefaultDuplicateWindow
	}
	return &UseCase{
		txRunner:   txRunner,
		movRepo:    movRepo,
		flavorRepo: flavorRepo,
		window:     window,
		now:        time.Now,
	}
}

// MovementInput entrada para registrar un movimiento.
// PricePerKg nil toma una foto del precio del gusto al momento de la
// escritura (nunca se reinterpreta después). Barcode vacío genera uno
// sintético con timestamp, como la carga manual del mostrador.
type MovementInput struct {
	Flow       string
	FlavorName string
	Barcode    string
	Raw        string
	WeightKg   *decimal.Decimal
	PricePerKg *decimal.Decimal
}

// Record registra un movimiento. Si ya existe uno con el mismo código de
// barras dentro de la ventana anti doble-escaneo, devuelve ese registro con
// created=false sin escribir nada (no es un error: para el caller el
// guardado "salió bien").
func (uc *UseCase) Record(ctx context.Context, input MovementInput) (m *entity.Movement, created bool, err error) {
	if !entity.ValidFlow(input.Flow) {
		return nil, false, fmt.Errorf("%w: flujo %q", domain.ErrInvalidInput, input.Flow)
	}
	if strings.TrimSpace(input.FlavorName) == "" {
		return nil, false, fmt.Errorf("%w: falta el gusto", domain.ErrInvalidInput)
	}

	now := uc.now()

	price := input.PricePerKg
	if price == nil {
		f, err := uc.flavorRepo.GetByName(input.FlavorName)
		if err != nil {
			return nil, false, err
		}
		if f != nil {
			price = f.PricePerKg
		}
	}

	barcode := input.Barcode
	if barcode == "" {
		barcode = fmt.Sprintf("MANUAL-%d", now.UnixMilli())
	}
	raw := input.Raw
	if raw == "" {
		raw = barcode
	}

	var saved *entity.Movement
	txErr := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository) error {
		last, err := movRepo.LatestByBarcode(barcode)
		if err != nil {
			return err
		}
		if last != nil && absDuration(now.Sub(last.CreatedAt)) <= uc.window {
			saved = last
			return nil
		}

		mv := &entity.Movement{
			ID:         uuid.New().String(),
			CreatedAt:  now,
			Flow:       input.Flow,
			FlavorName: strings.TrimSpace(input.FlavorName),
			Barcode:    barcode,
			Raw:        raw,
			WeightKg:   input.WeightKg,
			PricePerKg: price,
			Total:      ComputeTotal(input.WeightKg, price),
			Status:     entity.StatusOK,
		}
		if err := movRepo.Create(mv); err != nil {
			return err
		}
		saved = mv
		created = true
		return nil
	})
	if txErr != nil {
		return nil, false, txErr
	}
	return saved, created, nil
}

// ComputeTotal devuelve round(peso × precio) con redondeo al entero más
// cercano alejándose de cero, o nil si falta alguno de los dos. El total
// nunca se setea por otra vía.
func ComputeTotal(weightKg, pricePerKg *decimal.Decimal) *decimal.Decimal {
	if weightKg == nil || pricePerKg == nil {
		return nil
	}
	t := weightKg.Mul(*pricePerKg).Round(0)
	return &t
}

// Void elimina un movimiento en forma definitiva. Idempotente: anular un id
// inexistente no es un error.
func (uc *UseCase) Void(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: falta el id", domain.ErrInvalidInput)
	}
	return uc.movRepo.Delete(id)
}

// ResetFlavor borra todos los movimientos (ambos flujos) de un gusto por
// nombre exacto y devuelve cuántos borró. Es el reseteo total de stock de
// un ítem.
func (uc *UseCase) ResetFlavor(ctx context.Context, flavorName string) (int, error) {
	if strings.TrimSpace(flavorName) == "" {
		return 0, fmt.Errorf("%w: falta el gusto", domain.ErrInvalidInput)
	}
	var deleted int
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository) error {
		n, err := movRepo.DeleteByFlavor(flavorName)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	return deleted, err
}

// List devuelve movimientos de un flujo, del más nuevo al más viejo.
func (uc *UseCase) List(ctx context.Context, flow string, limit int) ([]*entity.Movement, error) {
	if !entity.ValidFlow(flow) {
		return nil, fmt.Errorf("%w: flujo %q", domain.ErrInvalidInput, flow)
	}
	if limit <= 0 {
		limit = 200
	}
	return uc.movRepo.ListByFlow(flow, limit)
}

// WithClock reemplaza el reloj (tests de la ventana anti doble-escaneo).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
