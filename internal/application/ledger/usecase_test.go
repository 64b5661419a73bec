package ledger_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heladeria/balanza-api/internal/application/ledger"
	"github.com/heladeria/balanza-api/internal/domain"
	"github.com/heladeria/balanza-api/internal/domain/catalog"
	"github.com/heladeria/balanza-api/internal/domain/entity"
	"github.com/heladeria/balanza-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia. Sin mocks generados: el
// comportamiento relevante (orden, filtros) es lo bastante chico para
// implementarlo a mano y que el test lea como la base real.
// ──────────────────────────────────────────────────────────────────────────────

type fakeMovementRepo struct {
	movements []*entity.Movement
}

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.Movement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) Delete(id string) error {
	for i, m := range r.movements {
		if m.ID == id {
			r.movements = append(r.movements[:i], r.movements[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeMovementRepo) ListByFlow(flow string, limit int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.movements {
		if m.Flow == flow {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMovementRepo) LatestByBarcode(barcode string) (*entity.Movement, error) {
	var latest *entity.Movement
	for _, m := range r.movements {
		if m.Barcode == barcode && (latest == nil || m.CreatedAt.After(latest.CreatedAt)) {
			latest = m
		}
	}
	return latest, nil
}

func (r *fakeMovementRepo) DeleteByFlavor(flavorName string) (int, error) {
	var kept []*entity.Movement
	deleted := 0
	for _, m := range r.movements {
		if m.FlavorName == flavorName {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	r.movements = kept
	return deleted, nil
}

func (r *fakeMovementRepo) ListAll(from, to *time.Time) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.movements {
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type fakeFlavorRepo struct {
	flavors []*entity.Flavor
}

func (r *fakeFlavorRepo) Put(f *entity.Flavor) error {
	for i, e := range r.flavors {
		if e.ID == f.ID {
			r.flavors[i] = f
			return nil
		}
	}
	r.flavors = append(r.flavors, f)
	return nil
}

func (r *fakeFlavorRepo) GetByName(name string) (*entity.Flavor, error) {
	for _, f := range r.flavors {
		if catalog.SameName(f.Name, name) {
			return f, nil
		}
	}
	return nil, nil
}

func (r *fakeFlavorRepo) List(activeOnly bool) ([]*entity.Flavor, error) {
	var out []*entity.Flavor
	for _, f := range r.flavors {
		if activeOnly && !f.IsActive {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *fakeFlavorRepo) UpdatePrice(id string, price *decimal.Decimal) error {
	for _, f := range r.flavors {
		if f.ID == id {
			f.PricePerKg = price
			return nil
		}
	}
	return nil
}

// fakeTxRunner ejecuta el callback directamente contra el repo en memoria.
type fakeTxRunner struct {
	movRepo repository.MovementRepository
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(repository.MovementRepository) error) error {
	return fn(r.movRepo)
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func decFloatPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func newTestUseCase(flavors ...*entity.Flavor) (*ledger.UseCase, *fakeMovementRepo) {
	movRepo := &fakeMovementRepo{}
	flavorRepo := &fakeFlavorRepo{flavors: flavors}
	uc := ledger.New(&fakeTxRunner{movRepo: movRepo}, movRepo, flavorRepo, 0)
	return uc, movRepo
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

func TestRecord_TotalRedondeado(t *testing.T) {
	uc, _ := newTestUseCase()

	m, created, err := uc.Record(context.Background(), ledger.MovementInput{
		Flow:       entity.FlowIn,
		FlavorName: "Vainilla",
		Barcode:    "2000001050000",
		WeightKg:   decFloatPtr(5.0),
		PricePerKg: decPtr(9500),
	})

	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, m.Total)
	assert.True(t, m.Total.Equal(decimal.NewFromInt(47500)), "total = %s", m.Total)
	assert.Equal(t, entity.StatusOK, m.Status)
}

func TestRecord_FotoDePrecioDelCatalogo(t *testing.T) {
	uc, _ := newTestUseCase(&entity.Flavor{
		ID: "f1", Name: "Vainilla", PricePerKg: decPtr(9500), IsActive: true,
	})

	m, _, err := uc.Record(context.Background(), ledger.MovementInput{
		Flow:       entity.FlowIn,
		FlavorName: "vainilla",
		Barcode:    "2000001025000",
		WeightKg:   decFloatPtr(2.5),
	})

	require.NoError(t, err)
	require.NotNil(t, m.PricePerKg)
	assert.True(t, m.PricePerKg.Equal(decimal.NewFromInt(9500)), "el precio se congela al escribir")
	require.NotNil(t, m.Total)
	assert.True(t, m.Total.Equal(decimal.NewFromInt(23750)))
}

func TestRecord_SinPesoNiPrecio_TotalNulo(t *testing.T) {
	uc, _ := newTestUseCase()

	m, _, err := uc.Record(context.Background(), ledger.MovementInput{
		Flow:       entity.FlowOut,
		FlavorName: "Frutilla",
		Barcode:    "SIN-PESO-1",
	})

	require.NoError(t, err)
	assert.Nil(t, m.WeightKg)
	assert.Nil(t, m.Total)
}

func TestRecord_CodigoManualSintetico(t *testing.T) {
	uc, _ := newTestUseCase()
	at := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	uc.WithClock(fixedClock(at))

	m, _, err := uc.Record(context.Background(), ledger.MovementInput{
		Flow:       entity.FlowIn,
		FlavorName: "Chocolate",
		WeightKg:   decFloatPtr(1.2),
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(m.Barcode, "MANUAL-"), "barcode = %q", m.Barcode)
	assert.Equal(t, m.Barcode, m.Raw, "sin texto crudo, el código hace de crudo")
}

func TestRecord_FlujoInvalido(t *testing.T) {
	uc, _ := newTestUseCase()

	_, _, err := uc.Record(context.Background(), ledger.MovementInput{
		Flow:       "sideways",
		FlavorName: "Vainilla",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = uc.Record(context.Background(), ledger.MovementInput{
		Flow:       entity.FlowIn,
		FlavorName: "   ",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventana anti doble-escaneo
// ──────────────────────────────────────────────────────────────────────────────

func TestRecord_DuplicadoDentroDeVentana(t *testing.T) {
	uc, movRepo := newTestUseCase()
	t0 := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	input := ledger.MovementInput{
		Flow:       entity.FlowIn,
		FlavorName: "Vainilla",
		Barcode:    "2000001025000",
		WeightKg:   decFloatPtr(2.5),
		PricePerKg: decPtr(9500),
	}

	uc.WithClock(fixedClock(t0))
	first, created, err := uc.Record(context.Background(), input)
	require.NoError(t, err)
	require.True(t, created)

	// mismo código 2 segundos después: dentro de la ventana, no escribe
	uc.WithClock(fixedClock(t0.Add(2 * time.Second)))
	second, created, err := uc.Record(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID, "devuelve el registro existente")
	assert.Len(t, movRepo.movements, 1)
}

func TestRecord_FueraDeVentana_EscribeNuevo(t *testing.T) {
	uc, movRepo := newTestUseCase()
	t0 := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	input := ledger.MovementInput{
		Flow:       entity.FlowIn,
		FlavorName: "Vainilla",
		Barcode:    "2000001025000",
		WeightKg:   decFloatPtr(2.5),
	}

	uc.WithClock(fixedClock(t0))
	first, _, err := uc.Record(context.Background(), input)
	require.NoError(t, err)

	uc.WithClock(fixedClock(t0.Add(3 * time.Second)))
	second, created, err := uc.Record(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, movRepo.movements, 2)
}

func TestRecord_OtroCodigoNoSeSuprime(t *testing.T) {
	uc, movRepo := newTestUseCase()
	t0 := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	uc.WithClock(fixedClock(t0))

	_, _, err := uc.Record(context.Background(), ledger.MovementInput{
		Flow: entity.FlowIn, FlavorName: "Vainilla", Barcode: "2000001025000",
	})
	require.NoError(t, err)

	_, created, err := uc.Record(context.Background(), ledger.MovementInput{
		Flow: entity.FlowIn, FlavorName: "Vainilla", Barcode: "2000002065005",
	})
	require.NoError(t, err)
	assert.True(t, created, "otra etiqueta en el mismo instante es un balde distinto")
	assert.Len(t, movRepo.movements, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Anulación y reseteo
// ──────────────────────────────────────────────────────────────────────────────

func TestVoid_Idempotente(t *testing.T) {
	uc, movRepo := newTestUseCase()

	m, _, err := uc.Record(context.Background(), ledger.MovementInput{
		Flow: entity.FlowIn, FlavorName: "Vainilla", Barcode: "x1",
	})
	require.NoError(t, err)

	require.NoError(t, uc.Void(context.Background(), m.ID))
	assert.Empty(t, movRepo.movements)

	// segunda anulación del mismo id: también OK
	require.NoError(t, uc.Void(context.Background(), m.ID))

	err = uc.Void(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResetFlavor(t *testing.T) {
	uc, movRepo := newTestUseCase()
	t0 := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	for i, name := range []string{"Vainilla", "Vainilla", "Chocolate"} {
		uc.WithClock(fixedClock(t0.Add(time.Duration(i) * time.Minute)))
		_, _, err := uc.Record(context.Background(), ledger.MovementInput{
			Flow: entity.FlowIn, FlavorName: name, Barcode: bc(i),
		})
		require.NoError(t, err)
	}

	n, err := uc.ResetFlavor(context.Background(), "Vainilla")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, movRepo.movements, 1)
	assert.Equal(t, "Chocolate", movRepo.movements[0].FlavorName)
}

func bc(i int) string {
	return fmt.Sprintf("cod-%d", i)
}

func TestList(t *testing.T) {
	uc, _ := newTestUseCase()
	t0 := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		uc.WithClock(fixedClock(t0.Add(time.Duration(i) * time.Minute)))
		_, _, err := uc.Record(context.Background(), ledger.MovementInput{
			Flow: entity.FlowIn, FlavorName: "Vainilla", Barcode: bc(i),
		})
		require.NoError(t, err)
	}

	out, err := uc.List(context.Background(), entity.FlowIn, 2)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, out[0].CreatedAt.After(out[1].CreatedAt), "del más nuevo al más viejo")

	_, err = uc.List(context.Background(), "nope", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
