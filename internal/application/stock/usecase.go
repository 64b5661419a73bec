// Package stock deriva el resumen de stock por gusto como un fold sin estado
// sobre el historial completo de movimientos. No mantiene saldo corriente:
// recalcular todo en cada lectura elimina cualquier deriva entre el libro y
// el resumen.
package stock

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/heladeria/balanza-api/internal/domain/entity"
	"github.com/heladeria/balanza-api/internal/domain/repository"
)

// DefaultScanLimit acota cuántos movimientos por flujo entra al fold.
const DefaultScanLimit = 10000

// UseCase calcula resúmenes de stock. Lectura pura y reentrante: llamadas
// concurrentes son seguras y pueden ver snapshots distintos si hay
// escrituras intercaladas.
type UseCase struct {
	movRepo    repository.MovementRepository
	flavorRepo repository.FlavorRepository
	scanLimit  int
}

// New construye el caso de uso. scanLimit <= 0 usa DefaultScanLimit.
func New(movRepo repository.MovementRepository, flavorRepo repository.FlavorRepository, scanLimit int) *UseCase {
	if scanLimit <= 0 {
		scanLimit = DefaultScanLimit
	}
	return &UseCase{movRepo: movRepo, flavorRepo: flavorRepo, scanLimit: scanLimit}
}

type accumulator struct {
	name      string
	totalIn   decimal.Decimal
	totalOut  decimal.Decimal
	countIn   int
	countOut  int
	pricesIn  []decimal.Decimal
	pricesOut []decimal.Decimal
	last      *entity.Movement
}

// Compute recorre ambos flujos completos más el catálogo activo y emite un
// resumen por gusto. Los gustos del catálogo sin movimientos aparecen en
// cero; los nombres huérfanos (gustos renombrados o borrados) generan su
// acumulador sobre la marcha. Un movimiento sin peso no aporta nada. Cada
// movimiento con peso cuenta exactamente un balde, pese lo que pese (regla
// del negocio, no una aproximación). Orden final: disponible descendente,
// empates por nombre.
func (uc *UseCase) Compute(ctx context.Context) ([]entity.StockSummary, error) {
	allIn, err := uc.movRepo.ListByFlow(entity.FlowIn, uc.scanLimit)
	if err != nil {
		return nil, err
	}
	allOut, err := uc.movRepo.ListByFlow(entity.FlowOut, uc.scanLimit)
	if err != nil {
		return nil, err
	}
	flavors, err := uc.flavorRepo.List(true)
	if err != nil {
		return nil, err
	}

	accs := make(map[string]*accumulator, len(flavors))
	var order []string
	get := func(name string) *accumulator {
		if a, ok := accs[name]; ok {
			return a
		}
		a := &accumulator{name: name}
		accs[name] = a
		order = append(order, name)
		return a
	}

	for _, f := range flavors {
		get(f.Name)
	}

	for _, m := range allIn {
		if m.WeightKg == nil {
			continue
		}
		a := get(m.FlavorName)
		a.totalIn = a.totalIn.Add(*m.WeightKg)
		a.countIn++
		if m.PricePerKg != nil {
			a.pricesIn = append(a.pricesIn, *m.PricePerKg)
		}
		a.touch(m)
	}
	for _, m := range allOut {
		if m.WeightKg == nil {
			continue
		}
		a := get(m.FlavorName)
		a.totalOut = a.totalOut.Add(*m.WeightKg)
		a.countOut++
		if m.PricePerKg != nil {
			a.pricesOut = append(a.pricesOut, *m.PricePerKg)
		}
		a.touch(m)
	}

	out := make([]entity.StockSummary, 0, len(order))
	for _, name := range order {
		a := accs[name]
		s := entity.StockSummary{
			FlavorName:       a.name,
			AvailableKg:      a.totalIn.Sub(a.totalOut),
			TotalInKg:        a.totalIn,
			TotalOutKg:       a.totalOut,
			CountIn:          a.countIn,
			CountOut:         a.countOut,
			AvgPricePerKgIn:  averagePrice(a.pricesIn),
			AvgPricePerKgOut: averagePrice(a.pricesOut),
		}
		if a.last != nil {
			t := a.last.CreatedAt
			s.LastUpdated = &t
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		cmp := out[i].AvailableKg.Cmp(out[j].AvailableKg)
		if cmp != 0 {
			return cmp > 0
		}
		return out[i].FlavorName < out[j].FlavorName
	})
	return out, nil
}

// Totals resume el tablero completo: baldes netos, kg disponibles y la
// valuación del stock (disponible positivo × promedio de entrada) y de lo
// vendido (salidas × promedio de salida), ambas redondeadas al peso entero.
func Totals(items []entity.StockSummary) entity.StockTotals {
	t := entity.StockTotals{}
	for _, s := range items {
		t.TotalUnits += s.CountIn - s.CountOut
		t.TotalKg = t.TotalKg.Add(s.AvailableKg)
		if s.AvailableKg.IsPositive() && s.AvgPricePerKgIn != nil {
			t.TotalPriceIn = t.TotalPriceIn.Add(s.AvailableKg.Mul(*s.AvgPricePerKgIn))
		}
		if s.TotalOutKg.IsPositive() && s.AvgPricePerKgOut != nil {
			t.TotalPriceOut = t.TotalPriceOut.Add(s.TotalOutKg.Mul(*s.AvgPricePerKgOut))
		}
	}
	t.TotalPriceIn = t.TotalPriceIn.Round(0)
	t.TotalPriceOut = t.TotalPriceOut.Round(0)
	return t
}

// touch avanza la marca de última actividad si m es lo más nuevo visto.
func (a *accumulator) touch(m *entity.Movement) {
	if a.last == nil || m.CreatedAt.After(a.last.CreatedAt) {
		a.last = m
	}
}

// averagePrice promedia y redondea al entero más cercano alejándose de cero;
// nil sin precios.
func averagePrice(prices []decimal.Decimal) *decimal.Decimal {
	if len(prices) == 0 {
		return nil
	}
	sum := decimal.Zero
	for _, p := range prices {
		sum = sum.Add(p)
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(prices)))).Round(0)
	return &avg
}
