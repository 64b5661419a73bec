// Package catalog administra el catálogo de gustos: upsert con fusión de
// campos, listado, cambio de precio y siembra inicial.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/heladeria/balanza-api/internal/domain"
	domcatalog "github.com/heladeria/balanza-api/internal/domain/catalog"
	"github.com/heladeria/balanza-api/internal/domain/entity"
	"github.com/heladeria/balanza-api/internal/domain/repository"
)

// UseCase administra el catálogo.
type UseCase struct {
	flavorRepo repository.FlavorRepository
}

// New construye el caso de uso.
func New(flavorRepo repository.FlavorRepository) *UseCase {
	return &UseCase{flavorRepo: flavorRepo}
}

// Upsert inserta o actualiza una entrada por nombre (ignorando mayúsculas)
// aplicando las precedencias de domcatalog.Merge, y devuelve lo persistido.
func (uc *UseCase) Upsert(ctx context.Context, in domcatalog.Input) (*entity.Flavor, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: falta el nombre", domain.ErrInvalidInput)
	}
	existing, err := uc.flavorRepo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	merged := domcatalog.Merge(existing, in)
	if err := uc.flavorRepo.Put(&merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

// List devuelve el catálogo ordenado y sin duplicados por nombre.
func (uc *UseCase) List(ctx context.Context, activeOnly bool) ([]*entity.Flavor, error) {
	return uc.flavorRepo.List(activeOnly)
}

// SetPrice resuelve el gusto por nombre exacto (ignorando mayúsculas) o por
// PLU numérico y actualiza su precio por la vía dedicada. Si el token está
// vacío o nada resuelve, es un no-op silencioso: es esperable que llegue un
// PLU escaneado que todavía no existe en el catálogo.
func (uc *UseCase) SetPrice(ctx context.Context, nameOrPLU string, price *decimal.Decimal) error {
	token := strings.TrimSpace(nameOrPLU)
	if token == "" {
		return nil
	}

	all, err := uc.flavorRepo.List(false)
	if err != nil {
		return err
	}
	for _, f := range all {
		if domcatalog.SameName(f.Name, token) || domcatalog.MatchesPLU(f.PLU, token) {
			return uc.flavorRepo.UpdatePrice(f.ID, price)
		}
	}
	return nil
}

// Seed pasa una lista ordenada de entradas por el upsert común: la siembra
// no es un camino especial, es tráfico de catálogo normal. Repetirla solo
// completa PLU/orden de lo existente.
func (uc *UseCase) Seed(ctx context.Context, entries []SeedEntry) error {
	for _, e := range entries {
		in := domcatalog.Input{
			Name:      e.Name,
			SortOrder: e.SortOrder,
			IsActive:  true,
		}
		if e.PLU != "" {
			plu := e.PLU
			in.PLU = &plu
		}
		if e.PricePerKg != nil {
			in.PricePerKg = e.PricePerKg
		}
		if _, err := uc.Upsert(ctx, in); err != nil {
			return fmt.Errorf("sembrar %q: %w", e.Name, err)
		}
	}
	return nil
}

// SeedEntry una fila de la siembra inicial.
type SeedEntry struct {
	SortOrder  int
	Name       string
	PLU        string
	PricePerKg *decimal.Decimal
}
