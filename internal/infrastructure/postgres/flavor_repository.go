package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/heladeria/balanza-api/internal/domain/catalog"
	"github.com/heladeria/balanza-api/internal/domain/entity"
	"github.com/heladeria/balanza-api/internal/domain/repository"
)

var _ repository.FlavorRepository = (*FlavorRepo)(nil)

// FlavorRepo implementación del catálogo sobre PostgreSQL (usable con pool o tx).
type FlavorRepo struct {
	q Querier
}

// NewFlavorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFlavorRepository(q Querier) *FlavorRepo {
	return &FlavorRepo{q: q}
}

// Put inserta o reemplaza la fila completa del gusto.
func (r *FlavorRepo) Put(flavor *entity.Flavor) error {
	query := `
		INSERT INTO flavors (id, name, plu, price_per_kg, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, plu = EXCLUDED.plu, price_per_kg = EXCLUDED.price_per_kg,
			sort_order = EXCLUDED.sort_order, is_active = EXCLUDED.is_active`
	_, err := r.q.Exec(context.Background(), query,
		flavor.ID, flavor.Name, flavor.PLU, flavor.PricePerKg, flavor.SortOrder, flavor.IsActive,
	)
	if err != nil {
		return fmt.Errorf("put flavor: %w", err)
	}
	return nil
}

// GetByName busca por nombre ignorando mayúsculas/minúsculas.
func (r *FlavorRepo) GetByName(name string) (*entity.Flavor, error) {
	query := `
		SELECT id, name, plu, price_per_kg, sort_order, is_active
		FROM flavors WHERE lower(name) = lower($1) LIMIT 1`
	var f entity.Flavor
	err := r.q.QueryRow(context.Background(), query, name).Scan(
		&f.ID, &f.Name, &f.PLU, &f.PricePerKg, &f.SortOrder, &f.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get flavor: %w", err)
	}
	return &f, nil
}

// List devuelve el catálogo ordenado por sort_order y nombre, sin duplicados
// por nombre (gana la primera aparición en ese orden). El índice único sobre
// lower(name) debería hacer imposible el duplicado; el filtro queda como
// defensa contra datos previos a la migración.
func (r *FlavorRepo) List(activeOnly bool) ([]*entity.Flavor, error) {
	query := `
		SELECT id, name, plu, price_per_kg, sort_order, is_active
		FROM flavors`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY sort_order, name`

	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list flavors: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	var list []*entity.Flavor
	for rows.Next() {
		var f entity.Flavor
		if err := rows.Scan(&f.ID, &f.Name, &f.PLU, &f.PricePerKg, &f.SortOrder, &f.IsActive); err != nil {
			return nil, fmt.Errorf("scan flavor: %w", err)
		}
		key := catalog.NameKey(f.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		list = append(list, &f)
	}
	return list, rows.Err()
}

// UpdatePrice actualiza solo el precio (vía dedicada de cambio de precio).
func (r *FlavorRepo) UpdatePrice(id string, price *decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE flavors SET price_per_kg = $2 WHERE id = $1`,
		id, price,
	)
	if err != nil {
		return fmt.Errorf("update flavor price: %w", err)
	}
	return nil
}
