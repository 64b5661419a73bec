package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/heladeria/balanza-api/internal/domain/entity"
	"github.com/heladeria/balanza-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, created_at, flow, flavor_name, barcode, raw, weight_kg, price_per_kg, total, status`

// Create persiste un movimiento. La fila es inmutable una vez insertada.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.CreatedAt, m.Flow, m.FlavorName, m.Barcode, m.Raw,
		m.WeightKg, m.PricePerKg, m.Total, m.Status,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por id, nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// Delete elimina en forma definitiva; idempotente si el id no existe.
func (r *MovementRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return nil
}

// ListByFlow lista movimientos de un flujo, del más nuevo al más viejo.
func (r *MovementRepo) ListByFlow(flow string, limit int) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE flow = $1
		ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, flow, limit)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// LatestByBarcode devuelve el movimiento más reciente con ese código exacto.
func (r *MovementRepo) LatestByBarcode(barcode string) (*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE barcode = $1
		ORDER BY created_at DESC LIMIT 1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, barcode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest by barcode: %w", err)
	}
	return m, nil
}

// DeleteByFlavor borra todos los movimientos del gusto (nombre exacto,
// ambos flujos) y devuelve cuántas filas eliminó.
func (r *MovementRepo) DeleteByFlavor(flavorName string) (int, error) {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM movements WHERE flavor_name = $1`, flavorName)
	if err != nil {
		return 0, fmt.Errorf("delete movements by flavor: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// ListAll devuelve ambos flujos en orden ascendente de created_at, acotado
// por rango de fechas si from/to vienen.
func (r *MovementRepo) ListAll(from, to *time.Time) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements`
	var args []any
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" WHERE created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		if pos == 1 {
			query += fmt.Sprintf(" WHERE created_at <= $%d", pos)
		} else {
			query += fmt.Sprintf(" AND created_at <= $%d", pos)
		}
		args = append(args, *to)
		pos++
	}
	query += " ORDER BY created_at"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list all movements: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(
		&m.ID, &m.CreatedAt, &m.Flow, &m.FlavorName, &m.Barcode, &m.Raw,
		&m.WeightKg, &m.PricePerKg, &m.Total, &m.Status,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
