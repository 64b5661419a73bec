package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/heladeria/balanza-api/internal/application/catalog"
	"github.com/heladeria/balanza-api/internal/domain"
	domcatalog "github.com/heladeria/balanza-api/internal/domain/catalog"
	"github.com/heladeria/balanza-api/internal/domain/entity"
)

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
	cp := *f
	r.flavors = append(r.flavors, &cp)
	return nil
}

func (r *fakeFlavorRepo) GetByName(name string) (*entity.Flavor, error) {
	for _, f := range r.flavors {
		if domcatalog.SameName(f.Name, name) {
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

func strPtr(s string) *string { return &s }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestUpsert_AltaYFusion(t *testing.T) {
	repo := &fakeFlavorRepo{}
	uc := appcatalog.New(repo)

	first, err := uc.Upsert(context.Background(), domcatalog.Input{
		Name: "Frambuesa", PLU: strPtr("000033"), SortOrder: 33, IsActive: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	// mismo nombre con otra capitalización: fusiona contra la entrada existente
	second, err := uc.Upsert(context.Background(), domcatalog.Input{
		Name: "FRAMBUESA", PLU: strPtr("000099"), SortOrder: 5, IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Frambuesa", second.Name)
	assert.Equal(t, "000033", *second.PLU, "un PLU cargado no se pisa")
	assert.Equal(t, 5, second.SortOrder)
	assert.Len(t, repo.flavors, 1)
}

func TestUpsert_NombreVacio(t *testing.T) {
	uc := appcatalog.New(&fakeFlavorRepo{})
	_, err := uc.Upsert(context.Background(), domcatalog.Input{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetPrice_PorNombre(t *testing.T) {
	repo := &fakeFlavorRepo{flavors: []*entity.Flavor{
		{ID: "f1", Name: "Dulce de leche", PLU: strPtr("000001"), PricePerKg: decPtr(9500), IsActive: true},
	}}
	uc := appcatalog.New(repo)

	require.NoError(t, uc.SetPrice(context.Background(), "  DULCE DE LECHE ", decPtr(11000)))
	assert.True(t, repo.flavors[0].PricePerKg.Equal(decimal.NewFromInt(11000)))
}

func TestSetPrice_PorPLUNumerico(t *testing.T) {
	repo := &fakeFlavorRepo{flavors: []*entity.Flavor{
		{ID: "f1", Name: "Dulce de leche", PLU: strPtr("000001"), IsActive: true},
		{ID: "f2", Name: "Chocolate", PLU: strPtr("000002"), IsActive: false},
	}}
	uc := appcatalog.New(repo)

	// los ceros a la izquierda no importan, y los inactivos también resuelven
	require.NoError(t, uc.SetPrice(context.Background(), "2", decPtr(8000)))
	require.NotNil(t, repo.flavors[1].PricePerKg)
	assert.True(t, repo.flavors[1].PricePerKg.Equal(decimal.NewFromInt(8000)))
	assert.Nil(t, repo.flavors[0].PricePerKg)
}

// Un PLU escaneado que no existe en el catálogo no es un error: el precio
// simplemente no se aplica.
func TestSetPrice_SinMatchEsNoOp(t *testing.T) {
	repo := &fakeFlavorRepo{flavors: []*entity.Flavor{
		{ID: "f1", Name: "Dulce de leche", PLU: strPtr("000001"), IsActive: true},
	}}
	uc := appcatalog.New(repo)

	require.NoError(t, uc.SetPrice(context.Background(), "424242", decPtr(8000)))
	require.NoError(t, uc.SetPrice(context.Background(), "   ", decPtr(8000)))
	assert.Nil(t, repo.flavors[0].PricePerKg)
}

func TestSeed_Idempotente(t *testing.T) {
	repo := &fakeFlavorRepo{}
	uc := appcatalog.New(repo)

	entries := appcatalog.DefaultCatalog()
	require.NoError(t, uc.Seed(context.Background(), entries))
	require.Len(t, repo.flavors, len(entries))

	// cambiar un precio a mano y resembrar: el precio cargado sobrevive
	require.NoError(t, uc.SetPrice(context.Background(), "Dulce de leche", decPtr(12000)))
	require.NoError(t, uc.Seed(context.Background(), entries))
	assert.Len(t, repo.flavors, len(entries))

	f, err := repo.GetByName("Dulce de leche")
	require.NoError(t, err)
	require.NotNil(t, f.PricePerKg)
	assert.True(t, f.PricePerKg.Equal(decimal.NewFromInt(12000)))
}

func TestDefaultCatalog(t *testing.T) {
	entries := appcatalog.DefaultCatalog()
	require.NotEmpty(t, entries)

	seen := map[string]bool{}
	for i, e := range entries {
		assert.Equal(t, i+1, e.SortOrder, "el orden sigue la posición en la lista")
		assert.Len(t, e.PLU, 6, "PLU de 6 dígitos para %q", e.Name)
		assert.False(t, seen[e.Name], "nombre repetido %q", e.Name)
		seen[e.Name] = true
		require.NotNil(t, e.PricePerKg)
		assert.True(t, e.PricePerKg.Equal(decimal.NewFromInt(9500)))
	}
}
