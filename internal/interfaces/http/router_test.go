package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/heladeria/balanza-api/internal/application/catalog"
	"github.com/heladeria/balanza-api/internal/application/ledger"
	"github.com/heladeria/balanza-api/internal/application/report"
	"github.com/heladeria/balanza-api/internal/application/stock"
	domcatalog "github.com/heladeria/balanza-api/internal/domain/catalog"
	"github.com/heladeria/balanza-api/internal/domain/entity"
	"github.com/heladeria/balanza-api/internal/domain/repository"
	"github.com/heladeria/balanza-api/internal/domain/scan"
	apphttp "github.com/heladeria/balanza-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del recorrido HTTP completo sobre repos en memoria: escanear un
// ticket, verlo en el stock, decodificarlo por separado. Sin base de datos.
// ──────────────────────────────────────────────────────────────────────────────

type memMovementRepo struct {
	movements []*entity.Movement
}

func (r *memMovementRepo) Create(m *entity.Movement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.Movement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) Delete(id string) error {
	for i, m := range r.movements {
		if m.ID == id {
			r.movements = append(r.movements[:i], r.movements[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memMovementRepo) ListByFlow(flow string, limit int) ([]*entity.Movement, error) {
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

func (r *memMovementRepo) LatestByBarcode(barcode string) (*entity.Movement, error) {
	var latest *entity.Movement
	for _, m := range r.movements {
		if m.Barcode == barcode && (latest == nil || m.CreatedAt.After(latest.CreatedAt)) {
			latest = m
		}
	}
	return latest, nil
}

func (r *memMovementRepo) DeleteByFlavor(flavorName string) (int, error) {
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

func (r *memMovementRepo) ListAll(from, to *time.Time) ([]*entity.Movement, error) {
	out := append([]*entity.Movement(nil), r.movements...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type memFlavorRepo struct {
	flavors []*entity.Flavor
}

func (r *memFlavorRepo) Put(f *entity.Flavor) error {
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

func (r *memFlavorRepo) GetByName(name string) (*entity.Flavor, error) {
	for _, f := range r.flavors {
		if domcatalog.SameName(f.Name, name) {
			return f, nil
		}
	}
	return nil, nil
}

func (r *memFlavorRepo) List(activeOnly bool) ([]*entity.Flavor, error) {
	var out []*entity.Flavor
	for _, f := range r.flavors {
		if activeOnly && !f.IsActive {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *memFlavorRepo) UpdatePrice(id string, price *decimal.Decimal) error {
	for _, f := range r.flavors {
		if f.ID == id {
			f.PricePerKg = price
			return nil
		}
	}
	return nil
}

type memTxRunner struct {
	movRepo repository.MovementRepository
}

func (r *memTxRunner) Run(_ context.Context, fn func(repository.MovementRepository) error) error {
	return fn(r.movRepo)
}

func buildTestApp(flavors ...*entity.Flavor) (*fiber.App, *memMovementRepo) {
	movRepo := &memMovementRepo{}
	flavorRepo := &memFlavorRepo{flavors: flavors}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		LedgerUC:   ledger.New(&memTxRunner{movRepo: movRepo}, movRepo, flavorRepo, 0),
		StockUC:    stock.New(movRepo, flavorRepo, 0),
		CatalogUC:  appcatalog.New(flavorRepo),
		ReportUC:   report.New(movRepo, nil, nil),
		ScanBounds: scan.DefaultBounds,
	})
	return app, movRepo
}

func priceFlavor(name, plu string, price int64) *entity.Flavor {
	p := decimal.NewFromInt(price)
	return &entity.Flavor{ID: "id-" + plu, Name: name, PLU: &plu, PricePerKg: &p, IsActive: true}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestPostMovement_EscaneoCompleto(t *testing.T) {
	app, movRepo := buildTestApp(priceFlavor("Dulce de leche", "000001", 9500))

	resp, raw := doJSON(t, app, http.MethodPost, "/api/movements", fiber.Map{
		"flow":        "in",
		"flavor_name": "Dulce de leche",
		"raw":         "2000001025000",
	})

	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	var out struct {
		WeightKg *decimal.Decimal `json:"weight_kg"`
		Total    *decimal.Decimal `json:"total"`
		Barcode  string           `json:"barcode"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	require.NotNil(t, out.WeightKg)
	assert.True(t, out.WeightKg.Equal(decimal.NewFromFloat(2.5)))
	require.NotNil(t, out.Total, "precio del catálogo + peso decodificado")
	assert.True(t, out.Total.Equal(decimal.NewFromInt(23750)))
	assert.Equal(t, "2000001025000", out.Barcode)
	assert.Len(t, movRepo.movements, 1)
}

func TestPostMovement_DobleEscaneoNoDuplica(t *testing.T) {
	app, movRepo := buildTestApp()

	body := fiber.Map{"flow": "in", "flavor_name": "Vainilla", "raw": "2000001025000"}
	resp1, _ := doJSON(t, app, http.MethodPost, "/api/movements", body)
	resp2, _ := doJSON(t, app, http.MethodPost, "/api/movements", body)

	require.Equal(t, fiber.StatusCreated, resp1.StatusCode)
	require.Equal(t, fiber.StatusCreated, resp2.StatusCode, "para el cliente el reintento también sale bien")
	assert.Len(t, movRepo.movements, 1)
}

func TestPostMovement_FlujoInvalido(t *testing.T) {
	app, _ := buildTestApp()

	resp, raw := doJSON(t, app, http.MethodPost, "/api/movements", fiber.Map{
		"flow": "sideways", "flavor_name": "Vainilla",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "VALIDATION")
}

func TestGetStock(t *testing.T) {
	app, _ := buildTestApp(priceFlavor("Vainilla", "000035", 9500))

	doJSON(t, app, http.MethodPost, "/api/movements", fiber.Map{
		"flow": "in", "flavor_name": "Vainilla", "raw": "2000035050009",
	})

	resp, raw := doJSON(t, app, http.MethodGet, "/api/stock", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Items []struct {
			FlavorName  string          `json:"flavor_name"`
			AvailableKg decimal.Decimal `json:"available_kg"`
			CountIn     int             `json:"count_in"`
		} `json:"items"`
		Totals struct {
			TotalUnits int `json:"total_units"`
		} `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Vainilla", out.Items[0].FlavorName)
	assert.Equal(t, 1, out.Items[0].CountIn)
	assert.True(t, out.Items[0].AvailableKg.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 1, out.Totals.TotalUnits)
}

func TestScanDecode_MatcheaGusto(t *testing.T) {
	app, _ := buildTestApp(priceFlavor("Dulce de leche", "000001", 9500))

	resp, raw := doJSON(t, app, http.MethodGet, "/api/scan/decode?raw=2000001025000", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		PLU           *string `json:"plu"`
		MatchedFlavor *struct {
			Name string `json:"name"`
		} `json:"matched_flavor"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	require.NotNil(t, out.PLU)
	assert.Equal(t, "000001", *out.PLU)
	require.NotNil(t, out.MatchedFlavor)
	assert.Equal(t, "Dulce de leche", out.MatchedFlavor.Name)
}

func TestScanEncode(t *testing.T) {
	app, _ := buildTestApp()

	resp, raw := doJSON(t, app, http.MethodPost, "/api/scan/encode", fiber.Map{
		"plu": "000001", "weight_kg": "2.5",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	assert.Contains(t, string(raw), "2000001025000")

	resp, _ = doJSON(t, app, http.MethodPost, "/api/scan/encode", fiber.Map{
		"plu": "000001", "weight_kg": "80",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDeleteFlavorMovements(t *testing.T) {
	app, movRepo := buildTestApp()

	doJSON(t, app, http.MethodPost, "/api/movements", fiber.Map{
		"flow": "in", "flavor_name": "Vainilla", "raw": "2000035050009",
	})

	resp, raw := doJSON(t, app, http.MethodDelete, "/api/movements/flavor/Vainilla", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"deleted":1}`, string(raw))
	assert.Empty(t, movRepo.movements)
}

func TestReportCSV(t *testing.T) {
	app, _ := buildTestApp(priceFlavor("Vainilla", "000035", 9500))

	doJSON(t, app, http.MethodPost, "/api/movements", fiber.Map{
		"flow": "in", "flavor_name": "Vainilla", "raw": "2000035050009",
	})

	resp, raw := doJSON(t, app, http.MethodGet, "/api/reports/movements.csv", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, string(raw), "createdAt,flow,flavorName")
	assert.Contains(t, string(raw), "Vainilla")
}

func TestHealth(t *testing.T) {
	app, _ := buildTestApp()
	resp, raw := doJSON(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(raw))
}
