package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/heladeria/balanza-api/internal/application/dto"
	"github.com/heladeria/balanza-api/internal/application/stock"
)

// StockHandler maneja el tablero de stock derivado.
type StockHandler struct {
	uc *stock.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Get godoc
// @Summary      Resumen de stock por gusto + totales generales
// @Description  Recalculado completo desde el historial en cada lectura;
//               el disponible puede ser negativo (señal de error de carga).
// @Tags         stock
// @Produce      json
// @Success      200  {object}  dto.StockResponse
// @Router       /api/stock [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	items, err := h.uc.Compute(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	totals := stock.Totals(items)

	out := dto.StockResponse{
		Items: make([]dto.StockSummaryResponse, 0, len(items)),
		Totals: dto.StockTotalsResponse{
			TotalUnits:    totals.TotalUnits,
			TotalKg:       totals.TotalKg,
			TotalPriceIn:  totals.TotalPriceIn,
			TotalPriceOut: totals.TotalPriceOut,
		},
	}
	for _, s := range items {
		out.Items = append(out.Items, dto.NewStockSummaryResponse(s))
	}
	return c.JSON(out)
}
