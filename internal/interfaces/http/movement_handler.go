package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/heladeria/balanza-api/internal/application/dto"
	"github.com/heladeria/balanza-api/internal/application/ledger"
	"github.com/heladeria/balanza-api/internal/domain/scan"
)

// MovementHandler maneja las peticiones HTTP del libro de movimientos.
type MovementHandler struct {
	uc     *ledger.UseCase
	bounds scan.Bounds
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *ledger.UseCase, bounds scan.Bounds) *MovementHandler {
	return &MovementHandler{uc: uc, bounds: bounds}
}

// Record godoc
// @Summary      Registrar un movimiento (escaneo o carga manual)
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "flow, flavor_name, raw y/o weight_kg/price_per_kg"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	input := ledger.MovementInput{
		Flow:       in.Flow,
		FlavorName: in.FlavorName,
		WeightKg:   in.WeightKg,
		PricePerKg: in.PricePerKg,
	}
	if in.Raw != "" {
		parsed := scan.ParseWithBounds(in.Raw, h.bounds)
		input.Raw = parsed.Raw
		input.Barcode = parsed.Barcode
		if input.WeightKg == nil {
			input.WeightKg = parsed.WeightKg
		}
		if parsed.WeightKg != nil {
			scansDecodedTotal.WithLabelValues("weight").Inc()
		} else {
			scansDecodedTotal.WithLabelValues("no_weight").Inc()
		}
	}

	saved, created, err := h.uc.Record(c.Context(), input)
	if err != nil {
		return mapDomainError(c, err)
	}
	if created {
		movementsRecordedTotal.WithLabelValues(saved.Flow).Inc()
	} else {
		duplicatesSuppressedTotal.Inc()
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovementResponse(saved))
}

// List godoc
// @Summary      Listar movimientos de un flujo (más nuevos primero)
// @Tags         movements
// @Produce      json
// @Param        flow   query  string  true   "in | out"
// @Param        limit  query  int     false  "default 200"
// @Success      200    {array}   dto.MovementResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	rows, err := h.uc.List(c.Context(), c.Query("flow"), c.QueryInt("limit", 200))
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.NewMovementResponse(m))
	}
	return c.JSON(out)
}

// Void godoc
// @Summary      Anular (eliminar) un movimiento
// @Tags         movements
// @Produce      json
// @Param        id  path  string  true  "id del movimiento"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Void(c *fiber.Ctx) error {
	if err := h.uc.Void(c.Context(), c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ResetFlavor godoc
// @Summary      Borrar todos los movimientos de un gusto (reseteo de stock)
// @Tags         movements
// @Produce      json
// @Param        name  path  string  true  "nombre exacto del gusto"
// @Success      200   {object}  dto.DeleteFlavorMovementsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movements/flavor/{name} [delete]
func (h *MovementHandler) ResetFlavor(c *fiber.Ctx) error {
	name, err := urlPathUnescape(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre inválido"})
	}
	n, err := h.uc.ResetFlavor(c.Context(), name)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.DeleteFlavorMovementsResponse{Deleted: n})
}
