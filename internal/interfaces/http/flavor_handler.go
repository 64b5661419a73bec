package http

import (
	"github.com/gofiber/fiber/v2"

	appcatalog "github.com/heladeria/balanza-api/internal/application/catalog"
	"github.com/heladeria/balanza-api/internal/application/dto"
	domcatalog "github.com/heladeria/balanza-api/internal/domain/catalog"
)

// FlavorHandler maneja las peticiones HTTP del catálogo de gustos.
type FlavorHandler struct {
	uc *appcatalog.UseCase
}

// NewFlavorHandler construye el handler.
func NewFlavorHandler(uc *appcatalog.UseCase) *FlavorHandler {
	return &FlavorHandler{uc: uc}
}

// List godoc
// @Summary      Listar el catálogo de gustos
// @Tags         flavors
// @Produce      json
// @Param        all  query  bool  false  "incluir inactivos"
// @Success      200  {array}  dto.FlavorResponse
// @Router       /api/flavors [get]
func (h *FlavorHandler) List(c *fiber.Ctx) error {
	flavors, err := h.uc.List(c.Context(), !c.QueryBool("all"))
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.FlavorResponse, 0, len(flavors))
	for _, f := range flavors {
		out = append(out, dto.NewFlavorResponse(f))
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Crear o actualizar un gusto por nombre
// @Tags         flavors
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertFlavorRequest  true  "name, plu, price_per_kg, sort_order, is_active"
// @Success      200   {object}  dto.FlavorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/flavors [post]
func (h *FlavorHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertFlavorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	sortOrder := in.SortOrder
	if sortOrder == 0 {
		sortOrder = 999
	}
	saved, err := h.uc.Upsert(c.Context(), domcatalog.Input{
		Name:       in.Name,
		PLU:        in.PLU,
		PricePerKg: in.PricePerKg,
		SortOrder:  sortOrder,
		IsActive:   active,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.NewFlavorResponse(saved))
}

// SetPrice godoc
// @Summary      Actualizar el precio de un gusto por nombre o PLU
// @Description  No-op silencioso si nada resuelve: es esperable recibir un
//               PLU escaneado que todavía no existe en el catálogo.
// @Tags         flavors
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetPriceRequest  true  "name_or_plu, price_per_kg"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/flavors/price [put]
func (h *FlavorHandler) SetPrice(c *fiber.Ctx) error {
	var in dto.SetPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SetPrice(c.Context(), in.NameOrPLU, in.PricePerKg); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
