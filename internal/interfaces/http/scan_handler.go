package http

import (
	"github.com/gofiber/fiber/v2"

	appcatalog "github.com/heladeria/balanza-api/internal/application/catalog"
	"github.com/heladeria/balanza-api/internal/application/dto"
	domcatalog "github.com/heladeria/balanza-api/internal/domain/catalog"
	"github.com/heladeria/balanza-api/internal/domain/scan"
)

// ScanHandler expone el codec de códigos de barras para la UI (vista previa
// de un escaneo pendiente y etiquetado manual).
type ScanHandler struct {
	catalogUC *appcatalog.UseCase
	bounds    scan.Bounds
}

// NewScanHandler construye el handler.
func NewScanHandler(catalogUC *appcatalog.UseCase, bounds scan.Bounds) *ScanHandler {
	return &ScanHandler{catalogUC: catalogUC, bounds: bounds}
}

// Decode godoc
// @Summary      Decodificar una lectura cruda del escáner
// @Description  Función total: sin estructura devuelve campos nulos, nunca
//               un error. Si el PLU matchea un gusto del catálogo lo anexa.
// @Tags         scan
// @Produce      json
// @Param        raw  query  string  true  "texto crudo del escáner"
// @Success      200  {object}  dto.DecodeScanResponse
// @Router       /api/scan/decode [get]
func (h *ScanHandler) Decode(c *fiber.Ctx) error {
	parsed := scan.ParseWithBounds(c.Query("raw"), h.bounds)

	out := dto.DecodeScanResponse{
		Raw:      parsed.Raw,
		Barcode:  parsed.Barcode,
		WeightKg: parsed.WeightKg,
		PLU:      parsed.PLU,
	}

	if parsed.PLU != nil {
		flavors, err := h.catalogUC.List(c.Context(), true)
		if err != nil {
			return mapDomainError(c, err)
		}
		for _, f := range flavors {
			if domcatalog.MatchesPLU(f.PLU, *parsed.PLU) {
				fr := dto.NewFlavorResponse(f)
				out.MatchedFlavor = &fr
				break
			}
		}
	}
	return c.JSON(out)
}

// Encode godoc
// @Summary      Construir el EAN-13 de peso embebido para etiquetar
// @Tags         scan
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EncodeScanRequest  true  "plu (6 dígitos), weight_kg"
// @Success      200   {object}  dto.EncodeScanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/scan/encode [post]
func (h *ScanHandler) Encode(c *fiber.Ctx) error {
	var in dto.EncodeScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	barcode, err := scan.Encode(in.PLU, in.WeightKg)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.JSON(dto.EncodeScanResponse{Barcode: barcode})
}
