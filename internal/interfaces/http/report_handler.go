package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/heladeria/balanza-api/internal/application/dto"
	"github.com/heladeria/balanza-api/internal/application/report"
)

// ReportHandler exporta el libro de movimientos en JSON, CSV, XLSX y PDF.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// List godoc
// @Summary      Listar movimientos del rango en JSON
// @Tags         reports
// @Produce      json
// @Param        from  query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        to    query  string  false  "RFC3339 o YYYY-MM-DD"
// @Success      200   {array}  dto.MovementResponse
// @Router       /api/reports/movements [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	from, to, err := h.rangeFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	rows, err := h.uc.Movements(c.Context(), from, to)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.NewMovementResponse(m))
	}
	return c.JSON(out)
}

// CSV godoc
// @Summary      Exportar movimientos como CSV
// @Tags         reports
// @Produce      text/csv
// @Param        from  query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        to    query  string  false  "RFC3339 o YYYY-MM-DD"
// @Success      200   {string}  string
// @Router       /api/reports/movements.csv [get]
func (h *ReportHandler) CSV(c *fiber.Ctx) error {
	from, to, err := h.rangeFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	body, err := h.uc.CSV(c.Context(), from, to)
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, attachment("movimientos", "csv"))
	return c.SendString(body)
}

// XLSX godoc
// @Summary      Exportar movimientos como planilla XLSX
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from  query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        to    query  string  false  "RFC3339 o YYYY-MM-DD"
// @Success      200   {file}  binary
// @Router       /api/reports/movements.xlsx [get]
func (h *ReportHandler) XLSX(c *fiber.Ctx) error {
	from, to, err := h.rangeFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	body, err := h.uc.XLSX(c.Context(), from, to)
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, attachment("movimientos", "xlsx"))
	return c.Send(body)
}

// PDF godoc
// @Summary      Exportar movimientos como PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        from    query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        to      query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        client  query  string  false  "nombre a mostrar en el encabezado"
// @Success      200     {file}  binary
// @Router       /api/reports/movements.pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	from, to, err := h.rangeFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	body, err := h.uc.PDF(c.Context(), from, to, c.Query("client"))
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, attachment("movimientos", "pdf"))
	return c.Send(body)
}

func (h *ReportHandler) rangeFromQuery(c *fiber.Ctx) (from, to *time.Time, err error) {
	from, err = parseTimeQuery(c, "from")
	if err != nil {
		return nil, nil, fmt.Errorf("from inválido")
	}
	to, err = parseTimeQuery(c, "to")
	if err != nil {
		return nil, nil, fmt.Errorf("to inválido")
	}
	return from, to, nil
}

func attachment(base, ext string) string {
	return fmt.Sprintf("attachment; filename=%s-%s.%s", base, time.Now().Format("20060102"), ext)
}
