// Package pdf renderiza el reporte de movimientos para imprimir o enviar al
// cliente del control mensual.
//
// Layout A4:
//
//	┌──────────────────────────────────────────────────────────┐
//	│  HEADER: Título + cliente (opcional) + fecha de emisión  │
//	│  ──────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Flujo | Gusto | Kg | $/Kg | Total        │
//	│  ──────────────────────────────────────────────────────  │
//	│  TOTALES: Kg entrada / Kg salida / Total $               │
//	└──────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/heladeria/balanza-api/internal/application/report"
	"github.com/heladeria/balanza-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ report.PDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateMovementsPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateMovementsPDF(
	_ context.Context,
	title, clientName string,
	movements []*entity.Movement,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, clientName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, mv := range movements {
		m.AddRows(movementRow(mv))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(movements))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título + cliente (izq) y fecha de emisión (der).
func headerRow(title, clientName string) core.Row {
	left := title
	if clientName != "" {
		left = fmt.Sprintf("%s — %s", title, clientName)
	}
	return row.New(10).Add(
		col.New(8).Add(
			text.New(left, props.Text{Size: 13, Style: fontstyle.Bold, Color: colorPrimary}),
		),
		col.New(4).Add(
			text.New(time.Now().Format("02/01/2006 15:04"), props.Text{Size: 9, Align: align.Right, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	head := props.Text{Size: 8, Style: fontstyle.Bold, Color: colorPrimary}
	return row.New(6).Add(
		col.New(3).Add(text.New("Fecha", head)),
		col.New(1).Add(text.New("Flujo", head)),
		col.New(4).Add(text.New("Gusto", head)),
		col.New(1).Add(text.New("Kg", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right, Color: colorPrimary})),
		col.New(1).Add(text.New("$/Kg", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right, Color: colorPrimary})),
		col.New(2).Add(text.New("Total", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right, Color: colorPrimary})),
	)
}

func movementRow(m *entity.Movement) core.Row {
	cell := props.Text{Size: 8}
	num := props.Text{Size: 8, Align: align.Right}
	flowLabel := "Entrada"
	if m.Flow == entity.FlowOut {
		flowLabel = "Salida"
	}
	return row.New(5).Add(
		col.New(3).Add(text.New(m.CreatedAt.Format("02/01/2006 15:04"), cell)),
		col.New(1).Add(text.New(flowLabel, cell)),
		col.New(4).Add(text.New(m.FlavorName, cell)),
		col.New(1).Add(text.New(formatDecimal(m.WeightKg, 3), num)),
		col.New(1).Add(text.New(formatDecimal(m.PricePerKg, 0), num)),
		col.New(2).Add(text.New(formatDecimal(m.Total, 0), num)),
	)
}

// totalsRow suma kg por flujo y el total facturado de todo el rango.
func totalsRow(movements []*entity.Movement) core.Row {
	var kgIn, kgOut, total decimal.Decimal
	for _, m := range movements {
		if m.WeightKg != nil {
			if m.Flow == entity.FlowIn {
				kgIn = kgIn.Add(*m.WeightKg)
			} else {
				kgOut = kgOut.Add(*m.WeightKg)
			}
		}
		if m.Total != nil {
			total = total.Add(*m.Total)
		}
	}
	bold := props.Text{Size: 9, Style: fontstyle.Bold}
	return row.New(8).Add(
		col.New(4).Add(text.New(fmt.Sprintf("Entradas: %s kg", kgIn.StringFixed(3)), bold)),
		col.New(4).Add(text.New(fmt.Sprintf("Salidas: %s kg", kgOut.StringFixed(3)), bold)),
		col.New(4).Add(text.New(fmt.Sprintf("Total: $ %s", total.StringFixed(0)), props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
	)
}

func formatDecimal(d *decimal.Decimal, places int32) string {
	if d == nil {
		return "—"
	}
	return d.StringFixed(places)
}
