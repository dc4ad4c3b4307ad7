// Package pdf genera el manifiesto de despacho de una orden de salida confirmada.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Manifiesto de despacho  │  Orden + Fecha            │
//	│  RESUMEN: Bodega / Peso total / Camiones (plan y mínimo)     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CAMIÓN n: peso cargado / capacidad                          │
//	│  TABLA: GTIN | Producto | Cant | Peso (kg)                   │
//	│  ... un bloque por camión                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el id de la orden + firmas                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Despachos-api/internal/application/outbound"
	"github.com/jhoicas/Despachos-api/internal/domain/entity"
	"github.com/jhoicas/Despachos-api/internal/domain/loadplan"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var gramsPerKg = decimal.NewFromInt(loadplan.GramsPerKilogram)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ outbound.ManifestGenerator = (*ManifestGenerator)(nil)

// ManifestGenerator implementa outbound.ManifestGenerator usando Maroto v2.
type ManifestGenerator struct {
	company string
	printer *message.Printer
}

// NewManifestGenerator construye el generador. company aparece en el encabezado.
func NewManifestGenerator(company string) *ManifestGenerator {
	return &ManifestGenerator{company: company, printer: message.NewPrinter(language.Spanish)}
}

// GenerateManifest genera el PDF y devuelve sus bytes.
func (g *ManifestGenerator) GenerateManifest(_ context.Context, order *entity.OutboundOrder) ([]byte, error) {
	if order == nil {
		return nil, fmt.Errorf("pdf: orden nula")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Manifiesto de despacho "+order.ID, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	for _, v := range order.Plan.Vehicles {
		m.AddRows(g.vehicleRows(v, order.Plan.CapacityGrams)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar manifiesto: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *ManifestGenerator) headerRow(order *entity.OutboundOrder) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.company, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("MANIFIESTO DE DESPACHO", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Orden", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(order.ID, props.Text{
				Size: 7, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+order.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func (g *ManifestGenerator) summaryRow(order *entity.OutboundOrder) core.Row {
	total := decimal.Zero
	for _, li := range order.Lines {
		total = total.Add(decimal.NewFromFloat(li.UnitWeightGrams).Mul(decimal.NewFromInt(int64(li.Quantity))))
	}
	return row.New(12).Add(
		col.New(4).Add(
			text.New("Bodega", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%d", order.WarehouseID), props.Text{Size: 9, Top: 6}),
		),
		col.New(4).Add(
			text.New("Peso total", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(g.formatKg(total.InexactFloat64())+" kg", props.Text{Size: 9, Top: 6}),
		),
		col.New(4).Add(
			text.New("Camiones (plan / mínimo)", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%d / %d", len(order.Plan.Vehicles), order.NumberOfTrucks), props.Text{Size: 9, Top: 6}),
		),
	)
}

// vehicleRows encabezado del camión y una fila por producto cargado.
func (g *ManifestGenerator) vehicleRows(v entity.VehicleLoad, capacityGrams float64) []core.Row {
	rows := []core.Row{
		row.New(9).Add(col.New(12).Add(
			text.New(fmt.Sprintf("CAMIÓN %d  ·  %s kg de %s kg", v.TruckNumber,
				g.formatKg(v.LoadedWeightGrams), g.formatKg(capacityGrams)), props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 3,
			}),
		)),
		tableHeaderRow(),
	}
	for _, it := range v.Items {
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(it.GTIN, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(it.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.formatKg(it.TotalWeightGrams), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("GTIN", 3, align.Left),
		h("Producto", 5, align.Left),
		h("Cant.", 2, align.Center),
		h("Peso (kg)", 2, align.Right),
	)
}

func footerRow(order *entity.OutboundOrder) core.Row {
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(order.ID, props.Rect{Percent: 90, Center: true})),
		col.New(4).Add(
			text.New("Entrega bodega", props.Text{Size: 8, Top: 30, Align: align.Center, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Recibe transportador", props.Text{Size: 8, Top: 30, Align: align.Center, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatKg convierte gramos a kg con dos decimales y separadores del español.
func (g *ManifestGenerator) formatKg(grams float64) string {
	kg := decimal.NewFromFloat(grams).Div(gramsPerKg).Round(2).InexactFloat64()
	return g.printer.Sprintf("%.2f", kg)
}
