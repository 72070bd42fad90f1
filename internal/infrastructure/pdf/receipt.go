// Package pdf genera el comprobante de un pedido entregado.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  COMPROBANTE DE PEDIDO                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Número / Estado / Fecha / Cliente / DNI / Dirección / Pago  │
//	│  DETALLES DEL PEDIDO                                         │
//	│  TABLA: Producto | Cantidad | Precio Unit. | Subtotal        │
//	│  ─────────────────────────────────────────────────────────  │
//	│                                          TOTAL: $0.00        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"
	"unicode/utf8"

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

	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorSeparator = &props.Color{Red: 200, Green: 200, Blue: 200}
	colorText      = &props.Color{Red: 50, Green: 50, Blue: 50}
	colorHeader    = &props.Color{Red: 240, Green: 240, Blue: 240}
)

const (
	maxProductName = 35
	notAvailable   = "N/A"
)

// ── Renderer ─────────────────────────────────────────────────────────────────

// ReceiptRenderer genera el PDF del comprobante con Maroto v2.
type ReceiptRenderer struct{}

// NewReceiptRenderer construye el generador.
func NewReceiptRenderer() *ReceiptRenderer { return &ReceiptRenderer{} }

// Render genera el PDF y devuelve sus bytes.
func (g *ReceiptRenderer) Render(order *entity.Order) ([]byte, error) {
	if order == nil {
		return nil, fmt.Errorf("pdf: pedido nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 11}).
		WithTitle(fmt.Sprintf("Pedido #%d", order.ID), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow())
	m.AddRows(line.NewRow(4, props.Line{Color: colorSeparator, Thickness: 0.3}))
	m.AddRows(infoRows(order)...)
	m.AddRows(row.New(5))
	m.AddRows(sectionRow("DETALLES DEL PEDIDO"))
	m.AddRows(tableHeaderRow())
	m.AddRows(detailRows(order.Detalles)...)
	m.AddRows(row.New(5))
	m.AddRows(line.NewRow(4, props.Line{Color: colorSeparator, Thickness: 0.3}))
	m.AddRows(totalRow(order.Total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRow() core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New("COMPROBANTE DE PEDIDO", props.Text{Style: fontstyle.Bold, Size: 18}),
	))
}

// infoRows etiqueta en negrita a la izquierda, valor a la derecha.
func infoRows(order *entity.Order) []core.Row {
	cliente, dni := notAvailable, notAvailable
	if order.Cliente != nil {
		cliente = nonEmpty(order.Cliente.FullName(), notAvailable)
		dni = nonEmpty(order.Cliente.DNI, notAvailable)
	}
	info := [][2]string{
		{"Número de Pedido:", fmt.Sprintf("#%d", order.ID)},
		{"Estado:", string(order.Estado)},
		{"Fecha:", formatDate(order.FechaPedido)},
		{"Cliente:", cliente},
		{"DNI:", dni},
		{"Dirección:", nonEmpty(order.DireccionEnvio, notAvailable)},
		{"Método de Pago:", nonEmpty(order.MetodoPago, notAvailable)},
	}
	rows := make([]core.Row, 0, len(info))
	for _, it := range info {
		rows = append(rows, row.New(7).Add(
			col.New(4).Add(text.New(it[0], props.Text{Style: fontstyle.Bold, Color: colorText})),
			col.New(8).Add(text.New(it[1], props.Text{Color: colorText})),
		))
	}
	return rows
}

func sectionRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 12}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: a, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Producto", 5, align.Left),
		h("Cantidad", 2, align.Center),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorHeader})
}

func detailRows(details []entity.OrderDetail) []core.Row {
	rows := make([]core.Row, 0, len(details))
	for _, d := range details {
		rows = append(rows, row.New(7).Add(
			col.New(5).Add(text.New(productName(d.Producto.Nombre), props.Text{Size: 10, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprint(d.Cantidad), props.Text{Size: 10, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(money(d.PrecioUnitario), props.Text{Size: 10, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(money(d.Subtotal()), props.Text{Size: 10, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(6).Add(text.New("TOTAL: "+money(total), props.Text{
			Style: fontstyle.Bold, Size: 14, Align: align.Right, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money dos decimales con prefijo $.
func money(d decimal.Decimal) string { return "$" + d.StringFixed(2) }

// productName recorta a 35 caracteres; vacío → "Producto".
func productName(s string) string {
	if s == "" {
		return "Producto"
	}
	if utf8.RuneCountInString(s) <= maxProductName {
		return s
	}
	return string([]rune(s)[:maxProductName])
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04:05.999999", "2006-01-02"}

// formatDate dd/mm/aaaa; fecha vacía → N/A, formato desconocido se muestra tal cual.
func formatDate(s string) string {
	if s == "" {
		return notAvailable
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return s
}
