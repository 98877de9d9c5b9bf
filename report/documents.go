package report

import (
	"bytes"
	"html/template"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/purchases"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/sales"
)

// Printed documents follow the Spanish convention used across the
// application: comma decimals and day-first dates.
var printer = message.NewPrinter(language.EuropeanSpanish)

const documentDateFormat = "02/01/2006"

type documentLine struct {
	ProductID  int64
	Quantity   int
	UnitPrice  string
	VATPercent string
	Net        string
	Gross      string
}

type documentData struct {
	Title      string
	Reference  string
	PartyLabel string
	PartyName  string
	IssuedAt   string
	Lines      []documentLine
	TotalNet   string
	TotalGross string
}

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #222; }
  h1 { font-size: 18px; margin-bottom: 0; }
  .meta { margin: 12px 0 24px; color: #555; }
  table { width: 100%; border-collapse: collapse; }
  th, td { border-bottom: 1px solid #ddd; padding: 6px 8px; text-align: right; }
  th:first-child, td:first-child { text-align: left; }
  tfoot td { font-weight: bold; border-bottom: none; }
</style>
</head>
<body>
<h1>{{.Title}} {{.Reference}}</h1>
<div class="meta">
  <div>{{.PartyLabel}}: {{.PartyName}}</div>
  <div>Fecha: {{.IssuedAt}}</div>
</div>
<table>
  <thead>
    <tr><th>Producto</th><th>Cantidad</th><th>Precio</th><th>IVA</th><th>Neto</th><th>Total</th></tr>
  </thead>
  <tbody>
  {{range .Lines}}
    <tr>
      <td>#{{.ProductID}}</td>
      <td>{{.Quantity}}</td>
      <td>{{.UnitPrice}}</td>
      <td>{{.VATPercent}} %</td>
      <td>{{.Net}}</td>
      <td>{{.Gross}}</td>
    </tr>
  {{end}}
  </tbody>
  <tfoot>
    <tr><td colspan="4">Totales</td><td>{{.TotalNet}}</td><td>{{.TotalGross}}</td></tr>
  </tfoot>
</table>
</body>
</html>`))

func formatAmount(d decimal.Decimal) string {
	return printer.Sprintf("%.2f €", d.InexactFloat64())
}

func formatPercent(d decimal.Decimal) string {
	return printer.Sprintf("%.2f", d.InexactFloat64())
}

func renderDocument(data documentData) (string, error) {
	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PurchaseHTML builds the printable representation of a purchase order.
func PurchaseHTML(p purchases.Purchase) (string, error) {
	data := documentData{
		Title:      "Pedido de compra",
		Reference:  printer.Sprintf("Nº %d", p.ID),
		PartyLabel: "Proveedor",
		PartyName:  p.SupplierName,
		IssuedAt:   p.PurchasedAt.Format(documentDateFormat),
		TotalNet:   formatAmount(p.TotalNet),
		TotalGross: formatAmount(p.TotalGross),
	}
	for _, line := range p.Lines {
		data.Lines = append(data.Lines, toDocumentLine(line.ProductID, line.Quantity, line.UnitPrice, line.VATPercent, line.SubtotalNet, line.SubtotalGross))
	}
	return renderDocument(data)
}

// SaleHTML builds the printable representation of a sale order.
func SaleHTML(s sales.Sale) (string, error) {
	data := documentData{
		Title:      "Pedido de venta",
		Reference:  printer.Sprintf("Nº %d", s.ID),
		PartyLabel: "Cliente",
		PartyName:  s.ClientName,
		IssuedAt:   s.SoldAt.Format(documentDateFormat),
		TotalNet:   formatAmount(s.TotalNet),
		TotalGross: formatAmount(s.TotalGross),
	}
	for _, line := range s.Lines {
		data.Lines = append(data.Lines, toDocumentLine(line.ProductID, line.Quantity, line.UnitPrice, line.VATPercent, line.SubtotalNet, line.SubtotalGross))
	}
	return renderDocument(data)
}

func toDocumentLine(productID int64, qty int, price, vat, net, gross decimal.Decimal) documentLine {
	return documentLine{
		ProductID:  productID,
		Quantity:   qty,
		UnitPrice:  formatAmount(price),
		VATPercent: formatPercent(vat),
		Net:        formatAmount(net),
		Gross:      formatAmount(gross),
	}
}
