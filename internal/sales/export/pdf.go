// Package export renders customer orders into printable PDF documents via a
// Gotenberg instance.
package export

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/der-stern/stern-erp/internal/platform/pdf"
	"github.com/der-stern/stern-erp/internal/pricing"
	"github.com/der-stern/stern-erp/web"
)

// OrderDocument is the render payload for an order PDF. Callers map their
// order representation onto it.
type OrderDocument struct {
	ID              string
	CustomerName    string
	Status          string
	PaymentStatus   string
	OrderDate       time.Time
	DeliveryDate    *time.Time
	ShippingAddress string
	Notes           string
	TotalAmount     float64
	Items           []OrderLine
	GeneratedAt     time.Time
}

type OrderLine struct {
	ArtikelNr   string
	ProductName string
	Quantity    int
	VKPrice     float64
	Total       float64
}

type OrderPDFExporter struct {
	client    *pdf.Client
	formatter *pricing.Formatter
	tmpl      *template.Template
}

func NewOrderPDFExporter(client *pdf.Client, formatter *pricing.Formatter) (*OrderPDFExporter, error) {
	funcs := template.FuncMap{
		"formatDate": formatDate,
		"price":      formatter.Format,
		"add1":       func(i int) int { return i + 1 },
	}
	tmpl, err := template.New("order_pdf.html").Funcs(funcs).ParseFS(web.Templates, "templates/reports/order_pdf.html")
	if err != nil {
		return nil, fmt.Errorf("parse order template: %w", err)
	}
	return &OrderPDFExporter{client: client, formatter: formatter, tmpl: tmpl}, nil
}

// Render produces the PDF bytes for the given order document.
func (e *OrderPDFExporter) Render(ctx context.Context, doc OrderDocument) ([]byte, error) {
	if doc.GeneratedAt.IsZero() {
		doc.GeneratedAt = time.Now()
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("render order %s: %w", doc.ID, err)
	}
	return e.client.RenderHTML(ctx, buf.String(), pdf.A4Portrait)
}

// RenderHTML returns the rendered HTML without converting it, for previews
// and tests.
func (e *OrderPDFExporter) RenderHTML(doc OrderDocument) (string, error) {
	if doc.GeneratedAt.IsZero() {
		doc.GeneratedAt = time.Now()
	}
	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatDate(v interface{}) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format("02.01.2006")
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format("02.01.2006")
	default:
		return ""
	}
}
