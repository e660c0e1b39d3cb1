// Package report writes batch-level variance summaries: one row per
// processed invoice, comparing published totals against the recomputed ones.
package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/raeesul-erabiz/invoice-extractor/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Invoice Number",
	"Supplier",
	"Store",
	"Invoice Date",
	"Due Date",
	"Item Count",
	"Published Subtotal",
	"Published GST",
	"Published Total",
	"Computed Subtotal",
	"Computed Tax",
	"Computed Total",
	"Subtotal Variance",
	"GST Variance",
	"Total Variance",
}

// Writer wraps csv.Writer for exporting invoice variance rows.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteInvoices converts a batch of canonical invoices to rows and writes them.
func (w *Writer) WriteInvoices(invoices []domain.Invoice) error {
	for i := range invoices {
		if err := w.csv.Write(invoiceToRow(&invoices[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func invoiceToRow(inv *domain.Invoice) []string {
	return []string{
		inv.InvoiceNumber,
		inv.SupplierName,
		inv.StoreName,
		inv.InvoiceDate,
		inv.DueDate,
		strconv.Itoa(inv.ItemCount),
		inv.SubtotalExclTax.StringFixed(2),
		inv.GSTTotal.StringFixed(2),
		inv.TotalInclTax.StringFixed(2),
		inv.TotalExclTax.StringFixed(2),
		inv.TotalTax.StringFixed(2),
		inv.TotalAmount.StringFixed(2),
		inv.SubtotalVariance.StringFixed(2),
		inv.GSTVariance.StringFixed(2),
		inv.TotalVariance.StringFixed(2),
	}
}
