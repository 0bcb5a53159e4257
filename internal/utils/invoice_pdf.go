package utils

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"velora_back_end/internal/models"
)

// FormatAmount rend un montant comme le front l'affiche : "30" et pas
// "30.00", "49.9" et pas "49.90".
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// InvoiceLines produit les lignes de la facture et le total recalculé
// depuis le snapshot de la commande (jamais depuis le catalogue courant).
func InvoiceLines(o models.Order) ([]string, float64) {
	lines := make([]string, 0, len(o.Items))
	var total float64

	for _, item := range o.Items {
		total += item.Product.Price * float64(item.Quantity)
		lines = append(lines, fmt.Sprintf("%s - %d x $ %s",
			item.Product.Title, item.Quantity, FormatAmount(item.Product.Price)))
	}
	return lines, total
}

// GenerateInvoicePDF rend la facture en PDF. Mise en page fixe :
// titre "Invoice" souligné, une ligne par produit, une ligne vide,
// puis le prix total.
func GenerateInvoicePDF(o models.Order) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "U", 26)
	pdf.Cell(0, 14, "Invoice")
	pdf.Ln(18)

	pdf.SetFont("Helvetica", "", 16)
	lines, total := InvoiceLines(o)
	for _, line := range lines {
		pdf.Cell(0, 9, line)
		pdf.Ln(9)
	}

	pdf.Ln(9)
	pdf.Cell(0, 9, fmt.Sprintf("Total Price: $ %s", FormatAmount(total)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
