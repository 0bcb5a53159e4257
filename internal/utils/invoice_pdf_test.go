package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/models"
)

func sampleOrder() models.Order {
	return models.Order{
		UserEmail: "u1@example.com",
		Items: []models.OrderItem{
			{Product: models.ProductSnapshot{Title: "Clavier", Price: 49.9}, Quantity: 2},
			{Product: models.ProductSnapshot{Title: "Souris", Price: 30}, Quantity: 1},
		},
	}
}

func TestInvoiceLines(t *testing.T) {
	lines, total := InvoiceLines(sampleOrder())

	assert.Equal(t, []string{
		"Clavier - 2 x $ 49.9",
		"Souris - 1 x $ 30",
	}, lines)
	assert.InDelta(t, 129.8, total, 1e-9)
}

func TestInvoiceLines_EmptyOrder(t *testing.T) {
	lines, total := InvoiceLines(models.Order{})
	assert.Empty(t, lines)
	assert.Equal(t, 0.0, total)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "30", FormatAmount(30))
	assert.Equal(t, "49.9", FormatAmount(49.9))
	assert.Equal(t, "129.8", FormatAmount(129.8))
}

func TestGenerateInvoicePDF(t *testing.T) {
	data, err := GenerateInvoicePDF(sampleOrder())
	require.NoError(t, err)

	// En-tête PDF valide et contenu non trivial.
	require.Greater(t, len(data), 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}
