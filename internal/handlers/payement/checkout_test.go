package pa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitAmountPrixFractionnaire(t *testing.T) {
	// 19.99 n'est pas représentable exactement en flottant : sans arrondi,
	// la conversion en centimes tombe à 1998.
	assert.Equal(t, int64(1999), unitAmount(19.99))
	assert.Equal(t, int64(4990), unitAmount(49.90))
	assert.Equal(t, int64(1), unitAmount(0.01))
}

func TestUnitAmountPrixEntier(t *testing.T) {
	assert.Equal(t, int64(3000), unitAmount(30))
	assert.Equal(t, int64(0), unitAmount(0))
}
