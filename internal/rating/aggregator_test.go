package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/models"
)

func TestApply_FirstReview(t *testing.T) {
	p := &models.Product{}
	require.NoError(t, Apply(p, 4))

	assert.Equal(t, 1, p.TotalReviews)
	assert.Equal(t, 4.0, p.AvgRating)
	assert.Equal(t, [5]int{0, 0, 0, 1, 0}, p.Stars)
}

func TestApply_Sequence(t *testing.T) {
	// [4, 5, 3] → moyennes successives 4.0, 4.5, 4.0
	p := &models.Product{}

	require.NoError(t, Apply(p, 4))
	assert.Equal(t, 4.0, p.AvgRating)

	require.NoError(t, Apply(p, 5))
	assert.Equal(t, 4.5, p.AvgRating)

	require.NoError(t, Apply(p, 3))
	assert.Equal(t, 4.0, p.AvgRating)

	assert.Equal(t, 3, p.TotalReviews)
	assert.Equal(t, [5]int{0, 0, 1, 1, 1}, p.Stars)
}

func TestApply_RoundsHalfUp(t *testing.T) {
	// [4, 5] → 4.5 ; [1, 2] → 1.5 (jamais 1.4999…)
	p := &models.Product{}
	require.NoError(t, Apply(p, 1))
	require.NoError(t, Apply(p, 2))
	assert.Equal(t, 1.5, p.AvgRating)
}

func TestApply_InvariantOverManyRatings(t *testing.T) {
	ratings := []int{5, 3, 4, 1, 2, 5, 5, 4, 3, 2, 1, 4, 5, 3, 4}
	p := &models.Product{}

	for _, r := range ratings {
		require.NoError(t, Apply(p, r))
	}

	assert.Equal(t, len(ratings), p.TotalReviews)

	sum := 0
	weighted := 0
	for i, n := range p.Stars {
		sum += n
		weighted += (i + 1) * n
	}
	assert.Equal(t, len(ratings), sum)

	// La moyenne stockée doit rester cohérente avec l'histogramme, à la
	// précision près de l'arrondi incrémental (±0.1 par étape cumulée).
	trueMean := float64(weighted) / float64(len(ratings))
	assert.InDelta(t, trueMean, p.AvgRating, 0.1)
	assert.GreaterOrEqual(t, p.AvgRating, 1.0)
	assert.LessOrEqual(t, p.AvgRating, 5.0)
}

func TestApply_RejectsOutOfRange(t *testing.T) {
	for _, bad := range []int{0, 6, -1, 42} {
		p := &models.Product{TotalReviews: 2, AvgRating: 3.5, Stars: [5]int{0, 0, 1, 1, 0}}
		before := *p

		err := Apply(p, bad)
		assert.ErrorIs(t, err, ErrInvalidRating)
		// Le produit ne doit pas avoir bougé.
		assert.Equal(t, before, *p)
	}
}

func TestRoundToTenth(t *testing.T) {
	assert.Equal(t, 4.3, RoundToTenth(4.25))
	assert.Equal(t, 4.2, RoundToTenth(4.24))
	assert.Equal(t, 4.0, RoundToTenth(4.0))
	assert.Equal(t, 3.7, RoundToTenth(11.0/3.0))
}
