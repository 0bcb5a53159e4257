package rating

import (
	"errors"
	"math"

	"velora_back_end/internal/models"
)

var ErrInvalidRating = errors.New("la note doit être comprise entre 1 et 5")

// Apply intègre un nouvel avis dans l'agrégat de notation du produit.
// Moyenne glissante : on ne recalcule jamais depuis l'historique complet.
// Invariant maintenu : somme(Stars) == TotalReviews.
func Apply(p *models.Product, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}

	if p.TotalReviews == 0 {
		p.AvgRating = float64(rating)
	} else {
		avg := (p.AvgRating*float64(p.TotalReviews) + float64(rating)) / float64(p.TotalReviews+1)
		p.AvgRating = RoundToTenth(avg)
	}

	p.TotalReviews++
	p.Stars[rating-1]++
	return nil
}

// RoundToTenth arrondit à une décimale, demi vers le haut.
func RoundToTenth(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
