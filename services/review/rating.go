package review

import (
	"math"

	"handyhub/models"
	"handyhub/utils"
)

// DeriveRating computes the overall rating as the mean of the supplied
// sub-ratings, rounded to one decimal. The denominator is 4, or 5 when
// cleanliness is present.
func DeriveRating(b models.RatingBreakdown) float64 {
	sum := b.Quality + b.Punctuality + b.Behavior + b.Pricing
	n := 4.0
	if b.Cleanliness != nil {
		sum += *b.Cleanliness
		n = 5.0
	}
	return math.Round(sum/n*10) / 10
}

// validateBreakdown checks every sub-rating against the 1-5 scale and
// returns the complete list of offending fields.
func validateBreakdown(b models.RatingBreakdown) []utils.FieldError {
	var fields []utils.FieldError
	check := func(name string, v float64) {
		if v < 1 || v > 5 {
			fields = append(fields, utils.FieldError{
				Field:   name,
				Message: "must be between 1 and 5",
				Value:   v,
			})
		}
	}
	check("quality", b.Quality)
	check("punctuality", b.Punctuality)
	check("behavior", b.Behavior)
	check("pricing", b.Pricing)
	if b.Cleanliness != nil {
		check("cleanliness", *b.Cleanliness)
	}
	return fields
}
