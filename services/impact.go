package services

import "math"

// Impact factors. Tuned against the product's original scoring table;
// change them together or historical totals stop being comparable.
var (
	neuronsPerAlcoholGram = 1000.0
	neuronsPerSugarGram   = 5.0
	lowWeightFactor       = 1.2 // below 70 kg
	olderAgeFactor        = 1.3 // above 50 years

	lifeDaysPerAlcoholGram = 0.5
	lifeDaysPerSugarGram   = 0.1
	smokerPenalty          = 1.5
	exerciseBonus          = 0.8 // more than 3 sessions/week
)

// NeuronsKilledTotal returns the NEW cumulative neurons-killed total:
// the prior running total plus this drink's contribution. Callers must
// not add the prior value again.
func NeuronsKilledTotal(weightKg float64, ageYears int, priorNeuronsKilled, alcoholGrams, sugarGrams float64) float64 {
	weightKg = sanitize(weightKg)
	alcohol := sanitize(alcoholGrams)
	sugar := sanitize(sugarGrams)

	base := alcohol * neuronsPerAlcoholGram
	sugarImpact := sugar * neuronsPerSugarGram

	weightFactor := 1.0
	if weightKg < 70 {
		weightFactor = lowWeightFactor
	}
	ageFactor := 1.0
	if ageYears > 50 {
		ageFactor = olderAgeFactor
	}

	return sanitize(priorNeuronsKilled) + (base+sugarImpact)*weightFactor*ageFactor
}

// LifeLostDays returns only this drink's increment in days of life lost.
// Unlike NeuronsKilledTotal it does not fold in the prior total; the
// caller adds it to the stored cumulative value.
func LifeLostDays(smoker bool, exercisePerWeek int, alcoholGrams, sugarGrams float64) float64 {
	alcohol := sanitize(alcoholGrams)
	sugar := sanitize(sugarGrams)

	base := alcohol * lifeDaysPerAlcoholGram
	sugarImpact := sugar * lifeDaysPerSugarGram

	penalty := 1.0
	if smoker {
		penalty = smokerPenalty
	}
	bonus := 1.0
	if exercisePerWeek > 3 {
		bonus = exerciseBonus
	}

	return (base + sugarImpact) * penalty * bonus
}

// sanitize coerces non-numeric inputs (NaN, ±Inf) to zero instead of
// failing. Permissive scoring: negative values flow through unclamped.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
