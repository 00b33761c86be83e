// Package scoring implements the deterministic offline lead scorer used by
// the CSV import path. It never calls the model service.
package scoring

import (
	"fmt"
	"math"
	"strings"
)

// Row is the subset of lead fields the formula reads.
type Row struct {
	Age       int
	Job       string
	Loan      string
	Euribor3M float64
}

// Compute returns a score in [0,1] as a pure function of the row:
// a 0.2 base, an age bonus capped at 0.3, a loan penalty or bonus, a small
// boost for technician jobs, and a macro adjustment when euribor3m exceeds
// 2.0. The sum is rounded to 3 decimals before the final clamp.
func Compute(row Row) float64 {
	base := 0.2
	ageBonus := math.Min(0.3, float64(row.Age)/200)

	loanAdj := 0.05
	if row.Loan == "yes" {
		loanAdj = -0.1
	}

	jobBoost := 0.0
	if strings.Contains(row.Job, "technician") {
		jobBoost = 0.05
	}

	macroAdj := 0.0
	if row.Euribor3M > 2.0 {
		macroAdj = 0.05
	}

	score := base + ageBonus + loanAdj + jobBoost + macroAdj
	score = math.Round(score*1000) / 1000
	return math.Max(0, math.Min(1, score))
}

// FormatPercent renders a 0-1 score using the stored-score convention,
// e.g. 0.852 -> "85.2%".
func FormatPercent(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}
