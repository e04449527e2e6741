package relevance

// titleWeightMultiplier boosts title hits over description hits.
// A keyword in the headline is a stronger relevance signal than one
// buried in the body text.
const titleWeightMultiplier = 1.5

// Score computes the relevance score for the given match counts under an
// interest weight:
//
//	score = descriptionMatches*weight + titleMatches*1.5*weight
//
// The function is pure: equal inputs always produce equal scores, and the
// result is never negative for valid (non-negative) inputs.
func Score(counts MatchCounts, weight float64) float64 {
	return float64(counts.Description)*weight +
		float64(counts.Title)*titleWeightMultiplier*weight
}
