package score

// WeightedAverage returns the weight-normalized average of the given
// scores, e.g. trip scores weighted by miles driven. Fails with a
// ValidationError if the sequences differ in length or the weights sum
// to zero.
func WeightedAverage(scores, weights []float64) (float64, error) {
	if len(scores) != len(weights) {
		return 0, &ValidationError{Reason: "scores and weights must have the same length"}
	}

	totalWeight := 0.0
	for _, w := range weights {
		totalWeight += w
	}
	if totalWeight == 0 {
		return 0, &ValidationError{Reason: "sum of weights must be greater than zero"}
	}

	total := 0.0
	for i, s := range scores {
		total += s * weights[i]
	}
	return total / totalWeight, nil
}
