package score

import "math"

// residualEpsilon bounds the floating point drift tolerated between the
// total penalty and the sum of segment penalties before the last
// segment is patched to reconcile them.
const residualEpsilon = 1e-6

// factorOrder fixes the presentation walk for the breakdown. Because
// the model is multiplicative, each factor's marginal contribution
// depends on its position, and the last emitted segment absorbs the
// floating point residual.
var factorOrder = []struct {
	key   string
	label string
}{
	{KeyHardBraking, "Hard Braking"},
	{KeyAggressiveTurning, "Aggressive Turning"},
	{KeyUnsafeFollowing, "Unsafe Following"},
	{KeyExcessiveSpeeding, "Excessive Speeding"},
	{KeyLateNightDriving, "Late-Night Driving"},
	{KeyUnbuckledDriving, "Unbuckled Driving"},
	{KeyForcedDisengagement, "Forced ADAS Disengagement"},
}

// Segment is one factor's share of the total score deficit.
type Segment struct {
	Key     string  `json:"key" yaml:"key"`
	Label   string  `json:"label" yaml:"label"`
	Penalty float64 `json:"penalty" yaml:"penalty"`
	Value   float64 `json:"value" yaml:"value"`
}

// Breakdown attributes the score drop relative to a zero-risk driver
// on the same hardware tier to the individual factors. Segment
// penalties always sum exactly to TotalPenalty.
type Breakdown struct {
	BaseScore    float64   `json:"base_score" yaml:"baseScore"`
	CurrentScore float64   `json:"current_score" yaml:"currentScore"`
	TotalPenalty float64   `json:"total_penalty" yaml:"totalPenalty"`
	Segments     []Segment `json:"segments" yaml:"segments"`
}

// ScoreBreakdown decomposes the score loss into per-factor penalty
// segments, walking the factors in the fixed presentation order and
// applying each multiplier to the running PCF.
func ScoreBreakdown(f Factors) (*Breakdown, error) {
	n, err := f.Normalize()
	if err != nil {
		return nil, err
	}

	base := Factors{AutopilotHWTwoOrNewer: n.AutopilotHWTwoOrNewer}

	basePCF, err := ComputePCF(base)
	if err != nil {
		return nil, err
	}
	currentPCF, err := ComputePCF(n)
	if err != nil {
		return nil, err
	}

	baseScore := scoreFromPCF(basePCF, n.AutopilotHWTwoOrNewer)
	currentScore := scoreFromPCF(currentPCF, n.AutopilotHWTwoOrNewer)

	pcfRunning := basePCF
	scoreRunning := baseScore
	segments := make([]Segment, 0, len(factorOrder))

	for _, factor := range factorOrder {
		exponent := factorExponent(n, factor.key)
		if exponent <= 0 {
			continue
		}

		previousScore := scoreRunning
		pcfRunning *= math.Pow(multipliers[factor.key], exponent)
		scoreRunning = scoreFromPCF(pcfRunning, n.AutopilotHWTwoOrNewer)

		// A factor can never improve the score.
		penalty := math.Max(0, previousScore-scoreRunning)
		if penalty <= 0 {
			continue
		}

		segments = append(segments, Segment{
			Key:     factor.key,
			Label:   factor.label,
			Penalty: penalty,
			Value:   exponent,
		})
	}

	totalPenalty := math.Max(0, baseScore-currentScore)

	// The segments form a telescoping sum of the total penalty; patch
	// any floating point residual into the last segment so they always
	// reconcile exactly.
	if len(segments) > 0 {
		sum := 0.0
		for _, s := range segments {
			sum += s.Penalty
		}
		if residual := totalPenalty - sum; math.Abs(residual) > residualEpsilon {
			segments[len(segments)-1].Penalty += residual
		}
	}

	return &Breakdown{
		BaseScore:    baseScore,
		CurrentScore: currentScore,
		TotalPenalty: totalPenalty,
		Segments:     segments,
	}, nil
}

// factorExponent returns the exponent a factor actually contributed to
// the PCF product. On legacy hardware unsafe following is zero here:
// the caller's input was never applied, so it earns no segment.
func factorExponent(n Factors, key string) float64 {
	switch key {
	case KeyHardBraking:
		return n.HardBraking
	case KeyAggressiveTurning:
		return n.AggressiveTurning
	case KeyUnsafeFollowing:
		if !n.AutopilotHWTwoOrNewer {
			return 0
		}
		return n.UnsafeFollowing
	case KeyExcessiveSpeeding:
		return n.ExcessiveSpeeding
	case KeyLateNightDriving:
		return n.LateNightDriving
	case KeyUnbuckledDriving:
		return n.UnbuckledDriving
	case KeyForcedDisengagement:
		return float64(n.ForcedAutopilotDisengagement)
	}
	return 0
}
