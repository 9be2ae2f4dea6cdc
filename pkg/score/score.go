package score

import "math"

// Model calibration constants, fitted against fleet collision data.
// basePCF is the predicted collisions per million miles for a driver
// with zero risk factors; the intercept/slope pair maps PCF onto the
// 0-100 score scale.
const (
	basePCF        = 0.57198191
	scoreIntercept = 122.15240383
	scoreSlope     = -38.72920381

	// Pre-2.0 ADAS hardware cannot measure following distance, so it
	// carries its own intercept and a fixed unsafe-following baseline
	// that replaces whatever the caller reported.
	legacyIntercept       = 123.50230309
	legacyUnsafeFollowing = 21.8
)

// multipliers are the per-factor exponential growth rates: each percent
// of a factor multiplies PCF by its rate once. Read-only after init.
var multipliers = map[string]float64{
	KeyHardBraking:         1.23599110,
	KeyAggressiveTurning:   1.01219290,
	KeyUnsafeFollowing:     1.00271921,
	KeyForcedDisengagement: 1.32343362,
	KeyLateNightDriving:    1.03231810,
	KeyExcessiveSpeeding:   1.02439511,
	KeyUnbuckledDriving:    1.01151237,
}

// ComputePCF computes the Predicted Collision Frequency (collisions
// per million miles) for a single driving period. Factors compound
// multiplicatively: each one raises its growth rate to the normalized
// percentage and scales the running PCF.
func ComputePCF(f Factors) (float64, error) {
	n, err := f.Normalize()
	if err != nil {
		return 0, err
	}

	pcf := basePCF
	pcf *= math.Pow(multipliers[KeyHardBraking], n.HardBraking)
	pcf *= math.Pow(multipliers[KeyAggressiveTurning], n.AggressiveTurning)

	following := n.UnsafeFollowing
	if !n.AutopilotHWTwoOrNewer {
		following = math.Min(legacyUnsafeFollowing, Caps[KeyUnsafeFollowing])
	}
	pcf *= math.Pow(multipliers[KeyUnsafeFollowing], following)

	pcf *= math.Pow(multipliers[KeyForcedDisengagement], float64(n.ForcedAutopilotDisengagement))
	pcf *= math.Pow(multipliers[KeyLateNightDriving], n.LateNightDriving)
	pcf *= math.Pow(multipliers[KeyExcessiveSpeeding], n.ExcessiveSpeeding)
	pcf *= math.Pow(multipliers[KeyUnbuckledDriving], n.UnbuckledDriving)

	return pcf, nil
}

// ComputeSafetyScore computes the 0-100 Safety Score for a single
// driving period. Higher is safer.
func ComputeSafetyScore(f Factors) (float64, error) {
	n, err := f.Normalize()
	if err != nil {
		return 0, err
	}

	pcf, err := ComputePCF(n)
	if err != nil {
		return 0, err
	}

	return scoreFromPCF(pcf, n.AutopilotHWTwoOrNewer), nil
}

// scoreFromPCF applies the affine transform and clamps into [0, 100].
func scoreFromPCF(pcf float64, hwTwoOrNewer bool) float64 {
	intercept := scoreIntercept
	if !hwTwoOrNewer {
		intercept = legacyIntercept
	}
	s := intercept + scoreSlope*pcf
	return math.Max(0, math.Min(100, s))
}
