// Package score implements the vehicle Safety Score model: a set of
// capped behavioral risk factors, the multiplicative Predicted
// Collision Frequency (PCF) model, the affine 0-100 score transform,
// and a per-factor penalty breakdown for explanatory display.
//
// All functions are pure and deterministic. The only package-wide data
// are the read-only calibration tables.
package score

import (
	"fmt"
	"math"
)

// Factor keys, used in the cap and multiplier tables and in breakdown
// segments.
const (
	KeyHardBraking         = "hard_braking"
	KeyAggressiveTurning   = "aggressive_turning"
	KeyUnsafeFollowing     = "unsafe_following"
	KeyExcessiveSpeeding   = "excessive_speeding"
	KeyLateNightDriving    = "late_night_driving"
	KeyUnbuckledDriving    = "unbuckled_driving"
	KeyForcedDisengagement = "forced_autopilot_disengagement"
)

// Caps holds the maximum percentage each behavioral factor may
// contribute. Inputs above the cap are truncated, never rejected.
// Read-only after init.
var Caps = map[string]float64{
	KeyHardBraking:       5.2,
	KeyAggressiveTurning: 13.2,
	KeyUnsafeFollowing:   63.2,
	KeyExcessiveSpeeding: 10.0,
	KeyLateNightDriving:  14.2,
	KeyUnbuckledDriving:  31.7,
}

// ValidationError indicates an input the engine refuses to score.
// It is always recoverable by the caller.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Factors captures the behavioral safety factors recorded over a
// driving period. Percentage fields are percent values (e.g. 5.2 for
// 5.2%). Factors is a value type: Normalize returns a new instance and
// never mutates the receiver.
type Factors struct {
	HardBraking                  float64 `json:"hard_braking" yaml:"hardBraking"`
	AggressiveTurning            float64 `json:"aggressive_turning" yaml:"aggressiveTurning"`
	UnsafeFollowing              float64 `json:"unsafe_following" yaml:"unsafeFollowing"`
	ExcessiveSpeeding            float64 `json:"excessive_speeding" yaml:"excessiveSpeeding"`
	LateNightDriving             float64 `json:"late_night_driving" yaml:"lateNightDriving"`
	UnbuckledDriving             float64 `json:"unbuckled_driving" yaml:"unbuckledDriving"`
	ForcedAutopilotDisengagement int     `json:"forced_autopilot_disengagement" yaml:"forcedAutopilotDisengagement"`
	AutopilotHWTwoOrNewer        bool    `json:"autopilot_hw_two_or_newer" yaml:"autopilotHwTwoOrNewer"`
}

// Normalize returns a copy of the factors with every percentage clamped
// into [0, cap] and the forced disengagement flag coerced to 0 or 1.
// Negative percentages fail with a ValidationError. Normalize is
// idempotent.
func (f Factors) Normalize() (Factors, error) {
	n := f

	var err error
	if n.HardBraking, err = normalizePercentage(KeyHardBraking, f.HardBraking); err != nil {
		return Factors{}, err
	}
	if n.AggressiveTurning, err = normalizePercentage(KeyAggressiveTurning, f.AggressiveTurning); err != nil {
		return Factors{}, err
	}
	if n.UnsafeFollowing, err = normalizePercentage(KeyUnsafeFollowing, f.UnsafeFollowing); err != nil {
		return Factors{}, err
	}
	if n.ExcessiveSpeeding, err = normalizePercentage(KeyExcessiveSpeeding, f.ExcessiveSpeeding); err != nil {
		return Factors{}, err
	}
	if n.LateNightDriving, err = normalizePercentage(KeyLateNightDriving, f.LateNightDriving); err != nil {
		return Factors{}, err
	}
	if n.UnbuckledDriving, err = normalizePercentage(KeyUnbuckledDriving, f.UnbuckledDriving); err != nil {
		return Factors{}, err
	}

	// Truthiness, not a range check: any non-zero value means the
	// disengagement occurred.
	if f.ForcedAutopilotDisengagement != 0 {
		n.ForcedAutopilotDisengagement = 1
	} else {
		n.ForcedAutopilotDisengagement = 0
	}

	return n, nil
}

func normalizePercentage(key string, value float64) (float64, error) {
	if value < 0 {
		return 0, &ValidationError{Field: key, Reason: "safety factors cannot be negative"}
	}
	return math.Min(value, Caps[key]), nil
}
