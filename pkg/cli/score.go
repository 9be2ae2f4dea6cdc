package cli

import (
	"fmt"
	"log/slog"

	"github.com/mchmarny/ssctl/pkg/score"
	"github.com/urfave/cli/v2"
)

var (
	hardBrakingFlag = &cli.Float64Flag{
		Name:     "hard-braking",
		Usage:    fmt.Sprintf("Hard braking percentage (cap %.1f)", score.Caps[score.KeyHardBraking]),
		Required: true,
	}

	aggressiveTurningFlag = &cli.Float64Flag{
		Name:     "aggressive-turning",
		Usage:    fmt.Sprintf("Aggressive turning percentage (cap %.1f)", score.Caps[score.KeyAggressiveTurning]),
		Required: true,
	}

	unsafeFollowingFlag = &cli.Float64Flag{
		Name:     "unsafe-following",
		Usage:    fmt.Sprintf("Unsafe following percentage (cap %.1f)", score.Caps[score.KeyUnsafeFollowing]),
		Required: true,
	}

	excessiveSpeedingFlag = &cli.Float64Flag{
		Name:     "excessive-speeding",
		Usage:    fmt.Sprintf("Excessive speeding percentage (cap %.1f)", score.Caps[score.KeyExcessiveSpeeding]),
		Required: true,
	}

	lateNightDrivingFlag = &cli.Float64Flag{
		Name:     "late-night-driving",
		Usage:    fmt.Sprintf("Late-night driving percentage (cap %.1f)", score.Caps[score.KeyLateNightDriving]),
		Required: true,
	}

	unbuckledDrivingFlag = &cli.Float64Flag{
		Name:     "unbuckled-driving",
		Usage:    fmt.Sprintf("Unbuckled driving percentage (cap %.1f)", score.Caps[score.KeyUnbuckledDriving]),
		Required: true,
	}

	forcedDisengagementFlag = &cli.IntFlag{
		Name:     "forced-autopilot-disengagement",
		Usage:    "1 if ADAS was forcibly disengaged during the period, 0 otherwise",
		Required: true,
	}

	legacyHardwareFlag = &cli.BoolFlag{
		Name:  "legacy-hardware",
		Usage: "Set if the vehicle has ADAS hardware older than version 2.0",
	}

	milesFlag = &cli.Float64Flag{
		Name:  "miles",
		Usage: "Miles driven during the period, used as the weight when aggregating scores",
		Value: 1.0,
	}

	scoreCmd = &cli.Command{
		Name:    "score",
		Aliases: []string{"s"},
		Usage:   "Compute PCF, Safety Score, and penalty breakdown for a driving period",
		UsageText: `ssctl score --hard-braking 1.2 --aggressive-turning 0.5 --unsafe-following 12 \
      --excessive-speeding 0 --late-night-driving 3.1 --unbuckled-driving 0 \
      --forced-autopilot-disengagement 0`,
		Action: cmdScore,
		Flags: []cli.Flag{
			hardBrakingFlag,
			aggressiveTurningFlag,
			unsafeFollowingFlag,
			excessiveSpeedingFlag,
			lateNightDrivingFlag,
			unbuckledDrivingFlag,
			forcedDisengagementFlag,
			legacyHardwareFlag,
			milesFlag,
		},
	}
)

// ScoreResult is the output of the score command.
type ScoreResult struct {
	PCF         float64          `json:"pcf" yaml:"pcf"`
	SafetyScore float64          `json:"safety_score" yaml:"safetyScore"`
	Miles       float64          `json:"miles" yaml:"miles"`
	Breakdown   *score.Breakdown `json:"breakdown,omitempty" yaml:"breakdown,omitempty"`
}

func cmdScore(c *cli.Context) error {
	forced := c.Int(forcedDisengagementFlag.Name)
	if forced != 0 && forced != 1 {
		return fmt.Errorf("--%s must be 0 or 1, got %d", forcedDisengagementFlag.Name, forced)
	}

	legacy := c.Bool(legacyHardwareFlag.Name)
	if !c.IsSet(legacyHardwareFlag.Name) {
		legacy = getConfig(c).LegacyHardware
	}

	f := score.Factors{
		HardBraking:                  c.Float64(hardBrakingFlag.Name),
		AggressiveTurning:            c.Float64(aggressiveTurningFlag.Name),
		UnsafeFollowing:              c.Float64(unsafeFollowingFlag.Name),
		ExcessiveSpeeding:            c.Float64(excessiveSpeedingFlag.Name),
		LateNightDriving:             c.Float64(lateNightDrivingFlag.Name),
		UnbuckledDriving:             c.Float64(unbuckledDrivingFlag.Name),
		ForcedAutopilotDisengagement: forced,
		AutopilotHWTwoOrNewer:        !legacy,
	}

	res, err := scorePeriod(f, c.Float64(milesFlag.Name))
	if err != nil {
		return err
	}

	slog.Debug("scored driving period", "pcf", res.PCF, "score", res.SafetyScore)

	return encode(res)
}

// scorePeriod runs the full engine for one driving period.
func scorePeriod(f score.Factors, miles float64) (*ScoreResult, error) {
	pcf, err := score.ComputePCF(f)
	if err != nil {
		return nil, err
	}

	s, err := score.ComputeSafetyScore(f)
	if err != nil {
		return nil, err
	}

	b, err := score.ScoreBreakdown(f)
	if err != nil {
		return nil, err
	}

	return &ScoreResult{
		PCF:         pcf,
		SafetyScore: s,
		Miles:       miles,
		Breakdown:   b,
	}, nil
}
