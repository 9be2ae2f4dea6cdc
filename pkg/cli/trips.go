package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mchmarny/ssctl/pkg/score"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

var (
	tripFileFlag = &cli.StringFlag{
		Name:     "file",
		Usage:    "Path to the trip log file (yaml or json)",
		Required: true,
	}

	tripsCmd = &cli.Command{
		Name:    "trips",
		Aliases: []string{"t"},
		Usage:   "Score each trip in a trip log and report the miles-weighted average",
		UsageText: `ssctl trips --file trips.yaml
   ssctl --format yaml trips --file trips.json`,
		Action: cmdTrips,
		Flags: []cli.Flag{
			tripFileFlag,
		},
	}
)

// Trip is one recorded driving period in a trip log file. Omitted
// factor fields default to zero; omitted miles default to 1 so an
// unweighted log averages evenly. The hardware tier is taken from
// LegacyHardware, not from the factors block.
type Trip struct {
	Name           string        `json:"name,omitempty" yaml:"name,omitempty"`
	Miles          float64       `json:"miles,omitempty" yaml:"miles,omitempty"`
	LegacyHardware bool          `json:"legacy_hardware,omitempty" yaml:"legacyHardware,omitempty"`
	Factors        score.Factors `json:"factors" yaml:"factors"`
}

// TripScore is the scored view of a single trip.
type TripScore struct {
	Name        string  `json:"name,omitempty" yaml:"name,omitempty"`
	Miles       float64 `json:"miles" yaml:"miles"`
	PCF         float64 `json:"pcf" yaml:"pcf"`
	SafetyScore float64 `json:"safety_score" yaml:"safetyScore"`
}

// TripsResult is the output of the trips command.
type TripsResult struct {
	Trips           []*TripScore `json:"trips" yaml:"trips"`
	TotalMiles      float64      `json:"total_miles" yaml:"totalMiles"`
	WeightedAverage float64      `json:"weighted_average" yaml:"weightedAverage"`
}

func cmdTrips(c *cli.Context) error {
	path := c.String(tripFileFlag.Name)

	trips, err := readTrips(path)
	if err != nil {
		return fmt.Errorf("reading trip log %s: %w", path, err)
	}
	if len(trips) == 0 {
		return fmt.Errorf("trip log %s contains no trips", path)
	}

	slog.Debug("scoring trips", "file", path, "trips", len(trips))

	res := &TripsResult{Trips: make([]*TripScore, 0, len(trips))}
	scores := make([]float64, 0, len(trips))
	weights := make([]float64, 0, len(trips))

	for i, trip := range trips {
		f := trip.Factors
		f.AutopilotHWTwoOrNewer = !trip.LegacyHardware

		miles := trip.Miles
		if miles <= 0 {
			miles = 1.0
		}

		pcf, err := score.ComputePCF(f)
		if err != nil {
			return fmt.Errorf("trip %d: %w", i+1, err)
		}
		s, err := score.ComputeSafetyScore(f)
		if err != nil {
			return fmt.Errorf("trip %d: %w", i+1, err)
		}

		res.Trips = append(res.Trips, &TripScore{
			Name:        trip.Name,
			Miles:       miles,
			PCF:         pcf,
			SafetyScore: s,
		})
		res.TotalMiles += miles
		scores = append(scores, s)
		weights = append(weights, miles)
	}

	avg, err := score.WeightedAverage(scores, weights)
	if err != nil {
		return fmt.Errorf("aggregating trip scores: %w", err)
	}
	res.WeightedAverage = avg

	return encode(res)
}

func readTrips(path string) ([]*Trip, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var trips []*Trip
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(b, &trips); err != nil {
			return nil, fmt.Errorf("parsing json: %w", err)
		}
		return trips, nil
	}

	if err := yaml.Unmarshal(b, &trips); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	return trips, nil
}
