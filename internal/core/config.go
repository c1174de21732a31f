package core

import (
	"os"
	"strconv"
)

// ScoringWeights is the linear-blend configuration for placement scoring,
// exposed as configuration rather than hard-coded so deployments can tune
// scoring without a rebuild.
type ScoringWeights struct {
	// ZoneBonus is added to a candidate container's placement score when
	// the container's zone matches the item's preferred zone.
	ZoneBonus float64
	// DoorWeight scales the "closer to the door is better" placement
	// component: 100 * (1 - y/D).
	DoorWeight float64
	// PriorityDivisor converts an item's priority into a small tie-break
	// addend on the placement score (priority / PriorityDivisor).
	PriorityDivisor float64
	// Retrieval holds the weights used by the selector (C6).
	Retrieval RetrievalWeights
}

// RetrievalWeights blends the four components of the selector's total score.
type RetrievalWeights struct {
	Priority float64
	Expiry   float64
	Usage    float64
	Access   float64
}

// DefaultScoringWeights returns the documented baseline weights:
// {zoneBonus:50, doorWeight:100, priorityDivisor:10,
//  retrievalWeights:{priority:0.4, expiry:0.3, usage:0.1, access:0.2}}.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		ZoneBonus:       50,
		DoorWeight:      100,
		PriorityDivisor: 10,
		Retrieval: RetrievalWeights{
			Priority: 0.4,
			Expiry:   0.3,
			Usage:    0.1,
			Access:   0.2,
		},
	}
}

// SearchConfig bounds the placement grid sweep (C3) and the rearrangement
// threshold (C7).
type SearchConfig struct {
	// GridStep is the sweep step in centimetres (STEP=5).
	// Smaller values improve packing density; larger values are faster.
	GridStep float64
	// RearrangeFillFraction is the container fill fraction above which
	// new cargo triggers rearrangement (0.9).
	RearrangeFillFraction float64
	// ForecastUsesPerWeek is the placeholder usage-depletion rate used by
	// forecastUsageDepletion until real telemetry is available.
	ForecastUsesPerWeek float64
}

// DefaultSearchConfig returns the documented baseline search constants.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		GridStep:              5,
		RearrangeFillFraction: 0.9,
		ForecastUsesPerWeek:   1,
	}
}

// Config bundles the tunables a Service is constructed with.
type Config struct {
	Scoring ScoringWeights
	Search  SearchConfig
}

// DefaultConfig returns the documented baseline configuration, overridable
// per field via environment variables so a deployment can tune scoring and
// search behavior without a rebuild:
//
//	CARGOCORE_ZONE_BONUS, CARGOCORE_DOOR_WEIGHT, CARGOCORE_PRIORITY_DIVISOR
//	CARGOCORE_RETRIEVAL_WEIGHT_PRIORITY, CARGOCORE_RETRIEVAL_WEIGHT_EXPIRY,
//	CARGOCORE_RETRIEVAL_WEIGHT_USAGE, CARGOCORE_RETRIEVAL_WEIGHT_ACCESS
//	CARGOCORE_GRID_STEP, CARGOCORE_REARRANGE_FILL_FRACTION,
//	CARGOCORE_FORECAST_USES_PER_WEEK
//
// Unset or unparsable variables leave the documented baseline untouched.
func DefaultConfig() Config {
	cfg := Config{
		Scoring: DefaultScoringWeights(),
		Search:  DefaultSearchConfig(),
	}
	applyConfigEnvOverrides(&cfg)
	return cfg
}

func applyConfigEnvOverrides(cfg *Config) {
	overrideFloatEnv("CARGOCORE_ZONE_BONUS", &cfg.Scoring.ZoneBonus)
	overrideFloatEnv("CARGOCORE_DOOR_WEIGHT", &cfg.Scoring.DoorWeight)
	overrideFloatEnv("CARGOCORE_PRIORITY_DIVISOR", &cfg.Scoring.PriorityDivisor)
	overrideFloatEnv("CARGOCORE_RETRIEVAL_WEIGHT_PRIORITY", &cfg.Scoring.Retrieval.Priority)
	overrideFloatEnv("CARGOCORE_RETRIEVAL_WEIGHT_EXPIRY", &cfg.Scoring.Retrieval.Expiry)
	overrideFloatEnv("CARGOCORE_RETRIEVAL_WEIGHT_USAGE", &cfg.Scoring.Retrieval.Usage)
	overrideFloatEnv("CARGOCORE_RETRIEVAL_WEIGHT_ACCESS", &cfg.Scoring.Retrieval.Access)
	overrideFloatEnv("CARGOCORE_GRID_STEP", &cfg.Search.GridStep)
	overrideFloatEnv("CARGOCORE_REARRANGE_FILL_FRACTION", &cfg.Search.RearrangeFillFraction)
	overrideFloatEnv("CARGOCORE_FORECAST_USES_PER_WEEK", &cfg.Search.ForecastUsesPerWeek)
}

// overrideFloatEnv sets *dst from the named environment variable when it is
// present and parses as a float64; it leaves dst unchanged otherwise.
func overrideFloatEnv(key string, dst *float64) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		*dst = v
	}
}
