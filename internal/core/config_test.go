package core

import "testing"

func TestDefaultConfigUsesDocumentedBaselineWithoutEnv(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Scoring.ZoneBonus != 50 || cfg.Scoring.DoorWeight != 100 || cfg.Scoring.PriorityDivisor != 10 {
		t.Fatalf("unexpected baseline scoring weights: %+v", cfg.Scoring)
	}
	if cfg.Search.GridStep != 5 || cfg.Search.RearrangeFillFraction != 0.9 {
		t.Fatalf("unexpected baseline search config: %+v", cfg.Search)
	}
}

func TestDefaultConfigAppliesEnvOverrides(t *testing.T) {
	t.Setenv("CARGOCORE_ZONE_BONUS", "75")
	t.Setenv("CARGOCORE_GRID_STEP", "2.5")
	t.Setenv("CARGOCORE_RETRIEVAL_WEIGHT_ACCESS", "0.5")

	cfg := DefaultConfig()
	if cfg.Scoring.ZoneBonus != 75 {
		t.Fatalf("expected CARGOCORE_ZONE_BONUS to override ZoneBonus, got %v", cfg.Scoring.ZoneBonus)
	}
	if cfg.Search.GridStep != 2.5 {
		t.Fatalf("expected CARGOCORE_GRID_STEP to override GridStep, got %v", cfg.Search.GridStep)
	}
	if cfg.Scoring.Retrieval.Access != 0.5 {
		t.Fatalf("expected CARGOCORE_RETRIEVAL_WEIGHT_ACCESS to override Retrieval.Access, got %v", cfg.Scoring.Retrieval.Access)
	}
	// Fields with no matching env var keep the documented baseline.
	if cfg.Scoring.DoorWeight != 100 {
		t.Fatalf("expected DoorWeight to remain at baseline, got %v", cfg.Scoring.DoorWeight)
	}
}

func TestDefaultConfigIgnoresUnparsableEnv(t *testing.T) {
	t.Setenv("CARGOCORE_ZONE_BONUS", "not-a-number")

	cfg := DefaultConfig()
	if cfg.Scoring.ZoneBonus != 50 {
		t.Fatalf("expected unparsable override to be ignored, got %v", cfg.Scoring.ZoneBonus)
	}
}
