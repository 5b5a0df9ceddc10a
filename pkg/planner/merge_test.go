package planner

import (
	"reflect"
	"testing"
	"time"

	"travelorbit-be/internal/entity"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestMergeAppliesProvidedFields(t *testing.T) {
	trip := entity.Trip{Status: entity.TripStatusDraft}

	merged := Merge(trip, map[string]interface{}{
		"to_city":       "Goa",
		"duration_days": float64(4),
		"party_type":    "couple",
		"budget_level":  "moderate",
	})

	if merged.ToCity == nil || *merged.ToCity != "Goa" {
		t.Errorf("ToCity = %v, want Goa", merged.ToCity)
	}
	if merged.DurationDays == nil || *merged.DurationDays != 4 {
		t.Errorf("DurationDays = %v, want 4", merged.DurationDays)
	}
	if merged.PartyType == nil || *merged.PartyType != entity.PartyTypeCouple {
		t.Errorf("PartyType = %v, want couple", merged.PartyType)
	}
	if merged.BudgetLevel == nil || *merged.BudgetLevel != entity.BudgetModerate {
		t.Errorf("BudgetLevel = %v, want moderate", merged.BudgetLevel)
	}
	if merged.FromCity != nil {
		t.Errorf("FromCity should stay unset, got %v", *merged.FromCity)
	}
	if merged.Status != entity.TripStatusDraft {
		t.Errorf("Status = %v, want draft", merged.Status)
	}
}

func TestMergeNullNeverClears(t *testing.T) {
	trip := entity.Trip{
		FromCity:     strPtr("Mumbai"),
		ToCity:       strPtr("Goa"),
		DurationDays: intPtr(4),
		Interests:    []string{"food"},
	}

	merged := Merge(trip, map[string]interface{}{
		"from_city":     nil,
		"to_city":       "Manali",
		"duration_days": nil,
		"interests":     nil,
	})

	if *merged.FromCity != "Mumbai" {
		t.Errorf("null erased FromCity: %v", *merged.FromCity)
	}
	if *merged.ToCity != "Manali" {
		t.Errorf("ToCity = %v, want Manali", *merged.ToCity)
	}
	if *merged.DurationDays != 4 {
		t.Errorf("null erased DurationDays: %v", *merged.DurationDays)
	}
	if !reflect.DeepEqual(merged.Interests, []string{"food"}) {
		t.Errorf("null erased Interests: %v", merged.Interests)
	}
}

func TestMergeIdempotent(t *testing.T) {
	trip := entity.Trip{FromCity: strPtr("Delhi")}
	update := map[string]interface{}{
		"to_city":       "Goa",
		"interests":     []interface{}{"adventure", "food"},
		"start_date":    "2026-10-01",
		"end_date":      "2026-10-05",
		"adults_count":  float64(2),
		"contact_phone": "+919876543210",
	}

	once := Merge(trip, update)
	twice := Merge(once, update)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("merge not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestMergeUnknownKeysIgnored(t *testing.T) {
	trip := entity.Trip{ToCity: strPtr("Goa")}

	merged := Merge(trip, map[string]interface{}{
		"favourite_color": "blue",
		"status":          "paid",
		"total_price":     float64(99999),
	})

	if !reflect.DeepEqual(merged, trip) {
		t.Errorf("unknown keys mutated trip:\nbefore: %+v\nafter:  %+v", trip, merged)
	}
}

func TestMergeValueCoercion(t *testing.T) {
	merged := Merge(entity.Trip{}, map[string]interface{}{
		"duration_days": "5",
		"party_type":    "Family",
		"budget_level":  "LUXURY",
		"start_date":    "2026-12-20",
		"interests":     "nightlife, food",
		"passengers": []interface{}{
			map[string]interface{}{"name": "Asha", "age": float64(34)},
			map[string]interface{}{"name": "Ravi", "role": "Senior"},
			map[string]interface{}{"age": float64(9)}, // nameless, dropped
		},
	})

	if merged.DurationDays == nil || *merged.DurationDays != 5 {
		t.Errorf("DurationDays = %v, want 5", merged.DurationDays)
	}
	if merged.PartyType == nil || *merged.PartyType != entity.PartyTypeFamily {
		t.Errorf("PartyType = %v, want family", merged.PartyType)
	}
	if merged.BudgetLevel == nil || *merged.BudgetLevel != entity.BudgetLuxury {
		t.Errorf("BudgetLevel = %v, want luxury", merged.BudgetLevel)
	}
	want := time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC)
	if merged.StartDate == nil || !merged.StartDate.Equal(want) {
		t.Errorf("StartDate = %v, want %v", merged.StartDate, want)
	}
	if !reflect.DeepEqual(merged.Interests, []string{"nightlife", "food"}) {
		t.Errorf("Interests = %v", merged.Interests)
	}
	if len(merged.Passengers) != 2 {
		t.Fatalf("Passengers = %+v, want 2 entries", merged.Passengers)
	}
	if merged.Passengers[0].Age == nil || *merged.Passengers[0].Age != 34 {
		t.Errorf("first passenger age = %v", merged.Passengers[0].Age)
	}
	if merged.Passengers[1].Role != "senior" {
		t.Errorf("second passenger role = %q, want senior", merged.Passengers[1].Role)
	}
}

func TestMergeRejectsInvalidEnums(t *testing.T) {
	merged := Merge(entity.Trip{}, map[string]interface{}{
		"party_type":   "platoon",
		"budget_level": "free",
	})
	if merged.PartyType != nil {
		t.Errorf("invalid party type accepted: %v", *merged.PartyType)
	}
	if merged.BudgetLevel != nil {
		t.Errorf("invalid budget accepted: %v", *merged.BudgetLevel)
	}
}
