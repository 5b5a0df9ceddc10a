package planner

import (
	"strings"
	"time"

	"travelorbit-be/internal/entity"
)

// Merge applies a partial field update onto a trip and returns the result.
// Only keys in the allow-list below are considered; a present-but-null
// value never clears an existing field, and unknown keys are skipped.
// Applying the same update twice yields the same trip as applying it once.
func Merge(trip entity.Trip, fields map[string]interface{}) entity.Trip {
	for key, value := range fields {
		if value == nil {
			continue
		}
		switch key {
		case "from_city":
			if s, ok := asString(value); ok {
				trip.FromCity = &s
			}
		case "to_city":
			if s, ok := asString(value); ok {
				trip.ToCity = &s
			}
		case "party_type":
			if p, ok := asPartyType(value); ok {
				trip.PartyType = &p
			}
		case "adults_count":
			if n, ok := asInt(value); ok {
				trip.AdultsCount = &n
			}
		case "children_count":
			if n, ok := asInt(value); ok {
				trip.ChildrenCount = &n
			}
		case "seniors_count":
			if n, ok := asInt(value); ok {
				trip.SeniorsCount = &n
			}
		case "budget_level":
			if b, ok := asBudgetLevel(value); ok {
				trip.BudgetLevel = &b
			}
		case "duration_days":
			if n, ok := asInt(value); ok {
				trip.DurationDays = &n
			}
		case "start_date":
			if d, ok := asDate(value); ok {
				trip.StartDate = &d
			}
		case "end_date":
			if d, ok := asDate(value); ok {
				trip.EndDate = &d
			}
		case "interests":
			if tags, ok := asStringSlice(value); ok && len(tags) > 0 {
				trip.Interests = tags
			}
		case "special_requirements":
			if s, ok := asString(value); ok {
				trip.SpecialRequirements = &s
			}
		case "contact_phone":
			if s, ok := asString(value); ok {
				trip.ContactPhone = &s
			}
		case "passengers":
			if list, ok := asPassengers(value); ok && len(list) > 0 {
				trip.Passengers = list
			}
		}
	}
	return trip
}

func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// asInt tolerates JSON numbers (float64) and numeric strings.
func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		var parsed int
		for _, r := range strings.TrimSpace(n) {
			if r < '0' || r > '9' {
				return 0, false
			}
			parsed = parsed*10 + int(r-'0')
		}
		if strings.TrimSpace(n) == "" {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func asDate(v interface{}) (time.Time, bool) {
	s, ok := asString(v)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "02-01-2006", "2006/01/02"} {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

func asPartyType(v interface{}) (entity.PartyType, bool) {
	s, ok := asString(v)
	if !ok {
		return "", false
	}
	switch p := entity.PartyType(strings.ToLower(s)); p {
	case entity.PartyTypeSolo, entity.PartyTypeCouple, entity.PartyTypeFriends, entity.PartyTypeFamily:
		return p, true
	}
	return "", false
}

func asBudgetLevel(v interface{}) (entity.BudgetLevel, bool) {
	s, ok := asString(v)
	if !ok {
		return "", false
	}
	switch b := entity.BudgetLevel(strings.ToLower(s)); b {
	case entity.BudgetCheap, entity.BudgetModerate, entity.BudgetLuxury:
		return b, true
	}
	return "", false
}

func asStringSlice(v interface{}) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := asString(item); ok {
				out = append(out, s)
			}
		}
		return out, true
	case string:
		// Some models send a comma-joined string instead of a list.
		parts := strings.Split(list, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				out = append(out, s)
			}
		}
		return out, true
	default:
		return nil, false
	}
}

func asPassengers(v interface{}) ([]entity.Passenger, bool) {
	list, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]entity.Passenger, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		p := entity.Passenger{Role: "adult"}
		if name, ok := asString(obj["name"]); ok {
			p.Name = name
		}
		if age, ok := asInt(obj["age"]); ok {
			p.Age = &age
		}
		if role, ok := asString(obj["role"]); ok {
			p.Role = strings.ToLower(role)
		}
		if p.Name != "" {
			out = append(out, p)
		}
	}
	return out, true
}
