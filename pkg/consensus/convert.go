// Package consensus reduces a group's destination votes to a single
// planned trip by plurality selection.
package consensus

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"travelorbit-be/internal/entity"

	"github.com/google/uuid"
)

// ErrNoVotes is returned when a group is converted before anyone voted.
var ErrNoVotes = errors.New("no votes submitted yet")

const (
	maxInterests        = 5
	defaultDurationDays = 3
)

// Convert reduces the submitted votes to one finalized trip. Votes must be
// in submission order: every tie in the plurality counts breaks towards
// whichever value was seen first, so conversion is deterministic.
func Convert(group *entity.TravelGroup, votes []*entity.GroupVote) (*entity.Trip, error) {
	if len(votes) == 0 {
		return nil, ErrNoVotes
	}

	destination := pluralityString(votes, func(v *entity.GroupVote) (string, bool) {
		return v.Destination, v.Destination != ""
	})

	budget := pluralityString(votes, func(v *entity.GroupVote) (string, bool) {
		if v.BudgetLevel == nil {
			return "", false
		}
		return string(*v.BudgetLevel), true
	})

	start, end := pluralityDateRange(votes)
	duration := durationDays(start, end)

	interests := topInterests(votes, maxInterests)
	passengers, phone := collectVoters(votes)

	party := entity.PartyTypeFriends
	adults := len(passengers)
	title := fmt.Sprintf("Group Trip to %s", destination)

	trip := &entity.Trip{
		Id:            uuid.New(),
		UserId:        group.LeaderUserId,
		Email:         group.LeaderEmail,
		ToCity:        &destination,
		PartyType:     &party,
		AdultsCount:   &adults,
		DurationDays:  &duration,
		StartDate:     start,
		EndDate:       end,
		Interests:     interests,
		Passengers:    passengers,
		ContactPhone:  phone,
		Title:         &title,
		Status:        entity.TripStatusPlanned,
		Currency:      "INR",
		SourceGroupId: &group.Id,
		CreatedAt:     time.Now(),
	}

	if budget != "" {
		b := entity.BudgetLevel(budget)
		trip.BudgetLevel = &b
	}

	return trip, nil
}

// pluralityString counts the extracted value across votes and returns the
// most frequent one, first-seen winning ties.
func pluralityString(votes []*entity.GroupVote, extract func(*entity.GroupVote) (string, bool)) string {
	counts := map[string]int{}
	firstSeen := map[string]int{}
	order := 0

	for _, v := range votes {
		value, ok := extract(v)
		if !ok {
			continue
		}
		if _, seen := counts[value]; !seen {
			firstSeen[value] = order
			order++
		}
		counts[value]++
	}

	best := ""
	for value := range counts {
		if best == "" {
			best = value
			continue
		}
		if counts[value] > counts[best] ||
			(counts[value] == counts[best] && firstSeen[value] < firstSeen[best]) {
			best = value
		}
	}
	return best
}

// pluralityDateRange votes over exact (start, end) pairs; a pair that
// never repeats falls back to the first submitted one.
func pluralityDateRange(votes []*entity.GroupVote) (*time.Time, *time.Time) {
	type pair struct {
		start, end time.Time
	}
	counts := map[pair]int{}
	firstSeen := map[pair]int{}
	order := 0

	for _, v := range votes {
		if v.StartDate == nil || v.EndDate == nil {
			continue
		}
		p := pair{*v.StartDate, *v.EndDate}
		if _, seen := counts[p]; !seen {
			firstSeen[p] = order
			order++
		}
		counts[p]++
	}

	if len(counts) == 0 {
		return nil, nil
	}

	var best pair
	bestSet := false
	for p := range counts {
		if !bestSet {
			best, bestSet = p, true
			continue
		}
		if counts[p] > counts[best] ||
			(counts[p] == counts[best] && firstSeen[p] < firstSeen[best]) {
			best = p
		}
	}

	start, end := best.start, best.end
	return &start, &end
}

func durationDays(start, end *time.Time) int {
	if start == nil || end == nil {
		return defaultDurationDays
	}
	days := int(end.Sub(*start).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// topInterests unions all submitted activity tags, ranks them by
// frequency, and keeps the top n with first-seen tie-breaks.
func topInterests(votes []*entity.GroupVote, n int) []string {
	counts := map[string]int{}
	firstSeen := map[string]int{}
	order := 0

	for _, v := range votes {
		for _, tag := range v.Activities {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			if _, seen := counts[tag]; !seen {
				firstSeen[tag] = order
				order++
			}
			counts[tag]++
		}
	}

	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if counts[tags[i]] != counts[tags[j]] {
			return counts[tags[i]] > counts[tags[j]]
		}
		return firstSeen[tags[i]] < firstSeen[tags[j]]
	})

	if len(tags) > n {
		tags = tags[:n]
	}
	return tags
}

// collectVoters yields one adult passenger per distinct voter in
// submission order, plus the first phone number anyone supplied.
func collectVoters(votes []*entity.GroupVote) ([]entity.Passenger, *string) {
	seen := map[string]bool{}
	var passengers []entity.Passenger
	var phone *string

	for _, v := range votes {
		if phone == nil && v.Phone != nil && *v.Phone != "" {
			phone = v.Phone
		}
		if seen[v.VoterEmail] {
			continue
		}
		seen[v.VoterEmail] = true

		name := ""
		if v.VoterName != nil && *v.VoterName != "" {
			name = *v.VoterName
		} else if at := strings.Index(v.VoterEmail, "@"); at > 0 {
			name = v.VoterEmail[:at]
		} else {
			name = v.VoterEmail
		}

		passengers = append(passengers, entity.Passenger{Name: name, Role: "adult"})
	}

	return passengers, phone
}
