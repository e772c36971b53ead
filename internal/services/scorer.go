package services

import (
	"strings"
	"trip-planner-service/internal/domain"
)

const (
	baseScore = 50
	minScore  = 0
	maxScore  = 100
)

// keywordRule adds delta when any keyword is a substring of the lowercased tags.
type keywordRule struct {
	keywords []string
	delta    int
}

// ruleSet is one scoring component. When firstMatch is set only the first
// matching rule contributes; otherwise every matching rule does.
type ruleSet struct {
	name       string
	firstMatch bool
	rules      []keywordRule
}

var crowdRules = map[domain.CrowdPreference]ruleSet{
	domain.CrowdQuiet: {
		name:       "crowd.quiet",
		firstMatch: true,
		rules: []keywordRule{
			{keywords: []string{"natural", "park", "garden", "beach", "trail", "forest"}, delta: 15},
			{keywords: []string{"museum", "gallery", "library"}, delta: 10},
			{keywords: []string{"mall", "stadium", "festival", "market"}, delta: -15},
		},
	},
	domain.CrowdLively: {
		name:       "crowd.lively",
		firstMatch: true,
		rules: []keywordRule{
			{keywords: []string{"mall", "market", "festival", "stadium", "entertainment"}, delta: 15},
			{keywords: []string{"restaurant", "cafe", "nightlife", "shopping"}, delta: 10},
			{keywords: []string{"isolated", "remote", "wilderness"}, delta: -10},
		},
	},
}

var activityRules = map[domain.ActivityLevel]ruleSet{
	domain.ActivityRelaxed: {
		name:       "activity.relaxed",
		firstMatch: true,
		rules: []keywordRule{
			{keywords: []string{"spa", "beach", "garden", "cafe", "museum", "gallery"}, delta: 15},
			{keywords: []string{"hiking", "climbing", "sport", "adventure"}, delta: -10},
		},
	},
	domain.ActivityAdventurous: {
		name:       "activity.adventurous",
		firstMatch: true,
		rules: []keywordRule{
			{keywords: []string{"hiking", "climbing", "sport", "adventure", "mountain", "trail"}, delta: 15},
			{keywords: []string{"water_park", "zoo", "amusement"}, delta: 10},
			{keywords: []string{"spa", "lounge"}, delta: -5},
		},
	},
}

var natureRules = ruleSet{
	name: "nature",
	rules: []keywordRule{
		{keywords: []string{"natural", "park", "beach", "forest", "mountain", "lake", "river"}, delta: 15},
	},
}

var cultureRules = ruleSet{
	name: "culture",
	rules: []keywordRule{
		{keywords: []string{"museum", "gallery", "historic", "cultural", "architecture", "monument"}, delta: 15},
		{keywords: []string{"theatre", "art", "heritage"}, delta: 10},
	},
}

var budgetRules = ruleSet{
	name: "budget",
	rules: []keywordRule{
		{keywords: []string{"park", "beach", "garden", "historic", "monument"}, delta: 10},
		{keywords: []string{"luxury", "resort", "spa"}, delta: -10},
	},
}

func (r keywordRule) matches(tags string) bool {
	for _, k := range r.keywords {
		if strings.Contains(tags, k) {
			return true
		}
	}
	return false
}

func (s ruleSet) apply(tags string) int {
	total := 0
	for _, r := range s.rules {
		if !r.matches(tags) {
			continue
		}
		total += r.delta
		if s.firstMatch {
			break
		}
	}
	return total
}

// Score rates how well a destination suits a preference profile, in [0, 100].
//
// The score starts at 50 and each component adds a fixed delta. The distance
// component only applies when requester is non-nil; a destination without
// coordinates is treated as located at the requester. Scoring is total and
// has no side effects.
func Score(dest domain.CandidateDestination, profile domain.PreferenceProfile, requester *domain.Coordinates) int {
	score := baseScore

	if requester != nil {
		at := *requester
		if dest.Coordinates != nil {
			at = *dest.Coordinates
		}
		score += distanceDelta(profile.Distance, requester.DistanceKm(at))
	}

	tags := strings.ToLower(dest.Tags)

	if rs, ok := crowdRules[profile.Crowd]; ok {
		score += rs.apply(tags)
	}
	if rs, ok := activityRules[profile.Activity]; ok {
		score += rs.apply(tags)
	}
	if profile.NatureLover {
		score += natureRules.apply(tags)
	}
	if profile.CultureEnthusiast {
		score += cultureRules.apply(tags)
	}
	if profile.BudgetConscious {
		score += budgetRules.apply(tags)
	}

	return clampScore(score)
}

func distanceDelta(pref domain.DistancePreference, km float64) int {
	switch pref {
	case domain.DistanceNearby:
		switch {
		case km < 50:
			return 20
		case km < 100:
			return 10
		default:
			return -10
		}
	case domain.DistanceModerate:
		if km >= 50 && km <= 200 {
			return 20
		}
		return 5
	case domain.DistanceFar:
		switch {
		case km > 200:
			return 20
		case km > 100:
			return 10
		default:
			return -5
		}
	}
	return 0
}

func clampScore(v int) int {
	if v < minScore {
		return minScore
	}
	if v > maxScore {
		return maxScore
	}
	return v
}
