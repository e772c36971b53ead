package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidPreference is returned when an enumerated preference value is unknown.
var ErrInvalidPreference = errors.New("invalid preference value")

type CrowdPreference string

const (
	CrowdQuiet    CrowdPreference = "quiet"
	CrowdModerate CrowdPreference = "moderate"
	CrowdLively   CrowdPreference = "lively"
)

type ActivityLevel string

const (
	ActivityRelaxed     ActivityLevel = "relaxed"
	ActivityBalanced    ActivityLevel = "balanced"
	ActivityAdventurous ActivityLevel = "adventurous"
)

type DistancePreference string

const (
	DistanceNearby   DistancePreference = "nearby"
	DistanceModerate DistancePreference = "moderate"
	DistanceFar      DistancePreference = "far"
)

// PreferenceProfile is the set of stated travel preferences used to weight
// candidate scoring. A profile is a value; scoring never mutates it.
type PreferenceProfile struct {
	Crowd             CrowdPreference    `json:"crowd"`
	Activity          ActivityLevel      `json:"activity"`
	Distance          DistancePreference `json:"distance"`
	BudgetConscious   bool               `json:"budget"`
	NatureLover       bool               `json:"nature"`
	CultureEnthusiast bool               `json:"culture"`
}

// DefaultProfile returns moderate/balanced/moderate with nature and culture enabled.
func DefaultProfile() PreferenceProfile {
	return PreferenceProfile{
		Crowd:             CrowdModerate,
		Activity:          ActivityBalanced,
		Distance:          DistanceModerate,
		BudgetConscious:   false,
		NatureLover:       true,
		CultureEnthusiast: true,
	}
}

// NewPreferenceProfile parses the enumerated fields and rejects unknown values.
// Empty strings take the default for that field.
func NewPreferenceProfile(crowd, activity, distance string, budget, nature, culture bool) (PreferenceProfile, error) {
	p := DefaultProfile()

	c, err := ParseCrowd(crowd)
	if err != nil {
		return PreferenceProfile{}, fmt.Errorf("new preference profile: %w", err)
	}
	a, err := ParseActivity(activity)
	if err != nil {
		return PreferenceProfile{}, fmt.Errorf("new preference profile: %w", err)
	}
	d, err := ParseDistance(distance)
	if err != nil {
		return PreferenceProfile{}, fmt.Errorf("new preference profile: %w", err)
	}

	p.Crowd = c
	p.Activity = a
	p.Distance = d
	p.BudgetConscious = budget
	p.NatureLover = nature
	p.CultureEnthusiast = culture

	return p, nil
}

// Validate reports whether every enumerated field holds a known value.
func (p PreferenceProfile) Validate() error {
	if _, err := ParseCrowd(string(p.Crowd)); err != nil || p.Crowd == "" {
		return fmt.Errorf("crowd %q: %w", p.Crowd, ErrInvalidPreference)
	}
	if _, err := ParseActivity(string(p.Activity)); err != nil || p.Activity == "" {
		return fmt.Errorf("activity %q: %w", p.Activity, ErrInvalidPreference)
	}
	if _, err := ParseDistance(string(p.Distance)); err != nil || p.Distance == "" {
		return fmt.Errorf("distance %q: %w", p.Distance, ErrInvalidPreference)
	}
	return nil
}

func ParseCrowd(s string) (CrowdPreference, error) {
	switch CrowdPreference(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return CrowdModerate, nil
	case CrowdQuiet:
		return CrowdQuiet, nil
	case CrowdModerate:
		return CrowdModerate, nil
	case CrowdLively:
		return CrowdLively, nil
	}
	return "", fmt.Errorf("crowd %q: %w", s, ErrInvalidPreference)
}

func ParseActivity(s string) (ActivityLevel, error) {
	switch ActivityLevel(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return ActivityBalanced, nil
	case ActivityRelaxed:
		return ActivityRelaxed, nil
	case ActivityBalanced:
		return ActivityBalanced, nil
	case ActivityAdventurous:
		return ActivityAdventurous, nil
	}
	return "", fmt.Errorf("activity %q: %w", s, ErrInvalidPreference)
}

func ParseDistance(s string) (DistancePreference, error) {
	switch DistancePreference(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DistanceModerate, nil
	case DistanceNearby:
		return DistanceNearby, nil
	case DistanceModerate:
		return DistanceModerate, nil
	case DistanceFar:
		return DistanceFar, nil
	}
	return "", fmt.Errorf("distance %q: %w", s, ErrInvalidPreference)
}

// SavedProfile is a PreferenceProfile persisted against an anonymous session.
type SavedProfile struct {
	SessionKey string
	Profile    PreferenceProfile
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
