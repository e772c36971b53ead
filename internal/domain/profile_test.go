package domain

import (
	"errors"
	"testing"
)

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()

	if p.Crowd != CrowdModerate || p.Activity != ActivityBalanced || p.Distance != DistanceModerate {
		t.Fatalf("unexpected enum defaults: %+v", p)
	}
	if p.BudgetConscious || !p.NatureLover || !p.CultureEnthusiast {
		t.Fatalf("unexpected flag defaults: %+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("default profile invalid: %v", err)
	}
}

func TestNewPreferenceProfile(t *testing.T) {
	p, err := NewPreferenceProfile("Quiet", " relaxed ", "nearby", true, false, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := PreferenceProfile{
		Crowd:             CrowdQuiet,
		Activity:          ActivityRelaxed,
		Distance:          DistanceNearby,
		BudgetConscious:   true,
		NatureLover:       false,
		CultureEnthusiast: true,
	}
	if p != want {
		t.Fatalf("profile = %+v, want %+v", p, want)
	}
}

func TestNewPreferenceProfileEmptyUsesDefaults(t *testing.T) {
	p, err := NewPreferenceProfile("", "", "", false, true, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != DefaultProfile() {
		t.Fatalf("profile = %+v, want defaults", p)
	}
}

func TestNewPreferenceProfileRejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name                      string
		crowd, activity, distance string
	}{
		{"crowd", "rowdy", "balanced", "moderate"},
		{"activity", "quiet", "extreme", "moderate"},
		{"distance", "quiet", "balanced", "galactic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPreferenceProfile(tt.crowd, tt.activity, tt.distance, false, true, true)
			if !errors.Is(err, ErrInvalidPreference) {
				t.Fatalf("err = %v, want ErrInvalidPreference", err)
			}
		})
	}
}

func TestValidateRejectsZeroValue(t *testing.T) {
	var p PreferenceProfile
	if err := p.Validate(); !errors.Is(err, ErrInvalidPreference) {
		t.Fatalf("err = %v, want ErrInvalidPreference", err)
	}
}
