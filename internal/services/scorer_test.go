package services

import (
	"testing"
	"trip-planner-service/internal/domain"
)

var kochi = domain.Coordinates{Lat: 10.5276, Lon: 76.2144}

func dest(tags string, lat, lon float64) domain.CandidateDestination {
	return domain.CandidateDestination{
		ID:          "x",
		Name:        "x",
		Tags:        tags,
		Coordinates: &domain.Coordinates{Lat: lat, Lon: lon},
	}
}

func quietRelaxedNearby() domain.PreferenceProfile {
	return domain.PreferenceProfile{
		Crowd:             domain.CrowdQuiet,
		Activity:          domain.ActivityRelaxed,
		Distance:          domain.DistanceNearby,
		NatureLover:       true,
		CultureEnthusiast: true,
	}
}

func TestScorePeriyarForQuietNatureLover(t *testing.T) {
	// About 144 km from Kochi: 50 - 10 (distance) + 15 (quiet) + 15 (nature).
	periyar := dest("natural,park,nature,wildlife", 9.3723, 76.8148)
	if got := Score(periyar, quietRelaxedNearby(), &kochi); got != 70 {
		t.Fatalf("periyar score = %d, want 70", got)
	}
}

func TestScoreFishingNetsForQuietNatureLover(t *testing.T) {
	// Only the first culture rule fires. The nets are about 62 km from
	// Kochi, so the nearby rule gives +10: 50 + 10 + 15.
	nets := dest("historic,cultural,monument,landmark", 9.9673, 76.2411)
	if got := Score(nets, quietRelaxedNearby(), &kochi); got != 75 {
		t.Fatalf("fishing nets score = %d, want 75", got)
	}

	// From a requester more than 100 km away the nearby rule gives -10.
	far := domain.Coordinates{Lat: 11.2588, Lon: 75.7804}
	if got := Score(nets, quietRelaxedNearby(), &far); got != 55 {
		t.Fatalf("fishing nets score from far requester = %d, want 55", got)
	}
}

func TestScoreWithoutRequesterSkipsDistance(t *testing.T) {
	profile := domain.DefaultProfile()
	profile.NatureLover = false
	profile.CultureEnthusiast = false

	d := dest("natural", 0, 0)
	if got := Score(d, profile, nil); got != 50 {
		t.Fatalf("score = %d, want 50", got)
	}
}

func TestScoreMissingCoordinatesTreatedAsZeroDistance(t *testing.T) {
	profile := domain.PreferenceProfile{
		Crowd:    domain.CrowdModerate,
		Activity: domain.ActivityBalanced,
		Distance: domain.DistanceNearby,
	}

	d := domain.CandidateDestination{ID: "x", Name: "x", Tags: ""}
	if got := Score(d, profile, &kochi); got != 70 {
		t.Fatalf("score = %d, want 70", got)
	}
}

func TestScoreCrowdFirstMatchOnly(t *testing.T) {
	profile := domain.PreferenceProfile{
		Crowd:    domain.CrowdQuiet,
		Activity: domain.ActivityBalanced,
		Distance: domain.DistanceModerate,
	}

	// "park" (+15) matches before "market" (-15); only the first counts.
	d := dest("park,market", 0, 0)
	if got := Score(d, profile, nil); got != 65 {
		t.Fatalf("score = %d, want 65", got)
	}
}

func TestScoreActivityFirstMatchOnly(t *testing.T) {
	profile := domain.PreferenceProfile{
		Crowd:    domain.CrowdModerate,
		Activity: domain.ActivityAdventurous,
		Distance: domain.DistanceModerate,
	}

	// "trail" (+15) wins over "spa" (-5).
	d := dest("trail,spa", 0, 0)
	if got := Score(d, profile, nil); got != 65 {
		t.Fatalf("score = %d, want 65", got)
	}
}

func TestScoreCultureRulesAreIndependent(t *testing.T) {
	profile := domain.PreferenceProfile{
		Crowd:             domain.CrowdModerate,
		Activity:          domain.ActivityBalanced,
		Distance:          domain.DistanceModerate,
		CultureEnthusiast: true,
	}

	// museum (+15) and heritage (+10) both apply.
	d := dest("museum,heritage", 0, 0)
	if got := Score(d, profile, nil); got != 75 {
		t.Fatalf("score = %d, want 75", got)
	}
}

func TestScoreBudget(t *testing.T) {
	profile := domain.PreferenceProfile{
		Crowd:           domain.CrowdModerate,
		Activity:        domain.ActivityBalanced,
		Distance:        domain.DistanceModerate,
		BudgetConscious: true,
	}

	if got := Score(dest("luxury,resort", 0, 0), profile, nil); got != 40 {
		t.Fatalf("resort score = %d, want 40", got)
	}
	if got := Score(dest("garden,spa", 0, 0), profile, nil); got != 50 {
		t.Fatalf("garden spa score = %d, want 50", got)
	}
}

func TestScoreClampsHigh(t *testing.T) {
	profile := domain.PreferenceProfile{
		Crowd:             domain.CrowdQuiet,
		Activity:          domain.ActivityRelaxed,
		Distance:          domain.DistanceNearby,
		BudgetConscious:   true,
		NatureLover:       true,
		CultureEnthusiast: true,
	}

	// 50 + 20 + 15 + 15 + 15 + 15 + 10 + 10 = 150 before clamping.
	d := dest("natural,beach,museum,art,park", kochi.Lat, kochi.Lon)
	if got := Score(d, profile, &kochi); got != 100 {
		t.Fatalf("score = %d, want 100", got)
	}
}

func TestScoreLowestCombination(t *testing.T) {
	profile := domain.PreferenceProfile{
		Crowd:           domain.CrowdQuiet,
		Activity:        domain.ActivityRelaxed,
		Distance:        domain.DistanceNearby,
		BudgetConscious: true,
	}

	// Every penalty at once: 50 - 10 - 15 - 10 - 10.
	d := dest("stadium,sport,luxury", 20, 90)
	if got := Score(d, profile, &kochi); got != 5 {
		t.Fatalf("score = %d, want 5", got)
	}
}

func TestClampScore(t *testing.T) {
	tests := map[int]int{-20: 0, 0: 0, 55: 55, 100: 100, 150: 100}
	for in, want := range tests {
		if got := clampScore(in); got != want {
			t.Errorf("clampScore(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestScoreTagsCaseInsensitive(t *testing.T) {
	profile := domain.PreferenceProfile{
		Crowd:       domain.CrowdModerate,
		Activity:    domain.ActivityBalanced,
		Distance:    domain.DistanceModerate,
		NatureLover: true,
	}

	if got := Score(dest("NATURAL,Park", 0, 0), profile, nil); got != 65 {
		t.Fatalf("score = %d, want 65", got)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	profile := domain.DefaultProfile()
	d := dest("historic,cultural,market", 9.96, 76.26)

	first := Score(d, profile, &kochi)
	for i := 0; i < 10; i++ {
		if got := Score(d, profile, &kochi); got != first {
			t.Fatalf("score changed from %d to %d", first, got)
		}
	}
}

func TestScoreNatureLoverNeverLowers(t *testing.T) {
	base := domain.PreferenceProfile{
		Crowd:    domain.CrowdLively,
		Activity: domain.ActivityAdventurous,
		Distance: domain.DistanceFar,
	}
	withNature := base
	withNature.NatureLover = true

	for _, tags := range []string{"natural", "lake,spa", "museum", "", "mall,river"} {
		d := dest(tags, 9.5, 76.5)
		if Score(d, withNature, &kochi) < Score(d, base, &kochi) {
			t.Fatalf("enabling nature lowered score for %q", tags)
		}
	}
}

func TestDistanceDelta(t *testing.T) {
	tests := []struct {
		pref domain.DistancePreference
		km   float64
		want int
	}{
		{domain.DistanceNearby, 0, 20},
		{domain.DistanceNearby, 49.9, 20},
		{domain.DistanceNearby, 50, 10},
		{domain.DistanceNearby, 99.9, 10},
		{domain.DistanceNearby, 100, -10},
		{domain.DistanceModerate, 49.9, 5},
		{domain.DistanceModerate, 50, 20},
		{domain.DistanceModerate, 200, 20},
		{domain.DistanceModerate, 200.1, 5},
		{domain.DistanceFar, 100, -5},
		{domain.DistanceFar, 100.1, 10},
		{domain.DistanceFar, 200, 10},
		{domain.DistanceFar, 200.1, 20},
	}

	for _, tt := range tests {
		if got := distanceDelta(tt.pref, tt.km); got != tt.want {
			t.Errorf("distanceDelta(%s, %v) = %d, want %d", tt.pref, tt.km, got, tt.want)
		}
	}
}

func allProfiles() []domain.PreferenceProfile {
	var out []domain.PreferenceProfile
	bools := []bool{false, true}
	for _, c := range []domain.CrowdPreference{domain.CrowdQuiet, domain.CrowdModerate, domain.CrowdLively} {
		for _, a := range []domain.ActivityLevel{domain.ActivityRelaxed, domain.ActivityBalanced, domain.ActivityAdventurous} {
			for _, d := range []domain.DistancePreference{domain.DistanceNearby, domain.DistanceModerate, domain.DistanceFar} {
				for _, nature := range bools {
					for _, culture := range bools {
						for _, budget := range bools {
							out = append(out, domain.PreferenceProfile{
								Crowd:             c,
								Activity:          a,
								Distance:          d,
								NatureLover:       nature,
								CultureEnthusiast: culture,
								BudgetConscious:   budget,
							})
						}
					}
				}
			}
		}
	}
	return out
}

func TestScoreStaysInRangeForEveryProfile(t *testing.T) {
	tags := []string{
		"",
		"natural,park,beach,forest,mountain,lake,river,garden",
		"museum,gallery,historic,cultural,architecture,monument,theatre,art,heritage",
		"mall,stadium,festival,market,luxury,resort,spa,isolated,remote,wilderness",
		"hiking,climbing,sport,adventure,trail,water_park,zoo,amusement,lounge",
		"restaurant,cafe,nightlife,shopping,entertainment",
	}
	far := domain.Coordinates{Lat: 28.6139, Lon: 77.2090}
	requesters := []*domain.Coordinates{nil, &kochi, &far}

	profiles := allProfiles()
	if len(profiles) != 216 {
		t.Fatalf("profiles = %d, want 216", len(profiles))
	}

	for _, tg := range tags {
		d := dest(tg, 9.9673, 76.2411)
		for _, p := range profiles {
			for _, req := range requesters {
				if got := Score(d, p, req); got < 0 || got > 100 {
					t.Fatalf("Score(%q, %+v) = %d, want within [0, 100]", tg, p, got)
				}
			}
		}
	}
}

func TestScoreQuietTagsFavorQuietCrowd(t *testing.T) {
	for _, tg := range []string{"natural,park", "library", "forest"} {
		d := dest(tg, 9.9673, 76.2411)
		for _, p := range allProfiles() {
			if p.Crowd != domain.CrowdQuiet {
				continue
			}
			lively := p
			lively.Crowd = domain.CrowdLively

			for _, req := range []*domain.Coordinates{nil, &kochi} {
				q, l := Score(d, p, req), Score(d, lively, req)
				if q <= l {
					t.Fatalf("tags %q profile %+v: quiet score %d, lively score %d, want quiet higher", tg, p, q, l)
				}
			}
		}
	}
}
