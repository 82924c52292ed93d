package app

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateCreatorContextEmptyWithoutName(t *testing.T) {
	brief := &ReelBrief{Topic: "morning routine", Goal: "educate", Emotion: "urgency"}
	profiles := []CreatorProfile{
		{},
		{Niche: "productivity", Voice: "direct", TargetAudience: "founders"},
		DefaultProfile(),
	}
	for i, p := range profiles {
		if got := GenerateCreatorContext(p, brief); got != "" {
			t.Fatalf("profile %d: context = %q, want empty", i, got)
		}
	}
}

func TestGenerateCreatorContextIncludesNonEmptyFieldsOnce(t *testing.T) {
	p := CreatorProfile{
		Name:           "Ana",
		Niche:          "productivity",
		Voice:          "direct",
		TargetAudience: "founders",
		Symbols:        []string{"coffee", "notebook"},
	}
	got := GenerateCreatorContext(p, nil)

	for _, want := range []string{"Ana", "productivity", "direct", "founders", "coffee, notebook"} {
		if strings.Count(got, want) != 1 {
			t.Fatalf("field %q appears %d times in %q", want, strings.Count(got, want), got)
		}
	}
	for _, absent := range []string{"Unique angle", "Hashtags", "REEL BRIEF"} {
		if strings.Contains(got, absent) {
			t.Fatalf("context should omit %q: %q", absent, got)
		}
	}
}

func TestGenerateCreatorContextWithBrief(t *testing.T) {
	p := CreatorProfile{Name: "Ana", Niche: "productivity", Voice: "direct", TargetAudience: "founders"}
	brief := &ReelBrief{
		Topic:        "5AM routine",
		Goal:         "inspire",
		CallToAction: "follow for more",
	}
	got := GenerateCreatorContext(p, brief)

	if !strings.Contains(got, "## REEL BRIEF") {
		t.Fatalf("missing brief header: %q", got)
	}
	if !strings.Contains(got, "- **Objective**: Inspire") {
		t.Fatalf("goal label not rendered: %q", got)
	}
	if strings.Contains(got, "Emotion to generate") {
		t.Fatalf("empty brief field should be omitted: %q", got)
	}
	// Profile precedes brief with a blank separator.
	if strings.Index(got, "CREATOR PROFILE") > strings.Index(got, "REEL BRIEF") {
		t.Fatalf("profile must come first: %q", got)
	}
	if !strings.Contains(got, "\n\n## REEL BRIEF") {
		t.Fatalf("missing blank separator before brief: %q", got)
	}
}

func TestProfileComplete(t *testing.T) {
	cases := []struct {
		name string
		p    CreatorProfile
		want bool
	}{
		{"empty", CreatorProfile{}, false},
		{"partial", CreatorProfile{Name: "Ana", Niche: "x"}, false},
		{"required set", CreatorProfile{Name: "Ana", Niche: "x", Voice: "y", TargetAudience: "z"}, true},
	}
	for _, tc := range cases {
		if got := tc.p.Complete(); got != tc.want {
			t.Fatalf("%s: Complete = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestProfileStorePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")

	store, err := NewProfileStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if store.Profile().Name != "" {
		t.Fatalf("fresh store should start with default profile")
	}

	want := CreatorProfile{Name: "Ana", Niche: "productivity", Voice: "direct", TargetAudience: "founders"}
	if err := store.SetProfile(want); err != nil {
		t.Fatalf("set profile: %v", err)
	}

	reloaded, err := NewProfileStore(path)
	if err != nil {
		t.Fatalf("reload store: %v", err)
	}
	if reloaded.Profile().Name != "Ana" {
		t.Fatalf("reloaded name = %q", reloaded.Profile().Name)
	}
}

func TestBriefIsSessionScoped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	store, err := NewProfileStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	store.SetBrief(ReelBrief{Topic: "one time"})
	if store.Brief() == nil {
		t.Fatalf("brief should be active")
	}
	if err := store.SetProfile(CreatorProfile{Name: "Ana"}); err != nil {
		t.Fatalf("set profile: %v", err)
	}

	reloaded, err := NewProfileStore(path)
	if err != nil {
		t.Fatalf("reload store: %v", err)
	}
	if reloaded.Brief() != nil {
		t.Fatalf("brief must never survive a restart")
	}

	store.ClearBrief()
	if store.Brief() != nil {
		t.Fatalf("brief should be cleared")
	}
}
