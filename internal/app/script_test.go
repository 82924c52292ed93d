package app

import (
	"reflect"
	"testing"
)

const sampleScript = "🎬 REEL: Wake Up First\n\n" +
	"📋 INFO:\n- Duration: 35 seconds\n- Type: Motivational\n- Symbols: 5AM clock, coffee\n\n" +
	"🎬 SHOTS:\n\n" +
	"**SHOT 1 [0-2s] - HOOK**\n- Visual: x\n- Text: y\n- Audio: z\n\n" +
	"**SHOT 2 [2-8s] - CONTEXT**\n- Visual: desk pan\n- Text: still dark outside\n- Audio: calm voice\n\n" +
	"📝 CAPTION:\nThe world rewards those who show up early.\n\n---\n"

func TestIsStructuredScript(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"empty", "", false},
		{"plain chat answer", "Here are five hook ideas for you.", false},
		{"shot marker", "**SHOT 1 [0-2s] - HOOK**", true},
		{"reel banner", "🎬 REEL: Title", true},
		{"info banner only", "📋 INFO:\n- Duration: 30s", true},
	}
	for _, tc := range cases {
		if got := IsStructuredScript(tc.in); got != tc.want {
			t.Fatalf("%s: IsStructuredScript = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestParseSectionsEmptyWithoutShots(t *testing.T) {
	// Banner tokens alone trip the pre-check but yield no sections.
	in := "📋 INFO:\n- Duration: 30 seconds\n"
	if !IsStructuredScript(in) {
		t.Fatalf("expected pre-check to trigger on info banner")
	}
	if got := ParseSections(in); len(got) != 0 {
		t.Fatalf("ParseSections = %d sections, want 0", len(got))
	}
}

func TestParseSectionsSingleHook(t *testing.T) {
	in := "**SHOT 1 [0-2s] - HOOK**\n- Visual: x\n- Text: y\n- Audio: z\n"
	got := ParseSections(in)
	if len(got) != 1 {
		t.Fatalf("got %d sections, want 1", len(got))
	}
	s := got[0]
	if s.Type != SectionHook {
		t.Fatalf("type = %v, want hook", s.Type)
	}
	if s.Visual != "x" || s.Text != "y" || s.Audio != "z" {
		t.Fatalf("sub-fields = %q/%q/%q, want x/y/z", s.Visual, s.Text, s.Audio)
	}
	if s.Timing != "0-2s" {
		t.Fatalf("timing = %q", s.Timing)
	}
}

func TestParseSectionsFullScript(t *testing.T) {
	got := ParseSections(sampleScript)
	if len(got) != 4 {
		t.Fatalf("got %d sections, want 4 (info + 2 shots + caption)", len(got))
	}
	if got[0].Type != SectionInfo {
		t.Fatalf("first section = %v, want info", got[0].Type)
	}
	if got[1].Type != SectionHook || got[2].Type != SectionContext {
		t.Fatalf("shot types = %v, %v", got[1].Type, got[2].Type)
	}
	if got[3].Type != SectionCaption {
		t.Fatalf("last section = %v, want caption", got[3].Type)
	}
	if got[3].Raw != "The world rewards those who show up early." {
		t.Fatalf("caption raw = %q", got[3].Raw)
	}
	// The caption marker bounds the previous shot body.
	if sub := got[2].Raw; len(sub) == 0 || sub[0] != '-' {
		t.Fatalf("context shot raw looks wrong: %q", sub)
	}
}

func TestParseSectionsUnknownLabelFallsBack(t *testing.T) {
	in := "**SHOT 1 [0-2s] - FINALE**\n- Visual: closing\n"
	got := ParseSections(in)
	if len(got) != 1 {
		t.Fatalf("got %d sections, want 1", len(got))
	}
	if got[0].Type != SectionContent {
		t.Fatalf("type = %v, want content fallback", got[0].Type)
	}
	if got[0].Title != "Shot 1 - FINALE" {
		t.Fatalf("title = %q", got[0].Title)
	}
}

func TestParseSectionsIdempotent(t *testing.T) {
	first := ParseSections(sampleScript)
	second := ParseSections(sampleScript)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("ParseSections is not idempotent")
	}
}

func TestParseSectionTypeRoundTrip(t *testing.T) {
	for _, typ := range []SectionType{
		SectionHook, SectionContext, SectionContent, SectionClimax,
		SectionCTA, SectionCaption, SectionInfo,
	} {
		if got := ParseSectionType(typ.String()); got != typ {
			t.Fatalf("ParseSectionType(%q) = %v, want %v", typ.String(), got, typ)
		}
	}
	if got := ParseSectionType("whatever"); got != SectionContent {
		t.Fatalf("unknown label = %v, want content", got)
	}
}
