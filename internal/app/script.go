package app

import (
	"fmt"
	"regexp"
	"strings"
)

// SectionType is the closed set of structural section kinds a generated
// script can decompose into.
type SectionType int

const (
	SectionHook SectionType = iota
	SectionContext
	SectionContent
	SectionClimax
	SectionCTA
	SectionCaption
	SectionInfo
)

func (t SectionType) String() string {
	switch t {
	case SectionHook:
		return "hook"
	case SectionContext:
		return "context"
	case SectionContent:
		return "content"
	case SectionClimax:
		return "climax"
	case SectionCTA:
		return "cta"
	case SectionCaption:
		return "caption"
	case SectionInfo:
		return "info"
	}
	return "content"
}

// ParseSectionType maps a shot label to its section type. Unrecognized
// labels fall back to SectionContent rather than failing.
func ParseSectionType(label string) SectionType {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "hook":
		return SectionHook
	case "context":
		return SectionContext
	case "content":
		return SectionContent
	case "climax":
		return SectionClimax
	case "cta":
		return SectionCTA
	case "caption":
		return SectionCaption
	case "info":
		return SectionInfo
	}
	return SectionContent
}

// ScriptSection is a derived, read-only view over one block of a completed
// assistant message. Raw always retains the source text; the labeled
// sub-fields are best-effort extractions.
type ScriptSection struct {
	ID     string
	Type   SectionType
	Title  string
	Timing string
	Visual string
	Text   string
	Audio  string
	Raw    string
}

var (
	shotHeaderRe  = regexp.MustCompile(`(?i)\*\*SHOT\s*(\d+)\s*\[([^\]]+)\]\s*-\s*([A-Z]+)\*\*`)
	captionMarkRe = regexp.MustCompile(`(?i)(?:\*\*📝|📝\s*CAPTION)`)
	visualRe      = regexp.MustCompile(`(?i)Visual:\s*([^\n]+)`)
	textRe        = regexp.MustCompile(`(?i)Text:\s*([^\n]+)`)
	audioRe       = regexp.MustCompile(`(?i)Audio:\s*([^\n]+)`)
	captionRe     = regexp.MustCompile(`(?i)📝\s*CAPTION:?\s*([\s\S]*?)(?:---|$)`)
	infoRe        = regexp.MustCompile(`(?i)📋\s*INFO:?\s*([\s\S]*?)(?:🎬\s*SHOTS|$)`)
)

// IsStructuredScript is a fast pre-check for the structured five-shot
// pattern. It triggers on banner tokens alone, so a true result does not
// guarantee ParseSections finds any shots.
func IsStructuredScript(text string) bool {
	return strings.Contains(text, "**SHOT") ||
		strings.Contains(text, "🎬 REEL") ||
		strings.Contains(text, "📋 INFO")
}

// ParseSections decomposes a completed script into typed sections. Absence
// of shot markers yields an empty result, never an error. Parsing is a pure
// function of the text; the raw content is always preserved per section.
func ParseSections(text string) []ScriptSection {
	var sections []ScriptSection

	headers := shotHeaderRe.FindAllStringSubmatchIndex(text, -1)
	for i, h := range headers {
		shotNum := text[h[2]:h[3]]
		timing := text[h[4]:h[5]]
		label := text[h[6]:h[7]]

		// Body runs from the end of this header to the next header, the
		// caption marker, or end of text, whichever comes first.
		end := len(text)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		body := text[h[1]:end]
		if loc := captionMarkRe.FindStringIndex(body); loc != nil {
			body = body[:loc[0]]
		}

		section := ScriptSection{
			ID:     "shot-" + shotNum,
			Type:   ParseSectionType(label),
			Title:  fmt.Sprintf("Shot %s - %s", shotNum, label),
			Timing: timing,
			Raw:    strings.TrimSpace(body),
		}
		if sub := visualRe.FindStringSubmatch(body); sub != nil {
			section.Visual = strings.TrimSpace(sub[1])
		}
		if sub := textRe.FindStringSubmatch(body); sub != nil {
			section.Text = strings.TrimSpace(sub[1])
		}
		if sub := audioRe.FindStringSubmatch(body); sub != nil {
			section.Audio = strings.TrimSpace(sub[1])
		}
		sections = append(sections, section)
	}

	// Without at least one shot the text is treated as unstructured, even if
	// banner tokens are present.
	if len(sections) == 0 {
		return nil
	}

	if m := captionRe.FindStringSubmatch(text); m != nil {
		sections = append(sections, ScriptSection{
			ID:    "caption",
			Type:  SectionCaption,
			Title: "Caption",
			Raw:   strings.TrimSpace(m[1]),
		})
	}

	if m := infoRe.FindStringSubmatch(text); m != nil {
		info := ScriptSection{
			ID:    "info",
			Type:  SectionInfo,
			Title: "Info",
			Raw:   strings.TrimSpace(m[1]),
		}
		sections = append([]ScriptSection{info}, sections...)
	}

	return sections
}
