package app

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// CreatorProfile holds the long-lived identity fields mixed into every
// generation request.
type CreatorProfile struct {
	Name           string   `json:"name"`
	Niche          string   `json:"niche"`
	Voice          string   `json:"voice"`
	TargetAudience string   `json:"target_audience"`
	UniqueAngle    string   `json:"unique_angle"`
	Symbols        []string `json:"symbols"`
	Hashtags       []string `json:"hashtags"`
}

// Complete reports whether the four required fields are all set.
func (p CreatorProfile) Complete() bool {
	return p.Name != "" && p.Niche != "" && p.Voice != "" && p.TargetAudience != ""
}

// ReelBrief is a single-use enrichment for one generation request. It is
// never persisted and is cleared after one successful generation.
type ReelBrief struct {
	Topic             string `json:"topic"`
	Goal              string `json:"goal"` // educate|inspire|entertain|sell|""
	Emotion           string `json:"emotion"`
	CallToAction      string `json:"call_to_action"`
	AdditionalContext string `json:"additional_context"`
}

var goalLabels = map[string]string{
	"educate":   "Educate",
	"inspire":   "Inspire",
	"entertain": "Entertain",
	"sell":      "Sell",
}

// GoalLabel maps a brief goal to its human-readable label, passing unknown
// values through unchanged.
func GoalLabel(goal string) string {
	if label, ok := goalLabels[goal]; ok {
		return label
	}
	return goal
}

func DefaultProfile() CreatorProfile {
	return CreatorProfile{
		Symbols:  []string{"5AM clock", "coffee", "notebook"},
		Hashtags: []string{"#GetMyBrief", "#ExecutiveCreator"},
	}
}

type profileFile struct {
	Profile  CreatorProfile `json:"profile"`
	Complete bool           `json:"complete"`
}

// ProfileStore persists the creator profile and holds the session-scoped
// active brief. Safe for concurrent use: the stream goroutine reads while
// the UI goroutine edits.
type ProfileStore struct {
	mu      sync.RWMutex
	path    string
	profile CreatorProfile
	brief   *ReelBrief
}

func NewProfileStore(path string) (*ProfileStore, error) {
	s := &ProfileStore{path: path, profile: DefaultProfile()}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	var pf profileFile
	if err := json.Unmarshal(data, &pf); err == nil {
		s.profile = pf.Profile
	}
	return s, nil
}

func (s *ProfileStore) Profile() CreatorProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// SetProfile overwrites the stored profile and persists it together with the
// recomputed complete flag.
func (s *ProfileStore) SetProfile(profile CreatorProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = profile
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(profileFile{Profile: profile, Complete: profile.Complete()}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Brief returns a copy of the active brief, or nil when none is set.
func (s *ProfileStore) Brief() *ReelBrief {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.brief == nil {
		return nil
	}
	brief := *s.brief
	return &brief
}

func (s *ProfileStore) SetBrief(brief ReelBrief) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brief = &brief
}

func (s *ProfileStore) ClearBrief() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brief = nil
}

// GenerateCreatorContext renders the profile and optional brief into the
// instruction block appended to the system persona. An unconfigured profile
// (no display name) yields the empty string regardless of the brief.
func GenerateCreatorContext(profile CreatorProfile, brief *ReelBrief) string {
	var parts []string

	if profile.Name != "" {
		parts = append(parts, "## CREATOR PROFILE")
		parts = append(parts, "- **Name**: "+profile.Name)
		if profile.Niche != "" {
			parts = append(parts, "- **Niche**: "+profile.Niche)
		}
		if profile.Voice != "" {
			parts = append(parts, "- **Voice/Tone**: "+profile.Voice)
		}
		if profile.TargetAudience != "" {
			parts = append(parts, "- **Target audience**: "+profile.TargetAudience)
		}
		if profile.UniqueAngle != "" {
			parts = append(parts, "- **Unique angle**: "+profile.UniqueAngle)
		}
		if len(profile.Symbols) > 0 {
			parts = append(parts, "- **Visual symbols**: "+strings.Join(profile.Symbols, ", "))
		}
		if len(profile.Hashtags) > 0 {
			parts = append(parts, "- **Hashtags**: "+strings.Join(profile.Hashtags, " "))
		}
	} else {
		return ""
	}

	if brief != nil {
		parts = append(parts, "")
		parts = append(parts, "## REEL BRIEF")
		if brief.Topic != "" {
			parts = append(parts, "- **Topic**: "+brief.Topic)
		}
		if brief.Goal != "" {
			parts = append(parts, "- **Objective**: "+GoalLabel(brief.Goal))
		}
		if brief.Emotion != "" {
			parts = append(parts, "- **Emotion to generate**: "+brief.Emotion)
		}
		if brief.CallToAction != "" {
			parts = append(parts, "- **Desired CTA**: "+brief.CallToAction)
		}
		if brief.AdditionalContext != "" {
			parts = append(parts, "- **Additional context**: "+brief.AdditionalContext)
		}
	}

	return strings.Join(parts, "\n")
}
