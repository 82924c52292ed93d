package app

import (
	"fmt"
	"strings"
)

// SystemPrompt is the fixed assistant persona. Creator context from
// GenerateCreatorContext is appended to it per request.
const SystemPrompt = `You are "Influencer Assistant", a personal short-form content strategist.
Your personality is direct, no filler, with a "System > Inspiration" attitude.

BASE KNOWLEDGE:
- Reel templates built on a 5-shot structure
- Instagram best practices 2024-2025
- 30-day content calendars
- Methodologies: serialization, open-letter storytelling, document-don't-create

MANDATORY ELEMENTS IN EVERY REEL:
1. Powerful hook (0-2 seconds)
2. At least 2 of the creator's visual symbols
3. On-video text: bold, white, black shadow, max 2 lines
4. Emotional CTA at the end
5. 5-shot structure with exact timings

HOOKS THAT WORK:
- Curiosity: "Nobody tells you this about [topic]..."
- Challenge: "[Popular belief] is a lie. Here is the truth:"
- Identification: "POV: You are [description]"
- Niche: "At 5AM while the world sleeps, I..."

TONE:
- Direct, no detours
- Confident but with substance
- Vulnerable when it matters
- Always real value

Generate content that is ready to use.`

// ScriptOptions are the per-send quick options merged into the prompt text.
// Each field is optional and reset after every send.
type ScriptOptions struct {
	Goal     string
	Tone     string
	Duration string
}

func (o ScriptOptions) empty() bool {
	return o.Goal == "" && o.Tone == "" && o.Duration == ""
}

// Apply appends the selected quick options to an already-formatted prompt.
func (o ScriptOptions) Apply(prompt string) string {
	if o.empty() {
		return prompt
	}
	var lines []string
	lines = append(lines, prompt, "", "Additional requirements:")
	if o.Goal != "" {
		lines = append(lines, "- Goal: "+GoalLabel(o.Goal))
	}
	if o.Tone != "" {
		lines = append(lines, "- Tone: "+o.Tone)
	}
	if o.Duration != "" {
		lines = append(lines, "- Target duration: "+o.Duration)
	}
	return strings.Join(lines, "\n")
}

// ReelTemplatePrompt wraps a raw idea into the fixed five-shot script
// skeleton the model is instructed to fill in. templateType is included only
// when present; there is no other conditional logic.
func ReelTemplatePrompt(idea, templateType string) string {
	styleLine := ""
	if templateType != "" {
		styleLine = fmt.Sprintf("Use the template style: %s\n", templateType)
	}

	return fmt.Sprintf(`Generate a complete reel script based on this idea: %q
%s
Use the following format:

🎬 REEL: [Catchy title]

📋 INFO:
- Duration: [30-60 seconds]
- Type: [Tip/Process/Storytelling/Motivational/Educational]
- Symbols: [Which visual symbols to use]

🎬 SHOTS:

**SHOT 1 [0-2s] - HOOK**
- Visual: [Detailed description]
- Text: [Max 2 lines, bold]
- Audio: [Exact voiceover]

**SHOT 2 [2-8s] - CONTEXT**
- Visual: [Detailed description]
- Text: [Max 2 lines]
- Audio: [Exact voiceover]

**SHOT 3 [8-20s] - CONTENT**
- Visual: [Detailed description]
- Text: [Max 2 lines]
- Audio: [Exact voiceover]

**SHOT 4 [20-30s] - CLIMAX**
- Visual: [Detailed description]
- Text: [Max 2 lines]
- Audio: [Exact voiceover]

**SHOT 5 [30-40s] - CTA**
- Visual: [Detailed description]
- Text: [Max 2 lines]
- Audio: [Exact voiceover]
- CTA: [Emotional call to action]

📝 CAPTION:
[Philosophical hook that pulls the reader in]

[2-3 lines of value that complement the video]

[CTA with an engagement keyword]

#GetMyBrief #5AM #ExecutiveCreator #Productivity #Content

---

Generate the full content now. Make it memorable.`, idea, styleLine)
}

// QuickPrompt is a one-tap starter surfaced by the chat input.
type QuickPrompt struct {
	Label  string
	Prompt string
}

var QuickPrompts = []QuickPrompt{
	{Label: "🎯 Reel hook", Prompt: "Give me 5 powerful hooks for a reel about morning productivity"},
	{Label: "📝 Viral caption", Prompt: "Write a viral caption for a motivational reel"},
	{Label: "💡 Content ideas", Prompt: "Give me 5 reel ideas for this week about personal growth"},
	{Label: "🎬 Full script", Prompt: "Create a reel script about the 5AM routine"},
}

// CTASuggestions are ready-made emotional closers. The chat view cycles them
// into the call-to-action slot of the active brief.
var CTASuggestions = []string{
	"If this helped you, stick around. I am documenting everything.",
	"Save this. You will need to reread it when you doubt yourself.",
	"This is not for everyone. If you made it this far, you are probably one of us.",
	"Follow for the system, stay for the results.",
}
