package app

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// ErrNoAPIKey is returned when generation is attempted without a configured
// credential. The UI turns it into a "configure your key" notice.
var ErrNoAPIKey = errors.New("no DeepSeek API key configured")

// Generator drives one send through the whole pipeline: prompt assembly,
// streaming transport, and incremental merge into the conversation store.
//
// It assumes the single-writer model of the ChatStore: one Send at a time,
// driven from the UI event loop. Callers disable the input surface while
// Streaming() is true.
type Generator struct {
	Client   *DeepSeekClient
	Chat     *ChatStore
	Profiles *ProfileStore
	Template string
	Log      zerolog.Logger
}

// OnFragment is invoked after each fragment has been merged, with the
// accumulated content so far. It lets the UI repaint without owning the merge.
type OnFragment func(accumulated string)

// Send runs one generation request. The user message and the assistant
// placeholder are appended, in that order, before the first fragment is
// pulled; fragments are merged strictly in arrival order. On a transport
// failure the trailing message is mutated to an inline error notice and the
// error is returned; partial content already merged stays in place.
func (g *Generator) Send(ctx context.Context, idea string, opts ScriptOptions, onFragment OnFragment) error {
	if g.Client == nil || g.Client.APIKey == "" {
		return ErrNoAPIKey
	}

	systemPrompt := SystemPrompt
	if ctxBlock := GenerateCreatorContext(g.Profiles.Profile(), g.Profiles.Brief()); ctxBlock != "" {
		systemPrompt = systemPrompt + "\n\n" + ctxBlock
	}
	prompt := opts.Apply(ReelTemplatePrompt(idea, g.Template))

	g.Chat.Append(RoleUser, idea)
	g.Chat.Append(RoleAssistant, "")
	g.Chat.SetStreaming(true)
	defer g.Chat.SetStreaming(false)

	g.Log.Info().Int("prompt_len", len(prompt)).Msg("starting generation")

	stream, err := g.Client.StreamGenerate(ctx, prompt, systemPrompt)
	if err != nil {
		g.failLast(err)
		return err
	}
	defer stream.Close()

	var content strings.Builder
	for {
		fragment, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Keep what already arrived; the partial script is still useful.
			g.failLastPartial(content.String(), err)
			return err
		}
		content.WriteString(fragment)
		g.Chat.MutateLast(content.String())
		if onFragment != nil {
			onFragment(content.String())
		}
	}

	g.Log.Info().Int("content_len", content.Len()).Msg("generation complete")
	// The brief is single-use: consumed by exactly one successful generation.
	g.Profiles.ClearBrief()
	return nil
}

func (g *Generator) failLast(err error) {
	g.Log.Error().Err(err).Msg("generation failed")
	g.Chat.MutateLast("Error: " + err.Error() + ". Check your API key in settings.")
}

func (g *Generator) failLastPartial(partial string, err error) {
	g.Log.Error().Err(err).Int("partial_len", len(partial)).Msg("stream interrupted")
	notice := "\n\n[Generation interrupted: " + err.Error() + "]"
	g.Chat.MutateLast(partial + notice)
}
