package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"getmybrief/internal/app"
	"getmybrief/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

func loadConfig() (app.Config, error) {
	cfg, err := app.LoadConfig(app.DefaultConfigPath())
	if err != nil {
		return cfg, err
	}
	if cfg.DeepSeekAPIKey == "" {
		cfg.DeepSeekAPIKey = os.Getenv("DEEPSEEK_API_KEY")
	}
	return cfg, nil
}

func buildGenerator(cfg app.Config) (*app.Generator, error) {
	dataDir := app.DefaultDataDir()
	chat, err := app.NewChatStore(filepath.Join(dataDir, "chat.json"))
	if err != nil {
		return nil, fmt.Errorf("open conversation log: %w", err)
	}
	profiles, err := app.NewProfileStore(filepath.Join(dataDir, "profile.json"))
	if err != nil {
		return nil, fmt.Errorf("open creator profile: %w", err)
	}
	return &app.Generator{
		Client:   app.NewDeepSeekClient(cfg.DeepSeekAPIKey, cfg.Model, cfg.BaseURL, cfg.MaxTokens),
		Chat:     chat,
		Profiles: profiles,
		Template: cfg.DefaultTemplate,
		Log:      app.NewLogger(dataDir),
	}, nil
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-key [key]",
		Short: "Check a DeepSeek API key against the live endpoint",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			key := cfg.DeepSeekAPIKey
			if len(args) == 1 {
				key = args[0]
			}
			client := app.NewDeepSeekClient(key, cfg.Model, cfg.BaseURL, cfg.MaxTokens)
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			if client.ValidateKey(ctx, key) {
				fmt.Println("API key is valid.")
				return nil
			}
			fmt.Println("API key was rejected.")
			os.Exit(1)
			return nil
		},
	}
}

func newProfileCmd() *cobra.Command {
	var niche, voice, audience, angle string
	cmd := &cobra.Command{
		Use:   "profile [name]",
		Short: "Show or update the creator profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.NewProfileStore(filepath.Join(app.DefaultDataDir(), "profile.json"))
			if err != nil {
				return err
			}
			p := store.Profile()
			if len(args) == 0 && niche == "" && voice == "" && audience == "" && angle == "" {
				fmt.Printf("Name:            %s\n", p.Name)
				fmt.Printf("Niche:           %s\n", p.Niche)
				fmt.Printf("Voice:           %s\n", p.Voice)
				fmt.Printf("Target audience: %s\n", p.TargetAudience)
				fmt.Printf("Unique angle:    %s\n", p.UniqueAngle)
				fmt.Printf("Symbols:         %s\n", strings.Join(p.Symbols, ", "))
				fmt.Printf("Complete:        %v\n", p.Complete())
				return nil
			}
			if len(args) == 1 {
				p.Name = args[0]
			}
			if niche != "" {
				p.Niche = niche
			}
			if voice != "" {
				p.Voice = voice
			}
			if audience != "" {
				p.TargetAudience = audience
			}
			if angle != "" {
				p.UniqueAngle = angle
			}
			if err := store.SetProfile(p); err != nil {
				return err
			}
			fmt.Printf("Profile saved (complete: %v).\n", p.Complete())
			return nil
		},
	}
	cmd.Flags().StringVar(&niche, "niche", "", "content niche")
	cmd.Flags().StringVar(&voice, "voice", "", "voice/tone descriptor")
	cmd.Flags().StringVar(&audience, "audience", "", "target audience")
	cmd.Flags().StringVar(&angle, "angle", "", "unique angle")
	return cmd
}

func newGenerateCmd() *cobra.Command {
	var goal, tone, duration string
	var emotion, cta, briefContext string
	cmd := &cobra.Command{
		Use:   "generate <idea>",
		Short: "Generate one script without the TUI and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			gen, err := buildGenerator(cfg)
			if err != nil {
				return err
			}
			if goal != "" || emotion != "" || cta != "" || briefContext != "" {
				gen.Profiles.SetBrief(app.ReelBrief{
					Topic:             args[0],
					Goal:              goal,
					Emotion:           emotion,
					CallToAction:      cta,
					AdditionalContext: briefContext,
				})
			}
			opts := app.ScriptOptions{Goal: goal, Tone: tone, Duration: duration}
			if err := gen.Send(cmd.Context(), args[0], opts, nil); err != nil {
				return err
			}
			if last, ok := gen.Chat.Last(); ok {
				fmt.Println(last.Content)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&goal, "goal", "", "goal: educate|inspire|entertain|sell")
	cmd.Flags().StringVar(&tone, "tone", "", "tone override")
	cmd.Flags().StringVar(&duration, "duration", "", "target duration")
	cmd.Flags().StringVar(&emotion, "emotion", "", "emotion the script should land")
	cmd.Flags().StringVar(&cta, "cta", "", "call to action to close with")
	cmd.Flags().StringVar(&briefContext, "context", "", "extra context for this script")
	return cmd
}

func main() {
	root := &cobra.Command{
		Use:     "gmb",
		Short:   "GetMyBrief - AI reel script assistant",
		Long:    "GetMyBrief turns a short topic prompt into a structured 5-shot reel script.\n\nRun without arguments for the interactive chat.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			gen, err := buildGenerator(cfg)
			if err != nil {
				return err
			}
			exporter := app.NewDocsExporter(gen.Log)
			p := tea.NewProgram(tui.New(gen, exporter, cfg), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	root.AddCommand(newValidateCmd(), newProfileCmd(), newGenerateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
