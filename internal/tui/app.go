package tui

import (
	"context"
	"strings"
	"time"

	"getmybrief/internal/app"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Model is the chat UI. It only reads snapshots from the stores; all log
// mutation happens inside the Generator on the streaming path.
type Model struct {
	gen      *app.Generator
	chat     *app.ChatStore
	profiles *app.ProfileStore
	exporter *app.DocsExporter
	cfg      app.Config
	theme    Theme

	input    textarea.Model
	viewport viewport.Model
	width    int
	height   int
	ready    bool

	modular    bool
	statusText string
	spinnerPos int
	quickIndex int
	ctaIndex   int

	fragCh chan string
	doneCh chan error
	cancel context.CancelFunc
}

type streamFragMsg struct{}
type streamDoneMsg struct{ err error }
type exportDoneMsg struct {
	docID string
	err   error
}
type spinMsg struct{}

func New(gen *app.Generator, exporter *app.DocsExporter, cfg app.Config) *Model {
	ta := textarea.New()
	ta.Placeholder = "Describe your reel idea... (Enter to send)"
	ta.Focus()
	ta.CharLimit = 4000
	ta.SetWidth(80)
	ta.SetHeight(3)
	ta.Prompt = "▍ "
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle.CursorLine = lipgloss.NewStyle()

	status := "Ready"
	if cfg.DeepSeekAPIKey == "" {
		status = "No API key configured: set deepseek_api_key in " + app.DefaultConfigPath()
	}

	return &Model{
		gen:        gen,
		chat:       gen.Chat,
		profiles:   gen.Profiles,
		exporter:   exporter,
		cfg:        cfg,
		theme:      NewTheme(),
		input:      ta,
		statusText: status,
		modular:    true,
	}
}

func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(msg.Width - 6)
		vpHeight := msg.Height - 9
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			if m.cancel != nil {
				// Cancel keeps the partial content as the final state.
				m.cancel()
			}
			return m, tea.Quit
		case "enter":
			return m, m.onEnter()
		case "ctrl+t":
			m.modular = !m.modular
			m.refresh()
			return m, nil
		case "ctrl+l":
			if !m.chat.Streaming() {
				m.chat.ClearAll()
				m.statusText = "Conversation cleared"
				m.refresh()
			}
			return m, nil
		case "ctrl+p":
			qp := app.QuickPrompts[m.quickIndex%len(app.QuickPrompts)]
			m.quickIndex++
			m.input.SetValue(qp.Prompt)
			return m, nil
		case "ctrl+j":
			m.cycleCTA()
			return m, nil
		case "ctrl+e":
			return m, m.onExport()
		}

	case streamFragMsg:
		m.refresh()
		m.viewport.GotoBottom()
		return m, m.waitStream()

	case streamDoneMsg:
		m.cancel = nil
		m.fragCh = nil
		m.doneCh = nil
		if msg.err != nil {
			m.statusText = "Generation failed: " + msg.err.Error()
		} else {
			m.statusText = "Ready"
		}
		m.refresh()
		m.viewport.GotoBottom()
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.statusText = "Export failed: " + msg.err.Error()
		} else {
			m.statusText = "Exported to Google Docs (" + msg.docID + ")"
		}
		return m, nil

	case spinMsg:
		m.spinnerPos = (m.spinnerPos + 1) % len(spinnerFrames)
		if m.chat.Streaming() {
			return m, m.spinTick()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// onEnter kicks off one generation. Sending is disabled while a stream is in
// flight; one stream at a time.
func (m *Model) onEnter() tea.Cmd {
	if m.chat.Streaming() {
		return nil
	}
	idea := strings.TrimSpace(m.input.Value())
	if idea == "" {
		return nil
	}
	m.input.Reset()
	m.statusText = "Generating…"

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.fragCh = make(chan string, 64)
	m.doneCh = make(chan error, 1)

	go func(idea string, frags chan string, done chan error) {
		err := m.gen.Send(ctx, idea, app.ScriptOptions{}, func(acc string) {
			select {
			case frags <- acc:
			default:
				// Drop repaint hints the UI cannot keep up with; the store
				// already holds the merged content.
			}
		})
		done <- err
		close(frags)
	}(idea, m.fragCh, m.doneCh)

	m.refresh()
	return tea.Batch(m.waitStream(), m.spinTick())
}

func (m *Model) waitStream() tea.Cmd {
	frags := m.fragCh
	done := m.doneCh
	return func() tea.Msg {
		if frags == nil || done == nil {
			return nil
		}
		select {
		case _, ok := <-frags:
			if ok {
				return streamFragMsg{}
			}
			return streamDoneMsg{err: <-done}
		case err := <-done:
			return streamDoneMsg{err: err}
		}
	}
}

func (m *Model) spinTick() tea.Cmd {
	return tea.Tick(90*time.Millisecond, func(time.Time) tea.Msg { return spinMsg{} })
}

// cycleCTA rotates through the ready-made closers and stores the pick as the
// call to action of the active brief, so the next generation weaves it in.
func (m *Model) cycleCTA() {
	cta := app.CTASuggestions[m.ctaIndex%len(app.CTASuggestions)]
	m.ctaIndex++

	brief := app.ReelBrief{}
	if b := m.profiles.Brief(); b != nil {
		brief = *b
	}
	brief.CallToAction = cta
	m.profiles.SetBrief(brief)
	m.statusText = "CTA for next script: " + cta
}

// onExport writes the last completed assistant message to Google Docs.
func (m *Model) onExport() tea.Cmd {
	if m.chat.Streaming() {
		return nil
	}
	last, ok := lastAssistantMessage(m.chat.Messages())
	if !ok {
		m.statusText = "Nothing to export yet"
		return nil
	}
	if m.cfg.GoogleAccessToken == "" {
		m.statusText = "Connect Google in settings to export"
		return nil
	}
	m.statusText = "Exporting…"
	title := exportTitle(last.Content)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		docID, err := m.exporter.ExportScript(ctx, title, last.Content, m.cfg.DriveFolderID, m.cfg.GoogleAccessToken)
		return exportDoneMsg{docID: docID, err: err}
	}
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderMessages())
}

func (m *Model) renderMessages() string {
	msgs := m.chat.Messages()
	if len(msgs) == 0 {
		return m.theme.Status.Render("Start with an idea, or press Ctrl+P for a quick prompt.")
	}

	var blocks []string
	for i, msg := range msgs {
		switch msg.Role {
		case app.RoleUser:
			blocks = append(blocks, m.theme.RoleYou.Render("You")+"\n"+msg.Content)
		case app.RoleAssistant:
			streamingThis := m.chat.Streaming() && i == len(msgs)-1
			blocks = append(blocks, m.theme.RoleAI.Render("Assistant")+"\n"+m.renderAssistant(msg, streamingThis))
		}
	}
	return strings.Join(blocks, "\n\n")
}

// renderAssistant chooses between the raw text and the modular section view.
// Sections are never computed while the message is still streaming.
func (m *Model) renderAssistant(msg app.Message, streaming bool) string {
	if streaming || !m.modular || !app.IsStructuredScript(msg.Content) {
		return msg.Content
	}
	sections := app.ParseSections(msg.Content)
	if len(sections) == 0 {
		return msg.Content
	}
	return renderSections(m.theme, sections, m.viewport.Width)
}

func (m *Model) View() string {
	if !m.ready {
		return "…"
	}

	title := "GetMyBrief - reel script assistant"
	if p := m.profiles.Profile(); p.Complete() {
		title += " · " + p.Name
	}
	top := m.theme.TopBar.Render(title)

	status := m.statusText
	if m.chat.Streaming() {
		status = m.theme.Spinner.Render(spinnerFrames[m.spinnerPos]) + " " + status
	}

	footer := m.theme.Footer.Render(
		"Enter send · Ctrl+T raw/cards · Ctrl+P quick prompt · Ctrl+J CTA · Ctrl+E export · Ctrl+L clear · Ctrl+C quit")

	return strings.Join([]string{
		top,
		m.viewport.View(),
		m.theme.Status.Render(status),
		m.theme.InputBox.Render(m.input.View()),
		footer,
	}, "\n")
}

func lastAssistantMessage(msgs []app.Message) (app.Message, bool) {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == app.RoleAssistant && msgs[i].Content != "" {
			return msgs[i], true
		}
	}
	return app.Message{}, false
}

// exportTitle derives a document title from the script's REEL banner, falling
// back to the first non-empty line.
func exportTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(line, "🎬 REEL:"); ok {
			return strings.TrimSpace(rest)
		}
		if runes := []rune(line); len(runes) > 60 {
			line = string(runes[:60])
		}
		return line
	}
	return "Reel script"
}
