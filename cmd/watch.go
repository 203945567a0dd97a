package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"mediabar/cache"
	"mediabar/config"
	"mediabar/lyrics"
	"mediabar/lyrics/lrclib"
	"mediabar/player"
	"mediabar/pool"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the lyrics in a terminal view",

	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := config.GetPlayer(conf)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		provider := lrclib.New(conf.Lyrics.URL,
			time.Duration(conf.Lyrics.TimeoutSeconds)*time.Second)
		store := cache.New(filepath.Join(cacheBase, "lyrics"))
		interval := time.Duration(conf.Pipe.IntervalMS) * time.Millisecond

		ch := make(chan pool.Update)
		go pool.Listen(ctx, ctrl, provider, store, interval, ch)

		p := tea.NewProgram(watchModel{ch: ch}, tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	currentStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

type watchModel struct {
	ch <-chan pool.Update

	state  *player.State
	lines  []lyrics.Line
	index  int
	width  int
	height int
}

func waitForUpdate(ch <-chan pool.Update) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-ch
		if !ok {
			return tea.Quit()
		}
		return update
	}
}

func (m watchModel) Init() tea.Cmd {
	return waitForUpdate(m.ch)
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case pool.Update:
		if msg.Err == nil {
			m.state = msg.State
			m.lines = msg.Lines
			m.index = msg.Index
		}
		return m, waitForUpdate(m.ch)
	}
	return m, nil
}

func (m watchModel) View() string {
	if m.state == nil {
		return dimStyle.Render("no player")
	}
	if !m.state.HasTrack() {
		return dimStyle.Render("nothing playing")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(
		fmt.Sprintf("%s - %s", m.state.Title, m.state.Artist)))
	b.WriteString("\n\n")

	if len(m.lines) == 0 || !lyrics.Timesynced(m.lines) {
		b.WriteString(dimStyle.Render("no synced lyrics"))
		return b.String()
	}

	// Show the current line with its neighbours, centered on index.
	span := 3
	if m.height > 10 {
		span = (m.height - 4) / 2
	}
	for i := m.index - span; i <= m.index+span; i++ {
		if i < 0 || i >= len(m.lines) {
			b.WriteString("\n")
			continue
		}
		words := m.lines[i].Words
		if i == m.index {
			b.WriteString(currentStyle.Render(words))
		} else {
			b.WriteString(dimStyle.Render(words))
		}
		b.WriteString("\n")
	}
	return b.String()
}
