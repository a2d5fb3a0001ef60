package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Scoreboard layout constants
const (
	maxScores      = 100 // Max results to load
	scoreboardRows = 6   // Title, stats, borders and help around the table
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Mine key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Mine, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Mine, k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Mine: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "my games"),
		),
		Back: key.NewBinding(
			key.WithKeys("tab", "esc", "b"),
			key.WithHelp("tab/esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Scoreboard shows the results recorded during this server or process
// lifetime. It is embedded in the game Model rather than run as its own
// program.
type Scoreboard struct {
	store   *storage.Store
	player  string
	mine    bool // Show only the current player's games, newest first
	results []storage.Result
	stats   storage.Stats
	err     error
	table   table.Model
	help    help.Model
	keys    ScoreboardKeyMap
	width   int
	height  int
}

// NewScoreboard creates a scoreboard over store. A nil store shows an
// empty board.
func NewScoreboard(store *storage.Store, player string, width, height int) Scoreboard {
	h := help.New()
	h.Width = width

	s := Scoreboard{
		store:  store,
		player: player,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	s.table = s.createTable()
	return s
}

// createTable creates a new table with appropriate columns.
func (s *Scoreboard) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 14},
		{Title: "Score", Width: 9},
		{Title: "Level", Width: 6},
		{Title: "Lines", Width: 6},
		{Title: "Time", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, s.height-scoreboardRows-4)),
	)

	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(st)

	return t
}

// Refresh reloads results and statistics from the store.
func (s *Scoreboard) Refresh() error {
	s.results, s.stats, s.err = nil, storage.Stats{}, nil
	if s.store != nil {
		if s.mine {
			s.results, s.err = s.store.PlayerResults(s.player, maxScores)
		} else {
			s.results, s.err = s.store.TopResults(maxScores)
		}
		if s.err == nil {
			s.stats, s.err = s.store.Stats()
		}
	}
	s.updateTableRows()
	return s.err
}

// updateTableRows updates the table with current results.
func (s *Scoreboard) updateTableRows() {
	rows := make([]table.Row, len(s.results))
	for i, r := range s.results {
		player := r.Player
		if player == s.player && !s.mine {
			player = "* " + player
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			player,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Level),
			fmt.Sprintf("%d", r.Lines),
			r.CreatedAt.Format("15:04:05"),
		}
	}
	s.table.SetRows(rows)
	s.table.GotoTop()
}

// Resize adapts the table to a new window size.
func (s *Scoreboard) Resize(width, height int) {
	s.width = width
	s.height = height
	s.help.Width = width
	s.table = s.createTable()
	s.updateTableRows()
}

// Update scrolls the table. It reports whether the key closes the board
// and whether it quits the program.
func (s *Scoreboard) Update(msg tea.KeyMsg) (back, quit bool, cmd tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Quit):
		return false, true, nil
	case key.Matches(msg, s.keys.Back):
		return true, false, nil
	case key.Matches(msg, s.keys.Mine):
		s.mine = !s.mine
		_ = s.Refresh()
		return false, false, nil
	}
	s.table, cmd = s.table.Update(msg)
	return false, false, cmd
}

// View renders the scoreboard.
func (s Scoreboard) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	title := "SESSION SCORES"
	if s.mine {
		title = "YOUR GAMES"
	}
	b.WriteString(titleStyle.Render(centerText(title, s.width)))
	b.WriteString("\n")

	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statsLine := fmt.Sprintf("Games: %d   Best: %d   Avg: %.0f   Lines: %d",
		s.stats.Games, s.stats.HighScore, s.stats.AvgScore, s.stats.TotalLines)
	b.WriteString(mutedStyle.Render(centerText(statsLine, s.width)))
	b.WriteString("\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(s.width, lipgloss.Center, tableStyle.Render(s.renderTableContent())))
	b.WriteString("\n")

	b.WriteString(mutedStyle.Render(s.help.View(s.keys)))
	return b.String()
}

// renderTableContent renders the table or an empty/error message.
func (s Scoreboard) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if s.err != nil {
		return emptyStyle.Render("Scores unavailable.")
	}
	if len(s.results) == 0 && s.mine {
		return emptyStyle.Render("You have not finished a game yet.")
	}
	if len(s.results) == 0 {
		return emptyStyle.Render("No games finished yet.\nScores last until the server stops.")
	}
	return s.table.View()
}

// centerText pads text so it appears centered within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
