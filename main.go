package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go-tally/internal/config"
	"go-tally/internal/entry"
	"go-tally/internal/game"
	"go-tally/internal/roster"
	"go-tally/internal/scoring"
	"go-tally/internal/state"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	leaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	winnerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	deleteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	enabledStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	modalStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("11")).
			Padding(0, 1)
)

// Lines above the first score row: title, blank, name, total, rule. Mouse
// rows are screen rows, so this holds only with the view drawn from the top
// of the alternate screen.
const boardTop = 5

type keyMap struct {
	Up, Down, Left, Right key.Binding
	Enter, Space, Delete  key.Binding
	Escape, Setup         key.Binding
	NewGame, Quit         key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev player")),
		Right:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next player")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Space:   key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "edit")),
		Delete:  key.NewBinding(key.WithKeys("delete", "x"), key.WithHelp("del/x", "delete score")),
		Escape:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Setup:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "players")),
		NewGame: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new game")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Enter, k.Delete, k.Setup, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Space, k.Escape, k.NewGame}}
}

type LocalState struct {
	Session *game.Session
	Config  *config.Config

	keys        keyMap
	help        help.Model
	nameInput   textinput.Model
	scoreInput  textinput.Model
	focus       int
	dialogShown bool
	log         zerolog.Logger
}

func initialModel(names []string, cfg *config.Config, log zerolog.Logger) *LocalState {
	ni := textinput.New()
	ni.CharLimit = 24
	ni.Placeholder = "name"
	ni.Prompt = ""

	si := textinput.New()
	si.CharLimit = 7
	si.Placeholder = "0"
	si.Prompt = "> "

	s := &LocalState{
		Session:    game.NewSession(names, log),
		Config:     cfg,
		keys:       newKeyMap(),
		help:       help.New(),
		nameInput:  ni,
		scoreInput: si,
		log:        log,
	}
	s.focusRow(0)
	return s
}

func (s *LocalState) Init() tea.Cmd {
	return textinput.Blink
}

func (s *LocalState) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.help.Width = msg.Width
	case tea.KeyMsg:
		if key.Matches(msg, s.keys.Quit) {
			return s, tea.Quit
		}
		if s.Session.Step == game.StepSetup {
			return s, s.updateSetup(msg)
		}
		return s, s.updateBoard(msg)
	case tea.MouseMsg:
		if s.Session.Step == game.StepPlay {
			s.handleMouse(msg)
		}
	}
	return s, nil
}

func (s *LocalState) focusRow(i int) tea.Cmd {
	rows := s.Session.Rows()
	if i < 0 {
		i = 0
	}
	if i > len(rows)-1 {
		i = len(rows) - 1
	}
	s.focus = i
	s.nameInput.SetValue(rows[i].Name())
	s.nameInput.CursorEnd()
	return s.nameInput.Focus()
}

func (s *LocalState) updateSetup(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Up):
		return s.focusRow(s.focus - 1)
	case key.Matches(msg, s.keys.Down):
		return s.focusRow(s.focus + 1)
	case key.Matches(msg, s.keys.Enter):
		if s.Session.Start() {
			s.nameInput.Blur()
		}
		return nil
	case key.Matches(msg, s.keys.NewGame):
		if s.Session.HasScores() && s.Session.NewGame() {
			s.nameInput.Blur()
		}
		return nil
	}

	var cmd tea.Cmd
	s.nameInput, cmd = s.nameInput.Update(msg)
	s.Session.Rename(s.focus, s.nameInput.Value())

	// Clearing the last name trims its row away.
	if rows := s.Session.Rows(); s.focus >= len(rows) {
		return tea.Batch(cmd, s.focusRow(len(rows)-1))
	}
	return cmd
}

func (s *LocalState) updateBoard(msg tea.KeyMsg) tea.Cmd {
	g := s.Session.CurrentGame

	if s.dialogShown {
		var cmd tea.Cmd
		switch {
		case key.Matches(msg, s.keys.Enter):
			g.HandleKeyPress(state.KeyEnter, false)
		case key.Matches(msg, s.keys.Escape):
			g.HandleKeyPress(state.KeyEscape, false)
		default:
			s.scoreInput, cmd = s.scoreInput.Update(msg)
			g.HandleEvent(state.EditorInput(s.scoreInput.Value()))
		}
		return tea.Batch(cmd, s.syncDialog())
	}

	switch {
	case key.Matches(msg, s.keys.Setup):
		s.Session.BackToSetup()
		return s.focusRow(0)
	case key.Matches(msg, s.keys.Up):
		g.HandleKeyPress(state.KeyUp, false)
	case key.Matches(msg, s.keys.Down):
		g.HandleKeyPress(state.KeyDown, false)
	case key.Matches(msg, s.keys.Left):
		g.HandleKeyPress(state.KeyLeft, false)
	case key.Matches(msg, s.keys.Right):
		g.HandleKeyPress(state.KeyRight, false)
	case key.Matches(msg, s.keys.Enter):
		g.HandleKeyPress(state.KeyEnter, false)
	case key.Matches(msg, s.keys.Space):
		g.HandleKeyPress(state.KeySpace, false)
	case key.Matches(msg, s.keys.Delete):
		g.HandleKeyPress(state.KeyDelete, false)
	case key.Matches(msg, s.keys.Escape):
		g.HandleKeyPress(state.KeyEscape, false)
	}
	return s.syncDialog()
}

// syncDialog seeds the score input when the board opens a dialog and blurs
// it when the dialog goes away.
func (s *LocalState) syncDialog() tea.Cmd {
	v, open := s.Session.CurrentGame.Navigator.Editor()
	switch {
	case open && !s.dialogShown:
		s.dialogShown = true
		s.scoreInput.SetValue(v.Text)
		s.scoreInput.CursorEnd()
		return s.scoreInput.Focus()
	case !open && s.dialogShown:
		s.dialogShown = false
		s.scoreInput.Blur()
	}
	return nil
}

func (s *LocalState) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress {
		return
	}
	player, score, ok := s.cellAt(msg.X, msg.Y)
	if !ok {
		return
	}
	g := s.Session.CurrentGame
	switch msg.Button {
	case tea.MouseButtonLeft:
		g.HandleEvent(state.CellActivated(player, score))
	case tea.MouseButtonRight:
		g.HandleEvent(state.CellDeleteRequested(player, score))
	}
	s.syncDialog()
}

// cellAt maps a screen position to a board cell, score rows included up to
// each player's new slot.
func (s *LocalState) cellAt(x, y int) (int, int, bool) {
	players := s.Session.Players()
	if x < 0 || y < boardTop {
		return 0, 0, false
	}
	player := x / s.Config.ColumnWidth
	score := y - boardTop
	if player >= len(players) || score > players[player].ScoreCount() {
		return 0, 0, false
	}
	return player, score, true
}

func (s *LocalState) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Treasures or Troubles") + "\n\n")

	if s.Session.Step == game.StepSetup {
		b.WriteString(s.viewSetup())
	} else {
		b.WriteString(s.viewBoard())
	}

	if s.Config.ShowHelp {
		b.WriteString("\n\n" + s.help.View(s.keys))
	}
	return b.String()
}

func (s *LocalState) viewSetup() string {
	var b strings.Builder
	b.WriteString("Type the player names, then start the game.\n\n")

	for i, row := range s.Session.Rows() {
		label := fmt.Sprintf("Player %d: ", i+1)
		if i == s.focus {
			b.WriteString(label + s.nameInput.View())
		} else {
			name := row.Name()
			if name == "" {
				name = dimStyle.Render("-")
			}
			b.WriteString(dimStyle.Render(label) + name)
		}
		if row.HasScores() {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  (%d)", row.Total())))
		}
		b.WriteString("\n")
	}

	_, ready := s.Session.Ready()
	button := func(label string) string {
		if ready {
			return enabledStyle.Render(label)
		}
		return disabledStyle.Render(label)
	}

	b.WriteString("\n")
	if s.Session.HasScores() {
		b.WriteString("[enter] " + button("Back to game") + "   [ctrl+n] " + button("New game!"))
	} else {
		b.WriteString("[enter] " + button("Start the game!"))
	}
	if len(s.Session.Rows()) == roster.MaxPlayers && s.Session.Rows()[roster.MaxPlayers-1].Name() != "" {
		b.WriteString("\n" + dimStyle.Render(fmt.Sprintf("Up to %d players.", roster.MaxPlayers)))
	}
	return b.String()
}

func (s *LocalState) viewBoard() string {
	g := s.Session.CurrentGame
	players := g.Players()
	cursor := g.Navigator.Cursor()
	best, hasLeader := g.Leader()
	cell := lipgloss.NewStyle().Width(s.Config.ColumnWidth).MaxWidth(s.Config.ColumnWidth)

	columns := make([]string, len(players))
	for i, p := range players {
		var lines []string

		name := p.Name()
		if hasLeader && p.Total() == best {
			name = leaderStyle.Render(name)
		}
		total := "Total: " + strconv.Itoa(p.Total())
		if p.IsWinner() {
			total += " " + winnerStyle.Render("★")
		}
		lines = append(lines,
			cell.Render(name),
			cell.Render(total),
			cell.Render(strings.Repeat("─", s.Config.ColumnWidth-1)),
		)

		for j := 0; j <= p.ScoreCount(); j++ {
			text := dimStyle.Render("+")
			if v, ok := p.Score(j); ok {
				text = strconv.Itoa(v)
			}
			if cursor.Is(i, j) {
				text = cursorStyle.Render(text)
			}
			lines = append(lines, cell.Render(text))
		}
		columns[i] = lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	if v, ok := g.Navigator.Editor(); ok {
		board += "\n\n" + s.viewDialog(v)
	}
	return board
}

func (s *LocalState) viewDialog(v entry.View) string {
	title := "New score for "
	if v.Target.HasOriginal() {
		title = "Update score for "
	}

	action := v.Action.String()
	switch {
	case !v.Enabled:
		action = disabledStyle.Render(action)
	case v.Action == entry.ActionDelete:
		action = deleteStyle.Render(action)
	default:
		action = enabledStyle.Render(action)
	}

	body := title + v.Target.PlayerName + ":\n" +
		s.scoreInput.View() + "\n\n" +
		"[enter] " + action + "   [esc] Cancel"
	return modalStyle.Render(body)
}

func openLog(path string) (zerolog.Logger, func(), error) {
	if path == "" {
		return zerolog.Nop(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log := zerolog.New(f).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	return log, func() { f.Close() }, nil
}

func main() {
	var configPath string
	var logPath string
	var printJSON bool
	var playerList string

	flag.StringVar(&configPath, "config", "", "Path to the INI config file")
	flag.StringVar(&configPath, "c", "", "Path to the INI config file (shorthand)")
	flag.StringVar(&logPath, "log", "", "Write a debug log to this file")
	flag.BoolVar(&printJSON, "json", false, "Print the score sheet as JSON on exit")
	flag.StringVar(&playerList, "players", "", "Comma separated player names")
	flag.StringVar(&playerList, "p", "", "Comma separated player names (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [names-file...]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		fmt.Fprintf(os.Stderr, "   -c, --config=PATH     INI config (default ~/.config/go-tally/config.ini)\n")
		fmt.Fprintf(os.Stderr, "   -p, --players=A,B     Player names\n")
		fmt.Fprintf(os.Stderr, "       --log=PATH        Write a debug log\n")
		fmt.Fprintf(os.Stderr, "       --json            Print the score sheet as JSON on exit\n")
		fmt.Fprintf(os.Stderr, "   -h, --help            Show this help message\n")
	}

	flag.Parse()

	if configPath == "" {
		if p, err := config.DefaultPath(); err == nil {
			configPath = p
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	log, closeLog, err := openLog(logPath)
	if err != nil {
		fmt.Printf("Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Flags win over files, files over the config.
	names := game.SplitNames(cfg.Players)
	if args := flag.Args(); len(args) > 0 {
		names, err = game.LoadNames(args)
		if err != nil {
			fmt.Printf("Error loading names: %v\n", err)
			os.Exit(1)
		}
	}
	if playerList != "" {
		names = game.SplitNames(playerList)
	}
	log.Info().Strs("players", names).Str("config", cfg.Path).Msg("starting")

	model := initialModel(names, cfg, log)
	defer model.Session.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error starting the program: %v\n", err)
		os.Exit(1)
	}

	if printJSON {
		data, err := scoring.Summary(model.Session.Players())
		if err != nil {
			fmt.Printf("Error writing summary: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	}
}
