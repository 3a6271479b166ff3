package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/basekit/internal/cli/formatter"
	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/alexanderramin/basekit/internal/repository"
	"github.com/alexanderramin/basekit/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// boardLoadedMsg carries a freshly loaded board. focusID names the card
// the cursor should follow, if any.
type boardLoadedMsg struct {
	board   *service.Board
	focusID string
	err     error
}

// cardUpdatedMsg reports the result of an edit made from the board.
type cardUpdatedMsg struct {
	card *domain.Card
	note string
	err  error
}

type boardKeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	Priority  key.Binding
	Status    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultBoardKeys() boardKeyMap {
	return boardKeyMap{
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev stage")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next stage")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		MoveLeft:  key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "move card left")),
		MoveRight: key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "move card right")),
		Priority:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "cycle priority")),
		Status:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle status")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.MoveRight, k.Help, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.MoveLeft, k.MoveRight, k.Priority, k.Status},
		{k.Help, k.Quit},
	}
}

// boardView is an interactive board: one column per stage, cards in
// kanban order, with keys to move cards between stages.
type boardView struct {
	ctx   context.Context
	app   *App
	model string
	order repository.StageOrder

	board   *service.Board
	col     int
	row     int
	loading bool
	err     error
	note    string

	keys  boardKeyMap
	help  help.Model
	width int
}

func newBoardView(ctx context.Context, app *App, model string, order repository.StageOrder) *boardView {
	return &boardView{
		ctx:     ctx,
		app:     app,
		model:   model,
		order:   order,
		loading: true,
		keys:    defaultBoardKeys(),
		help:    help.New(),
	}
}

func (v *boardView) Init() tea.Cmd {
	return v.load("")
}

func (v *boardView) load(focusID string) tea.Cmd {
	ctx, app, model, order := v.ctx, v.app, v.model, v.order
	return func() tea.Msg {
		board, err := app.Cards.Board(ctx, model, order)
		return boardLoadedMsg{board: board, focusID: focusID, err: err}
	}
}

func (v *boardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.help.Width = msg.Width
		return v, nil

	case boardLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		for _, g := range msg.board.Groups {
			domain.SortKanban(g.Cards)
		}
		v.board = msg.board
		v.focus(msg.focusID)
		return v, nil

	case cardUpdatedMsg:
		if msg.err != nil {
			v.note = formatter.StyleRed.Render("Error: " + msg.err.Error())
			return v, nil
		}
		v.note = msg.note
		return v, v.load(msg.card.ID)

	case tea.KeyMsg:
		return v.updateKeys(msg)
	}
	return v, nil
}

func (v *boardView) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit
	case key.Matches(msg, v.keys.Help):
		v.help.ShowAll = !v.help.ShowAll
		return v, nil
	}
	if v.board == nil {
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keys.Left):
		v.moveCursor(-1)
	case key.Matches(msg, v.keys.Right):
		v.moveCursor(1)
	case key.Matches(msg, v.keys.Up):
		if v.row > 0 {
			v.row--
		}
	case key.Matches(msg, v.keys.Down):
		if v.row < len(v.visibleCards(v.col))-1 {
			v.row++
		}
	case key.Matches(msg, v.keys.MoveLeft):
		return v, v.moveCard(-1)
	case key.Matches(msg, v.keys.MoveRight):
		return v, v.moveCard(1)
	case key.Matches(msg, v.keys.Priority):
		return v, v.cyclePriority()
	case key.Matches(msg, v.keys.Status):
		return v, v.cycleStatus()
	}
	return v, nil
}

func (v *boardView) moveCursor(delta int) {
	next := v.col + delta
	if next < 0 || next >= len(v.board.Groups) {
		return
	}
	v.col = next
	v.clampRow()
}

func (v *boardView) clampRow() {
	n := len(v.visibleCards(v.col))
	if v.row >= n {
		v.row = n - 1
	}
	if v.row < 0 {
		v.row = 0
	}
}

// visibleCards returns the selectable cards of column i. Folded stages
// hide theirs.
func (v *boardView) visibleCards(i int) []*domain.Card {
	if v.board == nil || i < 0 || i >= len(v.board.Groups) {
		return nil
	}
	g := v.board.Groups[i]
	if g.Stage != nil && g.Stage.Fold {
		return nil
	}
	return g.Cards
}

func (v *boardView) selected() *domain.Card {
	cards := v.visibleCards(v.col)
	if v.row < 0 || v.row >= len(cards) {
		return nil
	}
	return cards[v.row]
}

// focus puts the cursor on card id, keeping the current position when the
// card is not found.
func (v *boardView) focus(id string) {
	if id != "" {
		for i, g := range v.board.Groups {
			for j, c := range g.Cards {
				if c.ID == id {
					v.col, v.row = i, j
					return
				}
			}
		}
	}
	if v.col >= len(v.board.Groups) {
		v.col = max(len(v.board.Groups)-1, 0)
	}
	v.clampRow()
}

// moveCard moves the selected card to the neighbouring column. Moving into
// the unstaged column clears the stage.
func (v *boardView) moveCard(delta int) tea.Cmd {
	card := v.selected()
	target := v.col + delta
	if card == nil || target < 0 || target >= len(v.board.Groups) {
		return nil
	}
	stage := v.board.Groups[target].Stage
	stageID := ""
	if stage != nil {
		stageID = stage.ID
	}
	ctx, app := v.ctx, v.app
	return func() tea.Msg {
		c, err := app.Cards.MoveToStage(ctx, card.ID, stageID)
		return cardUpdatedMsg{card: c, note: fmt.Sprintf("Moved %s to %s", card.Name, formatter.ColumnTitle(stage)), err: err}
	}
}

var (
	priorityCycle = []domain.Priority{domain.PriorityNormal, domain.PriorityMedium, domain.PriorityHigh}
	statusCycle   = []domain.Status{domain.StatusNormal, domain.StatusDone, domain.StatusBlocked}
)

func nextInCycle[T comparable](cycle []T, cur T) T {
	for i, v := range cycle {
		if v == cur {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}

func (v *boardView) cyclePriority() tea.Cmd {
	card := v.selected()
	if card == nil {
		return nil
	}
	next := nextInCycle(priorityCycle, card.Priority)
	ctx, app := v.ctx, v.app
	return func() tea.Msg {
		c, err := app.Cards.SetPriority(ctx, card.ID, next)
		return cardUpdatedMsg{card: c, note: fmt.Sprintf("%s priority: %s", card.Name, next.Label()), err: err}
	}
}

func (v *boardView) cycleStatus() tea.Cmd {
	card := v.selected()
	if card == nil {
		return nil
	}
	next := nextInCycle(statusCycle, card.Status)
	ctx, app := v.ctx, v.app
	return func() tea.Msg {
		c, err := app.Cards.SetStatus(ctx, card.ID, next)
		note := ""
		if c != nil {
			note = fmt.Sprintf("%s: %s", card.Name, formatter.StatusPill(c.Status, c.StatusLegend()))
		}
		return cardUpdatedMsg{card: c, note: note, err: err}
	}
}

func (v *boardView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading board...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	var b strings.Builder
	b.WriteString(formatter.Header(v.model))
	b.WriteString("\n")

	if len(v.board.Groups) == 0 {
		b.WriteString(formatter.Dim("No stages or cards.") + "\n")
	} else {
		cols := make([]string, 0, len(v.board.Groups))
		for i, g := range v.board.Groups {
			selected := -1
			if i == v.col {
				selected = v.row
			}
			cols = append(cols, formatter.RenderColumn(
				formatter.BoardColumn{Stage: g.Stage, Cards: g.Cards}, selected, i == v.col))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
		b.WriteString("\n")
	}

	if card := v.selected(); card != nil {
		b.WriteString(v.legendLine(card))
		b.WriteString("\n")
	}
	if v.note != "" {
		b.WriteString(v.note + "\n")
	}
	b.WriteString(v.help.View(v.keys))
	return b.String()
}

// legendLine explains the selected card's status and priority through the
// legends of its stage.
func (v *boardView) legendLine(card *domain.Card) string {
	parts := []string{formatter.StatusPill(card.Status, card.StatusLegend())}
	if card.Priority == domain.PriorityHigh && card.LegendPriority != "" {
		parts = append(parts, formatter.PriorityStars(card.Priority)+" "+card.LegendPriority)
	}
	return formatter.Dim(card.Name+": ") + strings.Join(parts, "  ")
}
