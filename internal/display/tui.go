// Package display implements the interactive stepping front end: a Bubble
// Tea program that walks one round at a time through the engine's phase
// machine and shows the running statistics.
package display

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/strayhat/pushjack/internal/game"
	"github.com/strayhat/pushjack/internal/sim"
	"github.com/strayhat/pushjack/internal/stats"
)

// Styles contains all styling for the stepping UI
type Styles struct {
	Title     lipgloss.Style
	Pane      lipgloss.Style
	StatsPane lipgloss.Style
	Label     lipgloss.Style
	Win       lipgloss.Style
	Loss      lipgloss.Style
	Push      lipgloss.Style
	Help      lipgloss.Style
	Error     lipgloss.Style
}

func defaultStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575")),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1),
		StatsPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1),
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("#878787")),
		Win:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575")),
		Loss:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F87")),
		Push:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700")),
		Help:  lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")),
	}
}

// Model is the Bubble Tea model for stepping rounds one action at a time.
type Model struct {
	sim   *sim.Simulator
	round *game.Round

	history viewport.Model
	lines   []string

	styles   *Styles
	width    int
	height   int
	recorded bool
	lastErr  error
}

// New creates a stepping model over a fresh simulator.
func New(simulator *sim.Simulator) Model {
	vp := viewport.New(40, 10)
	return Model{
		sim:     simulator,
		round:   simulator.NewRound(),
		history: vp,
		styles:  defaultStyles(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.history.Width = msg.Width - 4
		if h := msg.Height - 18; h > 3 {
			m.history.Height = h
		}
		return m, nil

	case tea.KeyMsg:
		m.lastErr = nil
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "d":
			m = m.deal()
		case "h":
			m = m.step(m.round.PlayerHit)
		case "s":
			m = m.step(m.round.PlayerStand)
		case " ", "enter":
			m = m.step(m.round.DealerStep)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return m, cmd
}

func (m Model) deal() Model {
	if m.round.Phase() == game.PhaseResult {
		m.round = m.sim.NewRound()
		m.recorded = false
	}
	return m.step(m.round.Deal)
}

// step runs one round action and records the result when the round ends.
func (m Model) step(action func() error) Model {
	if err := action(); err != nil {
		if !errors.Is(err, game.ErrWrongPhase) {
			m.lastErr = err
		}
		return m
	}
	if m.round.Phase() == game.PhaseResult && !m.recorded {
		res := *m.round.Result()
		m.sim.Stats().Add(res)
		m.recorded = true
		m.lines = append(m.lines, historyLine(len(m.lines)+1, m.round, res))
		m.history.SetContent(strings.Join(m.lines, "\n"))
		m.history.GotoBottom()
	}
	return m
}

func historyLine(n int, round *game.Round, res game.RoundResult) string {
	line := fmt.Sprintf("#%d  player %s  dealer %s  %s  %+0.2f",
		n, round.PlayerHand(), round.DealerHand(), res.Outcome, res.Payout)
	if res.Outcome == game.Push {
		line += fmt.Sprintf("  [push %s, %s cards, side-bet %+0.2f]",
			res.PushCategory, game.CardBucketLabel(res.CardBucket), res.SidebetPayout)
	}
	return line
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("pushjack interactive round stepper"))
	b.WriteString("\n\n")

	b.WriteString(m.renderHands())
	b.WriteString("\n")
	b.WriteString(m.renderResult())
	b.WriteString(m.renderStats())
	b.WriteString("\n")

	if len(m.lines) > 0 {
		b.WriteString(m.styles.Pane.Render(m.history.View()))
		b.WriteString("\n")
	}
	if m.lastErr != nil {
		b.WriteString(m.styles.Error.Render("error: " + m.lastErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render(m.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderHands() string {
	phase := m.round.Phase()

	dealerLine := m.styles.Label.Render("dealer ")
	switch phase {
	case game.PhaseInit:
		dealerLine += "-"
	case game.PhaseDealt, game.PhasePlayerTurn:
		// hole card stays hidden until the dealer acts
		if up, ok := m.round.DealerHand().UpCard(); ok {
			dealerLine += fmt.Sprintf("%s ??", up)
		}
	default:
		dealerLine += m.round.DealerHand().String()
	}

	playerLine := m.styles.Label.Render("player ")
	if phase == game.PhaseInit {
		playerLine += "-"
	} else {
		playerLine += m.round.PlayerHand().String()
	}

	phaseLine := m.styles.Label.Render("phase  ") + phase.String()
	return m.styles.Pane.Render(dealerLine+"\n"+playerLine+"\n"+phaseLine) + "\n"
}

func (m Model) renderResult() string {
	res := m.round.Result()
	if res == nil {
		return ""
	}

	var style lipgloss.Style
	var text string
	switch res.Outcome {
	case game.BettorWin:
		style, text = m.styles.Win, fmt.Sprintf("BETTOR WIN  %+0.2f units", res.Payout)
	case game.BettorLoss:
		style, text = m.styles.Loss, fmt.Sprintf("BETTOR LOSS  %+0.2f units", res.Payout)
	default:
		style, text = m.styles.Push, fmt.Sprintf("PUSH (%s, %s cards)  side-bet %+0.2f units",
			res.PushCategory, game.CardBucketLabel(res.CardBucket), res.SidebetPayout)
	}
	return style.Render(text) + "\n\n"
}

func (m Model) renderStats() string {
	snap, err := m.sim.Stats().Snapshot()
	if err != nil {
		if errors.Is(err, stats.ErrNoRounds) {
			return m.styles.StatsPane.Render("no rounds recorded yet") + "\n"
		}
		return m.styles.Error.Render(err.Error()) + "\n"
	}

	lines := []string{
		fmt.Sprintf("rounds %d   wins %d   losses %d   pushes %d (%.1f%%)",
			snap.Rounds, snap.BettorWins, snap.BettorLosses, snap.Pushes, snap.PushRate()),
		fmt.Sprintf("house edge %.2f%%   side-bet edge %.2f%%", snap.HouseEdge, snap.SidebetEdge),
	}
	return m.styles.StatsPane.Render(strings.Join(lines, "\n")) + "\n"
}

func (m Model) helpLine() string {
	switch m.round.Phase() {
	case game.PhaseInit:
		return "d deal · q quit"
	case game.PhaseDealt, game.PhasePlayerTurn:
		return "h hit (per strategy) · s stand · q quit"
	case game.PhaseDealerTurn:
		return "space dealer step · q quit"
	default:
		return "d next round · q quit"
	}
}
