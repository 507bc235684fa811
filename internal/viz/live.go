package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pendlab/internal/dynamo"
	"github.com/san-kum/pendlab/internal/physics"
	"github.com/san-kum/pendlab/internal/trail"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
)

type TickMsg time.Time

// Model holds the live simulation state and the terminal rendering buffers.
type Model struct {
	dyn           *physics.DoublePendulum
	integrator    dynamo.Integrator
	t, dt         dynamo.Real
	canvas        *Canvas
	trail         *trail.Ring
	running       bool
	initialState  dynamo.State
	energyHistory []float64
	params        map[string]dynamo.Real
	initialParams map[string]dynamo.Real
	paramKeys     []string
	selected      int
	showHelp      bool
}

// NewModel initializes the live view around an already-constructed pendulum.
func NewModel(dyn *physics.DoublePendulum, integ dynamo.Integrator, dt dynamo.Real, trailCapacity int) Model {
	params := dyn.GetParams()
	initialParams := make(map[string]dynamo.Real, len(params))
	keys := make([]string, 0, len(params))
	for k, v := range params {
		keys = append(keys, k)
		initialParams[k] = v
	}
	sort.Strings(keys)

	return Model{
		dyn:           dyn,
		integrator:    integ,
		dt:            dt,
		canvas:        NewCanvas(width, height),
		trail:         trail.NewRing(trailCapacity),
		running:       true,
		initialState:  dyn.StateVector().Clone(),
		energyHistory: make([]float64, 0, historyCapacity),
		params:        params,
		initialParams: initialParams,
		paramKeys:     keys,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// step advances the physics by one fixed timestep and records the tip.
func (m *Model) step() {
	m.dyn.Step(m.integrator, m.t, m.dt)
	m.t += m.dt

	_, _, x2, y2 := m.dyn.TipPositions()
	m.trail.Append(trail.Point{X: x2, Y: y2})

	m.energyHistory = append(m.energyHistory, m.dyn.Energy(m.dyn.StateVector()))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) reset() {
	m.t = 0
	m.dyn.SetState(m.initialState.Clone())
	m.trail = trail.NewRing(m.trail.Cap())
	m.energyHistory = m.energyHistory[:0]
	for k, v := range m.initialParams {
		m.params[k] = v
		m.dyn.SetParam(k, v)
	}
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor dynamo.Real) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	newVal := m.params[key] * factor
	m.params[key] = newVal
	m.dyn.SetParam(key, newVal)
}

// draw renders both links and the trail point cloud onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()

	cw, ch := width*2, height*4
	cx, cy := cw/2, ch/3

	total := m.dyn.A.Length + m.dyn.B.Length
	scale := 0.8 * float64(minInt(cw/2, ch/2)) / total

	x1, y1, x2, y2 := m.dyn.TipPositions()

	// Screen y grows downward; model y is negative below the pivot.
	ax, ay := cx+int(x1*scale), cy-int(y1*scale)
	bx, by := cx+int(x2*scale), cy-int(y2*scale)

	for _, pt := range m.trail.Snapshot() {
		m.canvas.Set(cx+int(pt.X*scale), cy-int(pt.Y*scale))
	}

	m.canvas.Set(cx, cy)
	m.canvas.DrawLine(cx, cy, ax, ay)
	m.canvas.DrawLine(ax, ay, bx, by)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			m.canvas.Set(bx+dx, by+dy)
		}
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("DOUBLE PENDULUM") + "\n")
	if m.running {
		s.WriteString("RUNNING\n\n")
	} else {
		s.WriteString("PAUSED\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	y := m.dyn.StateVector()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("θA / θB") + valueStyle.Render(fmt.Sprintf("%.3f / %.3f", y[0], y[1])) + "\n")
	s.WriteString(labelStyle.Render("ωA / ωB") + valueStyle.Render(fmt.Sprintf("%.3f / %.3f", y[2], y[3])) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.4f", m.dyn.Energy(y))) + "\n")
	s.WriteString(labelStyle.Render("Trail") + valueStyle.Render(fmt.Sprintf("%d/%d", m.trail.Len(), m.trail.Cap())) + "\n")

	s.WriteString("\nPARAMETERS\n")
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-10s %.3f", k, m.params[k])
		if i == m.selected {
			s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Bold(true).Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nT:Theme Tab:Select ↑↓:Tune ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset simulation         ║
║  Q        - Quit                     ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter (+5%) ║
║  Down/J   - Decrease parameter (-5%) ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
