package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/machinetwin/internal/twin"
)

const (
	canvasWidth  = 40
	canvasHeight = 16
	chartWidth   = 46
	chartHeight  = 3
	chartWindow  = 110
)

type TickMsg time.Time

// Model drives the live view: one twin tick per animation frame, five
// series charts, and the rotating turbine wireframe. The renderer only
// ever reads snapshots and history; it never writes simulation state.
type Model struct {
	twin     *twin.Twin
	frames   int
	interval time.Duration

	frame   int
	snap    twin.Snapshot
	canvas  *Canvas
	camera  *Camera
	running bool
	done    bool
}

func NewModel(t *twin.Twin, frames int, interval time.Duration) Model {
	cam := NewCamera()
	// tilt the hub axis toward the viewer for a 3/4 view
	cam.RotX = 0.35
	cam.RotZ = 0.25
	return Model{
		twin:     t,
		frames:   frames,
		interval: interval,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		camera:   cam,
		running:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
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
			wasDone := m.done
			m.twin.Reset()
			m.frame = 0
			m.snap = twin.Snapshot{}
			m.done = false
			m.running = true
			if wasDone {
				return m, m.tickCmd()
			}
		}
	case TickMsg:
		if m.running && !m.done {
			m.snap = m.twin.Tick(m.frame)
			m.frame++
			if m.frame >= m.frames {
				m.done = true
			}
		}
		if m.done {
			return m, nil
		}
		return m, m.tickCmd()
	}
	return m, nil
}

func (m Model) View() string {
	m.canvas.Clear()
	Render3D(m.canvas, TurbineWireframe(m.twin.Rotation()), m.camera)

	h := m.twin.History()
	charts := strings.Join([]string{
		chart(h.Temperature, "temperature"),
		chart(h.ProductionRate, "production rate"),
		chart(h.PowerConsumption, "power consumption"),
		chart(h.Pressure, "pressure"),
		chart(h.Stress, "stress"),
	}, "\n")

	var s strings.Builder
	s.WriteString(headerStyle.Render("MACHINE TWIN") + "\n")
	s.WriteString(m.status() + "\n\n")
	s.WriteString(row("Frame", fmt.Sprintf("%d / %d", m.frame, m.frames)))
	s.WriteString(row("Temp", fmt.Sprintf("%.2f", m.snap.Temperature)))
	s.WriteString(row("Prod", fmt.Sprintf("%.2f", m.snap.ProductionRate)))
	s.WriteString(row("Power", fmt.Sprintf("%.2fW", m.snap.PowerConsumption)))
	s.WriteString(row("Pressure", fmt.Sprintf("%.2f", m.snap.Pressure)))
	s.WriteString(row("Stress", fmt.Sprintf("%.2f", m.snap.Stress)))
	s.WriteString(row("Rotation", fmt.Sprintf("%.1f°", m.snap.Rotation)))

	eff := m.twin.Machine().TempFactor()
	effStr := valueStyle.Render(fmt.Sprintf("%.3f", eff))
	if eff < 0 {
		effStr = warnStyle.Render(fmt.Sprintf("%.3f", eff))
	}
	s.WriteString(labelStyle.Render("Efficiency") + effStr + "\n")
	s.WriteString(helpStyle.Render("\nSP:Pause  R:Reset  Q:Quit"))

	left := canvasStyle.Render(m.canvas.String() + "\n" + graphStyle.Render(charts))
	right := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) status() string {
	switch {
	case m.done:
		return "DONE"
	case !m.running:
		return "PAUSED"
	default:
		return "RUNNING"
	}
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

func chart(data []float64, caption string) string {
	if len(data) < 2 {
		return caption + ": warming up"
	}
	return asciigraph.Plot(tail(data, chartWindow),
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Caption(caption),
	)
}

func tail(xs []float64, n int) []float64 {
	if len(xs) <= n {
		return xs
	}
	return xs[len(xs)-n:]
}
