package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/attsim/internal/attitude"
	"github.com/san-kum/attsim/internal/sim"
)

const (
	canvasWidth  = 60
	canvasHeight = 22
	frameRate    = 30
	graphWindow  = 240
)

type TickMsg time.Time

// ReplayModel plays back a finished run at a configurable speed.
type ReplayModel struct {
	title    string
	result   *sim.Result
	errNorm  []float64
	rateNorm []float64
	canvas   *Canvas
	camera   *Camera
	theme    int

	frame   int
	speed   int
	running bool
}

// NewReplayModel builds a replay of result. The default speed advances
// enough samples per frame to play back in real time.
func NewReplayModel(title string, result *sim.Result) ReplayModel {
	speed := 1
	if n := len(result.Times); n > 1 {
		dt := result.Times[1] - result.Times[0]
		if dt > 0 {
			speed = max(1, int(math.Round(1.0/(dt*frameRate))))
		}
	}
	return ReplayModel{
		title:    title,
		result:   result,
		errNorm:  Norms(result.AttitudeErrors),
		rateNorm: Norms(result.RateErrors),
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		camera:   NewCamera(),
		speed:    speed,
		running:  true,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m ReplayModel) Init() tea.Cmd {
	return tick()
}

func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.frame = 0
		case "[":
			m.running = false
			m.seek(-m.speed)
		case "]":
			m.running = false
			m.seek(m.speed)
		case "+", "=":
			m.speed = min(m.speed*2, 1<<12)
		case "-":
			m.speed = max(m.speed/2, 1)
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		case "z":
			m.camera.ZoomIn()
		case "x":
			m.camera.ZoomOut()
		}
	case TickMsg:
		if m.running {
			m.seek(m.speed)
			if m.frame == m.Len()-1 {
				m.running = false
			}
		}
		return m, tick()
	}
	return m, nil
}

// Len is the number of samples in the run.
func (m ReplayModel) Len() int { return len(m.result.States) }

// Frame is the current sample index.
func (m ReplayModel) Frame() int { return m.frame }

func (m *ReplayModel) seek(delta int) {
	m.frame = max(0, min(m.Len()-1, m.frame+delta))
}

func (m ReplayModel) View() string {
	if m.Len() == 0 {
		return "empty run\n"
	}

	st := Themes[m.theme].styles()
	k := m.frame
	x := m.result.States[k]

	m.canvas.Clear()
	Render3D(m.canvas, BodyFrame(x.Q), m.camera)
	canvasView := st.canvas.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(st.title.Render(strings.ToUpper(m.title)) + "\n")

	status := StatusPlaying.Render("PLAYING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	s.WriteString(fmt.Sprintf("%s  x%d\n", status, m.speed))
	s.WriteString(ProgressBar(float64(k)/float64(max(1, m.Len()-1)), 30) + "\n\n")

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.result.Times[k]))
	row("q", fmt.Sprintf("[% .4f % .4f % .4f % .4f]", x.Q[0], x.Q[1], x.Q[2], x.Q[3]))
	row("w [rad/s]", fmt.Sprintf("[% .4f % .4f % .4f]", x.W[0], x.W[1], x.W[2]))

	yaw, pitch, roll := attitude.EulerZYX(x.Q)
	row("ypr [deg]", fmt.Sprintf("% .1f % .1f % .1f", deg(yaw), deg(pitch), deg(roll)))

	if k < len(m.errNorm) {
		e := m.errNorm[k]
		style := st.good
		switch {
		case e > 0.1:
			style = st.bad
		case e > 0.01:
			style = st.warning
		}
		s.WriteString(st.label.Render("|eAtt|") + style.Render(fmt.Sprintf("%.2e rad", e)) + "\n")
		row("|eW|", fmt.Sprintf("%.2e rad/s", m.rateNorm[k]))
	}
	if k < len(m.result.Applied) {
		a := m.result.Applied[k]
		row("torque", fmt.Sprintf("[% .3e % .3e % .3e]", a[0], a[1], a[2]))
	}

	if lo := max(0, k-graphWindow); k > lo && k < len(m.errNorm) {
		s.WriteString("\n" + st.muted.Render("attitude error") + "\n")
		s.WriteString(SparklineChart(m.errNorm[lo:k+1], 30) + "\n")
	}

	s.WriteString("\n" + KeyHint.Render("SP:Pause [ ]:Step +/-:Speed\nR:Restart T:Theme Z/X:Zoom Q:Quit"))

	stats := lipgloss.NewStyle().Padding(1, 2).Width(50).Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, stats)
}

func deg(rad float64) float64 { return rad * 180 / math.Pi }
