package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/driftkit/sway/pkg/domain"
)

// Row is one rendered line of an animated list frame.
type Row struct {
	Label  string
	Phase  domain.Phase
	Values domain.Values
}

// Renderer turns animated rows into colored terminal frames. Rows are
// expected to animate "opacity" (0..1, drives the bar) and optionally "x"
// (leading indent in cells).
type Renderer struct {
	profile termenv.Profile
	width   int
}

// NewRenderer creates a Renderer for the given terminal width.
func NewRenderer(width int) *Renderer {
	if width <= 0 {
		width = 80
	}
	return &Renderer{
		profile: termenv.ColorProfile(),
		width:   width,
	}
}

func (r *Renderer) phaseColor(phase domain.Phase) termenv.Color {
	switch phase {
	case domain.PhaseEnter:
		return r.profile.Color("#34d399")
	case domain.PhaseUpdate:
		return r.profile.Color("#22d3ee")
	case domain.PhaseLeave:
		return r.profile.Color("#f87171")
	default:
		return r.profile.Color("#9ca3af")
	}
}

// Frame renders one frame. Each row shows its phase, label, and a bar whose
// length tracks the row's opacity.
func (r *Renderer) Frame(rows []Row) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(r.line(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func (r *Renderer) line(row Row) string {
	opacity := clamp01(row.Values["opacity"])
	indent := int(row.Values["x"])
	if indent < 0 {
		indent = 0
	}

	barMax := r.width / 3
	if barMax < 8 {
		barMax = 8
	}
	bar := strings.Repeat("█", int(opacity*float64(barMax)+0.5))

	color := r.phaseColor(row.Phase)
	tag := termenv.String(fmt.Sprintf("%-6s", row.Phase)).Foreground(color).String()
	label := termenv.String(fmt.Sprintf("%-16s", row.Label)).Bold().String()

	return strings.Repeat(" ", indent) + tag + " " + label + " " + termenv.String(bar).Foreground(color).String()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClearLines moves the cursor up n lines and clears them, so successive
// frames draw in place.
func ClearLines(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("\033[1A\033[2K", n)
}
