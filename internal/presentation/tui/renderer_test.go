package tui

import (
	"strings"
	"testing"

	"github.com/driftkit/sway/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestRenderer_Frame(t *testing.T) {
	r := NewRenderer(60)

	frame := r.Frame([]Row{
		{Label: "alpha", Phase: domain.PhaseEnter, Values: domain.Values{"opacity": 1}},
		{Label: "beta", Phase: domain.PhaseLeave, Values: domain.Values{"opacity": 0.5}},
	})

	lines := strings.Split(strings.TrimRight(frame, "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "alpha")
	assert.Contains(t, lines[0], "enter")
	assert.Contains(t, lines[1], "beta")
	assert.Contains(t, lines[1], "leave")

	// Half opacity draws a shorter bar than full opacity.
	full := strings.Count(lines[0], "█")
	half := strings.Count(lines[1], "█")
	assert.Greater(t, full, half)
	assert.Greater(t, half, 0)
}

func TestRenderer_IndentFollowsX(t *testing.T) {
	r := NewRenderer(60)

	flush := r.line(Row{Label: "a", Phase: domain.PhaseEnter, Values: domain.Values{"opacity": 1, "x": 0}})
	shifted := r.line(Row{Label: "a", Phase: domain.PhaseEnter, Values: domain.Values{"opacity": 1, "x": 4}})
	assert.Equal(t, "    "+flush, shifted)

	// Negative offsets clamp to the left margin.
	neg := r.line(Row{Label: "a", Phase: domain.PhaseEnter, Values: domain.Values{"opacity": 1, "x": -3}})
	assert.Equal(t, flush, neg)
}

func TestRenderer_ZeroWidthDefaults(t *testing.T) {
	r := NewRenderer(0)
	frame := r.Frame([]Row{{Label: "a", Phase: domain.PhaseMount, Values: domain.Values{"opacity": 0}}})
	assert.NotEmpty(t, frame)
	assert.NotContains(t, frame, "█")
}

func TestClearLines(t *testing.T) {
	assert.Empty(t, ClearLines(0))
	assert.Equal(t, 2, strings.Count(ClearLines(2), "\033[1A"))
}
