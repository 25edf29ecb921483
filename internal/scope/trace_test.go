package scope

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFlat(t *testing.T) {
	tr := Render(nil)
	require.True(t, tr.Flat)

	lines := tr.Lines()
	require.Len(t, lines, Height)
	assert.Equal(t, strings.Repeat("-", Width), lines[Center-1])
	for i, l := range lines {
		assert.Len(t, l, Width)
		if i != Center-1 {
			assert.Equal(t, strings.Repeat(" ", Width), l)
		}
	}
}

func TestStep(t *testing.T) {
	assert.Equal(t, 267, Step(2616))
	assert.Equal(t, 450, Step(4400))
	assert.Equal(t, 0, Step(0))
	assert.Equal(t, 6144, Step(60000))
}

func TestRenderSingleNote(t *testing.T) {
	tr := Render([]uint16{2616})
	require.False(t, tr.Flat)

	// 267 mod 128 = 11, so column x samples sine[11*x mod 128]
	phase := 0
	for x := 0; x < Width; x++ {
		want := Center - Amplitude*int(sine[phase%128])/100
		assert.Equal(t, want, tr.Rows[x], "column %d", x)
		phase += 267
	}
	assert.Equal(t, []int{12, 8, 5, 4}, tr.Rows[:4])
}

func TestRenderStaysOnScreen(t *testing.T) {
	for _, f := range []uint16{1, 81, 2616, 4939, 60000} {
		tr := Render([]uint16{f})
		for x, y := range tr.Rows {
			assert.GreaterOrEqual(t, y, 1, "f=%d x=%d", f, x)
			assert.LessOrEqual(t, y, Height, "f=%d x=%d", f, x)
		}
	}
}

func TestRenderAveragesChord(t *testing.T) {
	chord := Render([]uint16{2616, 3296, 3920})
	single := Render([]uint16{Mean([]uint16{2616, 3296, 3920})})
	assert.Equal(t, single, chord)
	assert.Equal(t, uint16(3277), Mean([]uint16{2616, 3296, 3920}))
}

func TestLinesMarkers(t *testing.T) {
	lines := Render([]uint16{2616}).Lines()
	count := 0
	for _, l := range lines {
		count += strings.Count(l, "*")
	}
	assert.Equal(t, Width, count)
}

func TestFrameHeader(t *testing.T) {
	f := Frame{Header: []string{"Playing sheet...", strings.Repeat("x", 100)}}
	lines := f.Lines()

	require.Len(t, lines, Height)
	assert.True(t, strings.HasPrefix(lines[0], "Playing sheet..."))
	assert.Len(t, lines[0], Width)
	assert.Equal(t, strings.Repeat("x", Width), lines[1])
	assert.Equal(t, strings.Repeat("-", Width), lines[Center-1])
	assert.Contains(t, f.String(), "Playing sheet...")
}

func TestScreenFunc(t *testing.T) {
	var got []Frame
	s := ScreenFunc(func(f Frame) { got = append(got, f) })
	s.Show(Frame{Freqs: []uint16{1}})
	Discard.Show(Frame{})
	assert.Len(t, got, 1)
}
