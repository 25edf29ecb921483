// Package scope renders the single averaged oscilloscope trace shown while
// notes sound
package scope

import "strings"

// Display geometry, 1-based rows as on a text screen
const (
	Width     = 80
	Height    = 24
	Center    = 12
	Amplitude = 10

	Marker = '*'
	Flat   = '-'
)

// One period of a sine, scaled to +/-83
var sine = [128]int8{
	0, 5, 10, 15, 20, 24, 29, 33, 37, 41, 45, 48, 52, 55, 58, 61,
	64, 66, 69, 71, 73, 75, 76, 78, 79, 80, 81, 82, 82, 83, 83, 83,
	83, 83, 82, 82, 81, 80, 79, 78, 76, 75, 73, 71, 69, 66, 64, 61,
	58, 55, 52, 48, 45, 41, 37, 33, 29, 24, 20, 15, 10, 5, 0, -5,
	-10, -15, -20, -24, -29, -33, -37, -41, -45, -48, -52, -55, -58, -61, -64, -66,
	-69, -71, -73, -75, -76, -78, -79, -80, -81, -82, -82, -83, -83, -83, -83, -83,
	-82, -82, -81, -80, -79, -78, -76, -75, -73, -71, -69, -66, -64, -61, -58, -55,
	-52, -48, -45, -41, -37, -33, -29, -24, -20, -15, -10, -5,
}

// Trace is the row of the marker in each column. A flat trace has every
// column on the center row.
type Trace struct {
	Rows [Width]int
	Flat bool
}

// Mean averages frequencies given in tenths of Hz
func Mean(freqs []uint16) uint16 {
	if len(freqs) == 0 {
		return 0
	}
	var acc uint64
	for _, f := range freqs {
		acc += uint64(f)
	}
	return uint16(acc / uint64(len(freqs))) //nolint:gosec // mean of uint16 values fits
}

// Step converts a frequency in tenths of Hz to a phase increment per column
func Step(freq10 uint16) int {
	return int(freq10) * 256 / 2500
}

// Render computes the trace for the sounding frequencies. All of them are
// blended into one tone at their mean frequency.
func Render(freqs []uint16) Trace {
	var t Trace
	if len(freqs) == 0 {
		t.Flat = true
		for x := range t.Rows {
			t.Rows[x] = Center
		}
		return t
	}

	step := Step(Mean(freqs))
	phase := 0
	for x := range t.Rows {
		s := int(sine[phase%len(sine)])
		t.Rows[x] = min(max(Center-Amplitude*s/100, 1), Height)
		phase += step
	}
	return t
}

// Lines draws the trace into a Height x Width grid of text
func (t Trace) Lines() []string {
	grid := blank()
	mark := byte(Marker)
	if t.Flat {
		mark = Flat
	}
	for x, y := range t.Rows {
		grid[y-1][x] = mark
	}
	lines := make([]string, Height)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return lines
}

func blank() [][]byte {
	grid := make([][]byte, Height)
	for i := range grid {
		grid[i] = []byte(strings.Repeat(" ", Width))
	}
	return grid
}
