package scope

import "strings"

// Frame is one screen update: status lines drawn over the top rows and the
// trace for the frequencies sounding at that moment.
type Frame struct {
	Header []string
	Freqs  []uint16
}

// Lines renders the frame as Height lines of Width columns
func (f Frame) Lines() []string {
	lines := Render(f.Freqs).Lines()
	for i, h := range f.Header {
		if i >= len(lines) {
			break
		}
		row := []byte(lines[i])
		copy(row, h)
		lines[i] = string(row)
	}
	return lines
}

func (f Frame) String() string {
	return strings.Join(f.Lines(), "\n")
}

// Screen shows frames. Implementations must not block the caller for long.
type Screen interface {
	Show(f Frame)
}

// ScreenFunc adapts a function to Screen
type ScreenFunc func(f Frame)

// Show calls fn(f)
func (fn ScreenFunc) Show(f Frame) { fn(f) }

// Discard is a Screen that drops every frame
var Discard Screen = ScreenFunc(func(Frame) {})
