// Package live turns held keys into sounding notes in realtime
package live

import (
	"github.com/icco/sheetplay/internal/input"
	"github.com/icco/sheetplay/internal/notation"
)

// MaxBindings is the capacity of the key table. Extra bindings are dropped.
const MaxBindings = 15

// Binding ties a physical key to a pitch and its reference frequency in
// tenths of Hz
type Binding struct {
	Key   input.Key
	Pitch uint8
	Freq  uint16
}

// DefaultBindings lays C4..D5 over the home row, with sharps on the row
// above like a piano keyboard.
var DefaultBindings = []Binding{
	{"a", 60, 2616}, {"w", 61, 2772}, {"s", 62, 2937}, {"e", 63, 3111},
	{"d", 64, 3296}, {"f", 65, 3492}, {"t", 66, 3700}, {"g", 67, 3920},
	{"y", 68, 4153}, {"h", 69, 4400}, {"u", 70, 4662}, {"j", 71, 4939},
	{"k", 72, 5233}, {"o", 73, 5544}, {"p", 74, 5873},
}

// Bind builds a binding for key and pitch using the estimated frequency
func Bind(key input.Key, pitch uint8) Binding {
	return Binding{Key: key, Pitch: pitch, Freq: notation.Freq10(int(pitch))}
}

// Table is a bounded, fixed key table
type Table struct {
	bindings []Binding
}

// NewTable copies at most MaxBindings bindings
func NewTable(bindings []Binding) Table {
	n := min(len(bindings), MaxBindings)
	t := Table{bindings: make([]Binding, n)}
	copy(t.bindings, bindings[:n])
	return t
}

// Len returns the number of bindings
func (t Table) Len() int { return len(t.bindings) }

// At returns binding i
func (t Table) At(i int) Binding { return t.bindings[i] }

// Keys lists the bound keys in table order, for input.NewKeyboard
func (t Table) Keys() []input.Key {
	keys := make([]input.Key, len(t.bindings))
	for i, b := range t.bindings {
		keys[i] = b.Key
	}
	return keys
}

// Pitches maps each bound pitch to its key, for a MIDI keyboard listener
func (t Table) Pitches() map[uint8]input.Key {
	m := make(map[uint8]input.Key, len(t.bindings))
	for _, b := range t.bindings {
		if _, ok := m[b.Pitch]; !ok {
			m[b.Pitch] = b.Key
		}
	}
	return m
}
