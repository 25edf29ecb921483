package live

import (
	"testing"

	"github.com/icco/sheetplay/internal/input"
	"github.com/icco/sheetplay/internal/notation"
	"github.com/stretchr/testify/assert"
)

func TestDefaultBindings(t *testing.T) {
	table := NewTable(DefaultBindings)
	assert.Equal(t, MaxBindings, table.Len())
	assert.Equal(t, input.Key("a"), table.At(0).Key)
	assert.Equal(t, uint8(74), table.At(14).Pitch)

	for i := 0; i < table.Len(); i++ {
		b := table.At(i)
		assert.Equal(t, uint8(60+i), b.Pitch)
		// within a tenth of a Hz per octave doubling of the estimate
		assert.InDelta(t, notation.Freq10(int(b.Pitch)), b.Freq, 2, "pitch %d", b.Pitch)
	}
}

func TestTableTruncates(t *testing.T) {
	var many []Binding
	for i := 0; i < 20; i++ {
		many = append(many, Bind(input.Key(rune('a'+i)), uint8(40+i)))
	}
	table := NewTable(many)

	assert.Equal(t, MaxBindings, table.Len())
	assert.Len(t, table.Keys(), MaxBindings)
	assert.Len(t, table.Pitches(), MaxBindings)
}

func TestTablePitches(t *testing.T) {
	table := NewTable([]Binding{Bind("a", 60), Bind("b", 60), Bind("c", 62)})
	assert.Equal(t, map[uint8]input.Key{60: "a", 62: "c"}, table.Pitches())
	assert.Equal(t, []input.Key{"a", "b", "c"}, table.Keys())
}

func TestBind(t *testing.T) {
	assert.Equal(t, Binding{Key: "x", Pitch: 69, Freq: 4400}, Bind("x", 69))
}
