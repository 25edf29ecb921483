package notation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePitch(t *testing.T) {
	tests := []struct {
		in    string
		pitch int
		n     int
	}{
		{"C4", 60, 2},
		{"C#4", 61, 3},
		{"Bb3", 58, 3},
		{"bB3", 58, 3},
		{"c4", 60, 2},
		{"A4q", 69, 2},
		{"G#10", 140, 4},
		{"C0", 12, 2},
		{"Cb0", 11, 3},
		{"E4e.", 64, 2},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			pitch, n, err := ParsePitch(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.pitch, pitch)
			assert.Equal(t, tt.n, n)
		})
	}
}

func TestParsePitchFailures(t *testing.T) {
	for _, in := range []string{"", "H4", "#4", "C", "C#", "Cb", "R4", "1C", "C#x4"} {
		t.Run(in, func(t *testing.T) {
			_, n, err := ParsePitch(in)
			assert.ErrorIs(t, err, ErrNoPitch)
			assert.Zero(t, n)
		})
	}
}

func TestFreq10(t *testing.T) {
	tests := []struct {
		pitch int
		want  uint16
	}{
		{60, 2616},
		{69, 4400},
		{71, 4939},
		{72, 5232},
		{48, 1308},
		{59, 2469}, // B3 borrows an octave
		{57, 2200},
		{0, 81},
		{96, 20928},
		{108, 41856},
		{120, 60000}, // clamped
		{127, 60000},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Freq10(tt.pitch), "pitch %d", tt.pitch)
	}
}

func TestPitchName(t *testing.T) {
	assert.Equal(t, "C4", PitchName(60))
	assert.Equal(t, "C#4", PitchName(61))
	assert.Equal(t, "A#3", PitchName(58))
	assert.Equal(t, "C-1", PitchName(0))
}
