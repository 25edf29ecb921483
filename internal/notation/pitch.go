// Package notation parses the sheet notation and resolves pitches and durations
package notation

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

const (
	middleC      = 60    // C4
	maxPitch     = 127   // Highest MIDI note number
	maxFreq10    = 60000 // 6000.0 Hz in tenths of Hz
	maxOctaveArg = 1000  // Octave digits saturate here so long runs can't overflow
)

// ErrNoPitch is returned when a string does not start with a note name
var ErrNoPitch = errors.New("no pitch")

// Semitone offset of each natural note from C
var naturals = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// Reference frequencies (tenths of Hz) for C4..B4
var baseFreq10 = [12]uint16{
	2616, 2772, 2937, 3111, 3296, 3492, 3700, 3920, 4153, 4400, 4662, 4939,
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// ParsePitch reads <Letter A-G>[#|b]<digits> from the start of s and returns
// the MIDI pitch (C4 = 60) together with the number of bytes consumed.
func ParsePitch(s string) (pitch int, n int, err error) {
	if len(s) == 0 {
		return 0, 0, ErrNoPitch
	}
	sem, ok := naturals[upper(s[0])]
	if !ok {
		return 0, 0, ErrNoPitch
	}
	i := 1
	if i < len(s) {
		switch s[i] {
		case '#':
			sem++
			i++
		case 'b', 'B':
			sem--
			i++
		}
	}
	if i >= len(s) || !isDigit(s[i]) {
		return 0, 0, ErrNoPitch
	}
	octave := 0
	for i < len(s) && isDigit(s[i]) {
		if octave < maxOctaveArg {
			octave = octave*10 + int(s[i]-'0')
		}
		i++
	}
	return 12*(octave+1) + sem, i, nil
}

// Freq10 estimates the frequency of pitch in tenths of Hz by shifting the
// octave-4 reference table up or down whole octaves.
func Freq10(pitch int) uint16 {
	rel := pitch - middleC
	octave := rel / 12
	sem := rel % 12
	if sem < 0 {
		sem += 12
		octave--
	}
	f := uint64(baseFreq10[sem])
	for ; octave > 0 && f <= maxFreq10; octave-- {
		f <<= 1
	}
	for ; octave < 0; octave++ {
		f >>= 1
	}
	return uint16(clamp(f, 0, maxFreq10)) //nolint:gosec // clamped to maxFreq10
}

// PitchName formats a MIDI pitch as a note name such as "C#4"
func PitchName(pitch int) string {
	if pitch < 0 {
		return fmt.Sprintf("?%d", pitch)
	}
	return fmt.Sprintf("%s%d", noteNames[pitch%12], pitch/12-1)
}

func clamp[T constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}
