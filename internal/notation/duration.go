package notation

// Length is a duration letter: w, h, q, e or s
type Length byte

const (
	Whole     Length = 'w'
	Half      Length = 'h'
	Quarter   Length = 'q'
	Eighth    Length = 'e'
	Sixteenth Length = 's'
)

// ParseLength recognizes a duration letter, ignoring case
func ParseLength(c byte) (Length, bool) {
	switch l := Length(lower(c)); l {
	case Whole, Half, Quarter, Eighth, Sixteenth:
		return l, true
	}
	return 0, false
}

// ratio returns the length as a fraction of one quarter note
func (l Length) ratio() (num, den int) {
	switch l {
	case Whole:
		return 4, 1
	case Half:
		return 2, 1
	case Eighth:
		return 1, 2
	case Sixteenth:
		return 1, 4
	default:
		return 1, 1
	}
}

func (l Length) String() string {
	if l == 0 {
		return string(rune(Quarter))
	}
	return string(rune(l))
}

// Value is a duration letter plus the dotted flag as written in the sheet
type Value struct {
	Length Length
	Dotted bool
}

// Millis resolves v against the length of one quarter note. The result is
// truncated and never below 1.
func Millis(quarterMs int, v Value) int {
	num, den := v.Length.ratio()
	if v.Dotted {
		num *= 3
		den *= 2
	}
	return max(quarterMs*num/den, 1)
}

// Beat is the note value one tempo beat stands for
type Beat int

const (
	BeatQuarter Beat = iota
	BeatEighth
	BeatHalf
	BeatWhole
	BeatSixteenth
	BeatDottedQuarter
)

var beatNames = map[Beat]string{
	BeatQuarter:       "Q",
	BeatEighth:        "E",
	BeatHalf:          "H",
	BeatWhole:         "W",
	BeatSixteenth:     "S",
	BeatDottedQuarter: "DQ",
}

func (b Beat) String() string {
	if name, ok := beatNames[b]; ok {
		return name
	}
	return "?"
}

// QuarterMillis derives the length of a quarter note from the tempo and the
// beat unit. A zero tempo falls back to 500ms per beat.
func QuarterMillis(tempo int, beat Beat) int {
	beatMs := 500
	if tempo > 0 {
		beatMs = 60000 / tempo
	}
	var q int
	switch beat {
	case BeatHalf:
		q = beatMs / 2
	case BeatWhole:
		q = beatMs / 4
	case BeatEighth:
		q = beatMs * 2
	case BeatSixteenth:
		q = beatMs * 4
	case BeatDottedQuarter:
		q = beatMs * 2 / 3
	default:
		q = beatMs
	}
	return max(q, 1)
}
