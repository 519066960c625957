package bullet

import "regexp"

// Markers lists the recognized bullet characters.
const Markers = "-*+"

// space matches Unicode whitespace: ASCII \s plus \v, the Zs category,
// the line and paragraph separators and the byte order mark.
const space = `[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

var (
	prefixPattern = regexp.MustCompile(`^` + space + `*[-*+]` + space + `+`)
	blankPattern  = regexp.MustCompile(`^` + space + `*[-*+]` + space + `+$`)
)

// Kind classifies a line of text.
type Kind uint8

const (
	// KindNone is a line without a bullet prefix.
	KindNone Kind = iota
	// KindItem is a bulleted line carrying item text.
	KindItem
	// KindBlank is a bulleted line with no item text.
	KindBlank
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindItem:
		return "item"
	case KindBlank:
		return "blank"
	default:
		return "unknown"
	}
}

// Parse returns the bullet prefix of line: leading whitespace, the marker
// and the whitespace following it. ok is false if line has no prefix.
func Parse(line string) (prefix string, ok bool) {
	loc := prefixPattern.FindStringIndex(line)
	if loc == nil {
		return "", false
	}
	return line[:loc[1]], true
}

// IsBlank reports whether line consists solely of a bullet prefix.
func IsBlank(line string) bool {
	return blankPattern.MatchString(line)
}

// Classify returns the kind of line.
func Classify(line string) Kind {
	if IsBlank(line) {
		return KindBlank
	}
	if _, ok := Parse(line); ok {
		return KindItem
	}
	return KindNone
}

// Marker returns the marker character of a prefix returned by Parse.
// It returns 0 if prefix holds no marker.
func Marker(prefix string) rune {
	for _, r := range prefix {
		switch r {
		case '-', '*', '+':
			return r
		}
	}
	return 0
}
