package naming

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// fallbackSeparator joins the capitalized road type and the segment id.
const fallbackSeparator = " Segment: "

// Source reports which rule produced a display name.
type Source int

const (
	// SourceOverride means the name came from the override table.
	SourceOverride Source = iota
	// SourceGenerated means the name was generated from road type and id.
	SourceGenerated
)

func (s Source) String() string {
	switch s {
	case SourceOverride:
		return "override"
	case SourceGenerated:
		return "generated"
	default:
		return "unknown"
	}
}

// Resolve returns the display name for a segment. A curated name from the
// table is used verbatim; otherwise the name is generated by Generated.
func Resolve(t *Table, segmentID, roadType string) (string, Source) {
	if name, ok := t.Lookup(segmentID); ok {
		return name, SourceOverride
	}
	return Generated(segmentID, roadType), SourceGenerated
}

// Generated builds the technical name "<RoadType> Segment: <id>", upper
// casing only the first letter of the road type.
func Generated(segmentID, roadType string) string {
	return upperFirst(roadType) + fallbackSeparator + segmentID
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return cases.Upper(language.Und).String(s[:size]) + s[size:]
}
