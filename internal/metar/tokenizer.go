package metar

import "strings"

// Section identifies which part of a report a token belongs to.
type Section int

const (
	SectionMain Section = iota
	SectionTrend
	SectionRemark
)

// Sanitize normalizes a raw report: uppercase, NULs removed, the trailing
// "=" message terminator dropped and runs of whitespace collapsed to single
// spaces.
func Sanitize(raw string) string {
	s := strings.ToUpper(raw)
	s = strings.ReplaceAll(s, "\x00", "")
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimSuffix(s, "=")
	return strings.TrimSpace(s)
}

// Tokenize sanitizes a raw report and splits it into tokens. Tokenizing the
// rejoined tokens yields the same tokens again.
func Tokenize(raw string) []string {
	return strings.Fields(Sanitize(raw))
}

// sectionMarker classifies a token that switches sections. TEMPO and BECMG
// open a trend change block, NOSIG is a complete trend on its own and RMK
// starts the free-text remark tail.
func sectionMarker(token string) (Section, TrendIndicator, bool) {
	switch token {
	case "NOSIG":
		return SectionTrend, TrendNoSignificantChange, true
	case "TEMPO":
		return SectionTrend, TrendTemporary, true
	case "BECMG":
		return SectionTrend, TrendBecoming, true
	case "RMK":
		return SectionRemark, "", true
	}
	return SectionMain, "", false
}
