package textbuf

import "strings"

// EOLKind selects the line terminator a buffer normalizes its content to.
type EOLKind int

const (
	// EOLAuto picks the dominant terminator of the input text.
	// Ties and terminator-free input resolve to LF.
	EOLAuto EOLKind = iota

	// EOLLF normalizes to a single line feed.
	EOLLF

	// EOLCRLF normalizes to carriage return + line feed.
	EOLCRLF
)

// Options configures buffer construction.
type Options struct {
	// EOL is the terminator content is normalized to at construction.
	EOL EOLKind
}

// detectEOL returns the dominant terminator of text.
func detectEOL(text string) string {
	crlf := strings.Count(text, "\r\n")
	lf := strings.Count(text, "\n") - crlf
	if crlf > lf {
		return "\r\n"
	}
	return "\n"
}

// normalizeEOL rewrites every line terminator (CRLF, lone CR, lone LF)
// in text to eol.
func normalizeEOL(text, eol string) string {
	if !strings.ContainsAny(text, "\r\n") {
		return text
	}
	s := strings.ReplaceAll(text, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if eol == "\r\n" {
		s = strings.ReplaceAll(s, "\n", "\r\n")
	}
	return s
}
