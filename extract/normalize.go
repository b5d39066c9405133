package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// MaxTextRunes caps normalized title and description text.
const MaxTextRunes = 2000

// mojibakeMarker shows up when UTF-8 bytes were mis-decoded as Latin-1
// (the lead byte of most emoji becomes U+00F0).
const mojibakeMarker = "ð"

var blankLineRuns = regexp.MustCompile(`\n{3,}`)

// CleanText repairs a raw text payload scraped out of HTML or JSON into
// clean, bounded, printable text. It is total: it never fails, degrading to
// best-effort output instead. Empty input passes through unchanged — within
// this package the empty string means "absent", and sentinel strings are
// applied only at the composite boundary.
//
// The pipeline: decode one level of backslash escapes, repair mis-decoded
// UTF-8, trim each line, collapse runs of blank lines, force UTF-8 validity,
// and cap the length at MaxTextRunes runes (appending "..." if truncated).
func CleanText(raw string) string {
	if raw == "" {
		return ""
	}

	s := decodeEscapes(raw)
	s = repairMojibake(s)

	// Trim each line while preserving intentional line breaks.
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	s = strings.Join(lines, "\n")

	// At most one blank line in a row.
	s = blankLineRuns.ReplaceAllString(s, "\n\n")

	s = strings.ToValidUTF8(s, string(utf8.RuneError))

	if runes := []rune(s); len(runes) > MaxTextRunes {
		s = string(runes[:MaxTextRunes]) + "..."
	}

	return strings.TrimSpace(s)
}

// decodeEscapes decodes one level of backslash escapes of the kind found
// inside JSON string literals. Unrecognized escapes are left as-is.
func decodeEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			i++
			continue
		}
		switch next := s[i+1]; next {
		case 'n':
			b.WriteByte('\n')
			i += 2
		case 'r':
			b.WriteByte('\r')
			i += 2
		case 't':
			b.WriteByte('\t')
			i += 2
		case '"', '\'', '\\', '/':
			b.WriteByte(next)
			i += 2
		case 'u':
			r, size, ok := decodeUnicodeEscape(s[i:])
			if !ok {
				b.WriteByte(c)
				i++
				continue
			}
			b.WriteRune(r)
			i += size
		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String()
}

// decodeUnicodeEscape decodes a \uXXXX sequence at the start of s, joining
// UTF-16 surrogate pairs when both halves are present.
func decodeUnicodeEscape(s string) (rune, int, bool) {
	if len(s) < 6 {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(s[2:6], 16, 32)
	if err != nil {
		return 0, 0, false
	}
	r := rune(v)
	if !utf16.IsSurrogate(r) {
		return r, 6, true
	}
	if len(s) >= 12 && s[6] == '\\' && s[7] == 'u' {
		if v2, err := strconv.ParseUint(s[8:12], 16, 32); err == nil {
			if joined := utf16.DecodeRune(r, rune(v2)); joined != utf8.RuneError {
				return joined, 12, true
			}
		}
	}
	// Lone surrogate: replace rather than fail.
	return utf8.RuneError, 6, true
}

// repairMojibake reinterprets text that was UTF-8 but got decoded as
// Latin-1. Only attempted when the marker character is present and every
// rune fits in Latin-1; otherwise the input is returned untouched.
func repairMojibake(s string) string {
	if !strings.Contains(s, mojibakeMarker) {
		return s
	}
	b := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return s
		}
		b = append(b, byte(r))
	}
	if !utf8.Valid(b) {
		return s
	}
	return string(b)
}
