package templates

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Escape replaces every character with a code point of 128 or more by a
// \uXXXX escape. Code points outside the BMP become a surrogate pair of
// escapes, which is how the Java compiler reads them back.
func Escape(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	for _, r := range s {
		if r < 128 {
			out.WriteRune(r)
			continue
		}
		if r > 0xFFFF {
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&out, "\\u%04x\\u%04x", hi, lo)
			continue
		}
		fmt.Fprintf(&out, "\\u%04x", r)
	}

	return out.String()
}

// Unescape reverses Escape. Malformed escapes are copied through unchanged.
func Unescape(s string) string {
	if !strings.Contains(s, `\u`) {
		return s
	}

	var out strings.Builder
	out.Grow(len(s))

	var pending rune = -1
	flush := func() {
		if pending >= 0 {
			out.WriteRune(pending)
			pending = -1
		}
	}

	for i := 0; i < len(s); {
		unit, ok := escapeAt(s, i)
		if !ok {
			flush()
			out.WriteByte(s[i])
			i++
			continue
		}
		i += 6

		switch {
		case pending >= 0 && utf16.IsSurrogate(pending) && unit >= 0xDC00 && unit <= 0xDFFF:
			out.WriteRune(utf16.DecodeRune(pending, unit))
			pending = -1
		case utf16.IsSurrogate(unit) && unit < 0xDC00:
			flush()
			pending = unit
		default:
			flush()
			out.WriteRune(unit)
		}
	}
	flush()

	return out.String()
}

// escapeAt decodes a \uXXXX escape starting at s[i]
func escapeAt(s string, i int) (rune, bool) {
	if i+6 > len(s) || s[i] != '\\' || s[i+1] != 'u' {
		return 0, false
	}
	value, err := strconv.ParseUint(s[i+2:i+6], 16, 16)
	if err != nil {
		return 0, false
	}
	return rune(value), true
}

// IsASCII reports whether s only contains characters below 128
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 128 {
			return false
		}
	}
	return true
}
