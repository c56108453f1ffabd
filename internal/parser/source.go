// Package parser builds type descriptors from Java interface source.
package parser

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/alecthomas/participle/v2"

	"github.com/toyz/implementor/internal/errors"
	"github.com/toyz/implementor/internal/models"
)

const byteOrderMark = "\ufeff"

// parseUnit parses one compilation unit. Parse failures are reported as
// SyntaxFailure errors carrying the position participle reported.
func parseUnit(filename string, src []byte) (*compilationUnit, error) {
	text := strings.TrimPrefix(string(src), byteOrderMark)
	text = translateUnicodeEscapes(text)

	unit, err := javaParser.ParseString(filename, text)
	if err != nil {
		loc := errors.SourceLocation{File: filename}
		var perr participle.Error
		if stderrors.As(err, &perr) {
			pos := perr.Position()
			loc.Line = pos.Line
			loc.Column = pos.Column
		}
		return nil, errors.WrapSyntaxError(filename, loc, err).
			WithSuggestion("Check that the file is valid Java source")
	}
	return unit, nil
}

// translateUnicodeEscapes replaces \uXXXX escapes the way the Java compiler
// does before tokenizing: the backslash must not itself be escaped and any
// number of 'u' characters may follow it.
func translateUnicodeEscapes(s string) string {
	if !strings.Contains(s, `\u`) {
		return s
	}

	var out strings.Builder
	out.Grow(len(s))

	var high rune = -1
	backslashes := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' || backslashes%2 == 1 || i+1 >= len(s) || s[i+1] != 'u' {
			if high >= 0 {
				out.WriteRune(high)
				high = -1
			}
			if c == '\\' {
				backslashes++
			} else {
				backslashes = 0
			}
			out.WriteByte(c)
			i++
			continue
		}

		j := i + 1
		for j < len(s) && s[j] == 'u' {
			j++
		}
		if j+4 > len(s) {
			out.WriteString(s[i:])
			return out.String()
		}
		value, err := strconv.ParseUint(s[j:j+4], 16, 16)
		if err != nil {
			out.WriteString(s[i:j])
			backslashes = 0
			i = j
			continue
		}

		unit := rune(value)
		switch {
		case high >= 0 && unit >= 0xDC00 && unit <= 0xDFFF:
			out.WriteRune(utf16.DecodeRune(high, unit))
			high = -1
		case unit >= 0xD800 && unit < 0xDC00:
			if high >= 0 {
				out.WriteRune(high)
			}
			high = unit
		default:
			if high >= 0 {
				out.WriteRune(high)
				high = -1
			}
			out.WriteRune(unit)
		}
		backslashes = 0
		i = j + 4
	}
	if high >= 0 {
		out.WriteRune(high)
	}

	return out.String()
}

// ParseSource builds the descriptor of the first top-level type declared in
// src. Superinterfaces are only followed when they are declared in the same
// source; no files are looked up.
func ParseSource(filename string, src []byte) (*models.TypeDescriptor, error) {
	ast, err := parseUnit(filename, src)
	if err != nil {
		return nil, err
	}

	unit := newSourceUnit(filename, "", ast)
	if len(unit.order) == 0 {
		return nil, errors.Newf(errors.ResolutionFailureCode, "%s declares no types", filename).
			WithContext("file", filename).
			WithSuggestion("Post the source of a single interface")
	}

	target := unit.order[0]
	for _, t := range unit.order {
		if t.modifiers["public"] {
			target = t
			break
		}
	}

	return NewResolver(nil).withUnit(unit).describe(target)
}

// SourceName returns the file name a top-level type is expected in
func SourceName(simpleName string) string {
	return fmt.Sprintf("%s.java", simpleName)
}
