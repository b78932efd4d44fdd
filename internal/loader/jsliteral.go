package loader

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// requote rewrites every string literal in esbuild output as a YAML-safe
// double-quoted string and replaces bare undefined values with null.
// esbuild may print strings single-quoted or as template literals, neither
// of which YAML reads with JavaScript escape semantics.
func requote(name, code string) (string, error) {
	var b strings.Builder
	b.Grow(len(code))

	for i := 0; i < len(code); {
		c := code[i]
		switch {
		case c == '"' || c == '\'' || c == '`':
			value, end, err := scanString(code, i)
			if err != nil {
				return "", &SourceReadError{File: name, Line: lineAt(code, i), Message: "invalid js literal: " + err.Error()}
			}
			b.WriteString(strconv.Quote(value))
			i = end

		default:
			if n := undefinedAt(code, i); n > 0 {
				b.WriteString("null")
				i += n
				continue
			}
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), nil
}

// undefinedAt returns the length of a bare undefined value at code[i], or 0.
func undefinedAt(code string, i int) int {
	if identAt(code, i-1) {
		return 0
	}
	for _, tok := range []string{"void 0", "undefined"} {
		if strings.HasPrefix(code[i:], tok) && !identAt(code, i+len(tok)) {
			return len(tok)
		}
	}
	return 0
}

// scanString decodes the string literal starting at code[start] and returns
// its value and the offset just past the closing quote.
func scanString(code string, start int) (string, int, error) {
	quote := code[start]
	var runes []rune

	for i := start + 1; i < len(code); {
		c := code[i]
		switch {
		case c == quote:
			return joinSurrogates(runes), i + 1, nil

		case quote == '`' && strings.HasPrefix(code[i:], "${"):
			return "", 0, fmt.Errorf("template expressions are not supported")

		case c == '\\':
			r, n, err := scanEscape(code[i+1:])
			if err != nil {
				return "", 0, err
			}
			if r >= 0 {
				runes = append(runes, r)
			}
			i += 1 + n

		case (c == '\n' || c == '\r') && quote != '`':
			return "", 0, fmt.Errorf("unterminated string")

		default:
			r, size := utf8.DecodeRuneInString(code[i:])
			runes = append(runes, r)
			i += size
		}
	}
	return "", 0, fmt.Errorf("unterminated string")
}

// scanEscape decodes the escape sequence following a backslash. It returns
// the rune (-1 for a line continuation) and the number of bytes consumed.
func scanEscape(s string) (rune, int, error) {
	if s == "" {
		return 0, 0, fmt.Errorf("unterminated escape")
	}
	switch s[0] {
	case 'n':
		return '\n', 1, nil
	case 'r':
		return '\r', 1, nil
	case 't':
		return '\t', 1, nil
	case 'b':
		return '\b', 1, nil
	case 'f':
		return '\f', 1, nil
	case 'v':
		return '\v', 1, nil
	case '0':
		return 0, 1, nil
	case '\n':
		return -1, 1, nil
	case '\r':
		if strings.HasPrefix(s, "\r\n") {
			return -1, 2, nil
		}
		return -1, 1, nil
	case 'x':
		if len(s) < 3 {
			return 0, 0, fmt.Errorf("invalid \\x escape")
		}
		v, err := strconv.ParseUint(s[1:3], 16, 8)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid \\x escape")
		}
		return rune(v), 3, nil
	case 'u':
		if strings.HasPrefix(s, "u{") {
			end := strings.IndexByte(s, '}')
			if end < 0 {
				return 0, 0, fmt.Errorf("invalid \\u escape")
			}
			v, err := strconv.ParseUint(s[2:end], 16, 32)
			if err != nil || v > utf8.MaxRune {
				return 0, 0, fmt.Errorf("invalid \\u escape")
			}
			return rune(v), end + 1, nil
		}
		if len(s) < 5 {
			return 0, 0, fmt.Errorf("invalid \\u escape")
		}
		v, err := strconv.ParseUint(s[1:5], 16, 16)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid \\u escape")
		}
		return rune(v), 5, nil
	}

	r, size := utf8.DecodeRuneInString(s)
	if r == '\u2028' || r == '\u2029' {
		return -1, size, nil
	}
	return r, size, nil
}

// joinSurrogates combines UTF-16 surrogate pairs produced by \u escapes.
func joinSurrogates(runes []rune) string {
	var b strings.Builder
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if utf16.IsSurrogate(r) && i+1 < len(runes) {
			if pair := utf16.DecodeRune(r, runes[i+1]); pair != utf8.RuneError {
				b.WriteRune(pair)
				i++
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

func identAt(code string, i int) bool {
	if i < 0 || i >= len(code) {
		return false
	}
	c := code[i]
	return c == '_' || c == '$' || c == '.' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func lineAt(code string, offset int) int {
	return strings.Count(code[:offset], "\n") + 1
}
