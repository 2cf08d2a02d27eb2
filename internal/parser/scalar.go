package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// unquote decodes a PHP string literal, quotes included, into its value.
// Single-quoted strings only know \' and \\; double-quoted strings decode the
// full escape set and keep unknown escapes verbatim, as PHP does.
func unquote(raw string) (string, bool) {
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "b"), "B")
	if len(raw) < 2 || raw[0] != raw[len(raw)-1] {
		return "", false
	}
	body := raw[1 : len(raw)-1]
	switch raw[0] {
	case '\'':
		return unquoteSingle(body), true
	case '"':
		return unquoteDouble(body), true
	}
	return "", false
}

func unquoteSingle(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '\\' || s[i+1] == '\'') {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

var simpleEscapes = map[byte]byte{
	'n': '\n', 't': '\t', 'r': '\r', 'v': '\v', 'e': 0x1b, 'f': '\f',
	'\\': '\\', '$': '$', '"': '"',
}

func unquoteDouble(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		next := s[i+1]
		if r, ok := simpleEscapes[next]; ok {
			b.WriteByte(r)
			i++
			continue
		}
		switch {
		case next >= '0' && next <= '7':
			j := i + 1
			for j < len(s) && j < i+4 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			v, _ := strconv.ParseUint(s[i+1:j], 8, 16)
			b.WriteByte(byte(v))
			i = j - 1
		case next == 'x' && i+2 < len(s) && isHex(s[i+2]):
			j := i + 2
			for j < len(s) && j < i+4 && isHex(s[j]) {
				j++
			}
			v, _ := strconv.ParseUint(s[i+2:j], 16, 8)
			b.WriteByte(byte(v))
			i = j - 1
		case next == 'u' && i+2 < len(s) && s[i+2] == '{':
			end := strings.IndexByte(s[i+3:], '}')
			if end < 0 {
				b.WriteByte(c)
				continue
			}
			v, err := strconv.ParseUint(s[i+3:i+3+end], 16, 32)
			if err != nil || v > utf8.MaxRune {
				b.WriteByte(c)
				continue
			}
			b.WriteRune(rune(v))
			i += 3 + end
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// normalizeInt renders an integer literal in decimal so that 0x1A, 0b11010,
// 032 and 26 compare equal. Literals that overflow int64 keep their spelling.
func normalizeInt(text string) string {
	clean := strings.ReplaceAll(text, "_", "")
	if len(clean) > 1 && clean[0] == '0' && clean[1] >= '0' && clean[1] <= '9' {
		clean = "0o" + clean[1:]
	}
	v, err := strconv.ParseInt(clean, 0, 64)
	if err != nil {
		return text
	}
	return strconv.FormatInt(v, 10)
}
