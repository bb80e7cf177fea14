package token

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// Quote renders v in double quotes with the short escapes for backspace,
// form feed, newline, carriage return, tab, quote and backslash, and a
// \u00XX escape for any other control rune.
func Quote(v string) string {
	d := make([]byte, 1, len(v)+2)
	d[0] = '"'
	ucs := []byte{0, 0}
	cps := []byte{0, 0, 0, 0}
	for _, r := range v {
		switch r {
		case '"':
			d = append(d, '\\', '"')
		case '\\':
			d = append(d, '\\', '\\')
		case '\b':
			d = append(d, '\\', 'b')
		case '\f':
			d = append(d, '\\', 'f')
		case '\n':
			d = append(d, '\\', 'n')
		case '\r':
			d = append(d, '\\', 'r')
		case '\t':
			d = append(d, '\\', 't')
		default:
			if unicode.IsControl(r) {
				ucs[0] = byte(r >> 8)
				ucs[1] = byte(r)
				cps = hex.AppendEncode(cps[:0], ucs)
				d = append(d, '\\', 'u', cps[0], cps[1], cps[2], cps[3])
			} else {
				d = utf8.AppendRune(d, r)
			}
		}
	}
	d = append(d, '"')
	return string(d)
}

// scanQuoted returns the number of bytes of d, starting at its opening
// quote, that make up a complete quoted string, validating escapes on the
// way.
func scanQuoted(d []byte) (int, error) {
	if len(d) == 0 || d[0] != '"' {
		return 0, ErrUnterminated
	}
	escaped := false
	start := 1
	n := len(d)
	for start < n {
		r, sz := utf8.DecodeRune(d[start:])
		start += sz
		switch r {
		case utf8.RuneError:
			return 0, ErrBadUTF8
		case '"':
			if !escaped {
				return start, nil
			}
			escaped = false
		case 'u':
			if escaped {
				if start+4 > n {
					return start, ErrUnterminated
				}
				if !allHex(d[start : start+4]) {
					return start, ErrBadUnicode
				}
			}
			escaped = false
		case '/', 'b', 'f', 'n', 'r', 't':
			escaped = false
		case '\\':
			escaped = !escaped
		default:
			if unicode.IsControl(r) {
				return start, ErrUnicodeControl
			}
			if escaped {
				return start, ErrBadEscape
			}
			escaped = false
		}
	}
	return 0, ErrUnterminated
}

func allHex(d []byte) bool {
	for _, c := range d {
		if c >= '0' && c <= '9' {
			continue
		}
		if c >= 'a' && c <= 'f' {
			continue
		}
		if c >= 'A' && c <= 'F' {
			continue
		}
		return false
	}
	return true
}

// QuotedToString unescapes a complete quoted string token, pairing UTF-16
// surrogates written as consecutive \u escapes.
func QuotedToString(d []byte) string {
	b := &strings.Builder{}
	i := 1
	esc := false
	for i < len(d) {
		r, sz := utf8.DecodeRune(d[i:])
		i += sz
		switch r {
		case '\\':
			if esc {
				b.WriteByte('\\')
			}
			esc = !esc
		case '"':
			if !esc {
				if i != len(d) {
					panic(fmt.Sprintf("internal string: trailing %q", string(d[i:])))
				}
				return b.String()
			}
			b.WriteByte('"')
			esc = false
		default:
			if !esc {
				b.WriteRune(r)
				continue
			}
			esc = false
			switch r {
			case 't':
				b.WriteByte('\t')
			case 'n':
				b.WriteByte('\n')
			case 'f':
				b.WriteByte('\f')
			case 'r':
				b.WriteByte('\r')
			case '/':
				b.WriteByte('/')
			case 'b':
				b.WriteByte('\b')
			case 'u':
				u, ok := hex4(d[i:])
				if !ok {
					b.WriteRune(utf8.RuneError)
					return b.String()
				}
				i += 4
				if utf16.IsSurrogate(u) && i+6 <= len(d) && d[i] == '\\' && d[i+1] == 'u' {
					if u2, ok := hex4(d[i+2:]); ok {
						if c := utf16.DecodeRune(u, u2); c != utf8.RuneError {
							b.WriteRune(c)
							i += 6
							continue
						}
					}
				}
				b.WriteRune(u)
			default:
				panic(fmt.Sprintf("internal string escape %q", string(r)))
			}
		}
	}
	return b.String()
}

func hex4(d []byte) (rune, bool) {
	if len(d) < 4 {
		return 0, false
	}
	dst := []byte{0, 0}
	if _, err := hex.Decode(dst, d[:4]); err != nil {
		return 0, false
	}
	return rune(dst[0])<<8 | rune(dst[1]), true
}
