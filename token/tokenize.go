package token

import "fmt"

// Tokenize scans a complete document into tokens. Token positions index
// into d and render with line, column and a context sample.
func Tokenize(d []byte) ([]Token, error) {
	posDoc := &PosDoc{d: d}
	var toks []Token
	i := 0
	n := len(d)
	for i < n {
		c := d[i]
		switch c {
		case ' ', '\t', '\r':
			i++
			continue
		case '\n':
			posDoc.nl(i)
			i++
			continue
		case '{':
			toks = append(toks, punct(TLCurl, posDoc, d, i))
			i++
		case '}':
			toks = append(toks, punct(TRCurl, posDoc, d, i))
			i++
		case '[':
			toks = append(toks, punct(TLSquare, posDoc, d, i))
			i++
		case ']':
			toks = append(toks, punct(TRSquare, posDoc, d, i))
			i++
		case ',':
			toks = append(toks, punct(TComma, posDoc, d, i))
			i++
		case ':':
			if i+1 < n && d[i+1] == ':' {
				w := word(d[i+2:])
				if w == 0 {
					return nil, NewTokenizeErr(ErrAnnotation, posDoc.Pos(i))
				}
				toks = append(toks, Token{
					Type:  TAnnotation,
					Pos:   posDoc.Pos(i),
					Bytes: d[i : i+2+w],
				})
				i += 2 + w
				continue
			}
			toks = append(toks, punct(TColon, posDoc, d, i))
			i++
		case '"':
			sz, err := scanQuoted(d[i:])
			if err != nil {
				return nil, NewTokenizeErr(err, posDoc.Pos(i))
			}
			toks = append(toks, Token{
				Type:  TString,
				Pos:   posDoc.Pos(i),
				Bytes: d[i : i+sz],
			})
			i += sz
		case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			j := i
			if c == '-' {
				j++
			}
			sz, isFloat, err := number(d[j:])
			if err != nil {
				return nil, NewTokenizeErr(err, posDoc.Pos(i))
			}
			tt := TokenType(TInteger)
			if isFloat {
				tt = TFloat
			}
			toks = append(toks, Token{
				Type:  tt,
				Pos:   posDoc.Pos(i),
				Bytes: d[i : j+sz],
			})
			i = j + sz
		default:
			w := word(d[i:])
			if w == 0 {
				return nil, UnexpectedErr(fmt.Sprintf("%q", string(c)), posDoc.Pos(i))
			}
			var tt TokenType
			switch string(d[i : i+w]) {
			case "true":
				tt = TTrue
			case "false":
				tt = TFalse
			case "null":
				tt = TNull
			default:
				return nil, NewTokenizeErr(
					fmt.Errorf("%w %q", ErrLiteral, string(d[i:i+w])), posDoc.Pos(i))
			}
			toks = append(toks, Token{
				Type:  tt,
				Pos:   posDoc.Pos(i),
				Bytes: d[i : i+w],
			})
			i += w
		}
	}
	return toks, nil
}

func punct(tt TokenType, posDoc *PosDoc, d []byte, i int) Token {
	return Token{
		Type:  tt,
		Pos:   posDoc.Pos(i),
		Bytes: d[i : i+1],
	}
}

// word scans an identifier of letters, digits and underscores.
func word(d []byte) int {
	i := 0
	for i < len(d) {
		c := d[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return i
		}
		i++
	}
	return i
}
