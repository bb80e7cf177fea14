// Package parse builds value trees from text documents.
package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/gram-format/go-gram/ir"
	"github.com/gram-format/go-gram/stream"
	"github.com/gram-format/go-gram/token"
)

// Parse reads one complete document. A bare scalar document yields the
// raw-scalar wrapper array.
func Parse(d []byte) (*ir.Value, error) {
	b := stream.NewBuilder()
	if err := ParseInto(b, d); err != nil {
		return nil, err
	}
	return b.Result(), nil
}

// ParseInto appends the document's value to an open builder, so a nested
// document can be spliced in place of a scalar during coercion.
func ParseInto(b *stream.Builder, d []byte) error {
	toks, err := token.Tokenize(d)
	if err != nil {
		return syntaxErr(err)
	}
	p := &parser{toks: toks, doc: d}
	if err := p.value(b, 0); err != nil {
		return err
	}
	if t := p.peek(); t != nil {
		return unexpected(t)
	}
	return nil
}

type parser struct {
	toks []token.Token
	doc  []byte
	i    int
}

func (p *parser) peek() *token.Token {
	if p.i >= len(p.toks) {
		return nil
	}
	return &p.toks[p.i]
}

func (p *parser) next() *token.Token {
	t := p.peek()
	if t != nil {
		p.i++
	}
	return t
}

func (p *parser) endPos() *token.Pos {
	if len(p.toks) > 0 {
		return p.toks[len(p.toks)-1].Pos
	}
	return (&token.PosDoc{}).Pos(len(p.doc))
}

func (p *parser) value(b *stream.Builder, depth int) error {
	if err := ir.CheckDepth(depth); err != nil {
		return err
	}
	t := p.next()
	if t == nil {
		return expected("value", p.endPos())
	}
	switch t.Type {
	case token.TLSquare:
		return p.array(b, depth)
	case token.TLCurl:
		return p.object(b, depth)
	case token.TAnnotation:
		return unexpected(t)
	default:
		v, err := p.scalar(t)
		if err != nil {
			return err
		}
		b.Scalar(v)
		return nil
	}
}

func (p *parser) array(b *stream.Builder, depth int) error {
	b.BeginArray()
	if t := p.peek(); t != nil && t.Type == token.TRSquare {
		p.next()
		b.EndArray()
		return nil
	}
	for {
		if err := p.value(b, depth+1); err != nil {
			return err
		}
		t := p.next()
		if t == nil {
			return expected("`,` or `]`", p.endPos())
		}
		switch t.Type {
		case token.TComma:
		case token.TRSquare:
			b.EndArray()
			return nil
		default:
			return unexpected(t)
		}
	}
}

func (p *parser) object(b *stream.Builder, depth int) error {
	b.BeginObject()
	if t := p.peek(); t != nil && t.Type == token.TRCurl {
		p.next()
		b.EndObject()
		return nil
	}
	for {
		t := p.next()
		if t == nil || t.Type != token.TString {
			if t == nil {
				return expected("object key", p.endPos())
			}
			return expected("object key", t.Pos)
		}
		key := t.String()
		if err := ir.CheckStringLen(len(key)); err != nil {
			return err
		}
		b.Key(key)
		t = p.next()
		if t == nil || t.Type != token.TColon {
			if t == nil {
				return expected("`:`", p.endPos())
			}
			return expected("`:`", t.Pos)
		}
		if err := p.value(b, depth+1); err != nil {
			return err
		}
		t = p.next()
		if t == nil {
			return expected("`,` or `}`", p.endPos())
		}
		switch t.Type {
		case token.TComma:
		case token.TRCurl:
			b.EndObject()
			return nil
		default:
			return unexpected(t)
		}
	}
}

// scalar converts a scalar token, applying a trailing annotation when one
// follows. Annotations rebind the token's text, so a quoted "3.5" becomes
// a numeric under ::numeric.
func (p *parser) scalar(t *token.Token) (*ir.Value, error) {
	text := t.String()
	var ann *token.Token
	if n := p.peek(); n != nil && n.Type == token.TAnnotation {
		ann = p.next()
	}
	if ann != nil {
		return annotate(t, ann, text)
	}
	switch t.Type {
	case token.TNull:
		return ir.Null(), nil
	case token.TTrue:
		return ir.FromBool(true), nil
	case token.TFalse:
		return ir.FromBool(false), nil
	case token.TString:
		return stringValue(t, text)
	case token.TInteger:
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, syntaxErr(token.NewTokenizeErr(
				fmt.Errorf("integer out of range"), t.Pos))
		}
		return ir.FromInt(i), nil
	case token.TFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, syntaxErr(token.NewTokenizeErr(err, t.Pos))
		}
		return ir.FromFloat(f), nil
	}
	return nil, unexpected(t)
}

func stringValue(t *token.Token, text string) (*ir.Value, error) {
	v, err := ir.FromString(text)
	if err != nil {
		return nil, syntaxErr(token.NewTokenizeErr(err, t.Pos))
	}
	return v, nil
}

func annotate(t, ann *token.Token, text string) (*ir.Value, error) {
	switch t.Type {
	case token.TString, token.TInteger, token.TFloat, token.TTrue,
		token.TFalse, token.TNull:
	default:
		return nil, unexpected(ann)
	}
	switch strings.ToLower(ann.String()) {
	case "numeric":
		d, _, err := apd.NewFromString(text)
		if err != nil {
			return nil, syntaxErr(token.NewTokenizeErr(
				fmt.Errorf("invalid numeric %q", text), ann.Pos))
		}
		return ir.FromNumeric(d), nil
	case "integer":
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, syntaxErr(token.NewTokenizeErr(
				fmt.Errorf("invalid integer %q", text), ann.Pos))
		}
		return ir.FromInt(i), nil
	case "float":
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, syntaxErr(token.NewTokenizeErr(
				fmt.Errorf("invalid float %q", text), ann.Pos))
		}
		return ir.FromFloat(f), nil
	}
	return nil, syntaxErr(token.NewTokenizeErr(
		fmt.Errorf("unknown annotation %q", ann.String()), ann.Pos))
}
