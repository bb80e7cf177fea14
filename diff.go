package gram

import (
	"github.com/gram-format/go-gram/encode"
	"github.com/gram-format/go-gram/ir"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders a line-oriented diff of two values over their indented
// serializations. Equal values produce an empty string.
func Diff(a, b *ir.Value) (string, error) {
	eq, err := Equal(a, b)
	if err != nil {
		return "", err
	}
	if eq {
		return "", nil
	}
	as, err := encode.FormatValue(a, encode.WithIndent())
	if err != nil {
		return "", err
	}
	bs, err := encode.FormatValue(b, encode.WithIndent())
	if err != nil {
		return "", err
	}
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(as+"\n", bs+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	out := ""
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			out += prefixLines("+", d.Text)
		case diffmatchpatch.DiffDelete:
			out += prefixLines("-", d.Text)
		case diffmatchpatch.DiffEqual:
			out += prefixLines(" ", d.Text)
		}
	}
	return out, nil
}

func prefixLines(prefix, text string) string {
	out := ""
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			out += prefix + " " + text[start:i] + "\n"
			start = i + 1
		}
	}
	if start < len(text) {
		out += prefix + " " + text[start:] + "\n"
	}
	return out
}
