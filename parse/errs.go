package parse

import (
	"fmt"

	"github.com/gram-format/go-gram/ir"
	"github.com/gram-format/go-gram/token"
)

func syntaxErr(err error) error {
	return fmt.Errorf("%w: %v", ir.ErrSyntax, err)
}

func expected(what string, p *token.Pos) error {
	return syntaxErr(token.ExpectedErr(what, p))
}

func unexpected(t *token.Token) error {
	return syntaxErr(token.UnexpectedErr(string(t.Bytes), t.Pos))
}
