package seed

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/velatype/vela/internal/typeset"
	"github.com/velatype/vela/types"
)

// parseTypeExpr parses the small type-expression grammar used by a seed
// document's `type:` field:
//
//	type       := union
//	union      := atom ("|" atom)*
//	atom       := "(" (type ("," type)*)? ")" "=>" type | IDENT
//
// A lowercase identifier that isn't one of the built-in nominal names
// (number, string, boolean, null, undefined) is treated as a type
// variable; the caller wraps the result in a Forall over every such
// variable encountered, producing schemes like identity's `∀x. (x) => x`.
func parseTypeExpr(src string) (types.Type, typeset.Set, error) {
	p := &typeExprParser{src: []rune(strings.TrimSpace(src)), quantifiers: typeset.Empty}
	t, err := p.parseUnion()
	if err != nil {
		return nil, typeset.Empty, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, typeset.Empty, fmt.Errorf("unexpected trailing input at %q", string(p.src[p.pos:]))
	}
	return t, p.quantifiers, nil
}

type typeExprParser struct {
	src         []rune
	pos         int
	quantifiers typeset.Set
}

func (p *typeExprParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *typeExprParser) peek() rune {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeExprParser) consume(lit string) bool {
	p.skipSpace()
	r := []rune(lit)
	if p.pos+len(r) > len(p.src) {
		return false
	}
	if string(p.src[p.pos:p.pos+len(r)]) != lit {
		return false
	}
	p.pos += len(r)
	return true
}

func (p *typeExprParser) parseUnion() (types.Type, error) {
	first, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	alts := []types.Type{first}
	for {
		p.skipSpace()
		if p.peek() != '|' {
			break
		}
		p.pos++
		next, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		alts = append(alts, next)
	}
	return types.NewUnion(alts), nil
}

func (p *typeExprParser) parseAtom() (types.Type, error) {
	p.skipSpace()
	if p.peek() == '(' {
		return p.parseFunction()
	}
	return p.parseIdent()
}

func (p *typeExprParser) parseFunction() (types.Type, error) {
	if !p.consume("(") {
		return nil, fmt.Errorf("expected '(' at position %d", p.pos)
	}
	var params []types.Type
	p.skipSpace()
	if p.peek() != ')' {
		for {
			t, err := p.parseUnion()
			if err != nil {
				return nil, err
			}
			params = append(params, t)
			p.skipSpace()
			if p.peek() != ',' {
				break
			}
			p.pos++
		}
	}
	if !p.consume(")") {
		return nil, fmt.Errorf("expected ')' at position %d", p.pos)
	}
	if !p.consume("=>") {
		return nil, fmt.Errorf("expected '=>' at position %d", p.pos)
	}
	ret, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	return types.Function{Params: params, Return: ret}, nil
}

var builtinNamed = map[string]types.Named{
	"number":    types.Number,
	"string":    types.String,
	"boolean":   types.Boolean,
	"null":      types.Null,
	"undefined": types.Undefined,
}

func (p *typeExprParser) parseIdent() (types.Type, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && (unicode.IsLetter(p.src[p.pos]) || unicode.IsDigit(p.src[p.pos]) || p.src[p.pos] == '_') {
		p.pos++
	}
	if p.pos == start {
		return nil, fmt.Errorf("expected identifier at position %d", p.pos)
	}
	name := string(p.src[start:p.pos])
	if n, ok := builtinNamed[name]; ok {
		return n, nil
	}
	p.quantifiers = p.quantifiers.Add(name)
	return types.Var{Name: name}, nil
}
