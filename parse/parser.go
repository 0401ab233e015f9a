package parse

import (
	"fmt"

	"github.com/velatype/vela/ast"
	"github.com/velatype/vela/internal/log"
)

var logger = log.DefaultLogger.With("section", "parse")

// Parse lexes and parses src into a sequence of top-level expressions,
// each type-checked independently by the driver.
func Parse(src string) ([]ast.Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	exprs, err := p.parseProgram()
	if err != nil {
		logger.Debug("parse failed", "error", err)
	}
	return exprs, err
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) cur() token  { return p.toks[p.pos] }
func (p *parser) mark() int   { return p.pos }
func (p *parser) reset(m int) { p.pos = m }

func (p *parser) at(kind tokenKind, text string) bool {
	t := p.cur()
	return t.kind == kind && (text == "" || t.text == text)
}

func (p *parser) advance() token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind, text string) (token, error) {
	if !p.at(kind, text) {
		return token{}, fmt.Errorf("%s: expected %q, got %q", p.cur().start, text, p.cur().text)
	}
	return p.advance(), nil
}

func (p *parser) parseProgram() ([]ast.Expr, error) {
	var exprs []ast.Expr
	for !p.at(tokEOF, "") {
		e, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		for p.at(tokPunct, ";") {
			p.advance()
		}
	}
	return exprs, nil
}

func (p *parser) parseStatement() (ast.Expr, error) {
	switch {
	case p.at(tokKeyword, "let"):
		return p.parseLet()
	case p.at(tokKeyword, "return"):
		return p.parseReturn()
	case p.at(tokKeyword, "throw"):
		return p.parseThrow()
	case p.at(tokKeyword, "if"):
		return p.parseIf()
	case p.at(tokPunct, "{"):
		return p.parseBlock()
	default:
		return p.parseExprStatement()
	}
}

func (p *parser) parseLet() (ast.Expr, error) {
	start := p.advance() // "let"
	name, err := p.expect(tokIdent, "")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokPunct, "="); err != nil {
		return nil, err
	}
	rhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Let{Range: ast.Range{Loc: ast.Loc{Start: start.start, End: rhs.Pos().End}}, Name: name.text, Rhs: rhs}, nil
}

func (p *parser) parseReturn() (ast.Expr, error) {
	start := p.advance() // "return"
	rhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Return{Range: ast.Range{Loc: ast.Loc{Start: start.start, End: rhs.Pos().End}}, Rhs: rhs}, nil
}

func (p *parser) parseThrow() (ast.Expr, error) {
	start := p.advance() // "throw"
	rhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Throw{Range: ast.Range{Loc: ast.Loc{Start: start.start, End: rhs.Pos().End}}, Rhs: rhs}, nil
}

func (p *parser) parseIf() (ast.Expr, error) {
	start := p.advance() // "if"
	if _, err := p.expect(tokPunct, "("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokPunct, ")"); err != nil {
		return nil, err
	}
	thenBlockExpr, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	thenBlock := thenBlockExpr.(*ast.Block)

	end := thenBlock.Pos().End
	var elseBlock *ast.Block
	if p.at(tokKeyword, "else") {
		p.advance()
		elseExpr, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		elseBlock = elseExpr.(*ast.Block)
		end = elseBlock.Pos().End
	}

	return &ast.If{
		Range: ast.Range{Loc: ast.Loc{Start: start.start, End: end}},
		Cond:  cond,
		Then:  thenBlock,
		Else:  elseBlock,
	}, nil
}

func (p *parser) parseBlock() (ast.Expr, error) {
	open, err := p.expect(tokPunct, "{")
	if err != nil {
		return nil, err
	}
	var body []ast.Expr
	for !p.at(tokPunct, "}") {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
		for p.at(tokPunct, ";") {
			p.advance()
		}
	}
	close, err := p.expect(tokPunct, "}")
	if err != nil {
		return nil, err
	}
	return &ast.Block{Range: ast.Range{Loc: ast.Loc{Start: open.start, End: close.end}}, Body: body}, nil
}

// parseExprStatement parses a bare expression, reinterpreting `name = rhs`
// as an Assign when the expression turns out to be a plain Var.
func (p *parser) parseExprStatement() (ast.Expr, error) {
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if v, ok := e.(*ast.Var); ok && p.at(tokPunct, "=") {
		p.advance()
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Range: ast.Range{Loc: ast.Loc{Start: v.Pos().Start, End: rhs.Pos().End}}, Name: v.Name, Rhs: rhs}, nil
	}
	return e, nil
}

func (p *parser) parseExpr() (ast.Expr, error) {
	return p.parseBinary()
}

var binaryOps = map[string]ast.BinaryOp{"+": ast.OpAdd, "===": ast.OpStrictEq}

func (p *parser) parseBinary() (ast.Expr, error) {
	left, err := p.parseCall()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := binaryOps[p.cur().text]
		if !(p.cur().kind == tokPunct && ok) {
			return left, nil
		}
		p.advance()
		right, err := p.parseCall()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{
			Range: ast.RangeBetween(left, right),
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
}

func (p *parser) parseCall() (ast.Expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.at(tokPunct, "(") {
		open := p.advance()
		var args []ast.Expr
		for !p.at(tokPunct, ")") {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.at(tokPunct, ",") {
				p.advance()
			}
		}
		_ = open
		close, err := p.expect(tokPunct, ")")
		if err != nil {
			return nil, err
		}
		e = &ast.Call{Range: ast.Range{Loc: ast.Loc{Start: e.Pos().Start, End: close.end}}, Func: e, Args: args}
	}
	return e, nil
}

func (p *parser) parsePrimary() (ast.Expr, error) {
	t := p.cur()
	switch {
	case t.kind == tokNumber:
		p.advance()
		return &ast.NumberLit{Range: ast.Range{Loc: ast.Loc{Start: t.start, End: t.end}}, Value: t.value}, nil
	case t.kind == tokString:
		p.advance()
		return &ast.StringLit{Range: ast.Range{Loc: ast.Loc{Start: t.start, End: t.end}}, Value: t.text}, nil
	case t.kind == tokKeyword && t.text == "true":
		p.advance()
		return &ast.BoolLit{Range: ast.Range{Loc: ast.Loc{Start: t.start, End: t.end}}, Value: true}, nil
	case t.kind == tokKeyword && t.text == "false":
		p.advance()
		return &ast.BoolLit{Range: ast.Range{Loc: ast.Loc{Start: t.start, End: t.end}}, Value: false}, nil
	case t.kind == tokKeyword && t.text == "null":
		p.advance()
		return &ast.NullLit{Range: ast.Range{Loc: ast.Loc{Start: t.start, End: t.end}}}, nil
	case t.kind == tokKeyword && t.text == "undefined":
		p.advance()
		return &ast.UndefinedLit{Range: ast.Range{Loc: ast.Loc{Start: t.start, End: t.end}}}, nil
	case t.kind == tokIdent:
		p.advance()
		return &ast.Var{Range: ast.Range{Loc: ast.Loc{Start: t.start, End: t.end}}, Name: t.text}, nil
	case t.kind == tokPunct && t.text == "(":
		return p.parseParenOrFunction()
	default:
		return nil, fmt.Errorf("%s: unexpected token %q", t.start, t.text)
	}
}

// parseParenOrFunction disambiguates a parenthesized expression from a
// function literal's parameter list by attempting the function-literal
// parse first and backtracking on failure.
func (p *parser) parseParenOrFunction() (ast.Expr, error) {
	save := p.mark()
	if fn, ok := p.tryParseFunction(); ok {
		return fn, nil
	}
	p.reset(save)

	open, err := p.expect(tokPunct, "(")
	if err != nil {
		return nil, err
	}
	inner, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokPunct, ")"); err != nil {
		return nil, err
	}
	_ = open
	return inner, nil
}

func (p *parser) tryParseFunction() (ast.Expr, bool) {
	start := p.cur()
	if !p.at(tokPunct, "(") {
		return nil, false
	}
	p.advance()

	var params []ast.Param
	for !p.at(tokPunct, ")") {
		if !p.at(tokIdent, "") {
			return nil, false
		}
		nameTok := p.advance()
		param := ast.Param{Range: ast.Range{Loc: ast.Loc{Start: nameTok.start, End: nameTok.end}}, Name: nameTok.text}
		if p.at(tokPunct, "=") {
			p.advance()
			def, err := p.parseExpr()
			if err != nil {
				return nil, false
			}
			param.Default = def
			param.Range = ast.Range{Loc: ast.Loc{Start: nameTok.start, End: def.Pos().End}}
		}
		params = append(params, param)
		if p.at(tokPunct, ",") {
			p.advance()
			continue
		}
		break
	}
	if !p.at(tokPunct, ")") {
		return nil, false
	}
	p.advance()
	if !p.at(tokPunct, "=>") {
		return nil, false
	}
	p.advance()

	var body ast.Expr
	var err error
	if p.at(tokPunct, "{") {
		body, err = p.parseBlock()
	} else {
		body, err = p.parseExpr()
	}
	if err != nil {
		return nil, false
	}

	return &ast.Function{
		Range:  ast.Range{Loc: ast.Loc{Start: start.start, End: body.Pos().End}},
		Params: params,
		Body:   body,
	}, true
}
