// Package parser converts a token stream into the surface AST (spec §4.1).
// It is a hand-written recursive-descent parser with precedence climbing
// for expressions, grounded on the original AxonScript parser's statement
// dispatch and error-recovery shape rather than the teacher's
// goyacc-generated grammar (see DESIGN.md).
package parser

import (
	"strconv"
	"strings"

	"axonscript/internal/ast"
	"axonscript/internal/diag"
	"axonscript/internal/token"
)

// parser holds parsing state over a fixed token slice.
type parser struct {
	toks []token.Token
	pos  int
	src  string
	errs []diag.Diagnostic
}

// Parse converts tokens into a surface AST. It always returns a non-nil
// root when at least the top-level loop can run; diagnostics accumulate
// independently of whether parsing fully succeeded (spec §4.1's
// "(Option<AST>, Vec<Diagnostic>)" contract, rendered in Go as a possibly
// partial *ast.Node plus a diagnostic slice).
func Parse(toks []token.Token, src string) (*ast.Node, []diag.Diagnostic) {
	p := &parser{toks: toks, src: src}
	root := &ast.Node{Kind: ast.Program}
	for p.current().Kind != token.EOF {
		if p.current().Kind == token.Semicolon {
			p.advance()
			continue
		}
		start := p.pos
		stmt, errs := p.parseStatement()
		p.errs = append(p.errs, errs...)
		if stmt != nil {
			root.Children = append(root.Children, stmt)
		}
		if diag.HasErrors(errs) {
			// Consume tokens up to and including the next ';' before
			// attempting the next statement (spec §4.1 error recovery).
			for p.current().Kind != token.Semicolon && p.current().Kind != token.EOF {
				p.advance()
			}
			if p.current().Kind == token.Semicolon {
				p.advance()
			}
		}
		if p.pos == start {
			// Guarantee progress even if parseStatement consumed nothing.
			p.advance()
		}
	}
	return root, p.errs
}

func (p *parser) current() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos+n]
}

func (p *parser) advance() {
	if p.pos < len(p.toks) {
		p.pos++
	}
}

func (p *parser) match(k token.Kind) bool {
	if p.current().Kind == k {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(k token.Kind) (token.Token, bool) {
	cur := p.current()
	if cur.Kind == k {
		p.advance()
		return cur, true
	}
	return cur, false
}

func errf(code, msg string, sp token.Span) diag.Diagnostic {
	return diag.New(diag.Syntax, code, msg, sp)
}

func warnf(code, msg string, sp token.Span) diag.Diagnostic {
	return diag.NewWarning(diag.Semantic, code, msg, sp)
}

// parseStatement dispatches on the leading keyword, per spec §4.1's
// statement grammar. "do" is a transparent wrapper kept as a Do node.
func (p *parser) parseStatement() (*ast.Node, []diag.Diagnostic) {
	if p.match(token.KwDo) {
		inner, errs := p.parseStatement()
		if inner == nil {
			return nil, errs
		}
		return &ast.Node{Kind: ast.Do, Children: []*ast.Node{inner}}, errs
	}

	cur := p.current()
	switch cur.Kind {
	case token.KwOut:
		return p.parsePrint()
	case token.KwCast:
		return p.parseFunction()
	case token.KwSet:
		return p.parseVariable()
	case token.KwMath:
		return p.parseMath()
	case token.KwIf:
		return p.parseIf()
	case token.KwLoop:
		return p.parseLoop()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwBreak:
		return p.parseBreak()
	case token.KwIn:
		return p.parseInput()
	case token.Identifier:
		return nil, []diag.Diagnostic{{
			Kind: diag.Syntax, Severity: diag.Error,
			Code: diag.ErrSynExpectedStmt,
			Message: "invalid statement: bare identifier '" + cur.Text +
				"' is not a statement",
			Span:       cur.Span,
			Suggestion: "did you mean 'set'?",
		}}
	case token.EOF:
		return nil, []diag.Diagnostic{errf(diag.ErrSynUnexpectedEOF,
			"unexpected end of input, expected a statement", cur.Span)}
	default:
		return nil, []diag.Diagnostic{errf(diag.ErrSynUnexpectedToken,
			"unexpected token '"+cur.Text+"', expected a valid statement", cur.Span)}
	}
}

// parseBreak parses `break;`.
func (p *parser) parseBreak() (*ast.Node, []diag.Diagnostic) {
	start := p.current().Span
	p.advance() // 'break'
	if _, ok := p.expect(token.Semicolon); !ok {
		return nil, []diag.Diagnostic{errf(diag.ErrSynUnexpectedToken, "expected ';' after break", start)}
	}
	return &ast.Node{Kind: ast.Break, Span: start}, nil
}

// parseInput parses `in(target)[.Err("msg")];`.
func (p *parser) parseInput() (*ast.Node, []diag.Diagnostic) {
	start := p.current().Span
	p.advance() // 'in'
	if _, ok := p.expect(token.LParen); !ok {
		return nil, []diag.Diagnostic{errf(diag.ErrSynUnexpectedToken, "expected '(' after 'in'", p.current().Span)}
	}
	targetTok, ok := p.expect(token.Identifier)
	if !ok {
		return nil, []diag.Diagnostic{errf(diag.ErrSynUnexpectedToken, "expected identifier inside in(...)", p.current().Span)}
	}
	if _, ok := p.expect(token.RParen); !ok {
		return nil, []diag.Diagnostic{errf(diag.ErrSynUnexpectedToken, "expected ')' after in(...) target", p.current().Span)}
	}
	errMsg, hasErr, errs := p.parseOptionalErrSuffix()
	if _, ok := p.expect(token.Semicolon); !ok {
		errs = append(errs, errf(diag.ErrSynUnexpectedToken, "expected ';' after in(...) statement", p.current().Span))
		return nil, errs
	}
	return &ast.Node{Kind: ast.Input, Span: start, Data: ast.InputData{
		Target: targetTok.Text, ErrMsg: errMsg, HasErrMsg: hasErr,
	}}, errs
}

// parseOptionalErrSuffix parses the supplemented `.Err("msg")` suffix
// grammar shared by `math(...)` and `in(...)` (see SPEC_FULL.md
// SUPPLEMENTED FEATURES).
func (p *parser) parseOptionalErrSuffix() (msg string, has bool, errs []diag.Diagnostic) {
	if !p.match(token.Dot) {
		return "", false, nil
	}
	if p.current().Kind != token.KwErr {
		return "", false, []diag.Diagnostic{errf(diag.ErrSynUnexpectedToken,
			"expected 'Err' after '.'", p.current().Span)}
	}
	p.advance()
	if _, ok := p.expect(token.LParen); !ok {
		return "", false, []diag.Diagnostic{errf(diag.ErrSynUnexpectedToken, "expected '(' after Err", p.current().Span)}
	}
	strTok, ok := p.expect(token.String)
	if !ok {
		return "", false, []diag.Diagnostic{errf(diag.ErrSynUnexpectedToken, "expected string literal after Err(", p.current().Span)}
	}
	if _, ok := p.expect(token.RParen); !ok {
		return "", false, []diag.Diagnostic{errf(diag.ErrSynUnexpectedToken, "expected ')' after Err(\"msg\"", p.current().Span)}
	}
	return unescape(strTok.Text), true, nil
}

// parseVariable parses `set [:] name(Type) = expr;`.
func (p *parser) parseVariable() (*ast.Node, []diag.Diagnostic) {
	start := p.current().Span
	p.advance() // 'set'
	mutable := p.match(token.Colon)
	nameTok, ok := p.expect(token.Identifier)
	if !ok {
		return nil, []diag.Diagnostic{errf(diag.ErrSynUnexpectedToken, "expected variable name after 'set'", p.current().Span)}
	}
	if _, ok := p.expect(token.LParen); !ok {
		return nil, []diag.Diagnostic{errf(diag.ErrSynUnexpectedToken, "expected '(' after variable name", p.current().Span)}
	}
	declaredType := ""
	if p.current().Kind == token.Identifier {
		declaredType = p.current().Text
		p.advance()
	}
	if _, ok := p.expect(token.RParen); !ok {
		return nil, []diag.Diagnostic{errf(diag.ErrSynUnexpectedToken, "expected ')' after declared type", p.current().Span)}
	}
	if _, ok := p.expect(token.Assign); !ok {
		return nil, []diag.Diagnostic{errf(diag.ErrSynUnexpectedToken, "expected '=' in variable assignment", p.current().Span)}
	}
	value, errs := p.parseExpr()
	if value == nil {
		return nil, errs
	}
	if _, ok := p.expect(token.Semicolon); !ok {
		errs = append(errs, errf(diag.ErrSynUnexpectedToken, "expected ';' after assignment", p.current().Span))
		return nil, errs
	}
	return &ast.Node{
		Kind: ast.Assignment, Span: start,
		Data:     ast.AssignmentData{Name: nameTok.Text, Mutable: mutable, DeclaredType: declaredType},
		Children: []*ast.Node{value},
	}, errs
}

// parseMath parses `math([expr], dest)[.Err("msg")];`.
func (p *parser) parseMath() (*ast.Node, []diag.Diagnostic) {
	start := p.current().Span
	p.advance() // 'math'
	if _, ok := p.expect(token.LParen); !ok {
		return nil, []diag.Diagnostic{errf(diag.ErrSynUnexpectedToken, "expected '(' after 'math'", p.current().Span)}
	}
	if _, ok := p.expect(token.LBracket); !ok {
		return nil, []diag.Diagnostic{errf(diag.ErrSynUnexpectedToken, "expected '[' after 'math('", p.current().Span)}
	}
	expr, errs := p.parseExpr()
	if _, ok := p.expect(token.RBracket); !ok {
		errs = append(errs, errf(diag.ErrSynUnexpectedToken, "expected ']' after math expression", p.current().Span))
		return nil, errs
	}
	dest := "Result"
	if p.match(token.Comma) {
		if destTok, ok := p.expect(token.Identifier); ok {
			dest = destTok.Text
		} else {
			errs = append(errs, errf(diag.ErrSynUnexpectedToken, "expected identifier for math destination after comma", p.current().Span))
		}
	} else {
		errs = append(errs, warnf(diag.WarnSynNoMathDest, "no destination specified for math expression, defaulting to 'Result'", p.current().Span))
	}
	if _, ok := p.expect(token.RParen); !ok {
		errs = append(errs, errf(diag.ErrSynUnexpectedToken, "expected ')' after math(...)", p.current().Span))
		return nil, errs
	}
	errMsg, hasErr, suffixErrs := p.parseOptionalErrSuffix()
	errs = append(errs, suffixErrs...)
	if _, ok := p.expect(token.Semicolon); !ok {
		errs = append(errs, errf(diag.ErrSynUnexpectedToken, "expected ';' after math(...) statement", p.current().Span))
		return nil, errs
	}
	if expr == nil {
		return nil, errs
	}
	return &ast.Node{
		Kind: ast.Math, Span: start,
		Data:     ast.MathData{Destination: dest, ErrMsg: errMsg, HasErrMsg: hasErr},
		Children: []*ast.Node{expr},
	}, errs
}

// parsePrint parses `out(expr, expr, ...);`.
func (p *parser) parsePrint() (*ast.Node, []diag.Diagnostic) {
	start := p.current().Span
	p.advance() // 'out'
	if _, ok := p.expect(token.LParen); !ok {
		return nil, []diag.Diagnostic{errf(diag.ErrSynUnexpectedToken, "expected '(' after 'out'", p.current().Span)}
	}
	var args []*ast.Node
	var errs []diag.Diagnostic
	if p.current().Kind != token.RParen {
		for {
			e, eerrs := p.parseExpr()
			errs = append(errs, eerrs...)
			if e != nil {
				args = append(args, e)
			}
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, ok := p.expect(token.RParen); !ok {
		errs = append(errs, errf(diag.ErrSynUnexpectedToken, "expected ')' after out(...) arguments", p.current().Span))
		return nil, errs
	}
	if _, ok := p.expect(token.Semicolon); !ok {
		errs = append(errs, errf(diag.ErrSynUnexpectedToken, "expected ';' after out(...)", p.current().Span))
		return nil, errs
	}
	return &ast.Node{Kind: ast.Print, Span: start, Data: ast.PrintData{}, Children: args}, errs
}

// parseFunction parses `cast Name(params) >> body <<`.
func (p *parser) parseFunction() (*ast.Node, []diag.Diagnostic) {
	start := p.current().Span
	p.advance() // 'cast'
	nameTok, ok := p.expect(token.Identifier)
	if !ok {
		return nil, []diag.Diagnostic{errf(diag.ErrSynUnexpectedToken, "expected function name after 'cast'", p.current().Span)}
	}
	isStart := nameTok.Text == "Start"
	if _, ok := p.expect(token.LParen); !ok {
		return nil, []diag.Diagnostic{errf(diag.ErrSynUnexpectedToken, "expected '(' after function name", p.current().Span)}
	}
	var params []string
	var errs []diag.Diagnostic
	if p.current().Kind != token.RParen {
		for {
			nt, ok := p.expect(token.Identifier)
			if !ok {
				errs = append(errs, errf(diag.ErrSynUnexpectedToken, "expected parameter name", p.current().Span))
				break
			}
			params = append(params, nt.Text)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, ok := p.expect(token.RParen); !ok {
		errs = append(errs, errf(diag.ErrSynUnexpectedToken, "expected ')' after parameter list", p.current().Span))
		return nil, errs
	}
	body, berrs := p.parseBlock()
	errs = append(errs, berrs...)
	return &ast.Node{
		Kind: ast.Function, Span: start,
		Data:     ast.FunctionData{Name: nameTok.Text, Params: params, IsStart: isStart},
		Children: body,
	}, errs
}

// parseBlock parses a `>> stmt* <<` block, applying the inside-block
// recovery rule: advance at least one token on a failing statement.
func (p *parser) parseBlock() ([]*ast.Node, []diag.Diagnostic) {
	var errs []diag.Diagnostic
	if _, ok := p.expect(token.BlockOpen); !ok {
		errs = append(errs, errf(diag.ErrSynUnclosedBlock, "expected '>>' to open block", p.current().Span))
		return nil, errs
	}
	var stmts []*ast.Node
	for p.current().Kind != token.BlockClose && p.current().Kind != token.EOF {
		startPos := p.pos
		stmt, serrs := p.parseStatement()
		errs = append(errs, serrs...)
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		if p.current().Kind == token.Semicolon {
			p.advance()
		}
		if p.pos == startPos {
			p.advance()
		}
	}
	if _, ok := p.expect(token.BlockClose); !ok {
		errs = append(errs, errf(diag.ErrSynUnclosedBlock, "expected '<<' to close block", p.current().Span))
	}
	return stmts, errs
}

// parseComparisonOperand parses the restricted operand form accepted by
// if/while conditions: identifier or numeric literal only (spec §4.1
// edge cases — general expressions are intentionally rejected here).
func (p *parser) parseComparisonOperand() (*ast.Node, []diag.Diagnostic) {
	cur := p.current()
	switch cur.Kind {
	case token.Identifier:
		p.advance()
		return &ast.Node{Kind: ast.Identifier, Span: cur.Span, Data: ast.IdentifierData{Name: cur.Text}}, nil
	case token.Integer:
		p.advance()
		v, _ := strconv.ParseInt(cur.Text, 10, 64)
		return &ast.Node{Kind: ast.IntLit, Span: cur.Span, Data: ast.IntLitData{Value: v}}, nil
	case token.Float:
		p.advance()
		v, _ := strconv.ParseFloat(cur.Text, 64)
		return &ast.Node{Kind: ast.FloatLit, Span: cur.Span, Data: ast.FloatLitData{Value: v}}, nil
	default:
		return nil, []diag.Diagnostic{errf(diag.ErrSynBadCondition,
			"expected identifier or number in condition, found '"+cur.Text+"'", cur.Span)}
	}
}

// comparisonOp maps a comparison token to its surface operator text.
func comparisonOp(k token.Kind) (string, bool) {
	switch k {
	case token.Eq:
		return "==", true
	case token.Neq:
		return "!=", true
	case token.Lt:
		return "<", true
	case token.Gt:
		return ">", true
	case token.Le:
		return "<=", true
	case token.Ge:
		return ">=", true
	default:
		return "", false
	}
}

// parseIf parses `if (operand cmp operand) >> body << [else >> body <<]`.
func (p *parser) parseIf() (*ast.Node, []diag.Diagnostic) {
	start := p.current().Span
	p.advance() // 'if'
	if _, ok := p.expect(token.LParen); !ok {
		return nil, []diag.Diagnostic{errf(diag.ErrSynUnexpectedToken, "expected '(' after 'if'", p.current().Span)}
	}
	left, errs := p.parseComparisonOperand()
	if left == nil {
		return nil, errs
	}
	op, ok := comparisonOp(p.current().Kind)
	if !ok {
		errs = append(errs, errf(diag.ErrSynBadCondition, "expected comparison operator in if condition", p.current().Span))
		return nil, errs
	}
	p.advance()
	right, rerrs := p.parseComparisonOperand()
	errs = append(errs, rerrs...)
	if right == nil {
		return nil, errs
	}
	if _, ok := p.expect(token.RParen); !ok {
		errs = append(errs, errf(diag.ErrSynUnexpectedToken, "expected ')' after if condition", p.current().Span))
		return nil, errs
	}
	thenBody, berrs := p.parseBlock()
	errs = append(errs, berrs...)

	node := &ast.Node{
		Kind:     ast.If,
		Span:     start,
		Data:     ast.IfData{Op: op, ThenCount: len(thenBody)},
		Children: append([]*ast.Node{left, right}, thenBody...),
	}

	if p.current().Kind == token.KwElse {
		p.advance()
		elseBody, eerrs := p.parseBlock()
		errs = append(errs, eerrs...)
		node.Children = append(node.Children, elseBody...)
	}
	return node, errs
}

// parseLoop parses `loop >> body <<`.
func (p *parser) parseLoop() (*ast.Node, []diag.Diagnostic) {
	start := p.current().Span
	p.advance() // 'loop'
	body, errs := p.parseBlock()
	return &ast.Node{Kind: ast.Loop, Span: start, Data: ast.LoopData{}, Children: body}, errs
}

// parseWhile parses `while (operand cmp operand) >> body <<`.
func (p *parser) parseWhile() (*ast.Node, []diag.Diagnostic) {
	start := p.current().Span
	p.advance() // 'while'
	if _, ok := p.expect(token.LParen); !ok {
		return nil, []diag.Diagnostic{errf(diag.ErrSynUnexpectedToken, "expected '(' after 'while'", p.current().Span)}
	}
	left, errs := p.parseComparisonOperand()
	if left == nil {
		return nil, errs
	}
	op, ok := comparisonOp(p.current().Kind)
	if !ok {
		errs = append(errs, errf(diag.ErrSynBadCondition, "expected comparison operator in while condition", p.current().Span))
		return nil, errs
	}
	p.advance()
	right, rerrs := p.parseComparisonOperand()
	errs = append(errs, rerrs...)
	if right == nil {
		return nil, errs
	}
	if _, ok := p.expect(token.RParen); !ok {
		errs = append(errs, errf(diag.ErrSynUnexpectedToken, "expected ')' after while condition", p.current().Span))
		return nil, errs
	}
	body, berrs := p.parseBlock()
	errs = append(errs, berrs...)
	return &ast.Node{
		Kind: ast.While, Span: start,
		Data:     ast.WhileData{Op: op},
		Children: append([]*ast.Node{left, right}, body...),
	}, errs
}

// parseExpr parses a full expression via precedence climbing: '+ -' at
// level 1, '* /' at level 2, both left-associative (spec §4.1).
func (p *parser) parseExpr() (*ast.Node, []diag.Diagnostic) {
	return p.parseBinaryOp(0)
}

func precedence(k token.Kind) (int, bool) {
	switch k {
	case token.Plus, token.Minus:
		return 1, true
	case token.Star, token.Slash:
		return 2, true
	default:
		return 0, false
	}
}

func opText(k token.Kind) string {
	switch k {
	case token.Plus:
		return "+"
	case token.Minus:
		return "-"
	case token.Star:
		return "*"
	case token.Slash:
		return "/"
	default:
		return "?"
	}
}

func (p *parser) parseBinaryOp(minPrec int) (*ast.Node, []diag.Diagnostic) {
	left, errs := p.parseTerm()
	if left == nil {
		return nil, errs
	}
	for {
		prec, ok := precedence(p.current().Kind)
		if !ok || prec < minPrec {
			break
		}
		opTok := p.current()
		p.advance()
		// Left-associative: recurse with prec+1 as the minimum.
		right, rerrs := p.parseBinaryOp(prec + 1)
		errs = append(errs, rerrs...)
		if right == nil {
			return nil, errs
		}
		left = &ast.Node{
			Kind: ast.BinaryOp, Span: opTok.Span,
			Data:     ast.BinaryOpData{Op: opText(opTok.Kind)},
			Children: []*ast.Node{left, right},
		}
	}
	return left, errs
}

// parseTerm parses a primary expression: literal, identifier, vector
// literal, or parenthesized expression.
func (p *parser) parseTerm() (*ast.Node, []diag.Diagnostic) {
	cur := p.current()
	switch cur.Kind {
	case token.Integer:
		p.advance()
		v, err := strconv.ParseInt(cur.Text, 10, 64)
		if err != nil {
			return nil, []diag.Diagnostic{errf(diag.ErrSynMalformedNumber, "malformed integer literal '"+cur.Text+"'", cur.Span)}
		}
		return &ast.Node{Kind: ast.IntLit, Span: cur.Span, Data: ast.IntLitData{Value: v}}, nil
	case token.Float:
		p.advance()
		v, err := strconv.ParseFloat(cur.Text, 64)
		if err != nil {
			return nil, []diag.Diagnostic{errf(diag.ErrSynMalformedNumber, "malformed float literal '"+cur.Text+"'", cur.Span)}
		}
		return &ast.Node{Kind: ast.FloatLit, Span: cur.Span, Data: ast.FloatLitData{Value: v}}, nil
	case token.String:
		p.advance()
		return &ast.Node{Kind: ast.StringLit, Span: cur.Span, Data: ast.StringLitData{Value: unescape(cur.Text)}}, nil
	case token.Bool:
		p.advance()
		return &ast.Node{Kind: ast.BoolLit, Span: cur.Span, Data: ast.BoolLitData{Value: cur.Text == "yes"}}, nil
	case token.Identifier:
		p.advance()
		return &ast.Node{Kind: ast.Identifier, Span: cur.Span, Data: ast.IdentifierData{Name: cur.Text}}, nil
	case token.LBracket:
		return p.parseVector()
	case token.LParen:
		p.advance()
		inner, errs := p.parseExpr()
		if _, ok := p.expect(token.RParen); !ok {
			errs = append(errs, errf(diag.ErrSynUnexpectedToken, "expected ')' to close parenthesized expression", p.current().Span))
			return nil, errs
		}
		return inner, errs
	case token.EOF:
		return nil, []diag.Diagnostic{errf(diag.ErrSynUnexpectedEOF, "unexpected end of input, expected an expression", cur.Span)}
	default:
		return nil, []diag.Diagnostic{errf(diag.ErrSynUnexpectedToken,
			"unexpected token '"+cur.Text+"' in expression, expected a number, string, boolean, identifier, vector, or parenthesized expression", cur.Span)}
	}
}

// parseVector parses `[e1, e2, ...]`. An empty vector literal is a
// warning, not an error (spec §4.1).
func (p *parser) parseVector() (*ast.Node, []diag.Diagnostic) {
	start := p.current().Span
	p.advance() // '['
	var errs []diag.Diagnostic
	var elems []*ast.Node
	if p.current().Kind != token.RBracket {
		for {
			e, eerrs := p.parseExpr()
			errs = append(errs, eerrs...)
			if e != nil {
				elems = append(elems, e)
			}
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, ok := p.expect(token.RBracket); !ok {
		errs = append(errs, errf(diag.ErrSynUnexpectedToken, "expected ']' to close vector literal", p.current().Span))
		return nil, errs
	}
	if len(elems) == 0 {
		errs = append(errs, diag.NewWarning(diag.Semantic, diag.WarnSynEmptyVector, "empty vector literal", start))
	}
	return &ast.Node{Kind: ast.VectorLit, Span: start, Data: ast.VectorLitData{}, Children: elems}, errs
}

// unescape resolves the standard escapes \n \t \\ \" in a scanned string
// literal body (spec §6.2).
func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			default:
				b.WriteByte('\\')
				b.WriteByte(s[i])
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
