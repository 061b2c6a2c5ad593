package compiler

import (
	"math"
	"strconv"
	"strings"
)

// Simplify rewrites a program into an equivalent smaller one: binary and
// unary operations on numeric literals are folded, branches with constant
// conditions are cut, and loops that can never run are dropped. The input
// tree is never mutated; composite nodes are rebuilt with simplified
// children and the pass is idempotent.
//
// Folded comparison and logical results use the canonical numeric lexemes
// "0" and "1" so every literal the emitter sees parses as a number.
//
// The pass assumes expressions other than function calls and reactive
// operations are side-effect-free, and it never evaluates anything that is
// not already a numeric or boolean literal.
func Simplify(program *Program) *Program {
	var stmts []Stmt
	for _, s := range program.Stmts {
		if simplified := simplifyStmt(s); simplified != nil {
			stmts = append(stmts, simplified)
		}
	}
	return &Program{Stmts: stmts}
}

// simplifyStmt returns the simplified statement, or nil when the statement
// is eliminated entirely.
func simplifyStmt(s Stmt) Stmt {
	switch n := s.(type) {
	case *VarDecl:
		if n.Init == nil {
			return n
		}
		return &VarDecl{Type: n.Type, Name: n.Name, Init: simplifyExpr(n.Init)}
	case *FuncDecl:
		return &FuncDecl{Name: n.Name, Params: n.Params, Body: simplifyBlock(n.Body)}
	case *Assign:
		return &Assign{Name: n.Name, Value: simplifyExpr(n.Value)}
	case *ExprStmt:
		return &ExprStmt{E: simplifyExpr(n.E)}
	case *Print:
		return &Print{E: simplifyExpr(n.E)}
	case *If:
		return simplifyIf(n)
	case *While:
		return simplifyWhile(n)
	case *For:
		return simplifyFor(n)
	case *Return:
		return &Return{E: simplifyExpr(n.E)}
	case *Block:
		return simplifyBlock(n)
	}
	return s
}

func simplifyBlock(b *Block) *Block {
	var stmts []Stmt
	for _, s := range b.Stmts {
		if simplified := simplifyStmt(s); simplified != nil {
			stmts = append(stmts, simplified)
		}
	}
	return &Block{Stmts: stmts}
}

// simplifyIf keeps only the taken branch when the condition reduces to a
// numeric or boolean literal. An untaken if without an else vanishes.
func simplifyIf(n *If) Stmt {
	cond := simplifyExpr(n.Cond)
	then := simplifyBlock(n.Then)
	var elseBlock *Block
	if n.Else != nil {
		elseBlock = simplifyBlock(n.Else)
	}

	if truth, known := literalTruth(cond); known {
		if truth {
			return then
		}
		if elseBlock != nil {
			return elseBlock
		}
		return nil
	}
	return &If{Cond: cond, Then: then, Else: elseBlock}
}

// simplifyWhile drops the loop entirely when the condition is constantly
// false.
func simplifyWhile(n *While) Stmt {
	cond := simplifyExpr(n.Cond)
	body := simplifyBlock(n.Body)
	if truth, known := literalTruth(cond); known && !truth {
		return nil
	}
	return &While{Cond: cond, Body: body}
}

// simplifyFor reduces a loop with a constantly-false condition to a block
// holding only the init statement. Scope frames are per method, so the
// wrapping block leaves the init's declaration in the same frame it would
// have occupied inside the loop header.
func simplifyFor(n *For) Stmt {
	var init Stmt
	if n.Init != nil {
		init = simplifyStmt(n.Init)
	}
	var cond Expr
	if n.Cond != nil {
		cond = simplifyExpr(n.Cond)
	}
	var update Stmt
	if n.Update != nil {
		update = simplifyStmt(n.Update)
	}
	body := simplifyBlock(n.Body)

	if cond != nil {
		if truth, known := literalTruth(cond); known && !truth {
			var initOnly []Stmt
			if init != nil {
				initOnly = append(initOnly, init)
			}
			return &Block{Stmts: initOnly}
		}
	}
	return &For{Init: init, Cond: cond, Update: update, Body: body}
}

func simplifyExpr(e Expr) Expr {
	switch n := e.(type) {
	case *Literal, *Variable:
		return e
	case *Call:
		args := make([]Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = simplifyExpr(a)
		}
		return &Call{Name: n.Name, Args: args}
	case *Unary:
		return simplifyUnary(n)
	case *Binary:
		return simplifyBinary(n)
	}
	return e
}

func simplifyUnary(n *Unary) Expr {
	operand := simplifyExpr(n.Operand)
	if lit, ok := operand.(*Literal); ok && lit.Tok.Kind == NUMERIC_LITERAL {
		switch n.Op {
		case "-":
			// Flip the textual sign: -(-5) folds back to 5.
			lexeme := lit.Tok.Lexeme
			if strings.HasPrefix(lexeme, "-") {
				lexeme = lexeme[1:]
			} else {
				lexeme = "-" + lexeme
			}
			return numericLiteralExpr(lexeme)
		case "!":
			if truth, known := literalTruth(operand); known {
				return boolLiteralExpr(!truth)
			}
		}
	}
	return &Unary{Op: n.Op, Operand: operand}
}

func simplifyBinary(n *Binary) Expr {
	left := simplifyExpr(n.Left)
	right := simplifyExpr(n.Right)

	lLit, lOK := left.(*Literal)
	rLit, rOK := right.(*Literal)
	if lOK && rOK && lLit.Tok.Kind == NUMERIC_LITERAL && rLit.Tok.Kind == NUMERIC_LITERAL {
		if folded := foldBinary(lLit, rLit, n.Op); folded != nil {
			return folded
		}
	}
	return &Binary{Left: left, Op: n.Op, Right: right}
}

// foldBinary evaluates op over two numeric literals, returning nil when the
// operation is not foldable (unknown operator, or division by zero).
func foldBinary(left, right *Literal, op string) Expr {
	lv, lerr := strconv.ParseFloat(left.Tok.Lexeme, 64)
	rv, rerr := strconv.ParseFloat(right.Tok.Lexeme, 64)
	if lerr != nil || rerr != nil {
		return nil
	}
	allInt := !strings.Contains(left.Tok.Lexeme, ".") && !strings.Contains(right.Tok.Lexeme, ".")

	switch op {
	case "+":
		return foldedNumeric(lv+rv, allInt)
	case "-":
		return foldedNumeric(lv-rv, allInt)
	case "*":
		return foldedNumeric(lv*rv, allInt)
	case "/":
		if rv == 0 {
			return nil
		}
		return foldedNumeric(lv/rv, allInt)
	case "==":
		return boolLiteralExpr(lv == rv)
	case "!=":
		return boolLiteralExpr(lv != rv)
	case "<":
		return boolLiteralExpr(lv < rv)
	case ">":
		return boolLiteralExpr(lv > rv)
	case "<=":
		return boolLiteralExpr(lv <= rv)
	case ">=":
		return boolLiteralExpr(lv >= rv)
	case "&&":
		return boolLiteralExpr(lv != 0 && rv != 0)
	case "||":
		return boolLiteralExpr(lv != 0 || rv != 0)
	}
	return nil
}

// foldedNumeric renders a folded value as an integer lexeme when both source
// lexemes were integral and the result is exactly an int, and as a float
// lexeme (always carrying a dot) otherwise.
func foldedNumeric(v float64, allInt bool) Expr {
	if allInt && v == math.Trunc(v) && v >= math.MinInt32 && v <= math.MaxInt32 {
		return numericLiteralExpr(strconv.FormatInt(int64(v), 10))
	}
	lexeme := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(lexeme, ".") {
		lexeme += ".0"
	}
	return numericLiteralExpr(lexeme)
}

// literalTruth evaluates a literal as a condition: a numeric literal is
// true iff its value is non-zero, and the boolean literals carry their own
// truth. Anything else is unknown and left alone.
func literalTruth(e Expr) (truth, known bool) {
	lit, ok := e.(*Literal)
	if !ok {
		return false, false
	}
	switch lit.Tok.Kind {
	case BOOLEAN_LITERAL:
		return lit.Tok.Lexeme == "true", true
	case NUMERIC_LITERAL:
		v, err := strconv.ParseFloat(lit.Tok.Lexeme, 64)
		if err != nil {
			return false, false
		}
		return v != 0, true
	}
	return false, false
}

func numericLiteralExpr(lexeme string) Expr {
	return &Literal{Tok: Token{Kind: NUMERIC_LITERAL, Lexeme: lexeme}}
}

// boolLiteralExpr renders a folded truth value with the canonical "0"/"1"
// numeric encoding.
func boolLiteralExpr(v bool) Expr {
	if v {
		return numericLiteralExpr("1")
	}
	return numericLiteralExpr("0")
}
