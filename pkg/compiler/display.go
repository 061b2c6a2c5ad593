package compiler

import (
	"fmt"
	"strings"
)

// FormatAST renders a program as an indented tree using box-drawing
// branches, one node per line.
func FormatAST(program *Program) string {
	var sb strings.Builder
	sb.WriteString("Program\n")
	for i, s := range program.Stmts {
		writeStmt(&sb, s, "", i == len(program.Stmts)-1)
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, indent string, isLast bool, label string) string {
	branch := "├── "
	childIndent := indent + "│   "
	if isLast {
		branch = "└── "
		childIndent = indent + "    "
	}
	fmt.Fprintf(sb, "%s%s%s\n", indent, branch, label)
	return childIndent
}

func writeStmt(sb *strings.Builder, s Stmt, indent string, isLast bool) {
	switch n := s.(type) {
	case *VarDecl:
		inner := writeNode(sb, indent, isLast, fmt.Sprintf("VarDecl %s %s", n.Type, n.Name))
		if n.Init != nil {
			writeExpr(sb, n.Init, inner, true)
		}
	case *FuncDecl:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.String()
		}
		inner := writeNode(sb, indent, isLast,
			fmt.Sprintf("FuncDecl %s(%s)", n.Name, strings.Join(params, ", ")))
		writeStmt(sb, n.Body, inner, true)
	case *Assign:
		inner := writeNode(sb, indent, isLast, "Assign "+n.Name)
		writeExpr(sb, n.Value, inner, true)
	case *ExprStmt:
		inner := writeNode(sb, indent, isLast, "ExprStmt")
		writeExpr(sb, n.E, inner, true)
	case *Print:
		inner := writeNode(sb, indent, isLast, "Print")
		writeExpr(sb, n.E, inner, true)
	case *If:
		inner := writeNode(sb, indent, isLast, "If")
		writeExpr(sb, n.Cond, inner, false)
		writeStmt(sb, n.Then, inner, n.Else == nil)
		if n.Else != nil {
			writeStmt(sb, n.Else, inner, true)
		}
	case *While:
		inner := writeNode(sb, indent, isLast, "While")
		writeExpr(sb, n.Cond, inner, false)
		writeStmt(sb, n.Body, inner, true)
	case *For:
		inner := writeNode(sb, indent, isLast, "For")
		if n.Init != nil {
			writeStmt(sb, n.Init, inner, false)
		}
		if n.Cond != nil {
			writeExpr(sb, n.Cond, inner, false)
		}
		if n.Update != nil {
			writeStmt(sb, n.Update, inner, false)
		}
		writeStmt(sb, n.Body, inner, true)
	case *Return:
		inner := writeNode(sb, indent, isLast, "Return")
		writeExpr(sb, n.E, inner, true)
	case *Block:
		inner := writeNode(sb, indent, isLast, "Block")
		for i, child := range n.Stmts {
			writeStmt(sb, child, inner, i == len(n.Stmts)-1)
		}
	default:
		writeNode(sb, indent, isLast, s.String())
	}
}

func writeExpr(sb *strings.Builder, e Expr, indent string, isLast bool) {
	switch n := e.(type) {
	case *Literal:
		writeNode(sb, indent, isLast, fmt.Sprintf("%s (%s)", n.Tok.Kind, n.Tok.Lexeme))
	case *Variable:
		writeNode(sb, indent, isLast, "Variable ("+n.Name+")")
	case *Unary:
		inner := writeNode(sb, indent, isLast, "Unary ("+n.Op+")")
		writeExpr(sb, n.Operand, inner, true)
	case *Binary:
		inner := writeNode(sb, indent, isLast, "Binary ("+n.Op+")")
		writeExpr(sb, n.Left, inner, false)
		writeExpr(sb, n.Right, inner, true)
	case *Call:
		inner := writeNode(sb, indent, isLast, "Call ("+n.Name+")")
		for i, arg := range n.Args {
			writeExpr(sb, arg, inner, i == len(n.Args)-1)
		}
	default:
		writeNode(sb, indent, isLast, e.String())
	}
}
