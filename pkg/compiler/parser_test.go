package compiler

import (
	"errors"
	"strings"
	"testing"
)

// parseSource lexes and parses src, failing the test on any error.
func parseSource(t *testing.T, src string) *Program {
	t.Helper()
	tokens, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex(%q): %v", src, err)
	}
	program, err := Parse(tokens)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return program
}

// parseErrorOf returns the parse error for src, failing the test if parsing
// succeeds or fails with a different error kind.
func parseErrorOf(t *testing.T, src string) *ParseError {
	t.Helper()
	tokens, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex(%q): %v", src, err)
	}
	_, err = Parse(tokens)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Parse(%q): expected *ParseError, got %v", src, err)
	}
	return parseErr
}

// exprOf parses src as a single expression statement and returns the
// expression.
func exprOf(t *testing.T, src string) Expr {
	t.Helper()
	program := parseSource(t, src+";")
	if len(program.Stmts) != 1 {
		t.Fatalf("expected a single statement, got %d", len(program.Stmts))
	}
	stmt, ok := program.Stmts[0].(*ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", program.Stmts[0])
	}
	return stmt.E
}

func TestParsePrecedence(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"1 < 2 == 3 < 4", "((1 < 2) == (3 < 4))"},
		{"a || b && c", "(a || (b && c))"},
		{"!a && b", "((!a) && b)"},
		{"-1 * 2", "((-1) * 2)"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"1 + 2 < 3 + 4", "((1 + 2) < (3 + 4))"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			got := exprOf(t, c.src).String()
			if got != c.want {
				t.Errorf("parse(%q) = %s, want %s", c.src, got, c.want)
			}
		})
	}
}

func TestParseStatements(t *testing.T) {
	t.Run("VarDeclWithInit", func(t *testing.T) {
		program := parseSource(t, "int x = 5;")
		decl, ok := program.Stmts[0].(*VarDecl)
		if !ok {
			t.Fatalf("expected VarDecl, got %T", program.Stmts[0])
		}
		if decl.Type != "int" || decl.Name != "x" || decl.Init == nil {
			t.Errorf("got %s", decl)
		}
	})

	t.Run("VarDeclWithoutInit", func(t *testing.T) {
		program := parseSource(t, "Stream s;")
		decl := program.Stmts[0].(*VarDecl)
		if decl.Type != "Stream" || decl.Init != nil {
			t.Errorf("got %s", decl)
		}
	})

	t.Run("Assignment", func(t *testing.T) {
		program := parseSource(t, "x = 1 + 2;")
		if _, ok := program.Stmts[0].(*Assign); !ok {
			t.Fatalf("expected Assign, got %T", program.Stmts[0])
		}
	})

	t.Run("CallStatement", func(t *testing.T) {
		// An identifier not followed by '=' parses as an expression statement.
		program := parseSource(t, "setValue(s, 7);")
		stmt, ok := program.Stmts[0].(*ExprStmt)
		if !ok {
			t.Fatalf("expected ExprStmt, got %T", program.Stmts[0])
		}
		call, ok := stmt.E.(*Call)
		if !ok || call.Name != "setValue" || len(call.Args) != 2 {
			t.Errorf("got %s", stmt.E)
		}
	})

	t.Run("Print", func(t *testing.T) {
		program := parseSource(t, "print(x);")
		if _, ok := program.Stmts[0].(*Print); !ok {
			t.Fatalf("expected Print, got %T", program.Stmts[0])
		}
	})

	t.Run("RawBlock", func(t *testing.T) {
		program := parseSource(t, "{ int x = 1; }")
		block, ok := program.Stmts[0].(*Block)
		if !ok || len(block.Stmts) != 1 {
			t.Fatalf("expected Block with one statement, got %T", program.Stmts[0])
		}
	})
}

func TestParseIf(t *testing.T) {
	t.Run("WithElse", func(t *testing.T) {
		program := parseSource(t, "if (x < 1) { print(1); } else { print(0); }")
		stmt := program.Stmts[0].(*If)
		if stmt.Else == nil {
			t.Error("else block missing")
		}
	})

	t.Run("WithoutElse", func(t *testing.T) {
		program := parseSource(t, "if (x) { }")
		stmt := program.Stmts[0].(*If)
		if stmt.Else != nil {
			t.Error("unexpected else block")
		}
		if len(stmt.Then.Stmts) != 0 {
			t.Error("then block should be empty")
		}
	})

	t.Run("NoSemicolonAfterBlock", func(t *testing.T) {
		// Block-ending statements do not consume a ';'.
		parseSource(t, "if (x) { } print(1);")
	})
}

func TestParseFor(t *testing.T) {
	t.Run("Full", func(t *testing.T) {
		program := parseSource(t, "for (int i = 0; i < 3; i = i + 1) { print(i); }")
		stmt := program.Stmts[0].(*For)
		if stmt.Init == nil || stmt.Cond == nil || stmt.Update == nil {
			t.Errorf("got %s", stmt)
		}
		if _, ok := stmt.Init.(*VarDecl); !ok {
			t.Errorf("init should be a VarDecl, got %T", stmt.Init)
		}
	})

	t.Run("AssignmentInit", func(t *testing.T) {
		program := parseSource(t, "for (i = 0; i < 3; i = i + 1) { }")
		stmt := program.Stmts[0].(*For)
		if _, ok := stmt.Init.(*Assign); !ok {
			t.Errorf("init should be an Assign, got %T", stmt.Init)
		}
	})

	t.Run("AllPartsEmpty", func(t *testing.T) {
		program := parseSource(t, "for (;;) { }")
		stmt := program.Stmts[0].(*For)
		if stmt.Init != nil || stmt.Cond != nil || stmt.Update != nil {
			t.Errorf("got %s", stmt)
		}
	})
}

func TestParseFunction(t *testing.T) {
	t.Run("WithParams", func(t *testing.T) {
		program := parseSource(t, "function add(int a, int b) { return a + b; }")
		fn := program.Stmts[0].(*FuncDecl)
		if fn.Name != "add" || len(fn.Params) != 2 {
			t.Fatalf("got %s", fn)
		}
		if fn.Params[0] != (Parameter{Type: "int", Name: "a"}) {
			t.Errorf("param 0: got %v", fn.Params[0])
		}
	})

	t.Run("EmptyBody", func(t *testing.T) {
		program := parseSource(t, "function f() {}")
		fn := program.Stmts[0].(*FuncDecl)
		if len(fn.Body.Stmts) != 0 {
			t.Errorf("body should be empty, got %d statements", len(fn.Body.Stmts))
		}
	})

	t.Run("MissingParamType", func(t *testing.T) {
		parseErrorOf(t, "function f(a) { }")
	})
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"MissingExpression":   "a = ;",
		"UnclosedParen":       "x = (1 + 2;",
		"MissingSemicolon":    "int x = 1",
		"MissingCondParen":    "if x { }",
		"DanglingElse":        "else { }",
		"ReservedReactive":    "reactive x;",
		"UnclosedBlock":       "{ print(1);",
		"UnexpectedDelimiter": ";",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			parseErrorOf(t, src)
		})
	}
}

func TestParseErrorNamesLexeme(t *testing.T) {
	err := parseErrorOf(t, "a = ;")
	if err.Msg == "" {
		t.Fatal("empty error message")
	}
	// The message cites the offending lexeme.
	if want := "';'"; !strings.Contains(err.Msg, want) {
		t.Errorf("error %q does not mention %s", err.Msg, want)
	}
}

func TestParseErrorAtEOF(t *testing.T) {
	err := parseErrorOf(t, "int x = 1")
	if !strings.Contains(err.Msg, "EOF") {
		t.Errorf("error %q does not mention EOF", err.Msg)
	}
}
