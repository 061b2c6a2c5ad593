package compiler

import (
	"bytes"
	"errors"
	"testing"
)

// The scenarios below mirror the end-to-end programs the compiler must
// accept (or reject): each valid one must make it through the whole
// pipeline into a well-formed class.

func TestCompileScenarios(t *testing.T) {
	sources := map[string]string{
		"FoldedArithmetic": "int a = 2 + 3 * 4; print(a);",
		"Fibonacci": `
			function fib(int n) {
				int a = 0;
				int b = 1;
				for (int i = 0; i < n; i = i + 1) {
					int t = a + b;
					a = b;
					b = t;
				}
				return a;
			}
			for (int i = 0; i < 10; i = i + 1) {
				print(fib(i));
			}
		`,
		"ReactivePipeline": "Stream s = 5; Reactive r = s * 2; print(r); setValue(s, 7); print(r);",
		"ConstantIf":       "if (1 < 2) { print(1); } else { print(0); }",
		"CountingFor":      "for (int i = 0; i < 3; i = i + 1) { print(i); }",
		"DeadWhile":        "while (false) { print(99); } print(1);",
		"EmptyFunction":    "function f() {} print(f());",
		"DefaultInt":       "int x; print(x);",
	}
	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			classBytes, err := Compile(src, "Scenario")
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			if len(classBytes) == 0 {
				t.Fatal("empty class")
			}
		})
	}
}

func TestCompileStringConcatenationRejected(t *testing.T) {
	// String concatenation with + is not a supported operator; the Fibonacci
	// demo that labels its output lines must fail with a codegen error.
	src := `
		function fib(int n) { return n; }
		for (int i = 0; i < 10; i = i + 1) {
			print("Fibonacci(" + i + ") = " + fib(i));
		}
	`
	_, err := Compile(src, "Scenario")
	var cgErr *CodegenError
	if !errors.As(err, &cgErr) {
		t.Fatalf("expected *CodegenError, got %v", err)
	}
}

func TestCompileErrorKinds(t *testing.T) {
	t.Run("Lexical", func(t *testing.T) {
		_, err := Compile("int x = 1.;", "Scenario")
		var lexErr *LexicalError
		if !errors.As(err, &lexErr) {
			t.Fatalf("expected *LexicalError, got %v", err)
		}
	})

	t.Run("Parse", func(t *testing.T) {
		_, err := Compile("a = ;", "Scenario")
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *ParseError, got %v", err)
		}
	})

	t.Run("Codegen", func(t *testing.T) {
		_, err := Compile("print(undefined);", "Scenario")
		var cgErr *CodegenError
		if !errors.As(err, &cgErr) {
			t.Fatalf("expected *CodegenError, got %v", err)
		}
	})
}

func TestCompileDeadBranchLeavesNoTrace(t *testing.T) {
	// The untaken branch of a constant if is elided before emission: its
	// literals never reach the constant pool.
	classBytes, err := Compile(`if (1 < 2) { print(1); } else { print("dead branch"); }`, "Scenario")
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(classBytes, []byte("dead branch")) {
		t.Error("else branch of a constant-true if leaked into the class")
	}
}

func TestCompileDeadWhileLeavesNoTrace(t *testing.T) {
	classBytes, err := Compile(`while (false) { print("never runs"); } print(1);`, "Scenario")
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(classBytes, []byte("never runs")) {
		t.Error("while(false) body leaked into the class")
	}
}

func TestCompileClassNameWithPackage(t *testing.T) {
	classBytes, err := Compile("print(1);", "com.example.Prog")
	if err != nil {
		t.Fatal(err)
	}
	// Dots become the internal slash form.
	if !bytes.Contains(classBytes, []byte("com/example/Prog")) {
		t.Error("internal class name missing from the pool")
	}
}
