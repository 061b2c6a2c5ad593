package compiler

import "fmt"

// The three fatal error kinds of the pipeline. Each aborts compilation at
// the stage that raised it; none is recoverable.

// LexicalError reports an unrecognized character, a malformed numeric
// literal, or an unterminated string. It carries the 1-based source line.
type LexicalError struct {
	Msg  string
	Line int
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("%s at line %d", e.Msg, e.Line)
}

func lexErrorf(line int, format string, args ...any) error {
	return &LexicalError{Msg: fmt.Sprintf(format, args...), Line: line}
}

// ParseError reports a grammar violation. The message cites the lexeme found
// (or EOF) and, where a particular lexeme or construct was expected, names it.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return e.Msg
}

func parseErrorf(format string, args ...any) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}

// CodegenError reports an unsupported type, an undeclared variable, a call
// to an undefined function, or a type-mismatched operand.
type CodegenError struct {
	Msg string
}

func (e *CodegenError) Error() string {
	return e.Msg
}

func codegenErrorf(format string, args ...any) error {
	return &CodegenError{Msg: fmt.Sprintf(format, args...)}
}
