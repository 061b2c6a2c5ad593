// Package compiler implements the Cesium compiler core.
//
// Pipeline: source text → Lex → Parse → Simplify → Generate → JVM class
// bytes. Each stage completes fully before the next begins and the first
// error aborts the pipeline.
package compiler

import (
	log "github.com/sirupsen/logrus"
)

// Compile runs the full pipeline over src and returns the class file bytes
// for a class named className. The error is a *LexicalError, *ParseError, or
// *CodegenError depending on the stage that failed.
func Compile(src, className string) ([]byte, error) {
	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"stage": "lex", "tokens": len(tokens)}).Debug("lexed source")

	program, err := Parse(tokens)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"stage": "parse", "statements": len(program.Stmts)}).Debug("parsed program")

	simplified := Simplify(program)
	log.WithFields(log.Fields{"stage": "optimize", "statements": len(simplified.Stmts)}).Debug("simplified program")

	classBytes, err := Generate(simplified, className)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"stage": "emit", "bytes": len(classBytes)}).Debug("emitted class")

	return classBytes, nil
}
