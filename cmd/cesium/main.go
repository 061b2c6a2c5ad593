// Command cesium compiles a Cesium source file into a JVM class file.
//
// Usage: cesium [flags] <source.ces> <ProgramName>
//
// On success the compiled class is written to <ProgramName>.class in the
// working directory. Missing arguments, an unreadable file, or a failed
// compilation print a single line on stderr and exit 1. An unknown flag is
// reported by the flag package together with the usage text.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/labstack/gommon/color"
	log "github.com/sirupsen/logrus"

	"cesium/pkg/compiler"
)

func main() {
	printTokens := flag.Bool("tokens", false, "print the token stream")
	printAST := flag.Bool("ast", false, "print the AST tree")
	debug := flag.Bool("debug", false, "enable stage-level debug logging")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: cesium [flags] <source.ces> <ProgramName>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		fatal("Usage: cesium [flags] <source.ces> <ProgramName>")
	}
	sourcePath := flag.Arg(0)
	programName := flag.Arg(1)

	log.SetLevel(log.WarnLevel)
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		fatal("error reading file: %v", err)
	}
	src := string(data)

	if *printTokens || *printAST {
		dump(src, *printTokens, *printAST)
	}

	classBytes, err := compiler.Compile(src, programName)
	if err != nil {
		fatal("%s", describeError(err))
	}

	outPath := programName + ".class"
	if err := os.WriteFile(outPath, classBytes, 0o644); err != nil {
		fatal("error writing %s: %v", outPath, err)
	}
	fmt.Printf("Compilation successful. Generated %s\n", outPath)
}

// dump prints the token stream and AST for inspection. Errors are left for
// the compile call to report.
func dump(src string, tokens, ast bool) {
	toks, err := compiler.Lex(src)
	if err != nil {
		return
	}
	if tokens {
		for _, tok := range toks {
			fmt.Println(" ", tok)
		}
	}
	if ast {
		program, err := compiler.Parse(toks)
		if err != nil {
			return
		}
		fmt.Print(compiler.FormatAST(program))
	}
}

// describeError prefixes the message with the failing stage.
func describeError(err error) string {
	switch err.(type) {
	case *compiler.LexicalError:
		return "lexical error: " + err.Error()
	case *compiler.ParseError:
		return "parse error: " + err.Error()
	case *compiler.CodegenError:
		return "codegen error: " + err.Error()
	}
	return err.Error()
}

func fatal(format string, args ...any) {
	fmt.Fprintln(os.Stderr, color.Red(fmt.Sprintf(format, args...)))
	os.Exit(1)
}
