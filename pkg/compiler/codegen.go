package compiler

import (
	"strconv"
	"strings"

	"cesium/pkg/classfile"
)

// Internal names of the runtime library classes the emitted program links
// against. They live alongside the artifact and are resolved by the VM's
// class loader, not by this compiler.
const (
	runtimeStream      = "org/cesium/Stream"
	runtimeReactive    = "org/cesium/Reactive"
	runtimeReactiveOps = "org/cesium/ReactiveOps"
	runtimeUtil        = "org/cesium/Util"
)

// methodSig records the emitted name and descriptor of a user function so
// calls can be resolved by name.
type methodSig struct {
	name       string
	descriptor string
}

// CodeGen walks the simplified AST and emits one class: a default
// constructor, a public static main, and one public static int method per
// user function.
type CodeGen struct {
	cw        *classfile.ClassWriter
	className string

	// methods is a stack of in-progress method writers; the top one receives
	// all instructions. It never grows past two deep: main plus at most one
	// user function, since nested function emission is rejected.
	methods   []*classfile.MethodWriter
	scopes    scopeStack
	functions map[string]methodSig
}

// Generate emits the class file bytes for a simplified program. className
// becomes the internal class name, so dots act as package separators.
func Generate(program *Program, className string) ([]byte, error) {
	internal := strings.ReplaceAll(className, ".", "/")
	cg := &CodeGen{
		cw:        classfile.NewClassWriter(internal),
		className: internal,
		functions: make(map[string]methodSig),
	}
	cg.cw.EmitDefaultConstructor()

	// main reserves slot 0 for the [Ljava/lang/String; argument.
	cg.startMethod("main", "([Ljava/lang/String;)V", 1)
	for _, s := range program.Stmts {
		if err := cg.genStmt(s); err != nil {
			return nil, err
		}
	}
	cg.cur().Return()
	cg.endMethod()

	return cg.cw.Bytes()
}

func (cg *CodeGen) cur() *classfile.MethodWriter {
	return cg.methods[len(cg.methods)-1]
}

// startMethod pushes a fresh method writer and scope frame whose first free
// local slot is startSlot.
func (cg *CodeGen) startMethod(name, descriptor string, startSlot int) {
	mw := cg.cw.NewMethod(classfile.AccPublic|classfile.AccStatic, name, descriptor)
	cg.methods = append(cg.methods, mw)
	cg.scopes.push(startSlot)
}

// endMethod finalizes the current frame; max stack and locals were tracked
// by the method writer along the way.
func (cg *CodeGen) endMethod() {
	cg.methods = cg.methods[:len(cg.methods)-1]
	cg.scopes.pop()
}

// inMain reports whether emission is currently inside the outermost frame.
func (cg *CodeGen) inMain() bool {
	return len(cg.methods) == 1
}

func isSupportedType(typeName string) bool {
	switch typeName {
	case "int", "float", "string", "Stream", "Reactive":
		return true
	}
	return false
}

// typeDescriptor converts a Cesium type into the JVM descriptor used in
// user-function signatures.
func typeDescriptor(typeName string) (string, error) {
	switch typeName {
	case "int":
		return "I", nil
	case "float":
		return "F", nil
	case "string":
		return "Ljava/lang/String;", nil
	case "Stream", "Reactive":
		return "Ljava/lang/Object;", nil
	}
	return "", codegenErrorf("unsupported type: %s", typeName)
}

func isNumericType(typeName string) bool {
	return typeName == "int" || typeName == "float"
}

func isReactiveType(typeName string) bool {
	return typeName == "Stream" || typeName == "Reactive"
}

//  Statements

func (cg *CodeGen) genStmt(s Stmt) error {
	switch n := s.(type) {
	case *VarDecl:
		return cg.genVarDecl(n)
	case *FuncDecl:
		return cg.genFuncDecl(n)
	case *Assign:
		return cg.genAssign(n)
	case *ExprStmt:
		return cg.genExprStmt(n)
	case *Print:
		return cg.genPrint(n)
	case *If:
		return cg.genIf(n)
	case *While:
		return cg.genWhile(n)
	case *For:
		return cg.genFor(n)
	case *Return:
		return cg.genReturn(n)
	case *Block:
		return cg.genBlock(n)
	}
	return codegenErrorf("unsupported statement: %s", s)
}

func (cg *CodeGen) genBlock(b *Block) error {
	for _, s := range b.Stmts {
		if err := cg.genStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (cg *CodeGen) genVarDecl(n *VarDecl) error {
	if !isSupportedType(n.Type) {
		return codegenErrorf("unsupported type: %s", n.Type)
	}
	v := cg.scopes.declare(n.Name, n.Type)

	if n.Init == nil {
		cg.genDefaultValue(n.Type, v.Slot)
		return nil
	}

	// A Stream declared with a literal constructs a fresh Stream and seeds
	// its value through the runtime helper.
	if n.Type == "Stream" {
		if lit, ok := n.Init.(*Literal); ok {
			return cg.genStreamFromLiteral(v.Slot, lit)
		}
	}

	if err := cg.genExpr(n.Init); err != nil {
		return err
	}
	cg.store(n.Type, v.Slot)
	return nil
}

func (cg *CodeGen) genStreamFromLiteral(slot int, lit *Literal) error {
	if lit.Tok.Kind != NUMERIC_LITERAL || strings.Contains(lit.Tok.Lexeme, ".") {
		return codegenErrorf("cannot initialize Stream with non-integer literal %q", lit.Tok.Lexeme)
	}
	value, err := strconv.ParseInt(lit.Tok.Lexeme, 10, 32)
	if err != nil {
		return codegenErrorf("cannot initialize Stream with literal %q", lit.Tok.Lexeme)
	}

	mw := cg.cur()
	mw.New(runtimeStream)
	mw.Op(classfile.OpDup)
	mw.InvokeSpecial(runtimeStream, "<init>", "()V")
	mw.StoreRef(slot)

	mw.LoadRef(slot)
	mw.PushInt(int32(value))
	mw.InvokeStatic(runtimeUtil, "setValue", "(Lorg/cesium/Stream;I)V")
	return nil
}

// genDefaultValue stores the zero value for a declared-but-uninitialized
// variable: int 0, float 0.0, string "", a fresh empty Stream, or a null
// Reactive reference.
func (cg *CodeGen) genDefaultValue(typeName string, slot int) {
	mw := cg.cur()
	switch typeName {
	case "int":
		mw.PushInt(0)
		mw.StoreInt(slot)
	case "float":
		mw.PushFloat(0)
		mw.StoreFloat(slot)
	case "string":
		mw.PushString("")
		mw.StoreRef(slot)
	case "Stream":
		mw.New(runtimeStream)
		mw.Op(classfile.OpDup)
		mw.InvokeSpecial(runtimeStream, "<init>", "()V")
		mw.StoreRef(slot)
	case "Reactive":
		mw.PushNull()
		mw.StoreRef(slot)
	}
}

func (cg *CodeGen) genFuncDecl(n *FuncDecl) error {
	if !cg.inMain() {
		return codegenErrorf("function %s declared inside another function", n.Name)
	}

	var descriptor strings.Builder
	descriptor.WriteByte('(')
	for _, param := range n.Params {
		d, err := typeDescriptor(param.Type)
		if err != nil {
			return codegenErrorf("unsupported parameter type: %s", param.Type)
		}
		descriptor.WriteString(d)
	}
	descriptor.WriteString(")I")

	// Register the signature before emitting the body so the function can
	// call itself.
	sig := methodSig{name: n.Name, descriptor: descriptor.String()}
	cg.functions[n.Name] = sig

	cg.startMethod(n.Name, sig.descriptor, len(n.Params))
	for i, param := range n.Params {
		cg.scopes.define(param.Name, param.Type, i)
	}
	if err := cg.genBlock(n.Body); err != nil {
		return err
	}

	// Implicit trailing return keeps the verifier satisfied when the body
	// falls through without one.
	cg.cur().PushInt(0)
	cg.cur().Op(classfile.OpIreturn)
	cg.endMethod()
	return nil
}

func (cg *CodeGen) genAssign(n *Assign) error {
	v, ok := cg.scopes.lookup(n.Name)
	if !ok {
		return codegenErrorf("undeclared variable: %s", n.Name)
	}
	if err := cg.genExpr(n.Value); err != nil {
		return err
	}
	cg.store(v.Type, v.Slot)
	return nil
}

func (cg *CodeGen) genExprStmt(n *ExprStmt) error {
	// The setValue builtin leaves nothing on the stack, so a call statement
	// needs no pop.
	if call, ok := n.E.(*Call); ok && call.Name == "setValue" {
		return cg.genSetValue(call)
	}
	if err := cg.genExpr(n.E); err != nil {
		return err
	}
	cg.cur().Op(classfile.OpPop)
	return nil
}

func (cg *CodeGen) genPrint(n *Print) error {
	exprType, err := cg.inferType(n.E)
	if err != nil {
		return err
	}
	mw := cg.cur()

	// A Reactive prints through the runtime helper, which renders an absent
	// value as "null" and a present one as its decimal text.
	if exprType == "Reactive" {
		if err := cg.genExpr(n.E); err != nil {
			return err
		}
		mw.InvokeVirtual(runtimeReactive, "getValue", "()Ljava/lang/Integer;")
		mw.InvokeStatic(runtimeUtil, "printReactiveValue", "(Ljava/lang/Integer;)V")
		return nil
	}

	mw.GetStatic("java/lang/System", "out", "Ljava/io/PrintStream;")
	if err := cg.genExpr(n.E); err != nil {
		return err
	}
	switch exprType {
	case "int":
		mw.InvokeVirtual("java/io/PrintStream", "println", "(I)V")
	case "float":
		mw.InvokeVirtual("java/io/PrintStream", "println", "(F)V")
	case "string":
		mw.InvokeVirtual("java/io/PrintStream", "println", "(Ljava/lang/String;)V")
	default:
		mw.InvokeVirtual("java/io/PrintStream", "println", "(Ljava/lang/Object;)V")
	}
	return nil
}

func (cg *CodeGen) genIf(n *If) error {
	mw := cg.cur()
	elseLabel := mw.NewLabel()
	endLabel := mw.NewLabel()

	if err := cg.genExpr(n.Cond); err != nil {
		return err
	}
	mw.Branch(classfile.OpIfeq, elseLabel)

	if err := cg.genBlock(n.Then); err != nil {
		return err
	}
	mw.Branch(classfile.OpGoto, endLabel)

	mw.Bind(elseLabel)
	if n.Else != nil {
		if err := cg.genBlock(n.Else); err != nil {
			return err
		}
	}
	mw.Bind(endLabel)
	return nil
}

func (cg *CodeGen) genWhile(n *While) error {
	mw := cg.cur()
	startLabel := mw.NewLabel()
	endLabel := mw.NewLabel()

	mw.Bind(startLabel)
	if err := cg.genExpr(n.Cond); err != nil {
		return err
	}
	mw.Branch(classfile.OpIfeq, endLabel)

	if err := cg.genBlock(n.Body); err != nil {
		return err
	}
	mw.Branch(classfile.OpGoto, startLabel)
	mw.Bind(endLabel)
	return nil
}

func (cg *CodeGen) genFor(n *For) error {
	if n.Init != nil {
		if err := cg.genStmt(n.Init); err != nil {
			return err
		}
	}
	mw := cg.cur()
	startLabel := mw.NewLabel()
	endLabel := mw.NewLabel()

	mw.Bind(startLabel)
	if n.Cond != nil {
		if err := cg.genExpr(n.Cond); err != nil {
			return err
		}
		mw.Branch(classfile.OpIfeq, endLabel)
	}
	if err := cg.genBlock(n.Body); err != nil {
		return err
	}
	if n.Update != nil {
		if err := cg.genStmt(n.Update); err != nil {
			return err
		}
	}
	mw.Branch(classfile.OpGoto, startLabel)
	mw.Bind(endLabel)
	return nil
}

func (cg *CodeGen) genReturn(n *Return) error {
	mw := cg.cur()
	if cg.inMain() {
		// main is void: evaluate for effect, discard, and return.
		if n.E != nil {
			if err := cg.genExpr(n.E); err != nil {
				return err
			}
			mw.Op(classfile.OpPop)
		}
		mw.Return()
		return nil
	}
	if err := cg.genExpr(n.E); err != nil {
		return err
	}
	mw.Op(classfile.OpIreturn)
	return nil
}

//  Expressions

func (cg *CodeGen) genExpr(e Expr) error {
	switch n := e.(type) {
	case *Literal:
		return cg.genLiteral(n)
	case *Variable:
		return cg.genVariable(n)
	case *Unary:
		return cg.genUnary(n)
	case *Binary:
		return cg.genBinary(n)
	case *Call:
		return cg.genCall(n)
	}
	return codegenErrorf("unsupported expression: %s", e)
}

func (cg *CodeGen) genLiteral(n *Literal) error {
	mw := cg.cur()
	switch n.Tok.Kind {
	case NUMERIC_LITERAL:
		if strings.Contains(n.Tok.Lexeme, ".") {
			v, err := strconv.ParseFloat(n.Tok.Lexeme, 32)
			if err != nil {
				return codegenErrorf("invalid float literal %q", n.Tok.Lexeme)
			}
			mw.PushFloat(float32(v))
		} else {
			v, err := strconv.ParseInt(n.Tok.Lexeme, 10, 32)
			if err != nil {
				return codegenErrorf("invalid int literal %q", n.Tok.Lexeme)
			}
			mw.PushInt(int32(v))
		}
	case BOOLEAN_LITERAL:
		if n.Tok.Lexeme == "true" {
			mw.PushInt(1)
		} else {
			mw.PushInt(0)
		}
	case STRING_LITERAL:
		mw.PushString(n.Tok.Lexeme)
	default:
		return codegenErrorf("unsupported literal: %s", n.Tok)
	}
	return nil
}

func (cg *CodeGen) genVariable(n *Variable) error {
	v, ok := cg.scopes.lookup(n.Name)
	if !ok {
		return codegenErrorf("undeclared variable: %s", n.Name)
	}
	cg.load(v.Type, v.Slot)
	return nil
}

func (cg *CodeGen) genUnary(n *Unary) error {
	mw := cg.cur()
	switch n.Op {
	case "!":
		if err := cg.genExpr(n.Operand); err != nil {
			return err
		}
		trueLabel := mw.NewLabel()
		endLabel := mw.NewLabel()
		mw.Branch(classfile.OpIfeq, trueLabel)
		mw.PushInt(0)
		mw.Branch(classfile.OpGoto, endLabel)
		mw.Bind(trueLabel)
		mw.PushInt(1)
		mw.Bind(endLabel)
		return nil
	case "-":
		if err := cg.genExpr(n.Operand); err != nil {
			return err
		}
		operandType, err := cg.inferType(n.Operand)
		if err != nil {
			return err
		}
		switch operandType {
		case "int":
			mw.Op(classfile.OpIneg)
		case "float":
			mw.Op(classfile.OpFneg)
		default:
			return codegenErrorf("unary minus on non-numeric type: %s", operandType)
		}
		return nil
	}
	return codegenErrorf("unsupported unary operator: %s", n.Op)
}

func isComparisonOp(op string) bool {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=":
		return true
	}
	return false
}

func (cg *CodeGen) genBinary(n *Binary) error {
	leftType, err := cg.inferType(n.Left)
	if err != nil {
		return err
	}
	rightType, err := cg.inferType(n.Right)
	if err != nil {
		return err
	}

	switch {
	case n.Op == "||" || n.Op == "&&":
		if leftType != "int" || rightType != "int" {
			return codegenErrorf("logical operator %s requires int operands, got %s and %s",
				n.Op, leftType, rightType)
		}
		return cg.genLogical(n)
	case isComparisonOp(n.Op):
		if !isNumericType(leftType) || !isNumericType(rightType) {
			return codegenErrorf("comparison %s requires numeric operands, got %s and %s",
				n.Op, leftType, rightType)
		}
		return cg.genComparison(n, leftType, rightType)
	case n.Op == "+" || n.Op == "-" || n.Op == "*" || n.Op == "/":
		if isNumericType(leftType) && isNumericType(rightType) {
			return cg.genArithmetic(n, leftType, rightType)
		}
		return cg.genReactiveArithmetic(n, leftType, rightType)
	}
	return codegenErrorf("unsupported operator: %s", n.Op)
}

// genArithmetic lowers numeric + - * /, widening int to float when the
// other operand is float.
func (cg *CodeGen) genArithmetic(n *Binary, leftType, rightType string) error {
	mw := cg.cur()
	if err := cg.genExpr(n.Left); err != nil {
		return err
	}
	if leftType == "int" && rightType == "float" {
		mw.Op(classfile.OpI2f)
		leftType = "float"
	}
	if err := cg.genExpr(n.Right); err != nil {
		return err
	}
	if leftType == "float" && rightType == "int" {
		mw.Op(classfile.OpI2f)
		rightType = "float"
	}

	if leftType == "int" && rightType == "int" {
		switch n.Op {
		case "+":
			mw.Op(classfile.OpIadd)
		case "-":
			mw.Op(classfile.OpIsub)
		case "*":
			mw.Op(classfile.OpImul)
		case "/":
			mw.Op(classfile.OpIdiv)
		}
	} else {
		switch n.Op {
		case "+":
			mw.Op(classfile.OpFadd)
		case "-":
			mw.Op(classfile.OpFsub)
		case "*":
			mw.Op(classfile.OpFmul)
		case "/":
			mw.Op(classfile.OpFdiv)
		}
	}
	return nil
}

// genReactiveArithmetic lowers Stream/Reactive arithmetic to the static
// derive helpers. The overload is selected by the left operand's type, so
// the left operand must be the Stream or Reactive and the right an int.
func (cg *CodeGen) genReactiveArithmetic(n *Binary, leftType, rightType string) error {
	if !isReactiveType(leftType) || rightType != "int" {
		return codegenErrorf("arithmetic %s not supported on operand types %s and %s",
			n.Op, leftType, rightType)
	}

	if err := cg.genExpr(n.Left); err != nil {
		return err
	}
	if err := cg.genExpr(n.Right); err != nil {
		return err
	}

	var method string
	switch n.Op {
	case "+":
		method = "add"
	case "-":
		method = "subtract"
	case "*":
		method = "multiply"
	case "/":
		method = "divide"
	}

	descriptor := "(Lorg/cesium/Reactive;I)Lorg/cesium/Reactive;"
	if leftType == "Stream" {
		descriptor = "(Lorg/cesium/Stream;I)Lorg/cesium/Reactive;"
	}
	cg.cur().InvokeStatic(runtimeReactiveOps, method, descriptor)
	return nil
}

// genComparison materializes a comparison as int 0 or 1 so it composes with
// further logical or arithmetic operations.
func (cg *CodeGen) genComparison(n *Binary, leftType, rightType string) error {
	mw := cg.cur()
	if err := cg.genExpr(n.Left); err != nil {
		return err
	}
	if leftType == "int" && rightType == "float" {
		mw.Op(classfile.OpI2f)
		leftType = "float"
	}
	if err := cg.genExpr(n.Right); err != nil {
		return err
	}
	if leftType == "float" && rightType == "int" {
		mw.Op(classfile.OpI2f)
		rightType = "float"
	}

	trueLabel := mw.NewLabel()
	endLabel := mw.NewLabel()

	if leftType == "int" && rightType == "int" {
		switch n.Op {
		case "==":
			mw.Branch(classfile.OpIfIcmpeq, trueLabel)
		case "!=":
			mw.Branch(classfile.OpIfIcmpne, trueLabel)
		case "<":
			mw.Branch(classfile.OpIfIcmplt, trueLabel)
		case ">":
			mw.Branch(classfile.OpIfIcmpgt, trueLabel)
		case "<=":
			mw.Branch(classfile.OpIfIcmple, trueLabel)
		case ">=":
			mw.Branch(classfile.OpIfIcmpge, trueLabel)
		}
	} else {
		mw.Op(classfile.OpFcmpg)
		switch n.Op {
		case "==":
			mw.Branch(classfile.OpIfeq, trueLabel)
		case "!=":
			mw.Branch(classfile.OpIfne, trueLabel)
		case "<":
			mw.Branch(classfile.OpIflt, trueLabel)
		case ">":
			mw.Branch(classfile.OpIfgt, trueLabel)
		case "<=":
			mw.Branch(classfile.OpIfle, trueLabel)
		case ">=":
			mw.Branch(classfile.OpIfge, trueLabel)
		}
	}

	mw.PushInt(0)
	mw.Branch(classfile.OpGoto, endLabel)
	mw.Bind(trueLabel)
	mw.PushInt(1)
	mw.Bind(endLabel)
	return nil
}

// genLogical lowers || and && with short-circuit evaluation; the result is
// always int 0 or 1.
func (cg *CodeGen) genLogical(n *Binary) error {
	mw := cg.cur()
	if err := cg.genExpr(n.Left); err != nil {
		return err
	}

	if n.Op == "||" {
		trueLabel := mw.NewLabel()
		falseLabel := mw.NewLabel()
		endLabel := mw.NewLabel()

		// Left non-zero short-circuits to true.
		mw.Branch(classfile.OpIfne, trueLabel)
		if err := cg.genExpr(n.Right); err != nil {
			return err
		}
		mw.Branch(classfile.OpIfeq, falseLabel)
		mw.PushInt(1)
		mw.Branch(classfile.OpGoto, endLabel)
		mw.Bind(falseLabel)
		mw.PushInt(0)
		mw.Branch(classfile.OpGoto, endLabel)
		mw.Bind(trueLabel)
		mw.PushInt(1)
		mw.Bind(endLabel)
		return nil
	}

	falseLabel := mw.NewLabel()
	endLabel := mw.NewLabel()

	// Left zero short-circuits to false.
	mw.Branch(classfile.OpIfeq, falseLabel)
	if err := cg.genExpr(n.Right); err != nil {
		return err
	}
	mw.Branch(classfile.OpIfeq, falseLabel)
	mw.PushInt(1)
	mw.Branch(classfile.OpGoto, endLabel)
	mw.Bind(falseLabel)
	mw.PushInt(0)
	mw.Bind(endLabel)
	return nil
}

// genSetValue lowers the setValue builtin. It is only valid as a statement;
// the runtime helper returns nothing.
func (cg *CodeGen) genSetValue(n *Call) error {
	if len(n.Args) != 2 {
		return codegenErrorf("setValue expects 2 arguments, got %d", len(n.Args))
	}
	for _, arg := range n.Args {
		if err := cg.genExpr(arg); err != nil {
			return err
		}
	}
	cg.cur().InvokeStatic(runtimeUtil, "setValue", "(Lorg/cesium/Stream;I)V")
	return nil
}

func (cg *CodeGen) genCall(n *Call) error {
	if n.Name == "setValue" {
		return codegenErrorf("setValue produces no value and cannot be used in an expression")
	}
	sig, ok := cg.functions[n.Name]
	if !ok {
		return codegenErrorf("call to undefined function: %s", n.Name)
	}
	if want := paramCount(sig.descriptor); len(n.Args) != want {
		return codegenErrorf("function %s expects %d arguments, got %d", n.Name, want, len(n.Args))
	}
	for _, arg := range n.Args {
		if err := cg.genExpr(arg); err != nil {
			return err
		}
	}
	cg.cur().InvokeStatic(cg.className, sig.name, sig.descriptor)
	return nil
}

// paramCount counts parameters in a user-function descriptor; every Cesium
// type maps to a single-slot descriptor.
func paramCount(descriptor string) int {
	n := 0
	for i := 1; i < len(descriptor) && descriptor[i] != ')'; i++ {
		if descriptor[i] == 'L' {
			for descriptor[i] != ';' {
				i++
			}
		}
		n++
	}
	return n
}

//  Type inference

// inferType computes the static type of an expression post-order.
func (cg *CodeGen) inferType(e Expr) (string, error) {
	switch n := e.(type) {
	case *Literal:
		switch n.Tok.Kind {
		case NUMERIC_LITERAL:
			if strings.Contains(n.Tok.Lexeme, ".") {
				return "float", nil
			}
			return "int", nil
		case BOOLEAN_LITERAL:
			return "int", nil
		case STRING_LITERAL:
			return "string", nil
		}
		return "", codegenErrorf("unsupported literal: %s", n.Tok)

	case *Variable:
		v, ok := cg.scopes.lookup(n.Name)
		if !ok {
			return "", codegenErrorf("undeclared variable: %s", n.Name)
		}
		return v.Type, nil

	case *Unary:
		if n.Op == "!" {
			return "int", nil
		}
		return cg.inferType(n.Operand)

	case *Binary:
		if n.Op == "||" || n.Op == "&&" || isComparisonOp(n.Op) {
			return "int", nil
		}
		leftType, err := cg.inferType(n.Left)
		if err != nil {
			return "", err
		}
		rightType, err := cg.inferType(n.Right)
		if err != nil {
			return "", err
		}
		if isReactiveType(leftType) || isReactiveType(rightType) {
			return "Reactive", nil
		}
		if leftType == "float" || rightType == "float" {
			return "float", nil
		}
		return "int", nil

	case *Call:
		// All user functions return int.
		return "int", nil
	}
	return "", codegenErrorf("cannot infer type of expression: %s", e)
}

func (cg *CodeGen) load(typeName string, slot int) {
	mw := cg.cur()
	switch typeName {
	case "int":
		mw.LoadInt(slot)
	case "float":
		mw.LoadFloat(slot)
	default:
		mw.LoadRef(slot)
	}
}

func (cg *CodeGen) store(typeName string, slot int) {
	mw := cg.cur()
	switch typeName {
	case "int":
		mw.StoreInt(slot)
	case "float":
		mw.StoreFloat(slot)
	default:
		mw.StoreRef(slot)
	}
}
