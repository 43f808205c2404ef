package evaluator

import (
	"fmt"
	"newt/internal/ast"
	"newt/internal/object"
)

var UNDEFINED = object.UNDEFINED

// Eval walks the tree rooted at node in the given environment. Failures
// (*object.Error) and in-flight returns (*object.ReturnValue) short-circuit
// everything above them until a block, the program root, or a call boundary
// gives them meaning; an unknown node type is a bug in the parser, not a
// runtime condition.
func Eval(node ast.Node, env *object.Environment) object.Value {
	switch node := node.(type) {

	case *ast.Program:
		return evalProgram(node, env)

	case *ast.Block:
		return evalBlock(node, env)

	// Literals
	case *ast.IntegerLiteral:
		return &object.Integer{Value: node.Value}

	case *ast.StringLiteral:
		return &object.String{Value: node.Value}

	// Variables
	case *ast.LocalVarAccess:
		return env.Lookup(node.Name)

	case *ast.LocalVarAssignment:
		return evalLocalVarAssignment(node, env)

	// Functions and calls
	case *ast.Fun:
		return evalFun(node, env)

	case *ast.FunCall:
		callee := Eval(node.Callee, env)
		if isSignal(callee) {
			return callee
		}

		args := evalExpressions(node.Args, env)
		if len(args) == 1 && isSignal(args[0]) {
			return args[0]
		}

		return call(UNDEFINED, callee, args, node.Token.Line)

	case *ast.Return:
		var val object.Value = UNDEFINED
		if node.Value != nil {
			val = Eval(node.Value, env)
			// An already unwinding value passes through; the innermost
			// return wins.
			if isSignal(val) {
				return val
			}
		}
		return &object.ReturnValue{Value: val}

	// Control flow
	case *ast.If:
		return evalIf(node, env)

	// Objects
	case *ast.New:
		return evalNew(node, env)

	case *ast.FieldAccess:
		receiver := Eval(node.Receiver, env)
		if isSignal(receiver) {
			return receiver
		}

		obj, ok := receiver.(object.Object)
		if !ok {
			return newError(node.Token.Line, "type error: %s is not an object", receiver.Inspect())
		}

		return obj.Lookup(node.Name)

	case *ast.FieldAssignment:
		return evalFieldAssignment(node, env)

	case *ast.MethodCall:
		return evalMethodCall(node, env)
	}

	panic(fmt.Sprintf("unknown node type: %T", node))
}

func evalProgram(program *ast.Program, env *object.Environment) object.Value {
	var result object.Value = UNDEFINED

	for _, instruction := range program.Body.Instructions {
		result = Eval(instruction, env)

		switch result := result.(type) {
		case *object.ReturnValue:
			// A top-level return ends the program.
			return result.Value
		case *object.Error:
			return result
		}
	}

	return result
}

// evalBlock runs instructions in the caller's environment: blocks do not open
// a scope, only function calls do.
func evalBlock(block *ast.Block, env *object.Environment) object.Value {
	for _, instruction := range block.Instructions {
		result := Eval(instruction, env)
		if isSignal(result) {
			return result
		}
	}

	return UNDEFINED
}

func evalLocalVarAssignment(node *ast.LocalVarAssignment, env *object.Environment) object.Value {
	if node.Declaration && env.Lookup(node.Name) != UNDEFINED {
		return newError(node.Token.Line, "duplicate declaration: %s is already defined", node.Name)
	}

	val := Eval(node.Value, env)
	if isSignal(val) {
		return val
	}

	// Always the local scope. Assigning a name bound only in an outer scope
	// creates a shadow here instead of mutating the outer binding.
	env.Register(node.Name, val)

	return UNDEFINED
}

// evalFun builds the function value. Its invoker closes over the defining
// environment, giving lexical scoping; each invocation gets a fresh child
// environment holding `this` and the parameters.
func evalFun(node *ast.Fun, env *object.Environment) object.Value {
	definingEnv := env

	var fn *object.Function
	fn = object.NewFunction(node.Name, func(receiver object.Value, args []object.Value) object.Value {
		if len(args) != len(node.Parameters) {
			return newError(node.Token.Line, "wrong number of arguments for %s. got=%d, want=%d",
				fn.Name, len(args), len(node.Parameters))
		}

		localEnv := object.NewEnclosedEnvironment(definingEnv)
		localEnv.Register("this", receiver)
		for i, param := range node.Parameters {
			localEnv.Register(param, args[i])
		}

		result := Eval(node.Body, localEnv)
		if returnValue, ok := result.(*object.ReturnValue); ok {
			return returnValue.Value
		}
		return result
	})

	if node.Name != "" {
		env.Register(node.Name, fn)
	}

	return fn
}

func evalIf(ie *ast.If, env *object.Environment) object.Value {
	condition := Eval(ie.Condition, env)
	if isSignal(condition) {
		return condition
	}

	cond, ok := condition.(*object.Integer)
	if !ok {
		return newError(ie.Token.Line, "invalid boolean value: %s", condition.Inspect())
	}

	if cond.Value != 0 {
		return Eval(ie.Consequence, env)
	}
	if ie.Alternative != nil {
		return Eval(ie.Alternative, env)
	}
	return UNDEFINED
}

func evalNew(node *ast.New, env *object.Environment) object.Value {
	record := object.NewRecord()

	// Initializers run in source order.
	for _, field := range node.Fields {
		val := Eval(field.Value, env)
		if isSignal(val) {
			return val
		}
		record.Register(field.Name, val)
	}

	return record
}

func evalFieldAssignment(node *ast.FieldAssignment, env *object.Environment) object.Value {
	receiver := Eval(node.Receiver, env)
	if isSignal(receiver) {
		return receiver
	}

	obj, ok := receiver.(object.Object)
	if !ok {
		return newError(node.Token.Line, "type error: %s is not an object", receiver.Inspect())
	}

	val := Eval(node.Value, env)
	if isSignal(val) {
		return val
	}

	obj.Register(node.Name, val)

	return UNDEFINED
}

func evalMethodCall(node *ast.MethodCall, env *object.Environment) object.Value {
	receiver := Eval(node.Receiver, env)
	if isSignal(receiver) {
		return receiver
	}

	obj, ok := receiver.(object.Object)
	if !ok {
		return newError(node.Token.Line, "type error: %s is not an object", receiver.Inspect())
	}

	callee := obj.Lookup(node.Name)

	args := evalExpressions(node.Args, env)
	if len(args) == 1 && isSignal(args[0]) {
		return args[0]
	}

	return call(receiver, callee, args, node.Token.Line)
}

func evalExpressions(exps []ast.Expression, env *object.Environment) []object.Value {
	var result []object.Value

	for _, exp := range exps {
		evaluated := Eval(exp, env)
		if isSignal(evaluated) {
			return []object.Value{evaluated}
		}
		result = append(result, evaluated)
	}

	return result
}

// call invokes callee with receiver bound to `this`. The callable check
// happens after arguments were evaluated, so their side effects stick even
// when the target turns out not to be a function.
func call(receiver object.Value, callee object.Value, args []object.Value, line int) object.Value {
	fn, ok := callee.(*object.Function)
	if !ok {
		return newError(line, "%s is not callable", callee.Inspect())
	}
	return fn.Invoke(receiver, args)
}

func newError(line int, format string, a ...interface{}) *object.Error {
	msg := fmt.Sprintf(format, a...)
	if line > 0 {
		msg = fmt.Sprintf("line %d: %s", line, msg)
	}
	return &object.Error{Message: msg, Line: line}
}

func isError(obj object.Value) bool {
	if obj != nil {
		return obj.Type() == object.ERROR_OBJ
	}
	return false
}

// isSignal also covers the non-local return wrapper. Both unwind through
// every expression position untouched; only blocks, the program root, and
// call boundaries give them meaning.
func isSignal(obj object.Value) bool {
	if obj != nil {
		rt := obj.Type()
		return rt == object.ERROR_OBJ || rt == object.RETURN_VALUE_OBJ
	}
	return false
}
