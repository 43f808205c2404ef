package evaluator

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"newt/internal/ast"
	"newt/internal/object"
)

// Interpret runs program against a fresh global environment, writing print
// output to out. An evaluation failure comes back as a Go error carrying the
// failure message.
func Interpret(program *ast.Program, out io.Writer) error {
	env := NewGlobalEnvironment(out)

	result := Eval(program, env)
	if err, ok := result.(*object.Error); ok {
		return errors.New(err.Message)
	}

	return nil
}

// NewGlobalEnvironment builds the parentless environment every program starts
// in: the `global` self-reference, `print`, and the operators. Operators are
// ordinary two-argument functions, so programs can call them in prefix form,
// pass them around, or shadow them.
func NewGlobalEnvironment(out io.Writer) *object.Environment {
	env := object.NewEnvironment()

	env.Register("global", env)
	env.Register("print", newPrint(out))

	env.Register("+", integerOp("+", func(a, b int64) object.Value {
		return &object.Integer{Value: a + b}
	}))
	env.Register("-", integerOp("-", func(a, b int64) object.Value {
		return &object.Integer{Value: a - b}
	}))
	env.Register("*", integerOp("*", func(a, b int64) object.Value {
		return &object.Integer{Value: a * b}
	}))
	env.Register("/", integerOp("/", func(a, b int64) object.Value {
		if b == 0 {
			return newError(0, "division by zero")
		}
		return &object.Integer{Value: a / b}
	}))
	env.Register("%", integerOp("%", func(a, b int64) object.Value {
		if b == 0 {
			return newError(0, "division by zero")
		}
		return &object.Integer{Value: a % b}
	}))

	env.Register("==", equalityOp("==", true))
	env.Register("!=", equalityOp("!=", false))

	env.Register("<", orderingOp("<", func(c int) bool { return c < 0 }))
	env.Register("<=", orderingOp("<=", func(c int) bool { return c <= 0 }))
	env.Register(">", orderingOp(">", func(c int) bool { return c > 0 }))
	env.Register(">=", orderingOp(">=", func(c int) bool { return c >= 0 }))

	return env
}

func newPrint(out io.Writer) *object.Function {
	return object.NewFunction("print", func(_ object.Value, args []object.Value) object.Value {
		slog.Debug("print", slog.Int("args", len(args)))

		rendered := make([]string, len(args))
		for i, arg := range args {
			rendered[i] = arg.Inspect()
		}
		fmt.Fprintln(out, strings.Join(rendered, " "))

		return UNDEFINED
	})
}

// integerOp wraps a two-integer function with the arity and operand checks
// shared by the arithmetic operators.
func integerOp(name string, apply func(a, b int64) object.Value) *object.Function {
	return object.NewFunction(name, func(_ object.Value, args []object.Value) object.Value {
		if len(args) != 2 {
			return newError(0, "wrong number of arguments. got=%d, want=2", len(args))
		}

		left, ok := args[0].(*object.Integer)
		if !ok {
			return newError(0, "arguments to `%s` must be INTEGER, got %s and %s",
				name, args[0].Type(), args[1].Type())
		}
		right, ok := args[1].(*object.Integer)
		if !ok {
			return newError(0, "arguments to `%s` must be INTEGER, got %s and %s",
				name, args[0].Type(), args[1].Type())
		}

		return apply(left.Value, right.Value)
	})
}

// orderingOp wraps a comparison over two integers or two strings. Integers
// order numerically, strings lexicographically; mixed operand kinds fail.
func orderingOp(name string, accept func(c int) bool) *object.Function {
	return object.NewFunction(name, func(_ object.Value, args []object.Value) object.Value {
		if len(args) != 2 {
			return newError(0, "wrong number of arguments. got=%d, want=2", len(args))
		}

		switch left := args[0].(type) {
		case *object.Integer:
			if right, ok := args[1].(*object.Integer); ok {
				return boolToInteger(accept(cmp.Compare(left.Value, right.Value)))
			}
		case *object.String:
			if right, ok := args[1].(*object.String); ok {
				return boolToInteger(accept(cmp.Compare(left.Value, right.Value)))
			}
		}

		return newError(0, "arguments to `%s` must be two INTEGERs or two STRINGs, got %s and %s",
			name, args[0].Type(), args[1].Type())
	})
}

func equalityOp(name string, want bool) *object.Function {
	return object.NewFunction(name, func(_ object.Value, args []object.Value) object.Value {
		if len(args) != 2 {
			return newError(0, "wrong number of arguments. got=%d, want=2", len(args))
		}
		return boolToInteger(object.Equals(args[0], args[1]) == want)
	})
}

func boolToInteger(b bool) *object.Integer {
	if b {
		return &object.Integer{Value: 1}
	}
	return &object.Integer{Value: 0}
}
