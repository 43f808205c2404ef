package foreign

import (
	"fmt"
	"strconv"

	"newt/internal/object"
)

var UNDEFINED = object.UNDEFINED

// hostFunc wraps a module function with its qualified name and the arity
// check every host function performs. A negative want skips the check for
// functions that validate a variable argument count inline.
func hostFunc(name string, want int, fn func(args []object.Value) object.Value) *object.Function {
	return object.NewFunction(name, func(_ object.Value, args []object.Value) object.Value {
		if want >= 0 && len(args) != want {
			return newError("wrong number of arguments for %s. got=%d, want=%d", name, len(args), want)
		}
		return fn(args)
	})
}

func unpackString(arg object.Value, name string) (string, *object.Error) {
	str, ok := arg.(*object.String)
	if !ok {
		return "", newError("argument to `%s` must be STRING, got %s", name, arg.Type())
	}
	return str.Value, nil
}

func unpackInteger(arg object.Value, name string) (int64, *object.Error) {
	integer, ok := arg.(*object.Integer)
	if !ok {
		return 0, newError("argument to `%s` must be INTEGER, got %s", name, arg.Type())
	}
	return integer.Value, nil
}

// indexedRecord is the list surrogate: numbered fields plus a length field.
func indexedRecord(values []object.Value) *object.Record {
	record := object.NewRecord()
	record.Register("length", &object.Integer{Value: int64(len(values))})
	for i, v := range values {
		record.Register(strconv.Itoa(i), v)
	}
	return record
}

func boolInteger(b bool) *object.Integer {
	if b {
		return &object.Integer{Value: 1}
	}
	return &object.Integer{Value: 0}
}

// newError builds a failure value. Host functions carry no source line.
func newError(format string, a ...interface{}) *object.Error {
	return &object.Error{Message: fmt.Sprintf(format, a...)}
}
