package object

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

const (
	INTEGER_OBJ   = "INTEGER"
	STRING_OBJ    = "STRING"
	UNDEFINED_OBJ = "UNDEFINED"

	OBJECT_OBJ      = "OBJECT"
	ENVIRONMENT_OBJ = "ENVIRONMENT"
	FUNCTION_OBJ    = "FUNCTION"

	RETURN_VALUE_OBJ = "RETURN_VALUE"
	ERROR_OBJ        = "ERROR"
)

var UNDEFINED = &Undefined{}

type ObjectType string

// Value is the interface every runtime value implements.
type Value interface {
	Type() ObjectType
	Inspect() string
}

// Object is implemented by values with named-field storage: environments,
// plain objects and functions. Register creates or overwrites, always
// locally; Lookup yields UNDEFINED for absent names, never an error.
type Object interface {
	Value
	Register(name string, val Value)
	Lookup(name string) Value
}

// Invoker runs a function body or a host implementation. The receiver is the
// value bound to `this`; plain calls pass UNDEFINED.
type Invoker func(receiver Value, args []Value) Value

type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return fmt.Sprintf("%d", i.Value) }

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

type Undefined struct{}

func (u *Undefined) Type() ObjectType { return UNDEFINED_OBJ }
func (u *Undefined) Inspect() string  { return "undefined" }

// Record is a plain object: field storage and nothing else. No parent
// chain, no code.
type Record struct {
	fields map[string]Value
}

func NewRecord() *Record {
	return &Record{fields: make(map[string]Value)}
}

func (r *Record) Type() ObjectType { return OBJECT_OBJ }

func (r *Record) Register(name string, val Value) {
	r.fields[name] = val
}

func (r *Record) Lookup(name string) Value {
	if val, ok := r.fields[name]; ok {
		return val
	}
	return UNDEFINED
}

// FieldNames returns the registered names sorted, keeping rendered output
// stable across runs.
func (r *Record) FieldNames() []string {
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Record) Inspect() string {
	var out bytes.Buffer

	fields := []string{}
	for _, name := range r.FieldNames() {
		fields = append(fields, fmt.Sprintf("%s: %s", name, r.fields[name].Inspect()))
	}

	out.WriteString("{")
	out.WriteString(strings.Join(fields, ", "))
	out.WriteString("}")

	return out.String()
}

// Function is an invocable object. User-defined and host functions share
// this shape; only the Invoke implementation differs. Fields registered on
// a function behave like fields on any other object.
type Function struct {
	Name   string
	Invoke Invoker
	*Record
}

func NewFunction(name string, invoke Invoker) *Function {
	if name == "" {
		name = "lambda"
	}
	return &Function{Name: name, Invoke: invoke, Record: NewRecord()}
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string  { return "function " + f.Name }

// ReturnValue carries a `return` payload up to the nearest function call
// boundary. Programs never observe it.
type ReturnValue struct {
	Value Value
}

func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }

// Error carries an evaluation failure through the tree walk. Line is zero
// when no source position applies.
type Error struct {
	Message string
	Line    int
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string  { return "ERROR: " + e.Message }

// Equals implements the language's ==. Integers and strings compare by
// value, undefined equals itself, objects and functions by identity.
func Equals(a, b Value) bool {
	switch a := a.(type) {
	case *Integer:
		if b, ok := b.(*Integer); ok {
			return a.Value == b.Value
		}
		return false
	case *String:
		if b, ok := b.(*String); ok {
			return a.Value == b.Value
		}
		return false
	default:
		return a == b
	}
}
