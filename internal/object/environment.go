package object

import (
	"log/slog"
)

// Environment is the scope object: field storage plus an optional parent.
// Lookup walks the parent chain; Register always writes locally, so plain
// assignment to an outer name shadows it rather than mutating the outer
// scope.
type Environment struct {
	store map[string]Value
	outer *Environment
}

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Value)}
}

// NewEnclosedEnvironment initializes an environment with a parent scope.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

func (e *Environment) Type() ObjectType { return ENVIRONMENT_OBJ }

// Inspect stays shallow: the global environment contains itself via the
// `global` binding.
func (e *Environment) Inspect() string { return "<environment>" }

func (e *Environment) Register(name string, val Value) {
	slog.Debug("register binding",
		slog.String("name", name),
		slog.Any("type", val.Type()))
	e.store[name] = val
}

func (e *Environment) Lookup(name string) Value {
	if val, ok := e.store[name]; ok {
		return val
	}
	if e.outer != nil {
		return e.outer.Lookup(name)
	}
	return UNDEFINED
}
