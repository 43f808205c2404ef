package foreign

import (
	"os"

	"newt/internal/object"
)

var sysArgs []string

// SetArgs records the program arguments exposed as sys.args. Embedders call
// it before Install.
func SetArgs(args []string) {
	sysArgs = args
}

func newSysModule() *object.Record {
	m := object.NewRecord()

	values := make([]object.Value, len(sysArgs))
	for i, arg := range sysArgs {
		values[i] = &object.String{Value: arg}
	}
	m.Register("args", indexedRecord(values))

	m.Register("env", hostFunc("sys.env", 1, sysEnv))
	m.Register("exit", hostFunc("sys.exit", 1, sysExit))
	return m
}

func sysEnv(args []object.Value) object.Value {
	name, errObj := unpackString(args[0], "sys.env")
	if errObj != nil {
		return errObj
	}

	value, ok := os.LookupEnv(name)
	if !ok {
		return UNDEFINED
	}
	return &object.String{Value: value}
}

func sysExit(args []object.Value) object.Value {
	code, errObj := unpackInteger(args[0], "sys.exit")
	if errObj != nil {
		return errObj
	}

	os.Exit(int(code))
	return UNDEFINED
}
