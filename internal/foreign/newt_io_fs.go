package foreign

import (
	"os"

	"newt/internal/object"
)

func newFsModule() *object.Record {
	m := object.NewRecord()
	m.Register("readFile", hostFunc("fs.readFile", 1, fsReadFile))
	m.Register("writeFile", hostFunc("fs.writeFile", 2, fsWriteFile))
	m.Register("appendFile", hostFunc("fs.appendFile", 2, fsAppendFile))
	m.Register("exists", hostFunc("fs.exists", 1, fsExists))
	m.Register("rm", hostFunc("fs.rm", 1, fsRm))
	return m
}

func fsReadFile(args []object.Value) object.Value {
	path, errObj := unpackString(args[0], "fs.readFile")
	if errObj != nil {
		return errObj
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return newError("failed to read file: %v", err)
	}

	return &object.String{Value: string(data)}
}

func fsWriteFile(args []object.Value) object.Value {
	path, errObj := unpackString(args[0], "fs.writeFile")
	if errObj != nil {
		return errObj
	}
	text, errObj := unpackString(args[1], "fs.writeFile")
	if errObj != nil {
		return errObj
	}

	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return newError("failed to write file: %v", err)
	}

	return UNDEFINED
}

func fsAppendFile(args []object.Value) object.Value {
	path, errObj := unpackString(args[0], "fs.appendFile")
	if errObj != nil {
		return errObj
	}
	text, errObj := unpackString(args[1], "fs.appendFile")
	if errObj != nil {
		return errObj
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return newError("failed to open file: %v", err)
	}
	defer f.Close()

	if _, err := f.WriteString(text); err != nil {
		return newError("failed to append to file: %v", err)
	}

	return UNDEFINED
}

func fsExists(args []object.Value) object.Value {
	path, errObj := unpackString(args[0], "fs.exists")
	if errObj != nil {
		return errObj
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return boolInteger(false)
	}
	return boolInteger(true)
}

func fsRm(args []object.Value) object.Value {
	path, errObj := unpackString(args[0], "fs.rm")
	if errObj != nil {
		return errObj
	}

	if err := os.Remove(path); err != nil {
		return newError("failed to remove file: %v", err)
	}

	return UNDEFINED
}
