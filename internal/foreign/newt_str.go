package foreign

import (
	"strings"

	"newt/internal/object"
)

func newStrModule() *object.Record {
	m := object.NewRecord()
	m.Register("len", hostFunc("str.len", 1, strLen))
	m.Register("indexOf", hostFunc("str.indexOf", 2, strIndexOf))
	m.Register("substr", hostFunc("str.substr", 3, strSubstr))
	m.Register("toUpper", hostFunc("str.toUpper", 1, strToUpper))
	m.Register("toLower", hostFunc("str.toLower", 1, strToLower))
	m.Register("trim", hostFunc("str.trim", 1, strTrim))
	return m
}

func strLen(args []object.Value) object.Value {
	s, errObj := unpackString(args[0], "str.len")
	if errObj != nil {
		return errObj
	}
	return &object.Integer{Value: int64(len(s))}
}

func strIndexOf(args []object.Value) object.Value {
	s, errObj := unpackString(args[0], "str.indexOf")
	if errObj != nil {
		return errObj
	}
	sub, errObj := unpackString(args[1], "str.indexOf")
	if errObj != nil {
		return errObj
	}
	return &object.Integer{Value: int64(strings.Index(s, sub))}
}

// strSubstr slices by byte indexes, clamping both ends into range.
func strSubstr(args []object.Value) object.Value {
	s, errObj := unpackString(args[0], "str.substr")
	if errObj != nil {
		return errObj
	}
	from, errObj := unpackInteger(args[1], "str.substr")
	if errObj != nil {
		return errObj
	}
	to, errObj := unpackInteger(args[2], "str.substr")
	if errObj != nil {
		return errObj
	}

	length := int64(len(s))
	if from < 0 {
		from = 0
	}
	if to > length {
		to = length
	}
	if from > to {
		return &object.String{Value: ""}
	}
	return &object.String{Value: s[from:to]}
}

func strToUpper(args []object.Value) object.Value {
	s, errObj := unpackString(args[0], "str.toUpper")
	if errObj != nil {
		return errObj
	}
	return &object.String{Value: strings.ToUpper(s)}
}

func strToLower(args []object.Value) object.Value {
	s, errObj := unpackString(args[0], "str.toLower")
	if errObj != nil {
		return errObj
	}
	return &object.String{Value: strings.ToLower(s)}
}

func strTrim(args []object.Value) object.Value {
	s, errObj := unpackString(args[0], "str.trim")
	if errObj != nil {
		return errObj
	}
	return &object.String{Value: strings.TrimSpace(s)}
}
