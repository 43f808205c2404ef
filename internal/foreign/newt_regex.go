package foreign

import (
	"regexp"

	"newt/internal/object"
)

func newRegexModule() *object.Record {
	m := object.NewRecord()
	m.Register("matches", hostFunc("regex.matches", 2, regexMatches))
	m.Register("replaceAll", hostFunc("regex.replaceAll", 3, regexReplaceAll))
	m.Register("findAll", hostFunc("regex.findAll", 2, regexFindAll))
	return m
}

func regexMatches(args []object.Value) object.Value {
	s, errObj := unpackString(args[0], "regex.matches")
	if errObj != nil {
		return errObj
	}
	pattern, errObj := unpackString(args[1], "regex.matches")
	if errObj != nil {
		return errObj
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return newError("invalid pattern: %v", err)
	}
	return boolInteger(re.MatchString(s))
}

func regexReplaceAll(args []object.Value) object.Value {
	s, errObj := unpackString(args[0], "regex.replaceAll")
	if errObj != nil {
		return errObj
	}
	pattern, errObj := unpackString(args[1], "regex.replaceAll")
	if errObj != nil {
		return errObj
	}
	repl, errObj := unpackString(args[2], "regex.replaceAll")
	if errObj != nil {
		return errObj
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return newError("invalid pattern: %v", err)
	}
	return &object.String{Value: re.ReplaceAllString(s, repl)}
}

func regexFindAll(args []object.Value) object.Value {
	s, errObj := unpackString(args[0], "regex.findAll")
	if errObj != nil {
		return errObj
	}
	pattern, errObj := unpackString(args[1], "regex.findAll")
	if errObj != nil {
		return errObj
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return newError("invalid pattern: %v", err)
	}

	found := re.FindAllString(s, -1)
	values := make([]object.Value, len(found))
	for i, match := range found {
		values[i] = &object.String{Value: match}
	}
	return indexedRecord(values)
}
